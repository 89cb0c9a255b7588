package trial

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"allocation_1", "Allocation 1"},
		{"favoriteColor", "Favorite Color"},
		{"favorite-color", "Favorite Color"},
		{"HTTPTimeout", "Httptimeout"},
		{"q2Answer", "Q 2 Answer"},
		{"  spaced  name ", "Spaced Name"},
	}
	for _, tc := range cases {
		if got := DefaultLabeler(tc.in); got != tc.want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLabelPrefersPrompt(t *testing.T) {
	f := Field{Name: "allocation_1", Prompt: "How much for rent?"}
	if got := Label(f); got != "How much for rent?" {
		t.Fatalf("label mismatch: got %q", got)
	}

	f.Prompt = "   "
	if got := Label(f); got != "Allocation 1" {
		t.Fatalf("fallback mismatch: got %q", got)
	}
}
