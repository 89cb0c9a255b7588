package prompt

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "Allocate 100 points", want: "Allocate 100 points"},
		{name: "tags stripped", in: "<p>Allocate <b>100</b> points</p>", want: "Allocate 100 points"},
		{name: "entities restored", in: "Tom & Jerry", want: "Tom & Jerry"},
		{name: "surrounding space trimmed", in: "  hello\n", want: "hello"},
		{name: "empty", in: "", want: ""},
		{name: "script removed", in: `<script>alert("x")</script>Rate it`, want: "Rate it"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeText(tc.in); got != tc.want {
				t.Fatalf("sanitize mismatch: got %q, want %q", got, tc.want)
			}
		})
	}
}
