package trial

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizedAppliesDefaults(t *testing.T) {
	tr := Trial{Fields: []Field{{Name: "answer", Kind: FieldText}}}

	got := tr.Normalized()
	if got.Type != DefaultType {
		t.Fatalf("type mismatch: got %q", got.Type)
	}
	if got.ButtonLabel != DefaultButtonLabel {
		t.Fatalf("button label mismatch: got %q", got.ButtonLabel)
	}
	if got.Mode != ModeObject {
		t.Fatalf("mode mismatch: got %q", got.Mode)
	}
	if tr.Type != "" || tr.ButtonLabel != "" || tr.Mode != "" {
		t.Fatalf("receiver mutated: %+v", tr)
	}
}

func TestNormalizedKeepsExplicitValues(t *testing.T) {
	tr := Trial{Type: "survey-likert", ButtonLabel: "Done", Mode: ModeArray}

	got := tr.Normalized()
	if got.Type != "survey-likert" || got.ButtonLabel != "Done" || got.Mode != ModeArray {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
}

func TestMatchesGroup(t *testing.T) {
	cases := []struct {
		name string
		tag  string
		want bool
	}{
		{"allocation_1", "allocation", true},
		{"allocation_2", "allocation", true},
		{"pre_allocation_note", "allocation", true},
		{"budget_1", "allocation", false},
		{"allocation_1", "", false},
	}
	for _, tc := range cases {
		if got := MatchesGroup(tc.name, tc.tag); got != tc.want {
			t.Fatalf("MatchesGroup(%q, %q) = %v, want %v", tc.name, tc.tag, got, tc.want)
		}
	}
}

func TestGroupFieldsPreservesOrder(t *testing.T) {
	tr := Trial{Fields: []Field{
		{Name: "allocation_2", Kind: FieldAllocation},
		{Name: "note", Kind: FieldText},
		{Name: "allocation_1", Kind: FieldAllocation},
	}}

	var names []string
	for _, f := range tr.GroupFields("allocation") {
		names = append(names, f.Name)
	}
	want := []string{"allocation_2", "allocation_1"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("group fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldByName(t *testing.T) {
	tr := Trial{Fields: []Field{
		{Name: "color", Kind: FieldText, Prompt: "Favorite color?"},
	}}

	f, ok := tr.FieldByName("color")
	if !ok || f.Prompt != "Favorite color?" {
		t.Fatalf("lookup mismatch: %+v ok=%v", f, ok)
	}
	if _, ok := tr.FieldByName("shape"); ok {
		t.Fatalf("expected miss for unknown name")
	}
}

func TestFieldMulti(t *testing.T) {
	if !(Field{Kind: FieldCheckbox}).Multi() {
		t.Fatalf("checkbox should capture multiple values")
	}
	if !(Field{Kind: FieldSelect}).Multi() {
		t.Fatalf("select should capture multiple values")
	}
	if (Field{Kind: FieldRadio}).Multi() {
		t.Fatalf("radio captures a single value")
	}
}
