package trial

import "strings"

// FieldKind is the simplified enum for the input kinds a descriptor can
// declare.
type FieldKind string

const (
	FieldText       FieldKind = "text"
	FieldRadio      FieldKind = "radio"
	FieldCheckbox   FieldKind = "checkbox"
	FieldSelect     FieldKind = "select"
	FieldAllocation FieldKind = "allocation"
	FieldRank       FieldKind = "rank"
	FieldScale      FieldKind = "scale"
)

const (
	RuleSumEquals      = "sumEquals"
	RuleAllUnique      = "allUnique"
	RuleRequiredFilled = "requiredFilled"
)

const (
	ParamGroup  = "group"
	ParamTarget = "target"
)

// Rule represents a single validation constraint evaluated at submission.
// Use the Rule* constants to reference the built-in kinds: sumEquals encodes
// its numeric target in Params["target"] and its member tag in
// Params["group"], allUnique takes only Params["group"], and requiredFilled
// takes no params. Custom kinds carry whatever params their evaluator
// expects; values stay strings to keep JSON snapshots stable.
type Rule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Group returns the group tag the rule applies to, if any.
func (r Rule) Group() string {
	return r.Params[ParamGroup]
}

// Field models one question inside a trial. Name doubles as the response key
// in produced records; Value is the initial value presented to the
// participant, not the captured one.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     FieldKind `json:"kind" yaml:"kind"`
	Prompt   string    `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Value    string    `json:"value,omitempty" yaml:"value,omitempty"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Levels   []string  `json:"levels,omitempty" yaml:"levels,omitempty"`
}

// Multi reports whether the field kind captures more than one value at once.
func (f Field) Multi() bool {
	return f.Kind == FieldCheckbox || f.Kind == FieldSelect
}

// Mode selects how captured entries serialize into a response record.
type Mode string

const (
	// ModeObject produces a name→value map; later entries overwrite earlier
	// ones when names repeat.
	ModeObject Mode = "object"
	// ModeArray produces ordered name/value pairs and preserves duplicates.
	ModeArray Mode = "array"
)

// Defaults applied by Normalized.
const (
	DefaultType        = "survey-form"
	DefaultButtonLabel = "Continue"
)

// Trial is the immutable descriptor for one trial: prompt text, the ordered
// field list, the rules enforced at submission, and the serialization mode
// for the record it produces.
type Trial struct {
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Preamble    string            `json:"preamble,omitempty" yaml:"preamble,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Rules       []Rule            `json:"rules,omitempty" yaml:"rules,omitempty"`
	ButtonLabel string            `json:"button_label,omitempty" yaml:"button_label,omitempty"`
	Mode        Mode              `json:"mode,omitempty" yaml:"mode,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// AllowDuplicateNames opts the descriptor into repeated field names.
	// Object-mode records then keep only the last captured value per name;
	// array mode preserves every pair.
	AllowDuplicateNames bool `json:"allow_duplicate_names,omitempty" yaml:"allow_duplicate_names,omitempty"`
}

// Normalized returns a copy with defaults applied: type, button label, and
// object mode when unset. The receiver is never modified.
func (t Trial) Normalized() Trial {
	out := t
	if strings.TrimSpace(out.Type) == "" {
		out.Type = DefaultType
	}
	if strings.TrimSpace(out.ButtonLabel) == "" {
		out.ButtonLabel = DefaultButtonLabel
	}
	if out.Mode == "" {
		out.Mode = ModeObject
	}
	return out
}

// MatchesGroup reports whether a field or entry name belongs to the group
// identified by tag. Membership is substring containment, so the tag
// "allocation" clusters allocation_1, allocation_2, and so on. An empty tag
// matches nothing.
func MatchesGroup(name, tag string) bool {
	if tag == "" {
		return false
	}
	return strings.Contains(name, tag)
}

// GroupFields returns the fields whose names match the group tag, in
// declaration order.
func (t Trial) GroupFields(tag string) []Field {
	var out []Field
	for _, f := range t.Fields {
		if MatchesGroup(f.Name, tag) {
			out = append(out, f)
		}
	}
	return out
}

// FieldByName returns the first field with the given name.
func (t Trial) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
