package trial

import "strconv"

var validFieldKinds = map[FieldKind]struct{}{
	FieldText:       {},
	FieldRadio:      {},
	FieldCheckbox:   {},
	FieldSelect:     {},
	FieldAllocation: {},
	FieldRank:       {},
	FieldScale:      {},
}

// choiceKinds require authored options to choose from.
var choiceKinds = map[FieldKind]struct{}{
	FieldRadio:    {},
	FieldCheckbox: {},
	FieldSelect:   {},
	FieldRank:     {},
}

// Validate checks the descriptor for configuration problems: missing or
// duplicated field names, unknown field kinds, choice fields without
// options, and rules whose params cannot be honored. Rule kinds outside the
// built-in set pass structural validation here; collectors verify them
// against their evaluator registry before a session begins.
func (t Trial) Validate() error {
	seen := make(map[string]int, len(t.Fields))
	for i, f := range t.Fields {
		if f.Name == "" {
			return configErr("", "field %d: name is required", i)
		}
		if _, ok := validFieldKinds[f.Kind]; !ok {
			return configErr(f.Name, "unknown field kind %q", f.Kind)
		}
		if _, ok := choiceKinds[f.Kind]; ok && len(f.Options) == 0 {
			return configErr(f.Name, "%s field requires options", f.Kind)
		}
		if f.Kind == FieldScale && len(f.Levels) == 0 {
			return configErr(f.Name, "scale field requires levels")
		}
		if prev, dup := seen[f.Name]; dup && !t.AllowDuplicateNames {
			return configErr(f.Name, "duplicate field name (fields %d and %d); set allow_duplicate_names to opt in", prev, i)
		}
		seen[f.Name] = i
	}

	for i, r := range t.Rules {
		if err := t.validateRule(i, r); err != nil {
			return err
		}
	}
	return nil
}

func (t Trial) validateRule(index int, r Rule) error {
	if r.Kind == "" {
		return configErr("", "rule %d: kind is required", index)
	}

	switch r.Kind {
	case RuleSumEquals:
		if err := t.requireGroup(r); err != nil {
			return err
		}
		target, ok := r.Params[ParamTarget]
		if !ok {
			return configErr(r.Kind, "missing %q param", ParamTarget)
		}
		if _, err := strconv.ParseFloat(target, 64); err != nil {
			return configErr(r.Kind, "target %q is not numeric", target)
		}
	case RuleAllUnique:
		if err := t.requireGroup(r); err != nil {
			return err
		}
	case RuleRequiredFilled:
		// No params.
	default:
		// Custom kind: only check the group tag when one is declared.
		if tag := r.Group(); tag != "" && len(t.GroupFields(tag)) == 0 {
			return configErr(r.Kind, "group %q matches no field", tag)
		}
	}
	return nil
}

func (t Trial) requireGroup(r Rule) error {
	tag := r.Group()
	if tag == "" {
		return configErr(r.Kind, "missing %q param", ParamGroup)
	}
	if len(t.GroupFields(tag)) == 0 {
		return configErr(r.Kind, "group %q matches no field", tag)
	}
	return nil
}
