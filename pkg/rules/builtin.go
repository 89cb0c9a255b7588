package rules

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-trialkit/pkg/capture"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// SumEquals returns the evaluator for the sumEquals kind: the numeric values
// of the rule's group must add up to the target with exact equality.
func SumEquals() Evaluator { return sumEquals{} }

// AllUnique returns the evaluator for the allUnique kind: no value may
// appear twice within the rule's group.
func AllUnique() Evaluator { return allUnique{} }

// RequiredFilled returns the evaluator for the requiredFilled kind: every
// field marked required must have at least one non-empty entry.
func RequiredFilled() Evaluator { return requiredFilled{} }

type sumEquals struct{}

func (sumEquals) Kind() string { return trial.RuleSumEquals }

func (sumEquals) Evaluate(_ trial.Trial, rule trial.Rule, entries []capture.Entry) error {
	tag := rule.Group()
	// Descriptor validation guarantees a numeric target; a rule built by
	// hand with a bad one coerces to zero like any group value.
	target := coerceNumber(rule.Params[trial.ParamTarget])

	var sum float64
	for _, e := range entries {
		if trial.MatchesGroup(e.Name, tag) {
			sum += coerceNumber(e.Value)
		}
	}
	if sum != target {
		return &SumMismatchError{Group: tag, Expected: target, Actual: sum}
	}
	return nil
}

type allUnique struct{}

func (allUnique) Kind() string { return trial.RuleAllUnique }

func (allUnique) Evaluate(_ trial.Trial, rule trial.Rule, entries []capture.Entry) error {
	tag := rule.Group()
	seen := make(map[string]struct{})
	for _, e := range entries {
		if !trial.MatchesGroup(e.Name, tag) {
			continue
		}
		if _, dup := seen[e.Value]; dup {
			return &DuplicateValuesError{Group: tag, Value: e.Value}
		}
		seen[e.Value] = struct{}{}
	}
	return nil
}

type requiredFilled struct{}

func (requiredFilled) Kind() string { return trial.RuleRequiredFilled }

func (requiredFilled) Evaluate(t trial.Trial, _ trial.Rule, entries []capture.Entry) error {
	for _, f := range t.Fields {
		if !f.Required {
			continue
		}
		if !hasFilledEntry(entries, f.Name) {
			return &RequiredFieldMissingError{Name: f.Name}
		}
	}
	return nil
}

func hasFilledEntry(entries []capture.Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name && e.Value != "" {
			return true
		}
	}
	return false
}

// coerceNumber applies the protocol's silent coercion policy: a value that
// does not parse as a number contributes zero to numeric aggregation. This
// never raises an error.
func coerceNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
