package rules

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-trialkit/pkg/trial"
)

// ValidationError marks a recoverable rule failure: the submission is
// rejected, the trial stays active, and the participant may correct the
// inputs and resubmit.
type ValidationError interface {
	error
	// Rule returns the kind of the rule that failed.
	Rule() string
}

// SumMismatchError reports a sumEquals group whose values do not add up to
// the target.
type SumMismatchError struct {
	Group    string
	Expected float64
	Actual   float64
}

func (e *SumMismatchError) Rule() string { return trial.RuleSumEquals }

func (e *SumMismatchError) Error() string {
	return fmt.Sprintf("rules: group %q: sum is %s, expected %s",
		e.Group, formatNumber(e.Actual), formatNumber(e.Expected))
}

// DuplicateValuesError reports an allUnique group containing the same value
// more than once.
type DuplicateValuesError struct {
	Group string
	Value string
}

func (e *DuplicateValuesError) Rule() string { return trial.RuleAllUnique }

func (e *DuplicateValuesError) Error() string {
	return fmt.Sprintf("rules: group %q: value %q appears more than once", e.Group, e.Value)
}

// RequiredFieldMissingError reports a required field with no filled entry.
type RequiredFieldMissingError struct {
	Name string
}

func (e *RequiredFieldMissingError) Rule() string { return trial.RuleRequiredFilled }

func (e *RequiredFieldMissingError) Error() string {
	return fmt.Sprintf("rules: required field %q is empty", e.Name)
}

// AsValidation unwraps err into a typed validation failure when possible.
func AsValidation(err error) (ValidationError, bool) {
	var verr ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
