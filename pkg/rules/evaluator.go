package rules

import (
	"github.com/goliatone/go-trialkit/pkg/capture"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Evaluator checks one rule kind against a submission snapshot. Evaluate
// receives the full descriptor because some kinds (requiredFilled) need
// field metadata beyond the captured entries. Any non-nil error counts as a
// recoverable validation failure.
type Evaluator interface {
	Kind() string
	Evaluate(t trial.Trial, rule trial.Rule, entries []capture.Entry) error
}
