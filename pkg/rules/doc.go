// Package rules evaluates validation rules against captured entries. The
// built-in evaluators cover the protocol kinds (sumEquals, allUnique,
// requiredFilled); a Registry lets callers add custom kinds. Failures are
// recoverable by contract: evaluators return typed errors the collector
// surfaces to the participant, never panics or fatal states.
package rules
