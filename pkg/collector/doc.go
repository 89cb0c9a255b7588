// Package collector implements the response-collection protocol: it opens a
// session per trial, timestamps the start, snapshots an abstract control
// surface at submission, enforces the descriptor's validation rules, and
// serializes accepted submissions into a single immutable ResponseRecord.
//
// Failures split three ways. Configuration problems surface at Begin and
// never mid-trial. Rule failures are recoverable: the session stays active
// and the participant may resubmit. After the one successful submission the
// session is latched and further submits fail with ErrCompleted.
package collector
