package collector

import (
	"context"

	"github.com/goliatone/go-trialkit/pkg/capture"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// ResponseRecord is the single artifact a completed session produces.
// Exactly one of Responses and Pairs is populated, selected by the
// descriptor's serialization mode.
type ResponseRecord struct {
	SessionID      string `json:"session_id"`
	TrialType      string `json:"trial_type"`
	ResponseTimeMS int64  `json:"response_time_ms"`

	// Responses holds the object-mode serialization: a name→value map where
	// later captures overwrite earlier ones.
	Responses map[string]string `json:"responses,omitempty"`

	// Pairs holds the array-mode serialization: every captured pair in
	// encounter order, duplicates preserved.
	Pairs []capture.Entry `json:"pairs,omitempty"`

	// Attempts counts submissions on the session, including the accepted one.
	Attempts int `json:"attempts"`
}

// Recorder receives completed records at the protocol's outbound boundary.
// The collector itself never persists anything. A Recorder error leaves the
// session active so the caller can resubmit; implementations must therefore
// tolerate redelivery under the same session id.
type Recorder interface {
	Record(ctx context.Context, rec ResponseRecord) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ctx context.Context, rec ResponseRecord) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, rec ResponseRecord) error {
	return f(ctx, rec)
}

// Serialize turns captured entries into the record shape the mode selects.
func Serialize(entries []capture.Entry, mode trial.Mode) (map[string]string, []capture.Entry) {
	if mode == trial.ModeArray {
		return nil, SerializePairs(entries)
	}
	return SerializeObject(entries), nil
}

// SerializeObject folds entries into a name→value map. Repeated names
// resolve by last write wins.
func SerializeObject(entries []capture.Entry) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Name] = e.Value
	}
	return out
}

// SerializePairs copies entries so records stay immutable even when the
// caller reuses the control slice.
func SerializePairs(entries []capture.Entry) []capture.Entry {
	if entries == nil {
		return nil
	}
	out := make([]capture.Entry, len(entries))
	copy(out, entries)
	return out
}
