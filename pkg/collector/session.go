package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-trialkit/pkg/capture"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Session is one live trial. The start time is taken once when the session
// opens and never reset; submissions measure against it. Sessions are safe
// for concurrent use, though the protocol expects a single participant
// driving one.
type Session struct {
	mu        sync.Mutex
	collector *Collector
	trial     trial.Trial
	id        string
	start     time.Time
	attempts  int
	completed bool
	record    ResponseRecord
}

func newSession(c *Collector, t trial.Trial) *Session {
	return &Session{
		collector: c,
		trial:     t,
		id:        uuid.NewString(),
		start:     c.clock.Now(),
	}
}

// ID returns the session identifier stamped on the produced record.
func (s *Session) ID() string { return s.id }

// Trial returns the normalized descriptor the session runs.
func (s *Session) Trial() trial.Trial { return s.trial }

// Completed reports whether the session has produced its record.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Record returns the produced record, if any.
func (s *Session) Record() (ResponseRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, s.completed
}

// Submit snapshots the control surface and attempts to complete the trial.
// Rule failures are recoverable: the error describes the first rule that
// rejected the submission, the session stays active, and the caller may
// correct the controls and submit again. On acceptance the record is
// emitted to the recorder (when configured), the session latches, and any
// further Submit returns ErrCompleted.
func (s *Session) Submit(ctx context.Context, controls []capture.Control) (ResponseRecord, error) {
	if ctx == nil {
		return ResponseRecord{}, errors.New("collector: context is required")
	}
	if err := ctx.Err(); err != nil {
		return ResponseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return ResponseRecord{}, ErrCompleted
	}

	s.attempts++
	entries := capture.Snapshot(controls)

	if s.collector.bypass {
		s.collector.logger.Warn("validation bypassed",
			zap.String("session_id", s.id),
			zap.String("trial_type", s.trial.Type))
	} else if err := s.evaluate(entries); err != nil {
		return ResponseRecord{}, err
	}

	rec := ResponseRecord{
		SessionID:      s.id,
		TrialType:      s.trial.Type,
		ResponseTimeMS: s.elapsedMS(),
		Attempts:       s.attempts,
	}
	rec.Responses, rec.Pairs = Serialize(entries, s.trial.Mode)

	if s.collector.recorder != nil {
		if err := s.collector.recorder.Record(ctx, rec); err != nil {
			return ResponseRecord{}, fmt.Errorf("collector: record response: %w", err)
		}
	}

	s.record = rec
	s.completed = true
	s.collector.logger.Debug("session completed",
		zap.String("session_id", s.id),
		zap.String("trial_type", s.trial.Type),
		zap.Int64("response_time_ms", rec.ResponseTimeMS),
		zap.Int("attempts", rec.Attempts))
	return rec, nil
}

func (s *Session) evaluate(entries []capture.Entry) error {
	for _, r := range s.trial.Rules {
		ev, err := s.collector.registry.Get(r.Kind)
		if err != nil {
			return err
		}
		if err := ev.Evaluate(s.trial, r, entries); err != nil {
			s.collector.logger.Debug("submission rejected",
				zap.String("session_id", s.id),
				zap.String("rule", r.Kind),
				zap.Int("attempt", s.attempts),
				zap.Error(err))
			return err
		}
	}
	return nil
}

// elapsedMS measures against the session start. The clamp only matters for
// artificial clocks; the default clock's monotonic reading cannot go
// backwards.
func (s *Session) elapsedMS() int64 {
	ms := s.collector.clock.Now().Sub(s.start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// Collect runs a single-submission session: begin, submit, done. Surfaces
// that assemble all controls up front use this instead of managing a
// session by hand.
func (c *Collector) Collect(ctx context.Context, t trial.Trial, controls []capture.Control) (ResponseRecord, error) {
	session, err := c.Begin(t)
	if err != nil {
		return ResponseRecord{}, err
	}
	return session.Submit(ctx, controls)
}
