package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-trialkit/pkg/capture"
	"github.com/goliatone/go-trialkit/pkg/collector"
	"github.com/goliatone/go-trialkit/pkg/rules"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Runner conducts one trial per Run call: it prompts for every field, lets
// the participant confirm, and submits through a collector session. Rule
// failures print the failure and restart the prompt walk; the session keeps
// counting attempts across rounds.
type Runner struct {
	driver    PromptDriver
	collector *collector.Collector
	pageSize  int
}

// NewRunner constructs a Runner. Without options it prompts through survey
// on the real terminal and collects with a default collector.
func NewRunner(options ...Option) *Runner {
	r := &Runner{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	if r.collector == nil {
		r.collector = collector.New()
	}
	return r
}

// Run conducts the trial from descriptor to completed record. The error is
// ErrAborted when the participant interrupts; descriptor problems surface as
// *trial.ConfigurationError before any prompting happens.
func (r *Runner) Run(ctx context.Context, t trial.Trial) (collector.ResponseRecord, error) {
	if ctx == nil {
		return collector.ResponseRecord{}, errors.New("prompt: context is required")
	}

	session, err := r.collector.Begin(t)
	if err != nil {
		return collector.ResponseRecord{}, err
	}
	norm := session.Trial()

	if msg := sanitizeText(norm.Preamble); msg != "" {
		if err := r.driver.Info(ctx, msg); err != nil {
			return collector.ResponseRecord{}, err
		}
	}

	for {
		controls, err := r.promptFields(ctx, norm)
		if err != nil {
			return collector.ResponseRecord{}, err
		}

		// The descriptor's button label doubles as the submit confirmation;
		// declining walks the fields again so answers can be revised.
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: sanitizeText(norm.ButtonLabel),
			Default: true,
		})
		if err != nil {
			return collector.ResponseRecord{}, err
		}
		if !ok {
			continue
		}

		rec, err := session.Submit(ctx, controls)
		if err != nil {
			if verr, recoverable := rules.AsValidation(err); recoverable {
				if err := r.driver.Info(ctx, verr.Error()); err != nil {
					return collector.ResponseRecord{}, err
				}
				continue
			}
			return collector.ResponseRecord{}, err
		}
		return rec, nil
	}
}

func (r *Runner) promptFields(ctx context.Context, t trial.Trial) ([]capture.Control, error) {
	var controls []capture.Control
	for _, f := range t.Fields {
		got, err := r.promptField(ctx, f)
		if err != nil {
			return nil, err
		}
		controls = append(controls, got...)
	}
	return controls, nil
}

func (r *Runner) promptField(ctx context.Context, f trial.Field) ([]capture.Control, error) {
	label := sanitizeText(trial.Label(f))

	switch f.Kind {
	case trial.FieldText:
		value, err := r.driver.Input(ctx, InputConfig{Message: label, Default: f.Value})
		if err != nil {
			return nil, err
		}
		return []capture.Control{{Name: f.Name, Kind: capture.ControlText, Value: value}}, nil

	case trial.FieldRadio:
		idx, err := r.selectOne(ctx, f.Name, label, f.Options, indexOf(f.Options, f.Value))
		if err != nil {
			return nil, err
		}
		return []capture.Control{{Name: f.Name, Kind: capture.ControlRadio, Value: f.Options[idx], Checked: true}}, nil

	case trial.FieldScale:
		idx, err := r.selectOne(ctx, f.Name, label, f.Levels, indexOf(f.Levels, f.Value))
		if err != nil {
			return nil, err
		}
		return []capture.Control{{Name: f.Name, Kind: capture.ControlRadio, Value: f.Levels[idx], Checked: true}}, nil

	case trial.FieldCheckbox:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  f.Options,
			Defaults: presetIndices(f.Options, f.Value),
			PageSize: r.pageSize,
		})
		if err != nil {
			return nil, err
		}
		var controls []capture.Control
		for _, opt := range optionValues(f.Options, indices) {
			controls = append(controls, capture.Control{Name: f.Name, Kind: capture.ControlCheckbox, Value: opt, Checked: true})
		}
		return controls, nil

	case trial.FieldSelect:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  f.Options,
			Defaults: presetIndices(f.Options, f.Value),
			PageSize: r.pageSize,
		})
		if err != nil {
			return nil, err
		}
		return []capture.Control{{Name: f.Name, Kind: capture.ControlSelect, Selected: optionValues(f.Options, indices)}}, nil

	case trial.FieldAllocation:
		value, err := r.numberInput(ctx, f.Name, label, f.Value)
		if err != nil {
			return nil, err
		}
		return []capture.Control{{Name: f.Name, Kind: capture.ControlNumber, Value: value}}, nil

	case trial.FieldRank:
		// One numeric entry per option, all under the field's name. Pair the
		// field with an allUnique rule to force a strict ordering.
		var controls []capture.Control
		for _, opt := range f.Options {
			value, err := r.numberInput(ctx, f.Name, fmt.Sprintf("%s: %s", label, sanitizeText(opt)), "")
			if err != nil {
				return nil, err
			}
			controls = append(controls, capture.Control{Name: f.Name, Kind: capture.ControlNumber, Value: value})
		}
		return controls, nil
	}

	// Begin validates kinds before any prompting, so this is unreachable for
	// sessions opened through a collector.
	return nil, fmt.Errorf("prompt: unsupported field kind %q", f.Kind)
}

// selectOne keeps asking until the driver reports an index inside the option
// range.
func (r *Runner) selectOne(ctx context.Context, name, message string, options []string, defaultIdx int) (int, error) {
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: defaultIdx,
			PageSize:     r.pageSize,
		})
		if err != nil {
			return 0, err
		}
		if idx >= 0 && idx < len(options) {
			return idx, nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: selection out of range", name)); err != nil {
			return 0, err
		}
	}
}

// numberInput accepts a number or an empty answer. Empty stays empty so the
// capture policy and requiredFilled see the blank; anything else must parse.
func (r *Runner) numberInput(ctx context.Context, name, message, defaultValue string) (string, error) {
	for {
		value, err := r.driver.Input(ctx, InputConfig{Message: message, Default: defaultValue})
		if err != nil {
			return "", err
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", nil
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: enter a number", name)); err != nil {
				return "", err
			}
			continue
		}
		return trimmed, nil
	}
}

func presetIndices(options []string, value string) []int {
	if value == "" {
		return nil
	}
	return indicesOf(options, []string{value})
}

func optionValues(options []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
