package trialkit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	trialkit "github.com/goliatone/go-trialkit"
	"github.com/goliatone/go-trialkit/pkg/capture"
	"github.com/goliatone/go-trialkit/pkg/collector"
	"github.com/goliatone/go-trialkit/pkg/descriptor"
	"github.com/goliatone/go-trialkit/pkg/prompt"
	"github.com/goliatone/go-trialkit/pkg/testsupport"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

type scriptDriver struct {
	inputs     []string
	confirms   []bool
	messages   []string
	inputPos   int
	confirmPos int
}

func (s *scriptDriver) Input(_ context.Context, _ prompt.InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *scriptDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *scriptDriver) Select(_ context.Context, _ prompt.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (s *scriptDriver) MultiSelect(_ context.Context, _ prompt.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (s *scriptDriver) Info(_ context.Context, msg string) error {
	s.messages = append(s.messages, msg)
	return nil
}

const allocationYAML = `preamble: Distribute 10 points
fields:
  - name: points_left
    kind: allocation
    required: true
  - name: points_right
    kind: allocation
    required: true
rules:
  - kind: sumEquals
    params:
      group: points
      target: "10"
`

func scriptedPipeline(driver *scriptDriver, sink *testsupport.RecordSink, fsys fstest.MapFS) *trialkit.Pipeline {
	runner := prompt.NewRunner(
		prompt.WithDriver(driver),
		prompt.WithCollector(collector.New(collector.WithRecorder(sink))),
	)
	return trialkit.New(
		trialkit.WithLoader(trialkit.NewLoader(descriptor.WithFileSystem(fsys))),
		trialkit.WithRunner(runner),
	)
}

func TestPipelineRun_FSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"trials/allocation.yaml": &fstest.MapFile{Data: []byte(allocationYAML)},
	}
	driver := &scriptDriver{
		inputs:   []string{"4", "6"},
		confirms: []bool{true},
	}
	sink := &testsupport.RecordSink{}
	pipeline := scriptedPipeline(driver, sink, fsys)

	rec, err := pipeline.Run(testsupport.Context(), trialkit.Request{
		Source: descriptor.SourceFromFS("trials/allocation.yaml"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]string{"points_left": "4", "points_right": "6"}
	if diff := cmp.Diff(want, rec.Responses); diff != "" {
		t.Fatalf("responses mismatch (-want +got):\n%s", diff)
	}
	if len(driver.messages) == 0 || driver.messages[0] != "Distribute 10 points" {
		t.Fatalf("expected preamble first, got %q", driver.messages)
	}

	recorded := sink.Records()
	if len(recorded) != 1 {
		t.Fatalf("expected one recorded response, got %d", len(recorded))
	}
	if recorded[0].SessionID != rec.SessionID {
		t.Fatalf("recorded session mismatch: %q vs %q", recorded[0].SessionID, rec.SessionID)
	}
}

func TestPipelineRun_RejectsUntilSumMatches(t *testing.T) {
	fsys := fstest.MapFS{
		"trials/allocation.yaml": &fstest.MapFile{Data: []byte(allocationYAML)},
	}
	driver := &scriptDriver{
		inputs:   []string{"4", "4", "4", "6"},
		confirms: []bool{true, true},
	}
	sink := &testsupport.RecordSink{}
	pipeline := scriptedPipeline(driver, sink, fsys)

	rec, err := pipeline.Run(testsupport.Context(), trialkit.Request{
		Source: descriptor.SourceFromFS("trials/allocation.yaml"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if rec.Attempts != 2 {
		t.Fatalf("attempts mismatch: got %d", rec.Attempts)
	}
	if len(sink.Records()) != 1 {
		t.Fatalf("rejected submissions must not reach the recorder")
	}
}

func TestRunTrialFromDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trial.json")
	payload := []byte(`{"fields": [{"name": "nickname", "kind": "text"}]}`)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc := testsupport.LoadDocument(t, path)
	driver := &scriptDriver{
		inputs:   []string{"zed"},
		confirms: []bool{true},
	}
	runner := prompt.NewRunner(prompt.WithDriver(driver))

	rec, err := trialkit.RunTrialFromDocument(testsupport.Context(), doc, trialkit.WithRunner(runner))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if rec.Responses["nickname"] != "zed" {
		t.Fatalf("response mismatch: got %q", rec.Responses["nickname"])
	}
	if rec.TrialType != trial.DefaultType {
		t.Fatalf("expected default trial type, got %q", rec.TrialType)
	}
}

func TestPipelineRun_DescriptorBypassesParsing(t *testing.T) {
	driver := &scriptDriver{
		inputs:   []string{"fine"},
		confirms: []bool{true},
	}
	runner := prompt.NewRunner(prompt.WithDriver(driver))
	pipeline := trialkit.New(trialkit.WithRunner(runner))

	descriptorTrial := trialkit.Trial{
		Fields: []trialkit.Field{{Name: "status", Kind: trial.FieldText}},
	}

	rec, err := pipeline.Run(testsupport.Context(), trialkit.Request{Descriptor: &descriptorTrial})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Responses["status"] != "fine" {
		t.Fatalf("response mismatch: got %q", rec.Responses["status"])
	}
}

func TestPipelineRun_InvalidDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.yaml": &fstest.MapFile{Data: []byte("fields:\n  - kind: text\n")},
	}
	pipeline := scriptedPipeline(&scriptDriver{}, &testsupport.RecordSink{}, fsys)

	_, err := pipeline.Run(testsupport.Context(), trialkit.Request{
		Source: descriptor.SourceFromFS("broken.yaml"),
	})

	var docErr *descriptor.InvalidDocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("expected invalid document error, got %v", err)
	}
}

func TestPipelineRun_RequiresAnInput(t *testing.T) {
	pipeline := trialkit.New(trialkit.WithRunner(prompt.NewRunner(prompt.WithDriver(&scriptDriver{}))))

	_, err := pipeline.Run(testsupport.Context(), trialkit.Request{})
	if err == nil {
		t.Fatalf("expected error for empty request")
	}
}

func TestParsedFixtureMatchesGolden(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("examples", "fixtures", "allocation.yaml"))

	got, err := trialkit.NewParser().Parse(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	goldenPath := filepath.Join("testdata", "allocation_trial.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)

	want := testsupport.MustLoadTrial(t, goldenPath)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("parsed trial mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect(t *testing.T) {
	descriptorTrial := trialkit.Trial{
		Fields: []trialkit.Field{{Name: "points", Kind: trial.FieldAllocation}},
		Rules: []trialkit.Rule{
			{Kind: trial.RuleSumEquals, Params: map[string]string{"group": "points", "target": "10"}},
		},
	}
	controls := []capture.Control{{Name: "points", Kind: capture.ControlNumber, Value: "10"}}

	rec, err := trialkit.Collect(testsupport.Context(), descriptorTrial, controls)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if rec.Responses["points"] != "10" {
		t.Fatalf("response mismatch: got %q", rec.Responses["points"])
	}
}
