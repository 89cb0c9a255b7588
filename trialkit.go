package trialkit

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-trialkit/internal/descriptor/loader"
	internalParser "github.com/goliatone/go-trialkit/internal/descriptor/parser"
	"github.com/goliatone/go-trialkit/pkg/capture"
	pkgcollector "github.com/goliatone/go-trialkit/pkg/collector"
	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
	"github.com/goliatone/go-trialkit/pkg/prompt"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Trial is the immutable descriptor for one trial; aliased at the root for
// convenience.
type Trial = trial.Trial

// Field models one question inside a trial.
type Field = trial.Field

// Rule represents one validation constraint evaluated at submission.
type Rule = trial.Rule

// ResponseRecord is the artifact a completed session produces.
type ResponseRecord = pkgcollector.ResponseRecord

// Source identifies where a descriptor document lives.
type Source = pkgdescriptor.Source

// Document is a loaded descriptor payload with provenance.
type Document = pkgdescriptor.Document

// NewCollector exposes the collector constructor from the top-level module.
func NewCollector(options ...pkgcollector.Option) *pkgcollector.Collector {
	return pkgcollector.New(options...)
}

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithLoader injects a custom descriptor loader.
func WithLoader(loader pkgdescriptor.Loader) Option {
	return func(p *Pipeline) {
		p.loader = loader
	}
}

// WithParser injects a custom descriptor parser.
func WithParser(parser pkgdescriptor.Parser) Option {
	return func(p *Pipeline) {
		p.parser = parser
	}
}

// WithRunner injects the prompt runner that conducts trials. Configure the
// runner to pick the driver, collector, recorder, or bypass behaviour.
func WithRunner(runner *prompt.Runner) Option {
	return func(p *Pipeline) {
		p.runner = runner
	}
}

// Pipeline coordinates the full flow from descriptor source to response
// record. It applies sensible defaults (file loading, schema-validated
// parsing, survey prompting) while remaining open to dependency injection.
type Pipeline struct {
	loader pkgdescriptor.Loader
	parser pkgdescriptor.Parser
	runner *prompt.Runner
}

// New constructs a Pipeline applying any provided options. Missing stages are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
func New(options ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Pipeline) applyDefaults() {
	if p.loader == nil {
		p.loader = internalLoader.New(pkgdescriptor.NewLoaderOptions())
	}
	if p.parser == nil {
		p.parser = internalParser.New(pkgdescriptor.NewParserOptions())
	}
	if p.runner == nil {
		p.runner = prompt.NewRunner()
	}
}

// Request describes the inputs required to conduct a trial. Exactly one of
// Source, Document, or Descriptor must be set; later stages of the pipeline
// are skipped for inputs that already passed them.
type Request struct {
	// Source identifies where the descriptor document lives. Optional when
	// Document or Descriptor is supplied.
	Source pkgdescriptor.Source

	// Document bypasses the loader when the payload is already fetched.
	Document *pkgdescriptor.Document

	// Descriptor bypasses both loader and parser.
	Descriptor *trial.Trial
}

// Run executes the loader, parser, and prompt runner in sequence and returns
// the completed response record.
func (p *Pipeline) Run(ctx context.Context, req Request) (ResponseRecord, error) {
	if ctx == nil {
		return ResponseRecord{}, errors.New("trialkit: context is required")
	}
	if err := ctx.Err(); err != nil {
		return ResponseRecord{}, err
	}

	descriptor, err := p.resolveDescriptor(ctx, req)
	if err != nil {
		return ResponseRecord{}, err
	}
	return p.runner.Run(ctx, descriptor)
}

func (p *Pipeline) resolveDescriptor(ctx context.Context, req Request) (trial.Trial, error) {
	if req.Descriptor != nil {
		return *req.Descriptor, nil
	}

	doc, err := p.resolveDocument(ctx, req)
	if err != nil {
		return trial.Trial{}, err
	}
	descriptor, err := p.parser.Parse(ctx, doc)
	if err != nil {
		return trial.Trial{}, fmt.Errorf("trialkit: parse descriptor: %w", err)
	}
	return descriptor, nil
}

func (p *Pipeline) resolveDocument(ctx context.Context, req Request) (pkgdescriptor.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgdescriptor.Document{}, errors.New("trialkit: source, document, or descriptor is required")
	}
	doc, err := p.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgdescriptor.Document{}, fmt.Errorf("trialkit: load document: %w", err)
	}
	return doc, nil
}

// RunTrial loads the descriptor source, parses it, and conducts the trial in
// the terminal. It is the simplest entry point for callers that just want a
// completed record.
func RunTrial(ctx context.Context, source pkgdescriptor.Source, options ...Option) (ResponseRecord, error) {
	p := New(options...)
	return p.Run(ctx, Request{Source: source})
}

// RunTrialFromDocument conducts a trial from a pre-loaded document, bypassing
// the loader stage while still delegating to the pipeline.
func RunTrialFromDocument(ctx context.Context, doc pkgdescriptor.Document, options ...Option) (ResponseRecord, error) {
	p := New(options...)
	return p.Run(ctx, Request{Document: &doc})
}

// Collect runs one programmatic submission against a descriptor: validate,
// snapshot, evaluate, record. Callers that assemble the control surface
// themselves use this instead of conducting an interactive trial.
func Collect(ctx context.Context, t Trial, controls []capture.Control, options ...pkgcollector.Option) (ResponseRecord, error) {
	return pkgcollector.New(options...).Collect(ctx, t, controls)
}
