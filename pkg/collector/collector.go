package collector

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-trialkit/pkg/rules"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Option customises the collector configuration.
type Option func(*Collector)

// WithClock injects a custom clock. Tests use this to make response times
// deterministic.
func WithClock(clock Clock) Option {
	return func(c *Collector) {
		c.clock = clock
	}
}

// WithRuleRegistry injects the evaluator registry used to resolve rule
// kinds. Defaults to rules.DefaultRegistry.
func WithRuleRegistry(registry *rules.Registry) Option {
	return func(c *Collector) {
		c.registry = registry
	}
}

// WithRecorder injects the outbound boundary completed records are emitted
// to. Without one, records are only returned to the caller.
func WithRecorder(recorder Recorder) Option {
	return func(c *Collector) {
		c.recorder = recorder
	}
}

// WithLogger injects a structured logger. Defaults to a nop logger so the
// library stays silent unless asked.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithBypass disables rule enforcement for every session the collector
// opens. The flag exists for dry runs and harness smoke tests; it is
// explicit configuration rather than ambient state so callers can see
// exactly which collectors skip validation.
func WithBypass(bypass bool) Option {
	return func(c *Collector) {
		c.bypass = bypass
	}
}

// Collector opens response-collection sessions. The zero configuration is
// ready to use: wall clock, built-in rule evaluators, no recorder, silent
// logger.
type Collector struct {
	clock    Clock
	registry *rules.Registry
	recorder Recorder
	logger   *zap.Logger
	bypass   bool
}

// New constructs a Collector applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyDefaults()
	return c
}

func (c *Collector) applyDefaults() {
	if c.clock == nil {
		c.clock = wallClock{}
	}
	if c.registry == nil {
		c.registry = rules.DefaultRegistry()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
}

// Bypass reports whether rule enforcement is disabled.
func (c *Collector) Bypass() bool { return c.bypass }

// Begin validates the descriptor and opens a session for it. Configuration
// problems are fatal here so they can never interrupt a live trial: the
// descriptor must pass structural validation and every declared rule kind
// must resolve against the evaluator registry.
func (c *Collector) Begin(t trial.Trial) (*Session, error) {
	norm := t.Normalized()
	if err := norm.Validate(); err != nil {
		return nil, err
	}
	for _, r := range norm.Rules {
		if !c.registry.Has(r.Kind) {
			return nil, &trial.ConfigurationError{Subject: r.Kind, Reason: "no evaluator registered for rule kind"}
		}
	}
	norm.Rules = withImplicitRequired(norm)

	return newSession(c, norm), nil
}

// withImplicitRequired appends a requiredFilled rule when the descriptor
// marks fields required without declaring one. Declared rules keep their
// order; the implicit rule runs last.
func withImplicitRequired(t trial.Trial) []trial.Rule {
	for _, r := range t.Rules {
		if r.Kind == trial.RuleRequiredFilled {
			return t.Rules
		}
	}
	for _, f := range t.Fields {
		if f.Required {
			out := make([]trial.Rule, len(t.Rules), len(t.Rules)+1)
			copy(out, t.Rules)
			return append(out, trial.Rule{Kind: trial.RuleRequiredFilled})
		}
	}
	return t.Rules
}
