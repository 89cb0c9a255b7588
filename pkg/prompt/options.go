package prompt

import "github.com/goliatone/go-trialkit/pkg/collector"

// Option configures a Runner.
type Option func(*Runner)

// WithDriver overrides the prompt driver used to talk to the participant.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithCollector overrides the collector sessions are opened against. Use this
// to share clocks, recorders, or rule registries with the rest of the
// program.
func WithCollector(c *collector.Collector) Option {
	return func(r *Runner) {
		if c != nil {
			r.collector = c
		}
	}
}

// WithPageSize caps how many choices select prompts show at once.
func WithPageSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.pageSize = size
		}
	}
}
