package descriptor

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Parser decodes descriptor documents into trial descriptors. Documents are
// validated against the embedded descriptor schema before decoding so shape
// problems surface with paths instead of decoder noise.
type Parser interface {
	Parse(ctx context.Context, doc Document) (trial.Trial, error)
}

// ParserOptions exposes parsing toggles.
type ParserOptions struct {
	// SkipSchemaValidation bypasses the structural schema check for callers
	// that already validated the document. Decoding errors then surface
	// directly.
	SkipSchemaValidation bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithSkipSchemaValidation disables the structural schema check.
func WithSkipSchemaValidation() ParserOption {
	return func(opts *ParserOptions) {
		opts.SkipSchemaValidation = true
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/descriptor call this helper
// to remain consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Issue represents one structural problem with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// InvalidDocumentError reports a descriptor document that failed structural
// validation. It is a configuration problem by contract: the trial never
// starts.
type InvalidDocumentError struct {
	Location string
	Issues   []Issue
}

func (e *InvalidDocumentError) Error() string {
	where := e.Location
	if where == "" {
		where = "descriptor document"
	}
	switch len(e.Issues) {
	case 0:
		return fmt.Sprintf("descriptor: %s is not a valid trial descriptor", where)
	case 1:
		return fmt.Sprintf("descriptor: %s: %s", where, e.Issues[0].describe())
	default:
		parts := make([]string, len(e.Issues))
		for i, issue := range e.Issues {
			parts[i] = issue.describe()
		}
		return fmt.Sprintf("descriptor: %s: %d issues: %s", where, len(e.Issues), strings.Join(parts, "; "))
	}
}

func (i Issue) describe() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s at %s", i.Message, i.Path)
}

// Construction helpers live in the top-level trialkit package to prevent import cycles.
