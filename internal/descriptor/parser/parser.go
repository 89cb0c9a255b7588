package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
	"github.com/goliatone/go-trialkit/pkg/trial"
)

// Parser validates descriptor documents against the embedded schema and
// decodes them into trial descriptors. YAML and JSON payloads are both
// accepted; the sniff is on the first non-blank byte.
type Parser struct {
	opts pkgdescriptor.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgdescriptor.Parser = (*Parser)(nil)

// New constructs a Parser from pre-resolved options.
func New(options pkgdescriptor.ParserOptions) pkgdescriptor.Parser {
	return &Parser{opts: options}
}

// Parse decodes one descriptor document. Structural problems are reported
// as *descriptor.InvalidDocumentError with instance paths; only documents
// that pass the schema reach the decoder.
func (p *Parser) Parse(ctx context.Context, doc pkgdescriptor.Document) (trial.Trial, error) {
	if err := ctx.Err(); err != nil {
		return trial.Trial{}, err
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return trial.Trial{}, errors.New("descriptor parser: document is empty")
	}

	if !p.opts.SkipSchemaValidation {
		if err := validateDocument(doc, raw); err != nil {
			return trial.Trial{}, err
		}
	}

	var t trial.Trial
	if looksLikeJSON(raw) {
		if err := json.Unmarshal(raw, &t); err != nil {
			return trial.Trial{}, fmt.Errorf("descriptor parser: decode json: %w", err)
		}
		return t, nil
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return trial.Trial{}, fmt.Errorf("descriptor parser: decode yaml: %w", err)
	}
	return t, nil
}

func validateDocument(doc pkgdescriptor.Document, raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	value, err := decodeValue(raw)
	if err != nil {
		return &pkgdescriptor.InvalidDocumentError{
			Location: doc.Location(),
			Issues:   []pkgdescriptor.Issue{{Message: err.Error()}},
		}
	}

	if err := schema.Validate(value); err != nil {
		return &pkgdescriptor.InvalidDocumentError{
			Location: doc.Location(),
			Issues:   issuesFromValidation(err),
		}
	}
	return nil
}

// decodeValue produces the plain value tree the schema validator consumes.
func decodeValue(raw []byte) (any, error) {
	var value any
	if looksLikeJSON(raw) {
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("invalid json: %v", err)
		}
		return value, nil
	}
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid yaml: %v", err)
	}
	return value, nil
}

func looksLikeJSON(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
