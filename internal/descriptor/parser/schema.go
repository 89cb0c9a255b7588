package parser

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
)

const schemaURL = "https://goliatone.github.io/go-trialkit/descriptor.schema.json"

//go:embed descriptor.schema.json
var schemaJSON []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles the embedded descriptor schema once per process.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("descriptor parser: add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("descriptor parser: compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// issuesFromValidation flattens the validator's cause tree into leaf issues
// carrying instance paths, so authors see every offending location instead
// of one rolled-up message.
func issuesFromValidation(err error) []pkgdescriptor.Issue {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []pkgdescriptor.Issue{{Message: err.Error()}}
	}

	var issues []pkgdescriptor.Issue
	collectLeafIssues(verr, &issues)
	if len(issues) == 0 {
		issues = append(issues, issueAt(verr.InstanceLocation, verr.Message))
	}
	return issues
}

func collectLeafIssues(verr *jsonschema.ValidationError, dest *[]pkgdescriptor.Issue) {
	if verr == nil {
		return
	}
	if len(verr.Causes) == 0 {
		*dest = append(*dest, issueAt(verr.InstanceLocation, verr.Message))
		return
	}
	for _, cause := range verr.Causes {
		collectLeafIssues(cause, dest)
	}
}

func issueAt(location, message string) pkgdescriptor.Issue {
	return pkgdescriptor.Issue{
		Path:    pointerPath(location),
		Field:   fieldFromPointer(location),
		Message: message,
	}
}

func pointerPath(location string) string {
	if location == "" {
		return ""
	}
	if strings.HasPrefix(location, "/") {
		return "#" + location
	}
	return location
}

// fieldFromPointer renders a JSON pointer as a dotted path, keeping numeric
// segments so authors can find the offending array element.
func fieldFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(pointer, "#")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segments[i] = strings.ReplaceAll(segment, "~0", "~")
	}
	return strings.Join(segments, ".")
}
