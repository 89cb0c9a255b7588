package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgcollector "github.com/goliatone/go-trialkit/pkg/collector"
	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
	pkgtrial "github.com/goliatone/go-trialkit/pkg/trial"
)

// LoadDocument reads a fixture and builds a descriptor.Document with a file
// source. Testing helpers fail the test on error to keep contract tests
// concise.
func LoadDocument(t *testing.T, path string) pkgdescriptor.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T so
// callers can wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgdescriptor.Document, error) {
	if path == "" {
		return pkgdescriptor.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgdescriptor.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgdescriptor.NewDocument(pkgdescriptor.SourceFromFile(path), data)
	if err != nil {
		return pkgdescriptor.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadTrial loads a JSON golden file into a trial descriptor.
func MustLoadTrial(t *testing.T, path string) pkgtrial.Trial {
	t.Helper()

	descriptor, err := LoadTrial(path)
	if err != nil {
		t.Fatalf("load trial: %v", err)
	}
	return descriptor
}

// LoadTrial reads a JSON fixture into a trial descriptor, returning an error
// for callers managing setup outside of *testing.T.
func LoadTrial(path string) (pkgtrial.Trial, error) {
	if path == "" {
		return pkgtrial.Trial{}, errors.New("testsupport: trial path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgtrial.Trial{}, fmt.Errorf("testsupport: read trial: %w", err)
	}
	var out pkgtrial.Trial
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgtrial.Trial{}, fmt.Errorf("testsupport: unmarshal trial: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// RecordSink is an in-memory Recorder. Tests use it to observe the records a
// collector emits without standing up real storage.
type RecordSink struct {
	mu      sync.Mutex
	records []pkgcollector.ResponseRecord
}

// Record appends the record to the sink.
func (s *RecordSink) Record(_ context.Context, rec pkgcollector.ResponseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (s *RecordSink) Records() []pkgcollector.ResponseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]pkgcollector.ResponseRecord, len(s.records))
	copy(out, s.records)
	return out
}
