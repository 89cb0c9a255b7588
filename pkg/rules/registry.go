package rules

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores evaluators by rule kind, providing discovery and
// duplication safeguards. Collectors resolve every rule a descriptor
// declares against a registry before a session begins.
type Registry struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		evaluators: make(map[string]Evaluator),
	}
}

// DefaultRegistry returns a registry with the built-in evaluators
// pre-registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(SumEquals())
	r.MustRegister(AllUnique())
	r.MustRegister(RequiredFilled())
	return r
}

// Register adds an evaluator by its Kind(). Duplicate kinds return an error.
func (r *Registry) Register(ev Evaluator) error {
	if ev == nil {
		return fmt.Errorf("rules: evaluator is required")
	}
	kind := ev.Kind()
	if kind == "" {
		return fmt.Errorf("rules: evaluator kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluators[kind]; exists {
		return fmt.Errorf("rules: evaluator %q already registered", kind)
	}

	r.evaluators[kind] = ev
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(ev Evaluator) {
	if err := r.Register(ev); err != nil {
		panic(err)
	}
}

// Get retrieves an evaluator by kind.
func (r *Registry) Get(kind string) (Evaluator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.evaluators[kind]
	if !ok {
		return nil, fmt.Errorf("rules: evaluator %q not found", kind)
	}
	return ev, nil
}

// MustGet panics if the evaluator is missing.
func (r *Registry) MustGet(kind string) Evaluator {
	ev, err := r.Get(kind)
	if err != nil {
		panic(err)
	}
	return ev
}

// List returns a sorted list of registered kinds.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.evaluators))
	for kind := range r.evaluators {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Has reports whether an evaluator is registered for kind.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.evaluators[kind]
	return ok
}
