// Package trial defines the immutable descriptor types for form- and
// scale-based data-collection trials: fields, validation rules, and the
// serialization mode for produced records. Descriptors are declarative and
// never mutated by collectors; Validate reports configuration problems at
// setup so they cannot surface mid-trial. Parsing of descriptor documents
// lives under internal/descriptor and returns the types defined here.
package trial
