// Package descriptor exposes the public contracts for loading and parsing
// trial descriptor documents (YAML or JSON). Implementations live under
// internal/descriptor to keep decoding and schema-validation dependencies
// hidden from consumers; construction helpers sit in the top-level trialkit
// package to prevent import cycles.
package descriptor
