// Package config loads YAML configuration for hosts wiring the semantic
// cache: cache tuning, embedding provider selection, an optional Qdrant
// index, and telemetry.
//
// ${VAR} references in the file are expanded from the environment before
// parsing and fail loudly when a variable is missing, so secrets like API
// keys never silently resolve to empty strings.
package config
