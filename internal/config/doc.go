// Package config provides YAML-based configuration management for the
// comparego engine and CLI, with validation.
//
// The configuration is one flat set of fields: match_threshold,
// max_file_size_bytes, per_file_parse_timeout_ms,
// per_pair_kernel_timeout_ms, comparison_total_timeout_ms, worker_threads,
// exclude_globs, language_overrides and output_format. Command-line flags
// are applied on top of the loaded values by the CLI.
//
// Load uses the following discovery order:
//  1. File specified by --config flag
//  2. .comparego.yaml, then .comparego.yml (current directory)
//  3. Built-in defaults
//
// A COMPAREGO_-prefixed environment variable (e.g.
// COMPAREGO_MATCH_THRESHOLD) overrides the matching field.
//
// Example Configuration:
//
//	match_threshold: 0.5
//	worker_threads: 0
//	exclude_globs:
//	  - "*_test.go"
//	  - "vendor/**"
//	output_format: json
//
// Validate reports the first out-of-range or unknown value as an error.
package config
