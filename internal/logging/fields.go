// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldCount      = "count"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldDryRun  = "dry_run"
	FieldBackup  = "backup"
	FieldFormat  = "format"
	FieldCommand = "command"

	// Batch processing fields.
	FieldPhase      = "phase"
	FieldWave       = "wave"
	FieldStrategy   = "strategy"
	FieldApplied    = "applied"
	FieldFailed     = "failed"
	FieldRemaining  = "remaining"
	FieldDurationMS = "duration_ms"

	// Diagnostic fields.
	FieldRule     = "rule"
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldSeverity = "severity"
	FieldKind     = "kind"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Fixer fields.
	FieldName        = "name"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
