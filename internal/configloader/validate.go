package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/esfix/pkg/config"
	"github.com/yaklabco/esfix/pkg/fix"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.semi.options").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownLogLevels lists valid log level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	// Validate log_level
	if cfg.LogLevel != "" && !knownLogLevels[cfg.LogLevel] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	// Validate format
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, diff, summary", cfg.Format),
		})
	}

	// Validate batch settings
	if cfg.Batch.WaveSize < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "batch.wave_size",
			Value:   cfg.Batch.WaveSize,
			Message: "wave_size must be >= 0 (0 disables mid-batch re-linting)",
		})
	}
	if cfg.Batch.RelintTimeoutSeconds < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "batch.relint_timeout_seconds",
			Value:   cfg.Batch.RelintTimeoutSeconds,
			Message: "relint_timeout_seconds must be >= 0",
		})
	}

	// Relint args without a command are inert
	if cfg.Relint.Command == "" && len(cfg.Relint.Args) > 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "relint.args",
			Value:   cfg.Relint.Args,
			Message: "relint.args set without relint.command; they will be ignored",
		})
	}

	// Validate rules
	validateRules(cfg, result)

	return result
}

// validateRules checks rule configurations for errors and warnings.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := fix.DefaultRegistry

	for ruleID, ruleCfg := range cfg.Rules {
		// Check if rule has a registered fixer
		if _, exists := registry.Get(ruleID); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + ruleID,
				Value:   ruleID,
				Message: fmt.Sprintf("no fixer registered for rule %q; its configuration will be ignored", ruleID),
			})
		}

		// Options with a disabled rule are inert
		if ruleCfg.Enabled != nil && !*ruleCfg.Enabled && len(ruleCfg.Options) > 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + ruleID + ".options",
				Value:   ruleID,
				Message: fmt.Sprintf("options set for disabled rule %q", ruleID),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidLogLevel returns true if the log level string is valid.
func IsValidLogLevel(s string) bool {
	return knownLogLevels[s]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
