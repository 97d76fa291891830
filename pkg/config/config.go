// Package config defines core configuration types for esfix.
// These types are pure data structures with no dependencies on the engine.
package config

import (
	"fmt"
	"time"
)

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	// Enabled toggles the fixer for this rule. Nil means keep the
	// registry default. A disabled rule stays registered so it still
	// appears in introspection output.
	Enabled *bool `yaml:"enabled"`

	// Options contains rule-specific options.
	Options map[string]any `yaml:"options"`
}

// BatchConfig controls batch processing behavior.
type BatchConfig struct {
	// WaveSize is the number of applied fixes between re-lint queries.
	// Zero disables mid-batch re-linting.
	WaveSize int `yaml:"wave_size"`

	// RelintTimeoutSeconds bounds one re-lint call. On timeout the batch
	// continues with the stale diagnostic list.
	RelintTimeoutSeconds int `yaml:"relint_timeout_seconds"`

	// SemanticChecks toggles the structural-signal comparison after each
	// fix. Failures are recorded as warnings either way.
	SemanticChecks bool `yaml:"semantic_checks"`
}

// RelintTimeout returns the configured timeout as a duration.
func (b BatchConfig) RelintTimeout() time.Duration {
	return time.Duration(b.RelintTimeoutSeconds) * time.Second
}

// RelintConfig describes the external linter command used to refresh
// diagnostics between waves. Empty Command disables re-linting.
type RelintConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// BackupsConfig controls backup behavior when rewriting files in place.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputFormat specifies the output format for batch reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for esfix.
type Config struct {
	// LogLevel sets the logging verbosity ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// Batch controls batch processing.
	Batch BatchConfig `yaml:"batch"`

	// Relint configures the external linter used between waves.
	Relint RelintConfig `yaml:"relint"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Backups configures backup behavior when fixing files.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun reports what would be fixed without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Batch: BatchConfig{
			WaveSize:             10,
			RelintTimeoutSeconds: 10,
			SemanticChecks:       true,
		},
		Rules:   make(map[string]RuleConfig),
		Backups: BackupsConfig{Enabled: true},
		Format:  FormatText,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Batch.WaveSize < 0 {
		return fmt.Errorf("batch.wave_size must not be negative, got %d", c.Batch.WaveSize)
	}
	if c.Batch.RelintTimeoutSeconds < 0 {
		return fmt.Errorf("batch.relint_timeout_seconds must not be negative, got %d",
			c.Batch.RelintTimeoutSeconds)
	}
	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}

// RuleEnabled returns the configured enablement for a rule, or the given
// default when the rule has no explicit configuration.
func (c *Config) RuleEnabled(ruleID string, def bool) bool {
	if c == nil {
		return def
	}
	rc, ok := c.Rules[ruleID]
	if !ok || rc.Enabled == nil {
		return def
	}
	return *rc.Enabled
}
