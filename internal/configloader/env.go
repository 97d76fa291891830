package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/esfix/pkg/config"
)

// envVarPrefix is the prefix for all esfix environment variables.
const envVarPrefix = "ESFIX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LOG_LEVEL":       {field: "log_level", typ: envTypeString},
	"FORMAT":          {field: "format", typ: envTypeString},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool},
	"WAVE_SIZE":       {field: "batch.wave_size", typ: envTypeInt},
	"RELINT_TIMEOUT":  {field: "batch.relint_timeout_seconds", typ: envTypeInt},
	"SEMANTIC_CHECKS": {field: "batch.semantic_checks", typ: envTypeBool},
	"RELINT_COMMAND":  {field: "relint.command", typ: envTypeString},
	"RELINT_ARGS":     {field: "relint.args", typ: envTypeSlice},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with ESFIX_ (e.g., ESFIX_WAVE_SIZE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "relint.command":
		cfg.Relint.Command = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "dry_run":
		cfg.DryRun = value
	case "batch.semantic_checks":
		cfg.Batch.SemanticChecks = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "batch.wave_size":
		cfg.Batch.WaveSize = value
	case "batch.relint_timeout_seconds":
		cfg.Batch.RelintTimeoutSeconds = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "relint.args":
		cfg.Relint.Args = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"ESFIX_LOG_LEVEL":       "Logging verbosity: debug, info, warn, or error",
		"ESFIX_FORMAT":          "Output format: text, json, sarif, diff, or summary",
		"ESFIX_DRY_RUN":         "Dry-run mode: true or false",
		"ESFIX_WAVE_SIZE":       "Applied fixes between re-lint queries (0 disables)",
		"ESFIX_RELINT_TIMEOUT":  "Re-lint timeout in seconds",
		"ESFIX_SEMANTIC_CHECKS": "Enable semantic validation: true or false",
		"ESFIX_RELINT_COMMAND":  "External linter command for re-lint waves",
		"ESFIX_RELINT_ARGS":     "Comma-separated arguments for the re-lint command",
		"ESFIX_BACKUPS_ENABLED": "Enable backups when fixing: true or false",
	}
}
