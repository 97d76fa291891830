package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/esfix/pkg/config"
)

// MigrationResult contains the result of converting an ESLint config.
type MigrationResult struct {
	// Config is the converted esfix configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original ESLint config.
	SourcePath string
}

// ConvertESLintConfig converts an ESLint config file to esfix format.
// Only the rules section carries over; esfix consumes diagnostics rather
// than producing them, so parser and environment settings are dropped.
// Returns the converted config, any warnings, and an error if conversion failed.
func ConvertESLintConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: path,
	}

	// Check for JavaScript config files
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create an esfix config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// Parse as generic map first
	var raw map[string]any
	if IsJSONConfig(path) {
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	cfg := config.NewConfig()

	// Handle top-level keys that do not carry over
	processSpecialKeys(raw, result)

	// Convert the rules section
	if rules, ok := raw["rules"].(map[string]any); ok {
		for ruleID, value := range rules {
			processRuleEntry(cfg, ruleID, value, result)
		}
	}

	result.Config = cfg
	return result, nil
}

// parseJSONC parses JSON with comments (JSONC format).
// It strips comments before parsing.
func parseJSONC(content []byte, target any) error {
	// Simple approach: try parsing as JSON first
	// JSON with comments will fail, but many .jsonc files are valid JSON
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	// Strip comments and try again
	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++ // skip the closing /
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			next := content[idx+1]
			if next == '/' {
				inSingleComment = true
				idx++
				continue
			}
			if next == '*' {
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// processSpecialKeys notes ESLint top-level keys that have no esfix equivalent.
func processSpecialKeys(raw map[string]any, result *MigrationResult) {
	if extends, ok := raw["extends"]; ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'extends: %v' is not resolved; rules inherited from shared configs are not converted", extends))
	}

	for _, key := range []string{"env", "parser", "parserOptions", "plugins", "globals", "overrides", "settings"} {
		if _, ok := raw[key]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%q has no esfix equivalent; skipping", key))
		}
	}
}

// processRuleEntry converts a single ESLint rule entry.
func processRuleEntry(cfg *config.Config, ruleID string, value any, result *MigrationResult) {
	if strings.Contains(ruleID, "/") {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("plugin rule %q is kept as-is; it will only match if a fixer is registered under that ID", ruleID))
	}

	ruleCfg, ok := convertRuleValue(value)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unrecognized value for rule %q; skipping", ruleID))
		return
	}

	cfg.Rules[ruleID] = ruleCfg
}

// convertRuleValue converts an ESLint severity value to a RuleConfig.
// Accepted forms are a bare severity (0/1/2 or "off"/"warn"/"error")
// or an array whose first element is the severity and whose remaining
// elements are rule options.
func convertRuleValue(value any) (config.RuleConfig, bool) {
	cfg := config.RuleConfig{}

	switch typedVal := value.(type) {
	case []any:
		if len(typedVal) == 0 {
			return cfg, false
		}
		enabled, ok := severityEnabled(typedVal[0])
		if !ok {
			return cfg, false
		}
		cfg.Enabled = &enabled
		if enabled && len(typedVal) > 1 {
			cfg.Options = convertRuleOptions(typedVal[1:])
		}
		return cfg, true
	default:
		enabled, ok := severityEnabled(value)
		if !ok {
			return cfg, false
		}
		cfg.Enabled = &enabled
		return cfg, true
	}
}

// severityEnabled maps an ESLint severity value to an enabled flag.
// 0 and "off" disable a rule; 1, 2, "warn", and "error" enable it.
func severityEnabled(value any) (bool, bool) {
	switch v := value.(type) {
	case string:
		switch v {
		case "off":
			return false, true
		case "warn", "error":
			return true, true
		}
		return false, false
	case int:
		if v >= 0 && v <= 2 {
			return v > 0, true
		}
		return false, false
	case float64:
		// JSON numbers decode as float64
		if v == 0 || v == 1 || v == 2 {
			return v > 0, true
		}
		return false, false
	default:
		return false, false
	}
}

// convertRuleOptions flattens ESLint rule options into an options map.
// Object options merge into the map directly; scalar options land under
// positional keys so nothing is silently dropped.
func convertRuleOptions(opts []any) map[string]any {
	result := make(map[string]any)
	for i, opt := range opts {
		if obj, ok := opt.(map[string]any); ok {
			for key, val := range obj {
				result[key] = val
			}
			continue
		}
		result[fmt.Sprintf("option%d", i)] = opt
	}
	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# esfix configuration
# Migrated from: %s
# See: https://github.com/yaklabco/esfix
`, filepath.Base(sourcePath))
}

// CanMigrate returns true if the config file can be migrated.
// JavaScript config files cannot be migrated.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// GetMigrationWarning returns a warning message for files that cannot be migrated.
func GetMigrationWarning(path string) string {
	if IsJavaScriptConfig(path) {
		ext := filepath.Ext(path)
		return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
			"please create a .esfix.yml file manually or run 'esfix init'", ext)
	}
	return ""
}

// DetectConfigFormat determines the format of a config file.
func DetectConfigFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".jsonc":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".js", ".cjs", ".mjs":
		return "javascript"
	default:
		return "unknown"
	}
}
