package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConvertESLintConfig_JSON(t *testing.T) {
	t.Parallel()

	content := `{
		"rules": {
			"semi": 2,
			"quotes": ["error", "single", {"avoidEscape": true}],
			"no-console": "off",
			"prefer-const": "warn"
		}
	}`
	path := writeTempConfig(t, ".eslintrc.json", content)

	result, err := ConvertESLintConfig(path)
	if err != nil {
		t.Fatalf("ConvertESLintConfig() error = %v", err)
	}

	rules := result.Config.Rules

	if cfg, ok := rules["semi"]; !ok || cfg.Enabled == nil || !*cfg.Enabled {
		t.Error("expected semi enabled")
	}
	if cfg, ok := rules["no-console"]; !ok || cfg.Enabled == nil || *cfg.Enabled {
		t.Error("expected no-console disabled")
	}
	if cfg, ok := rules["prefer-const"]; !ok || cfg.Enabled == nil || !*cfg.Enabled {
		t.Error("expected prefer-const enabled for warn severity")
	}

	quotes, ok := rules["quotes"]
	if !ok || quotes.Enabled == nil || !*quotes.Enabled {
		t.Fatal("expected quotes enabled")
	}
	if quotes.Options["option0"] != "single" {
		t.Errorf("expected positional option for scalar, got %v", quotes.Options)
	}
	if quotes.Options["avoidEscape"] != true {
		t.Errorf("expected object option merged, got %v", quotes.Options)
	}
}

func TestConvertESLintConfig_YAML(t *testing.T) {
	t.Parallel()

	content := `
rules:
  semi: error
  no-var: 0
`
	path := writeTempConfig(t, ".eslintrc.yml", content)

	result, err := ConvertESLintConfig(path)
	if err != nil {
		t.Fatalf("ConvertESLintConfig() error = %v", err)
	}

	if cfg := result.Config.Rules["semi"]; cfg.Enabled == nil || !*cfg.Enabled {
		t.Error("expected semi enabled")
	}
	if cfg := result.Config.Rules["no-var"]; cfg.Enabled == nil || *cfg.Enabled {
		t.Error("expected no-var disabled")
	}
}

func TestConvertESLintConfig_JSONC(t *testing.T) {
	t.Parallel()

	content := `{
		// enforce semicolons
		"rules": {
			"semi": 2 /* always */
		}
	}`
	path := writeTempConfig(t, ".eslintrc.json", content)

	result, err := ConvertESLintConfig(path)
	if err != nil {
		t.Fatalf("ConvertESLintConfig() error = %v", err)
	}

	if cfg := result.Config.Rules["semi"]; cfg.Enabled == nil || !*cfg.Enabled {
		t.Error("expected semi enabled from commented JSON")
	}
}

func TestConvertESLintConfig_DropsNonRuleKeys(t *testing.T) {
	t.Parallel()

	content := `{
		"extends": "eslint:recommended",
		"env": {"browser": true},
		"parserOptions": {"ecmaVersion": 2022},
		"rules": {"semi": 2}
	}`
	path := writeTempConfig(t, ".eslintrc.json", content)

	result, err := ConvertESLintConfig(path)
	if err != nil {
		t.Fatalf("ConvertESLintConfig() error = %v", err)
	}

	wantSubstrings := []string{"extends", "env", "parserOptions"}
	for _, want := range wantSubstrings {
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected warning mentioning %q, got %v", want, result.Warnings)
		}
	}
}

func TestConvertESLintConfig_PluginRuleWarns(t *testing.T) {
	t.Parallel()

	content := `{"rules": {"react/jsx-key": 2}}`
	path := writeTempConfig(t, ".eslintrc.json", content)

	result, err := ConvertESLintConfig(path)
	if err != nil {
		t.Fatalf("ConvertESLintConfig() error = %v", err)
	}

	if _, ok := result.Config.Rules["react/jsx-key"]; !ok {
		t.Error("expected plugin rule to be kept")
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "react/jsx-key") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected plugin-rule warning, got %v", result.Warnings)
	}
}

func TestConvertESLintConfig_JavaScriptRejected(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, ".eslintrc.js", "module.exports = {};")

	_, err := ConvertESLintConfig(path)
	if err == nil {
		t.Fatal("expected error for JavaScript config")
	}
	if !strings.Contains(err.Error(), "JavaScript") {
		t.Errorf("expected JavaScript error, got %v", err)
	}
}

func TestConvertESLintConfig_UnrecognizedSeverity(t *testing.T) {
	t.Parallel()

	content := `{"rules": {"semi": "sometimes"}}`
	path := writeTempConfig(t, ".eslintrc.json", content)

	result, err := ConvertESLintConfig(path)
	if err != nil {
		t.Fatalf("ConvertESLintConfig() error = %v", err)
	}

	if _, ok := result.Config.Rules["semi"]; ok {
		t.Error("expected unrecognized rule value to be skipped")
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semi") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected skip warning, got %v", result.Warnings)
	}
}

func TestStripJSONComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "line comment",
			input: "{\"a\": 1} // trailing",
			want:  "{\"a\": 1} ",
		},
		{
			name:  "block comment",
			input: "{/* before */\"a\": 1}",
			want:  "{\"a\": 1}",
		},
		{
			name:  "slashes inside string",
			input: `{"url": "https://example.com"}`,
			want:  `{"url": "https://example.com"}`,
		},
		{
			name:  "escaped quote in string",
			input: `{"a": "say \"hi\" // not a comment"}`,
			want:  `{"a": "say \"hi\" // not a comment"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := string(stripJSONComments([]byte(tt.input)))
			if got != tt.want {
				t.Errorf("stripJSONComments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanMigrate(t *testing.T) {
	t.Parallel()

	if CanMigrate(".eslintrc.js") {
		t.Error("expected .eslintrc.js to be unmigratable")
	}
	if !CanMigrate(".eslintrc.json") {
		t.Error("expected .eslintrc.json to be migratable")
	}
	if !CanMigrate(".eslintrc.yml") {
		t.Error("expected .eslintrc.yml to be migratable")
	}
}

func TestDetectConfigFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{".eslintrc.json", "json"},
		{".eslintrc.yaml", "yaml"},
		{"eslint.config.mjs", "javascript"},
		{".eslintrc", "unknown"},
	}

	for _, tt := range tests {
		if got := DetectConfigFormat(tt.path); got != tt.want {
			t.Errorf("DetectConfigFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
