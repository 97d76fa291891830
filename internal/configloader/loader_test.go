package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/esfix/pkg/config"
	_ "github.com/yaklabco/esfix/pkg/fix/fixers" // Register fixers
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	// Create temp directory with no config files
	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	// Check defaults are applied
	if result.Config.Batch.WaveSize != 10 {
		t.Errorf("expected wave size 10, got %d", result.Config.Batch.WaveSize)
	}
	if !result.Config.Backups.Enabled {
		t.Error("expected backups enabled by default")
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
log_level: debug
batch:
  wave_size: 5
rules:
  semi:
    enabled: false
`
	configPath := filepath.Join(tmpDir, ".esfix.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", result.Config.LogLevel)
	}
	if result.Config.Batch.WaveSize != 5 {
		t.Errorf("expected wave size 5, got %d", result.Config.Batch.WaveSize)
	}

	ruleCfg, ok := result.Config.Rules["semi"]
	if !ok {
		t.Fatal("expected semi rule config")
	}
	if ruleCfg.Enabled == nil || *ruleCfg.Enabled {
		t.Error("expected semi to be disabled")
	}

	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("expected LoadedFrom [%s], got %v", configPath, result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Project config sets one value; explicit config overrides it
	projectContent := "batch:\n  wave_size: 5\n"
	projectPath := filepath.Join(tmpDir, ".esfix.yml")
	if err := os.WriteFile(projectPath, []byte(projectContent), 0644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	explicitContent := "batch:\n  wave_size: 20\n"
	explicitPath := filepath.Join(tmpDir, "custom.yml")
	if err := os.WriteFile(explicitPath, []byte(explicitContent), 0644); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       explicitPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Batch.WaveSize != 20 {
		t.Errorf("expected explicit config to win, got wave size %d", result.Config.Batch.WaveSize)
	}
}

func TestLoad_CLIConfigHighestPrecedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := "log_level: debug\nbatch:\n  wave_size: 5\n"
	configPath := filepath.Join(tmpDir, ".esfix.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// The CLI layer is sparse: only flags the user actually set, so
	// defaults cannot clobber file-level settings on the way through.
	cliCfg := &config.Config{}
	cliCfg.Batch.WaveSize = 3
	cliCfg.DryRun = true

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		IgnoreEnv:          true,
		NonInteractive:     true,
		CLIConfig:          cliCfg,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Batch.WaveSize != 3 {
		t.Errorf("expected CLI wave size 3, got %d", result.Config.Batch.WaveSize)
	}
	if !result.Config.DryRun {
		t.Error("expected CLI dry-run to apply")
	}
	if result.Config.LogLevel != "debug" {
		t.Errorf("expected file log level to survive, got %q", result.Config.LogLevel)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "batch:\n  wave_size: 5\n"
	configPath := filepath.Join(tmpDir, ".esfix.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ESFIX_WAVE_SIZE", "15")
	t.Setenv("ESFIX_RELINT_COMMAND", "eslint")

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Batch.WaveSize != 15 {
		t.Errorf("expected env wave size 15, got %d", result.Config.Batch.WaveSize)
	}
	if result.Config.Relint.Command != "eslint" {
		t.Errorf("expected env relint command, got %q", result.Config.Relint.Command)
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("ESFIX_WAVE_SIZE", "not-a-number")

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		NonInteractive:     true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected error for invalid env value")
	}
	if !strings.Contains(err.Error(), "ESFIX_WAVE_SIZE") {
		t.Errorf("expected error to name the variable, got %v", err)
	}
}

func TestLoad_InvalidConfigValue(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := "log_level: loud\n"
	configPath := filepath.Join(tmpDir, ".esfix.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("expected error to name the field, got %v", err)
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := "rules:\n  made-up-rule:\n    enabled: true\n"
	configPath := filepath.Join(tmpDir, ".esfix.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreESLint:       true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "made-up-rule") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown-rule warning, got %v", result.Warnings)
	}
}

func TestLoad_ESLintNotMigratedNonInteractive(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	eslintContent := `{"rules": {"semi": 2}}`
	eslintPath := filepath.Join(tmpDir, ".eslintrc.json")
	if err := os.WriteFile(eslintPath, []byte(eslintContent), 0644); err != nil {
		t.Fatalf("write eslint config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.MigrationPerformed {
		t.Error("expected no migration in non-interactive mode")
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "esfix migrate") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected migration hint warning, got %v", result.Warnings)
	}
}

func TestMerge_RuleOptions(t *testing.T) {
	t.Parallel()

	enabled := true
	disabled := false

	base := config.NewConfig()
	base.Rules["quotes"] = config.RuleConfig{
		Enabled: &enabled,
		Options: map[string]any{"style": "single", "avoidEscape": true},
	}

	override := config.NewConfig()
	override.Rules["quotes"] = config.RuleConfig{
		Options: map[string]any{"style": "double"},
	}
	override.Rules["semi"] = config.RuleConfig{Enabled: &disabled}

	merged := merge(base, override)

	quotes := merged.Rules["quotes"]
	if quotes.Enabled == nil || !*quotes.Enabled {
		t.Error("expected base enabled flag to survive")
	}
	if quotes.Options["style"] != "double" {
		t.Errorf("expected override style, got %v", quotes.Options["style"])
	}
	if quotes.Options["avoidEscape"] != true {
		t.Error("expected base option to survive deep merge")
	}

	semi := merged.Rules["semi"]
	if semi.Enabled == nil || *semi.Enabled {
		t.Error("expected override to disable semi")
	}
}

func TestMergeAll_Order(t *testing.T) {
	t.Parallel()

	first := config.NewConfig()
	first.LogLevel = "debug"

	second := config.NewConfig()
	second.LogLevel = "warn"
	second.Relint.Command = "eslint"

	merged := MergeAll(first, second)

	if merged.LogLevel != "warn" {
		t.Errorf("expected later config to win, got %q", merged.LogLevel)
	}
	if merged.Relint.Command != "eslint" {
		t.Errorf("expected relint command to carry, got %q", merged.Relint.Command)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for name := range vars {
		if !strings.HasPrefix(name, envVarPrefix) {
			t.Errorf("env var %q missing prefix", name)
		}
	}

	if _, ok := vars["ESFIX_WAVE_SIZE"]; !ok {
		t.Error("expected ESFIX_WAVE_SIZE to be documented")
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("batch.wave_size"); got != "ESFIX_WAVE_SIZE" {
		t.Errorf("GetEnvVarName(batch.wave_size) = %q", got)
	}
	if got := GetEnvVarName("nonexistent"); got != "" {
		t.Errorf("expected empty name for unknown field, got %q", got)
	}
}
