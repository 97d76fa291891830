package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/esfix/internal/configloader"
	"github.com/yaklabco/esfix/internal/logging"
	"github.com/yaklabco/esfix/pkg/batch"
	"github.com/yaklabco/esfix/pkg/config"
	"github.com/yaklabco/esfix/pkg/fix"
	_ "github.com/yaklabco/esfix/pkg/fix/fixers" // Register built-in fixers
	"github.com/yaklabco/esfix/pkg/fsutil"
	"github.com/yaklabco/esfix/pkg/langdetect"
	"github.com/yaklabco/esfix/pkg/relint"
	"github.com/yaklabco/esfix/pkg/reporter"
)

// ErrFixIssuesFound is returned when diagnostics remain unresolved.
var ErrFixIssuesFound = errors.New("unresolved diagnostics remain")

type fixFlags struct {
	diagnostics string
	format      string
	relintCmd   string
	relintArgs  []string
	waveSize    int
	output      string
	dryRun      bool
	noBackups   bool
	strict      bool
	force       bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix <source-file>",
		Short: "Fix ESLint diagnostics in a JavaScript or TypeScript file",
		Long:  fixLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args[0], flags)
		},
	}

	addFixFlags(cmd, flags)

	return cmd
}

const fixLongDescription = `Fix ESLint diagnostics in a JavaScript or TypeScript file.

Diagnostics come either from a file of ESLint JSON output (--diagnostics)
or, when a re-lint command is configured, from running that command
against the source. Fixes apply bottom-up so earlier edits never shift
the positions of later ones, and every edit is validated by reparsing
before the next one runs.

The file is rewritten in place unless --dry-run or --output is given.

Examples:
  eslint -f json app.js > diags.json
  esfix fix app.js --diagnostics diags.json

  esfix fix app.js --relint eslint          # discover and fix via eslint
  esfix fix app.js --diagnostics d.json --dry-run --format diff
  esfix fix app.js --diagnostics d.json --format json > report.json`

func runFix(cmd *cobra.Command, sourcePath string, flags *fixFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	finalCfg, err := loadFixConfig(ctx, cmd, flags)
	if err != nil {
		return err
	}

	// Read the source file.
	content, _, err := fsutil.ReadFile(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	source := string(content)

	if !flags.force && !langdetect.IsECMAScript(sourcePath, content) {
		return fmt.Errorf("%s does not look like a JavaScript or TypeScript file (use --force to fix anyway)", sourcePath)
	}

	// Configure the re-lint capability, if any.
	var relintFn relint.Func
	if finalCfg.Relint.Command != "" {
		relinter := relint.NewCommandRelinter(finalCfg.Relint.Command, finalCfg.Relint.Args...)
		relintFn = relinter.Relint
	}

	// Resolve the diagnostics source.
	diags, err := loadDiagnostics(ctx, flags, relintFn, source)
	if err != nil {
		return err
	}

	applyRuleEnablement(finalCfg)

	logger.Debug("starting fix run",
		logging.FieldPath, sourcePath,
		logging.FieldCount, len(diags),
		logging.FieldDryRun, finalCfg.DryRun,
	)

	// Run the batch.
	opts := batch.FromConfig(finalCfg)
	opts.Relint = relintFn
	result := batch.New(opts).Process(ctx, source, diags)

	// Report.
	unresolved, err := reportFixResult(ctx, cmd, flags, sourcePath, result)
	if err != nil {
		return err
	}

	// Write the repaired source back.
	if err := writeFixedSource(ctx, sourcePath, source, result, finalCfg, flags, logger); err != nil {
		return err
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess || unresolved > 0 {
		return ErrFixIssuesFound
	}

	return nil
}

// loadFixConfig resolves configuration with CLI flags layered on top.
func loadFixConfig(ctx context.Context, cmd *cobra.Command, flags *fixFlags) (*config.Config, error) {
	cliCfg := &config.Config{}
	cliCfg.Format = config.OutputFormat(flags.format)
	cliCfg.DryRun = flags.dryRun
	if flags.waveSize > 0 {
		cliCfg.Batch.WaveSize = flags.waveSize
	}
	if flags.relintCmd != "" {
		cliCfg.Relint.Command = flags.relintCmd
		cliCfg.Relint.Args = flags.relintArgs
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config

	// Boolean flags cannot ride the merge: false is their zero value.
	if cmd.Flags().Changed("no-backups") && flags.noBackups {
		finalCfg.Backups.Enabled = false
	}

	return finalCfg, nil
}

// loadDiagnostics reads diagnostics from the --diagnostics file, or
// discovers them with the re-lint command when one is configured.
func loadDiagnostics(ctx context.Context, flags *fixFlags, relintFn relint.Func, source string) ([]fix.Diagnostic, error) {
	if flags.diagnostics != "" {
		data, err := os.ReadFile(flags.diagnostics)
		if err != nil {
			return nil, fmt.Errorf("read diagnostics: %w", err)
		}
		diags, err := relint.ParseESLintJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse diagnostics: %w", err)
		}
		return diags, nil
	}

	if relintFn != nil {
		diags, err := relintFn(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("discover diagnostics: %w", err)
		}
		return diags, nil
	}

	return nil, errors.New("no diagnostics source: pass --diagnostics or configure a re-lint command")
}

// applyRuleEnablement pushes per-rule config into the fixer registry.
func applyRuleEnablement(cfg *config.Config) {
	for ruleID, ruleCfg := range cfg.Rules {
		if ruleCfg.Enabled != nil {
			fix.DefaultRegistry.SetEnabled(ruleID, *ruleCfg.Enabled)
		}
	}
}

// reportFixResult renders the batch result and returns the unresolved count.
func reportFixResult(ctx context.Context, cmd *cobra.Command, flags *fixFlags, sourcePath string, result *batch.Result) (int, error) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return 0, fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		SourcePath:  sourcePath,
		ShowSummary: true,
		ShowApplied: true,
		ShowFailed:  true,
	})
	if err != nil {
		return 0, fmt.Errorf("create reporter: %w", err)
	}

	unresolved, err := rep.Report(ctx, result)
	if err != nil {
		return 0, fmt.Errorf("report results: %w", err)
	}
	return unresolved, nil
}

// writeFixedSource persists the repaired source unless dry-run is active.
func writeFixedSource(
	ctx context.Context,
	sourcePath, original string,
	result *batch.Result,
	cfg *config.Config,
	flags *fixFlags,
	logger *log.Logger,
) error {
	if cfg.DryRun || result.FinalCode == original {
		return nil
	}

	target := sourcePath
	if flags.output != "" {
		target = flags.output
	}

	// Back up before the first in-place rewrite.
	if target == sourcePath && cfg.Backups.Enabled {
		created, err := fsutil.CreateBackup(ctx, sourcePath, fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupModeSidecar,
		})
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		if created {
			logger.Debug("created backup", logging.FieldPath, fsutil.BackupPath(sourcePath, fsutil.BackupModeSidecar))
		}
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, target, []byte(result.FinalCode), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write fixed source: %w", err)
	}
	if changed {
		logger.Info("wrote fixed source",
			logging.FieldPath, target,
			logging.FieldApplied, result.FixedCount,
		)
	}

	return nil
}

func addFixFlags(cmd *cobra.Command, flags *fixFlags) {
	cmd.Flags().StringVarP(&flags.diagnostics, "diagnostics", "d", "",
		"path to ESLint JSON output with the diagnostics to fix")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without writing the file")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().IntVar(&flags.waveSize, "wave-size", 0, "fixes applied between re-lint queries (0 = config default)")
	cmd.Flags().StringVar(&flags.relintCmd, "relint", "", "linter command to run between waves (e.g. eslint)")
	cmd.Flags().StringSliceVar(&flags.relintArgs, "relint-args", nil, "extra arguments for the re-lint command")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write fixed source to this path instead of in place")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when rewriting in place")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat fix warnings as failures for exit code")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "fix even if the file extension is unrecognized")
}
