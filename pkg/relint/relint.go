// Package relint provides the re-lint capability the batch processor uses
// to drive its fix waves: given the current source, return the diagnostics
// a linter still reports against it.
package relint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/yaklabco/esfix/internal/logging"
	"github.com/yaklabco/esfix/pkg/fix"
)

// Func returns the diagnostics a linter currently reports for code.
type Func func(ctx context.Context, code string) ([]fix.Diagnostic, error)

// FilePlaceholder in a command argument is replaced with the path of the
// temp file holding the source under lint.
const FilePlaceholder = "{file}"

// CommandRelinter runs an external linter CLI against the source and
// parses its JSON report. The source is written to a temp file, the
// command runs with the file path substituted for FilePlaceholder (or
// appended when no argument carries it), and stdout is parsed.
type CommandRelinter struct {
	Command string
	Args    []string

	// AllowedExitCodes lists exit statuses that still carry a usable
	// report. Linters conventionally exit 1 when they found problems;
	// nil defaults to {0, 1}.
	AllowedExitCodes []int
}

// NewCommandRelinter creates a relinter for an ESLint-style CLI. The args
// should put the linter in JSON report mode, e.g.
// NewCommandRelinter("eslint", "--format", "json", FilePlaceholder).
func NewCommandRelinter(command string, args ...string) *CommandRelinter {
	return &CommandRelinter{Command: command, Args: args}
}

// Relint writes code to a temp file, runs the linter, and returns the
// parsed diagnostics.
func (r *CommandRelinter) Relint(ctx context.Context, code string) ([]fix.Diagnostic, error) {
	dir, err := os.MkdirTemp("", "esfix-relint-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "source.js")
	if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
		return nil, fmt.Errorf("writing source: %w", err)
	}

	args := make([]string, 0, len(r.Args)+1)
	substituted := false
	for _, arg := range r.Args {
		if arg == FilePlaceholder {
			args = append(args, path)
			substituted = true
			continue
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, r.Command, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if runErr != nil && !r.exitAllowed(runErr) {
		return nil, fmt.Errorf("running %s: %w", r.Command, runErr)
	}

	diags, err := ParseESLintJSON(out.Bytes())
	if err != nil {
		return nil, err
	}

	logging.Default().Debug("relint complete",
		logging.FieldCommand, r.Command,
		logging.FieldCount, len(diags))
	return diags, nil
}

func (r *CommandRelinter) exitAllowed(runErr error) bool {
	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return false
	}
	allowed := r.AllowedExitCodes
	if allowed == nil {
		allowed = []int{0, 1}
	}
	return slices.Contains(allowed, exitErr.ExitCode())
}
