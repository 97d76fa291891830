package cli

import "github.com/yaklabco/esfix/pkg/batch"

// Exit codes for esfix.
const (
	// ExitSuccess indicates successful execution with every diagnostic fixed.
	ExitSuccess = 0

	// ExitFixFailures indicates the run completed but some diagnostics
	// could not be fixed.
	ExitFixFailures = 1

	// ExitFixWarnings indicates every fix applied but some carried
	// validation warnings (when strict mode).
	ExitFixWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *batch.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if len(result.Failed) > 0 || !result.Success {
		return ExitFixFailures
	}

	if strict {
		for _, s := range result.Applied {
			if len(s.Warnings) > 0 {
				return ExitFixWarnings
			}
		}
	}

	return ExitSuccess
}
