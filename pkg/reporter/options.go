package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// SourcePath labels the source in output. Used as the artifact URI
	// in SARIF output and the file name in diff headers. Defaults to
	// "source.js" when empty.
	SourcePath string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowApplied lists applied fixes in text output.
	ShowApplied bool

	// ShowFailed lists unresolved diagnostics in text output.
	ShowFailed bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// IncludeCode embeds the final source in JSON output.
	IncludeCode bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		ShowApplied: true,
		ShowFailed:  true,
	}
}

// sourcePath returns the configured source label or its default.
func (o Options) sourcePath() string {
	if o.SourcePath != "" {
		return o.SourcePath
	}
	return "source.js"
}
