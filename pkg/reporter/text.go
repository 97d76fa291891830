package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/esfix/internal/ui/pretty"
	"github.com/yaklabco/esfix/pkg/batch"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *batch.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.TotalDiagnostics == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("Nothing to fix."))
		}
		return 0, nil
	}

	if r.opts.ShowApplied && len(result.Applied) > 0 {
		fmt.Fprintln(r.bw, r.styles.FormatSectionHeader("Applied", len(result.Applied)))
		for i := range result.Applied {
			fmt.Fprint(r.bw, r.styles.FormatFixOutcome(&result.Applied[i]))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowFailed && len(result.Failed) > 0 {
		fmt.Fprintln(r.bw, r.styles.FormatSectionHeader("Unresolved", len(result.Failed)))
		for i := range result.Failed {
			fmt.Fprint(r.bw, r.styles.FormatFixOutcome(&result.Failed[i]))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result))
	}

	return len(result.Failed), nil
}
