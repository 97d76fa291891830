package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/esfix/internal/ui/pretty"
	"github.com/yaklabco/esfix/pkg/batch"
	"github.com/yaklabco/esfix/pkg/fix"
)

// DiffReporter renders the repaired source as a unified diff against the
// input.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *batch.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	d := fix.GenerateDiff(r.opts.sourcePath(), result.SourceCode, result.FinalCode)
	if !d.HasChanges() {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.out, "no changes")
		}
		return len(result.Failed), nil
	}

	path := strings.TrimPrefix(d.Path, "/")
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(d.GitHeader()))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range d.Hunks {
		r.writeHunk(hunk)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.out)
		r.writeSummary(len(result.Applied), d.Additions, d.Deletions)
	}

	return len(result.Failed), nil
}

// writeHunk renders one hunk with its context lines.
func (r *DiffReporter) writeHunk(hunk fix.DiffHunk) {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		hunk.OriginalStart, hunk.OriginalCount,
		hunk.ModifiedStart, hunk.ModifiedCount)
	fmt.Fprintln(r.out, r.styles.DiffHunk.Render(header))

	for _, line := range hunk.Lines {
		switch line.Kind {
		case fix.DiffLineAdd:
			fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+"+line.Content))
		case fix.DiffLineRemove:
			fmt.Fprintln(r.out, r.styles.DiffRemove.Render("-"+line.Content))
		default:
			fmt.Fprintln(r.out, " "+line.Content)
		}
	}
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(fixes, additions, deletions int) {
	var parts []string

	fixWord := "fixes"
	if fixes == 1 {
		fixWord = "fix"
	}
	parts = append(parts, fmt.Sprintf("%d %s applied", fixes, fixWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
