package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/esfix/internal/ui/pretty"
	"github.com/yaklabco/esfix/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 72 // Width of table separators (same for both tables).
	ruleColWidth      = 30 // Width of the rule name column.
	kindColWidth      = 20 // Width of the failure kind column.
	numColWidth       = 9  // Width of numeric columns.
	maxRuleNameLength = 28 // Maximum characters for rule name before truncation.
)

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts     Options
	styles   *pretty.Styles
	out      io.Writer
	sepWidth int
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	sepWidth := tableWidth
	if w := pretty.TerminalWidth(opts.Writer); w < sepWidth {
		sepWidth = w
	}
	return &SummaryRenderer{
		opts:     opts,
		styles:   pretty.NewStyles(colorEnabled),
		out:      opts.Writer,
		sepWidth: sepWidth,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Diagnostics == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("Nothing to fix"))
		return nil
	}

	r.renderRuleTable(report.ByRule)

	if len(report.Failures) > 0 {
		fmt.Fprintln(r.out)
		r.renderFailureTable(report.Failures)
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(r.out)
		r.renderRecommendations(report.Recommendations)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.sepWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Attempts", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Applied", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Failed", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.sepWidth)))

	// Rows
	for _, rule := range rules {
		ruleName := pretty.Truncate(rule.RuleID, maxRuleNameLength)

		// Pad first, then style
		paddedName := pretty.PadRight(ruleName, ruleColWidth)
		styledName := paddedName
		if rule.Failed > 0 {
			styledName = r.styles.TableErrorRow.Render(paddedName)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledName,
			pretty.PadLeft(strconv.Itoa(rule.Attempts), numColWidth),
			pretty.PadLeft(strconv.Itoa(rule.Applied), numColWidth),
			pretty.PadLeft(strconv.Itoa(rule.Failed), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFailureTable(failures []analysis.FailureGroup) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Failures by Kind"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.sepWidth)))

	fmt.Fprintf(r.out, "%s %s  %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Count", numColWidth)),
		r.styles.TableHeader.Render("Rules"),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", r.sepWidth)))

	for _, group := range failures {
		paddedKind := pretty.PadRight(string(group.Kind), kindColWidth)

		fmt.Fprintf(r.out, "%s %s  %s\n",
			r.styles.TableWarnRow.Render(paddedKind),
			pretty.PadLeft(strconv.Itoa(group.Count), numColWidth),
			r.styles.Dim.Render(strings.Join(group.Rules, ", ")),
		)
	}
}

func (r *SummaryRenderer) renderRecommendations(recs []string) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Recommendations"))
	for _, rec := range recs {
		fmt.Fprintln(r.out, "  • "+rec)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	diagWord := "diagnostics"
	if totals.Diagnostics == 1 {
		diagWord = "diagnostic"
	}

	parts := []string{fmt.Sprintf("%d %s", totals.Diagnostics, diagWord)}

	var outcomeParts []string
	if totals.Applied > 0 {
		outcomeParts = append(outcomeParts, r.styles.Success.Render(fmt.Sprintf("%d fixed", totals.Applied)))
	}
	if totals.Failed > 0 {
		outcomeParts = append(outcomeParts, r.styles.Error.Render(fmt.Sprintf("%d failed", totals.Failed)))
	}
	if len(outcomeParts) > 0 {
		parts[0] = fmt.Sprintf("%d %s (%s)", totals.Diagnostics, diagWord, strings.Join(outcomeParts, ", "))
	}

	if totals.Waves > 0 {
		waveWord := "waves"
		if totals.Waves == 1 {
			waveWord = "wave"
		}
		parts = append(parts, fmt.Sprintf("in %d %s", totals.Waves, waveWord))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, " "))
}
