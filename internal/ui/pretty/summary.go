package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/esfix/pkg/batch"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats a batch result as a single line.
// Example: "8 diagnostics, 6 fixed, 2 failed in 2 waves (83ms)".
func (s *Styles) FormatSummaryOneLine(result *batch.Result) string {
	if result.TotalDiagnostics == 0 {
		return s.Success.Render("Nothing to fix") + "\n"
	}

	diagWord := "diagnostics"
	if result.TotalDiagnostics == 1 {
		diagWord = "diagnostic"
	}

	parts := []string{fmt.Sprintf("%d %s", result.TotalDiagnostics, diagWord)}

	if result.FixedCount > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed", result.FixedCount)))
	}
	if failed := len(result.Failed); failed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", failed)))
	}

	line := strings.Join(parts, ", ")

	if result.Waves > 0 {
		waveWord := "waves"
		if result.Waves == 1 {
			waveWord = "wave"
		}
		line += fmt.Sprintf(" in %d %s", result.Waves, waveWord)
	}

	line += s.Dim.Render(fmt.Sprintf(" (%dms)", result.ProcessingTime.Milliseconds()))

	return line + "\n"
}

// FormatSummary formats a batch result as a summary block.
func (s *Styles) FormatSummary(result *batch.Result) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Diagnostics:   " +
		s.SummaryValue.Render(strconv.Itoa(result.TotalDiagnostics)) + "\n")
	builder.WriteString("  Fixed:         " +
		s.Success.Render(strconv.Itoa(result.FixedCount)) + "\n")

	if failed := len(result.Failed); failed > 0 {
		builder.WriteString("  Failed:        " +
			s.Failure.Render(strconv.Itoa(failed)) + "\n")
	}

	if result.Waves > 0 {
		builder.WriteString("  Waves:         " +
			s.SummaryValue.Render(strconv.Itoa(result.Waves)) + "\n")
	}

	if result.Strategy != "" {
		builder.WriteString("  Recovery:      " +
			s.Warning.Render(result.Strategy) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case !result.Success:
		msg := "Batch aborted"
		if result.ErrorMessage != "" {
			msg += ": " + result.ErrorMessage
		}
		builder.WriteString(s.Failure.Render(msg))
	case len(result.Failed) > 0:
		builder.WriteString(s.Warning.Render("Completed with unresolved diagnostics"))
	default:
		builder.WriteString(s.Success.Render("All diagnostics fixed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
