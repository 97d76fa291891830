package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/esfix/pkg/config"
	"github.com/yaklabco/esfix/pkg/fix"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *fix.Diagnostic) string {
	location := s.Location.Render(fmt.Sprintf("%d:%d", diag.Line, diag.Column))
	severity := s.FormatSeverity(diag.Severity)
	ruleDisplay := s.RuleID.Render("(" + diag.RuleID + ")")

	return fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		ruleDisplay,
	)
}

// FormatFixOutcome formats one fix attempt outcome for terminal output.
// Applied fixes render the rule and position; failures add the failure
// kind and reason.
func (s *Styles) FormatFixOutcome(sum *fix.Summary) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", sum.Line, sum.Column))
	ruleDisplay := s.RuleID.Render("(" + sum.RuleID + ")")

	if sum.Success {
		builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			location,
			s.Success.Render("fixed"),
			s.Message.Render(sum.Message),
			ruleDisplay,
		))
	} else {
		builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s %s\n",
			location,
			s.Error.Render("failed"),
			s.Message.Render(sum.Message),
			ruleDisplay,
			s.Dim.Render("["+string(sum.Kind)+"]"),
		))
	}

	for _, warning := range sum.Warnings {
		builder.WriteString("    " + s.Warning.Render("warning:") + " " +
			s.Message.Render(warning) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSectionHeader formats a section header for grouped output.
func (s *Styles) FormatSectionHeader(title string, count int) string {
	header := s.Bold.Render(title)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d)", count))
	}
	return header
}
