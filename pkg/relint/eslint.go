package relint

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/esfix/pkg/config"
	"github.com/yaklabco/esfix/pkg/fix"
)

// eslintFileResult is one entry of ESLint's JSON formatter output.
type eslintFileResult struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID    string `json:"ruleId"`
	Severity  int    `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
}

// ParseESLintJSON converts ESLint's JSON formatter output into
// diagnostics. Messages without a rule ID (parse failures ESLint itself
// reports) are kept with an empty RuleID so callers can see them.
func ParseESLintJSON(data []byte) ([]fix.Diagnostic, error) {
	var results []eslintFileResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing lint report: %w", err)
	}

	var diags []fix.Diagnostic
	for _, file := range results {
		for _, msg := range file.Messages {
			severity := config.SeverityWarning
			if msg.Severity >= 2 {
				severity = config.SeverityError
			}
			diags = append(diags, fix.Diagnostic{
				RuleID:    msg.RuleID,
				Message:   msg.Message,
				Line:      msg.Line,
				Column:    msg.Column,
				EndLine:   msg.EndLine,
				EndColumn: msg.EndColumn,
				Severity:  severity,
			})
		}
	}
	return diags, nil
}
