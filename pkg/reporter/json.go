package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/esfix/pkg/batch"
	"github.com/yaklabco/esfix/pkg/fix"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string        `json:"version"`
	Source  string        `json:"source"`
	Applied []JSONFix     `json:"applied"`
	Failed  []JSONFailure `json:"failed"`
	Summary JSONSummary   `json:"summary"`
	Code    string        `json:"code,omitempty"`
}

// JSONFix represents one applied fix.
type JSONFix struct {
	RuleID       string   `json:"ruleId"`
	Line         int      `json:"line"`
	Column       int      `json:"column"`
	Message      string   `json:"message,omitempty"`
	OriginalText string   `json:"originalText,omitempty"`
	FixedText    string   `json:"fixedText,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
}

// JSONFailure represents one unresolved diagnostic.
type JSONFailure struct {
	RuleID  string `json:"ruleId"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	TotalDiagnostics int            `json:"totalDiagnostics"`
	Fixed            int            `json:"fixed"`
	Failed           int            `json:"failed"`
	Waves            int            `json:"waves"`
	Success          bool           `json:"success"`
	RecoveryStrategy string         `json:"recoveryStrategy,omitempty"`
	Error            string         `json:"error,omitempty"`
	ByKind           map[string]int `json:"byKind,omitempty"`
	ProcessingMS     int64          `json:"processingMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *batch.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Failed, nil
}

func (r *JSONReporter) buildOutput(result *batch.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Source:  r.opts.sourcePath(),
		Applied: make([]JSONFix, 0),
		Failed:  make([]JSONFailure, 0),
	}

	if result == nil {
		return output
	}

	for _, sum := range result.Applied {
		output.Applied = append(output.Applied, JSONFix{
			RuleID:       sum.RuleID,
			Line:         sum.Line,
			Column:       sum.Column,
			Message:      sum.Message,
			OriginalText: sum.OriginalText,
			FixedText:    sum.FixedText,
			Warnings:     sum.Warnings,
		})
	}

	var byKind map[string]int
	if len(result.Failed) > 0 {
		byKind = make(map[string]int)
	}
	for _, sum := range result.Failed {
		kind := sum.Kind
		if kind == "" {
			kind = fix.KindUnexpected
		}
		byKind[string(kind)]++
		output.Failed = append(output.Failed, JSONFailure{
			RuleID:  sum.RuleID,
			Line:    sum.Line,
			Column:  sum.Column,
			Kind:    string(kind),
			Message: sum.Message,
		})
	}

	output.Summary = JSONSummary{
		TotalDiagnostics: result.TotalDiagnostics,
		Fixed:            result.FixedCount,
		Failed:           len(result.Failed),
		Waves:            result.Waves,
		Success:          result.Success,
		RecoveryStrategy: result.Strategy,
		Error:            result.ErrorMessage,
		ByKind:           byKind,
		ProcessingMS:     result.ProcessingTime.Milliseconds(),
	}

	if r.opts.IncludeCode {
		output.Code = result.FinalCode
	}

	return output
}
