package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/esfix/pkg/batch"
	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/reporter"
)

func testResult() *batch.Result {
	return &batch.Result{
		SourceCode:       "var a = 1\n",
		FinalCode:        "let a = 1;\n",
		TotalDiagnostics: 3,
		FixedCount:       2,
		Success:          true,
		Waves:            1,
		ProcessingTime:   12 * time.Millisecond,
		Applied: []fix.Summary{
			{
				RuleID:       "no-var",
				Line:         1,
				Column:       1,
				Success:      true,
				Message:      "replaced var with let",
				StartOffset:  0,
				OriginalText: "var",
				FixedText:    "let",
			},
			{
				RuleID:       "semi",
				Line:         1,
				Column:       10,
				Success:      true,
				Message:      "inserted missing semicolon",
				StartOffset:  9,
				OriginalText: "",
				FixedText:    ";",
			},
		},
		Failed: []fix.Summary{
			{
				RuleID:  "eqeqeq",
				Line:    2,
				Column:  5,
				Message: "no fixer registered for rule",
				Kind:    fix.KindNoFixer,
			},
		},
	}
}

func testOptions(buf *bytes.Buffer, format reporter.Format) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	return opts
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{"text", reporter.FormatText, false},
		{"", reporter.FormatText, false},
		{"json", reporter.FormatJSON, false},
		{"sarif", reporter.FormatSARIF, false},
		{"diff", reporter.FormatDiff, false},
		{"summary", reporter.FormatSummary, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := reporter.ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.Format = reporter.Format("xml")

	_, err := reporter.New(opts)
	assert.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r, err := reporter.New(testOptions(&buf, reporter.FormatText))
	require.NoError(t, err)

	unresolved, err := r.Report(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, 1, unresolved)

	out := buf.String()
	assert.Contains(t, out, "Applied (2)")
	assert.Contains(t, out, "replaced var with let")
	assert.Contains(t, out, "Unresolved (1)")
	assert.Contains(t, out, "[no-fixer]")
	assert.Contains(t, out, "3 diagnostics")
	assert.Contains(t, out, "2 fixed")
	assert.Contains(t, out, "1 failed")
}

func TestTextReporterNothingToFix(t *testing.T) {
	var buf bytes.Buffer
	r, err := reporter.New(testOptions(&buf, reporter.FormatText))
	require.NoError(t, err)

	unresolved, err := r.Report(context.Background(), &batch.Result{Success: true})
	require.NoError(t, err)
	assert.Zero(t, unresolved)
	assert.Contains(t, buf.String(), "Nothing to fix.")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatJSON)
	opts.IncludeCode = true
	opts.SourcePath = "app.js"

	r, err := reporter.New(opts)
	require.NoError(t, err)

	unresolved, err := r.Report(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, 1, unresolved)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "app.js", output.Source)
	require.Len(t, output.Applied, 2)
	assert.Equal(t, "no-var", output.Applied[0].RuleID)
	assert.Equal(t, "let", output.Applied[0].FixedText)
	require.Len(t, output.Failed, 1)
	assert.Equal(t, "no-fixer", output.Failed[0].Kind)
	assert.Equal(t, 3, output.Summary.TotalDiagnostics)
	assert.Equal(t, 2, output.Summary.Fixed)
	assert.True(t, output.Summary.Success)
	assert.Equal(t, map[string]int{"no-fixer": 1}, output.Summary.ByKind)
	assert.Equal(t, "let a = 1;\n", output.Code)
}

func TestJSONReporterCompact(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatJSON)
	opts.Compact = true

	r, err := reporter.New(opts)
	require.NoError(t, err)

	_, err = r.Report(context.Background(), testResult())
	require.NoError(t, err)

	// Compact output is a single line plus the trailing newline.
	assert.NotContains(t, string(bytes.TrimRight(buf.Bytes(), "\n")), "\n")
}

func TestDiffReporter(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatDiff)
	opts.SourcePath = "app.js"

	r, err := reporter.New(opts)
	require.NoError(t, err)

	unresolved, err := r.Report(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, 1, unresolved, "diff report returns the unresolved count")

	out := buf.String()
	assert.Contains(t, out, "diff --git a/app.js b/app.js")
	assert.Contains(t, out, "--- a/app.js")
	assert.Contains(t, out, "+++ b/app.js")
	assert.Contains(t, out, "@@ -1,1 +1,1 @@")
	assert.Contains(t, out, "-var a = 1")
	assert.Contains(t, out, "+let a = 1;")
	assert.Contains(t, out, "2 fixes applied")
}

func TestDiffReporterNoChanges(t *testing.T) {
	var buf bytes.Buffer
	r, err := reporter.New(testOptions(&buf, reporter.FormatDiff))
	require.NoError(t, err)

	fixes, err := r.Report(context.Background(), &batch.Result{Success: true})
	require.NoError(t, err)
	assert.Zero(t, fixes)
	assert.Contains(t, buf.String(), "no changes")
}

func TestSummaryReporter(t *testing.T) {
	var buf bytes.Buffer
	r, err := reporter.New(testOptions(&buf, reporter.FormatSummary))
	require.NoError(t, err)

	unresolved, err := r.Report(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, 1, unresolved)

	out := buf.String()
	assert.Contains(t, out, "Rules Summary")
	assert.Contains(t, out, "no-var")
	assert.Contains(t, out, "Failures by Kind")
	assert.Contains(t, out, "no-fixer")
	assert.Contains(t, out, "Recommendations")
	assert.Contains(t, out, "Total: ")
}

func TestSummaryReporterClean(t *testing.T) {
	var buf bytes.Buffer
	r, err := reporter.New(testOptions(&buf, reporter.FormatSummary))
	require.NoError(t, err)

	_, err = r.Report(context.Background(), &batch.Result{Success: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Nothing to fix")
}

func TestSARIFReporter(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions(&buf, reporter.FormatSARIF)
	opts.SourcePath = "app.js"

	r, err := reporter.New(opts)
	require.NoError(t, err)

	unresolved, err := r.Report(context.Background(), testResult())
	require.NoError(t, err)
	assert.Equal(t, 1, unresolved)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)
	assert.Equal(t, "esfix", output.Runs[0].Tool.Driver.Name)

	// Only unresolved diagnostics appear as results.
	require.Len(t, output.Runs[0].Results, 1)
	result := output.Runs[0].Results[0]
	assert.Equal(t, "eqeqeq", result.RuleID)
	assert.Equal(t, "warning", result.Level)
	assert.Equal(t, "app.js", result.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 2, result.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "no-fixer", result.Properties["failureKind"])
}

func TestSARIFLevelForBrokenFix(t *testing.T) {
	var buf bytes.Buffer
	r, err := reporter.New(testOptions(&buf, reporter.FormatSARIF))
	require.NoError(t, err)

	result := &batch.Result{
		TotalDiagnostics: 1,
		Failed: []fix.Summary{
			{RuleID: "semi", Line: 1, Column: 1, Kind: fix.KindSyntax, Message: "fix produced unparseable code"},
		},
	}

	_, err = r.Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Runs[0].Results, 1)
	assert.Equal(t, "error", output.Runs[0].Results[0].Level)
}
