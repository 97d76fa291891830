package batch_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/esfix/internal/logging"
	"github.com/yaklabco/esfix/pkg/batch"
	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/fix/fixers"
)

// stubFixer lets tests manufacture arbitrary fixer behavior.
type stubFixer struct {
	fix.BaseFixer
	canFix   func(source string, d fix.Diagnostic) bool
	apply    func(source string, d fix.Diagnostic) fix.Result
	validate func(before, after string) bool
}

func (s *stubFixer) CanFix(source string, d fix.Diagnostic) bool {
	if s.canFix == nil {
		return true
	}
	return s.canFix(source, d)
}

func (s *stubFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	return s.apply(source, d)
}

func (s *stubFixer) Validate(before, after string) bool {
	if s.validate == nil {
		return before != after
	}
	return s.validate(before, after)
}

func newStub(ruleID string, apply func(string, fix.Diagnostic) fix.Result) *stubFixer {
	return &stubFixer{
		BaseFixer: fix.NewBaseFixer(ruleID, ruleID, "test fixer"),
		apply:     apply,
	}
}

func builtinRegistry(t *testing.T) *fix.Registry {
	t.Helper()
	reg := fix.NewRegistry()
	fixers.RegisterAll(reg)
	return reg
}

func TestProcessLegacyDeclarations(t *testing.T) {
	source := "var x = 1\nvar y = 2"
	diags := []fix.Diagnostic{
		{RuleID: "no-var", Line: 1, Column: 1, Message: "Unexpected var, use let or const instead."},
		{RuleID: "semi", Line: 1, Column: 10, Message: "Missing semicolon."},
		{RuleID: "no-var", Line: 2, Column: 1, Message: "Unexpected var, use let or const instead."},
		{RuleID: "semi", Line: 2, Column: 10, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, "let x = 1;\nlet y = 2;", res.FinalCode)
	assert.Len(t, res.Applied, 4)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 4, res.FixedCount)
	assert.Equal(t, batch.PhaseComplete, res.Phase)
}

func TestProcessLoopConversion(t *testing.T) {
	source := "for (let i = 0; i < items.length; i++) {\n  console.log(items[i]);\n}\n"
	diags := []fix.Diagnostic{
		{RuleID: "prefer-for-of", Line: 1, Column: 1, Message: "Expected a 'for-of' loop."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.Equal(t, "for (const item of items) {\n  console.log(item);\n}\n", res.FinalCode)
	assert.NotContains(t, res.FinalCode, "[i]")
	assert.Len(t, res.Applied, 1)
}

func TestProcessUnsafePositionRecorded(t *testing.T) {
	// The reported position sits inside a string literal that merely looks
	// like the violation.
	source := "const s = 'a == b';\n"
	diags := []fix.Diagnostic{
		{RuleID: "eqeqeq", Line: 1, Column: 14, Message: "Expected '===' and instead saw '=='."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.True(t, res.Success, "a refused diagnostic does not fail the run")
	assert.Equal(t, source, res.FinalCode)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, fix.KindUnsafeContext, res.Failed[0].Kind)
}

func TestProcessSyntaxBreakAborts(t *testing.T) {
	// Five diagnostics, bottom to top; the third one processed (line 3)
	// produces unparseable output. Exactly two fixes land, the rest fail,
	// and the final code still parses.
	reg := fix.NewRegistry()
	reg.MustRegister(newStub("append-semi", func(source string, d fix.Diagnostic) fix.Result {
		return fix.Applied(strings.Replace(source, "x"+itoa(d.Line), "x"+itoa(d.Line)+";", 1), "ok")
	}))
	reg.MustRegister(newStub("break-syntax", func(source string, d fix.Diagnostic) fix.Result {
		return fix.Applied(source+"\nfunction (", "broken")
	}))

	source := "x1\nx2\nx3\nx4\nx5"
	diags := []fix.Diagnostic{
		{RuleID: "append-semi", Line: 5, Column: 1},
		{RuleID: "append-semi", Line: 4, Column: 1},
		{RuleID: "break-syntax", Line: 3, Column: 1},
		{RuleID: "append-semi", Line: 2, Column: 1},
		{RuleID: "append-semi", Line: 1, Column: 1},
	}

	p := batch.New(batch.Options{Registry: reg})
	res := p.Process(context.Background(), source, diags)

	assert.Error(t, res.Err)
	assert.False(t, res.Success)
	assert.Len(t, res.Applied, 2)
	assert.Len(t, res.Failed, 3)
	assert.Equal(t, "x1\nx2\nx3\nx4;\nx5;", res.FinalCode)
	assert.Equal(t, batch.StrategyContinueCurrent, res.Strategy)

	kinds := map[fix.FailureKind]int{}
	for _, f := range res.Failed {
		kinds[f.Kind]++
	}
	assert.Equal(t, 1, kinds[fix.KindSyntax])
	assert.Equal(t, 2, kinds[fix.KindAborted])
}

func TestProcessNoFixerRecorded(t *testing.T) {
	source := "const x = 1;\n"
	diags := []fix.Diagnostic{
		{RuleID: "some-unknown-rule", Line: 1, Column: 1},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, fix.KindNoFixer, res.Failed[0].Kind)
	assert.Equal(t, source, res.FinalCode)
}

func TestProcessDisabledRuleRecorded(t *testing.T) {
	reg := builtinRegistry(t)
	reg.SetEnabled("semi", false)

	source := "const x = 1\n"
	diags := []fix.Diagnostic{
		{RuleID: "semi", Line: 1, Column: 12, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: reg})
	res := p.Process(context.Background(), source, diags)

	require.Len(t, res.Failed, 1)
	assert.Equal(t, fix.KindNoFixer, res.Failed[0].Kind)
}

func TestProcessPanickingFixerContained(t *testing.T) {
	reg := fix.NewRegistry()
	reg.MustRegister(newStub("explode", func(source string, d fix.Diagnostic) fix.Result {
		panic("boom")
	}))
	reg.MustRegister(newStub("append", func(source string, d fix.Diagnostic) fix.Result {
		return fix.Applied(source+"done();\n", "ok")
	}))

	source := "start();\n"
	diags := []fix.Diagnostic{
		{RuleID: "explode", Line: 1, Column: 1},
		{RuleID: "append", Line: 1, Column: 1},
	}

	p := batch.New(batch.Options{Registry: reg})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err, "a panic without a structural cause does not abort")
	assert.Len(t, res.Applied, 1)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, fix.KindUnexpected, res.Failed[0].Kind)
}

func TestProcessCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := "const x = 1\n"
	diags := []fix.Diagnostic{
		{RuleID: "semi", Line: 1, Column: 12, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(ctx, source, diags)

	assert.Error(t, res.Err)
	assert.False(t, res.Success)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, fix.KindAborted, res.Failed[0].Kind)
	assert.Equal(t, source, res.FinalCode)
}

func TestProcessRefusesBrokenInput(t *testing.T) {
	source := "function f( {\n"
	diags := []fix.Diagnostic{
		{RuleID: "semi", Line: 1, Column: 1, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(context.Background(), source, diags)

	assert.Error(t, res.Err)
	assert.False(t, res.Success)
	assert.Equal(t, source, res.FinalCode)
	assert.Empty(t, res.Applied)
}

func TestProcessRelintWave(t *testing.T) {
	calls := 0
	relintFn := func(ctx context.Context, code string) ([]fix.Diagnostic, error) {
		calls++
		if strings.Contains(code, "var ") {
			return []fix.Diagnostic{
				{RuleID: "no-var", Line: 1, Column: 1, Message: "Unexpected var, use let or const instead."},
			}, nil
		}
		return nil, nil
	}

	source := "var a = 1\n"
	diags := []fix.Diagnostic{
		{RuleID: "semi", Line: 1, Column: 10, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{
		Registry: builtinRegistry(t),
		Relint:   relintFn,
	})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.Equal(t, "let a = 1;\n", res.FinalCode)
	assert.Len(t, res.Applied, 2)
	assert.Equal(t, 2, res.TotalDiagnostics)
	assert.GreaterOrEqual(t, calls, 2)
	assert.GreaterOrEqual(t, res.Waves, 1)
}

func TestProcessRelintFailureIsSoft(t *testing.T) {
	relintFn := func(ctx context.Context, code string) ([]fix.Diagnostic, error) {
		return nil, context.DeadlineExceeded
	}

	source := "const x = 1\n"
	diags := []fix.Diagnostic{
		{RuleID: "semi", Line: 1, Column: 12, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t), Relint: relintFn})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, "const x = 1;\n", res.FinalCode)
}

func TestProcessOrderingOnOneLine(t *testing.T) {
	// Both diagnostics target line 1; the higher column must be fixed
	// first so the earlier edit cannot shift it.
	source := `const s = "hi"` + "\n"
	diags := []fix.Diagnostic{
		{RuleID: "quotes", Line: 1, Column: 11, Message: "Strings must use singlequote."},
		{RuleID: "semi", Line: 1, Column: 15, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.Equal(t, "const s = 'hi';\n", res.FinalCode)
	assert.Len(t, res.Applied, 2)
}

func TestProcessLoggerFromContext(t *testing.T) {
	// No Options.Logger: the run picks up the logger attached to its
	// context.
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	ctx := logging.WithLogger(context.Background(), logger)

	source := "const x = 1\n"
	diags := []fix.Diagnostic{
		{RuleID: "semi", Line: 1, Column: 12, Message: "Missing semicolon."},
	}

	p := batch.New(batch.Options{Registry: builtinRegistry(t)})
	res := p.Process(ctx, source, diags)

	require.NoError(t, res.Err)
	assert.Equal(t, "const x = 1;\n", res.FinalCode)
	assert.Contains(t, buf.String(), "fix applied")
}

func TestProcessSemanticChecksOnByDefault(t *testing.T) {
	// The stub drops two whole functions while applying one fix, which
	// the structural check must flag. A zero Options value leaves the
	// check enabled.
	reg := fix.NewRegistry()
	reg.MustRegister(newStub("drop-tail", func(source string, d fix.Diagnostic) fix.Result {
		return fix.Applied("function a() {}\n", "dropped")
	}))

	source := "function a() {}\nfunction b() {}\nfunction c() {}\n"
	diags := []fix.Diagnostic{{RuleID: "drop-tail", Line: 1, Column: 1}}

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	p := batch.New(batch.Options{Registry: reg, Logger: logger})
	res := p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.Contains(t, buf.String(), "structural check")

	buf.Reset()
	p = batch.New(batch.Options{Registry: reg, Logger: logger, DisableSemanticChecks: true})
	res = p.Process(context.Background(), source, diags)

	require.NoError(t, res.Err)
	assert.NotContains(t, buf.String(), "structural check")
}

func itoa(n int) string {
	return string(rune('0' + n))
}
