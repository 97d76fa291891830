// Package batch orders, applies, validates, and rolls back fix sequences.
//
// A batch run is a small state machine (analyzing, fixing, validating,
// complete, with error reachable from anywhere). Diagnostics are applied
// bottom-to-top, right-to-left so no edit shifts a pending diagnostic's
// position. Every applied fix is syntax-validated before it is kept; a fix
// that breaks the parse triggers the recovery ladder and aborts the rest of
// the run. Runs are strictly single-threaded: fixes mutate one shared text
// buffer and depend on deterministic offset ordering.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/esfix/internal/logging"
	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
	"github.com/yaklabco/esfix/pkg/validate"
)

// Snapshot labels used by the recovery ladder.
const (
	snapshotPreBatch = "pre-batch"
	snapshotLastGood = "last-good"
)

// Processor runs batches of fixes over a single source buffer. A processor
// handles one run at a time; its validator state is reset at the start of
// each run.
type Processor struct {
	opts      Options
	validator *validate.Validator
	log       *log.Logger
}

// New creates a processor with the given options.
func New(opts Options) *Processor {
	opts = opts.withDefaults()
	return &Processor{
		opts:      opts,
		validator: validate.New(!opts.DisableSemanticChecks),
	}
}

// stepOutcome is the result of one per-diagnostic step.
type stepOutcome struct {
	code     string
	summary  fix.Summary
	abort    bool
	strategy string
}

// Process applies the given diagnostics to source and returns a Result.
// It never panics and never returns a nil Result; cancellation and
// unexpected failures are reported through the Result.
func (p *Processor) Process(ctx context.Context, source string, diags []fix.Diagnostic) *Result {
	start := time.Now()
	res := &Result{
		SourceCode:       source,
		FinalCode:        source,
		TotalDiagnostics: len(diags),
		Phase:            PhaseAnalyzing,
	}
	defer func() { res.ProcessingTime = time.Since(start) }()

	p.log = p.opts.Logger
	if p.log == nil {
		p.log = logging.FromContext(ctx)
	}

	if err := ctx.Err(); err != nil {
		res.failf(err)
		p.abortRemaining(res, diags, "batch cancelled")
		return res
	}

	p.validator.Reset()
	p.validator.CreateSnapshot(snapshotPreBatch, source)
	p.validator.CreateSnapshot(snapshotLastGood, source)

	// Input that does not parse cannot be repaired positionally; refuse
	// to touch it rather than guess.
	if err := p.validator.ValidateSyntax(ctx, source); err != nil {
		res.failf(fmt.Errorf("input source does not parse: %w", err))
		return res
	}

	// attempted filters re-lint results down to diagnostics not yet
	// handled this run; counted keeps TotalDiagnostics from double
	// counting a diagnostic the linter reports across waves.
	attempted := make(map[string]bool, len(diags))
	counted := make(map[string]bool, len(diags))
	for _, d := range diags {
		attempted[d.Key()] = true
		counted[d.Key()] = true
	}

	pending := make([]fix.Diagnostic, len(diags))
	copy(pending, diags)
	fix.SortForBatch(pending)

	res.Phase = PhaseFixing
	code := source
	aborted := false

	for {
		if len(pending) == 0 {
			next, ok := p.nextWaveDiagnostics(ctx, code, res, attempted, counted)
			if !ok {
				break
			}
			pending = next
		}

		wave := pending
		if p.opts.Relint != nil && len(wave) > p.opts.WaveSize {
			wave = wave[:p.opts.WaveSize]
		}
		pending = pending[len(wave):]

		code, aborted = p.runWave(ctx, code, wave, res)
		if aborted {
			p.abortRemaining(res, pending, "batch aborted before this diagnostic was attempted")
			break
		}

		// Mid-run wave boundary: refresh the remaining list so fixes
		// that shifted line numbers are re-reported at their current
		// positions. The stale remainder is released for re-discovery.
		if p.opts.Relint != nil && len(pending) > 0 && res.Waves < p.opts.MaxWaves {
			for _, d := range pending {
				delete(attempted, d.Key())
			}
			next, ok := p.nextWaveDiagnostics(ctx, code, res, attempted, counted)
			if ok {
				pending = next
			} else {
				// Failed-soft or nothing reported: keep the stale list.
				for _, d := range pending {
					attempted[d.Key()] = true
				}
			}
		}
	}

	res.FinalCode = code
	res.FixedCount = len(res.Applied)

	if res.Err != nil {
		return res
	}

	res.Phase = PhaseValidating
	if err := p.validator.ValidateSyntax(ctx, code); err != nil {
		// The per-fix validation makes this unreachable short of validator
		// disagreement; fail over to the pre-batch snapshot regardless.
		pre, _ := p.validator.Snapshot(snapshotPreBatch)
		res.FinalCode = pre
		res.Strategy = StrategyRestorePrebatch
		res.failf(fmt.Errorf("final validation failed: %w", err))
		return res
	}

	if pre, ok := p.validator.Snapshot(snapshotPreBatch); ok {
		warnings, err := p.validator.ValidateSemantics(pre, code, len(res.Applied))
		for _, w := range warnings {
			p.log.Warn("structural check", logging.FieldOutput, w)
		}
		if err != nil {
			p.log.Warn("structural check tripped", logging.FieldError, err)
		}
	}

	res.Phase = PhaseComplete
	res.Success = !aborted
	return res
}

// runWave applies one wave of diagnostics. It returns the advanced code
// and whether the run must abort.
func (p *Processor) runWave(ctx context.Context, code string, wave []fix.Diagnostic, res *Result) (string, bool) {
	for i, d := range wave {
		if ctx.Err() != nil {
			res.failf(ctx.Err())
			p.abortRemaining(res, wave[i:], "batch cancelled")
			return code, true
		}

		out := p.step(ctx, code, d, len(res.Applied))
		code = out.code
		if out.strategy != "" {
			res.Strategy = out.strategy
		}

		if out.summary.Success {
			res.Applied = append(res.Applied, out.summary)
			p.log.Debug("fix applied",
				logging.FieldRule, d.RuleID,
				logging.FieldLine, d.Line,
				logging.FieldColumn, d.Column)
		} else {
			res.Failed = append(res.Failed, out.summary)
			p.log.Debug("fix not applied",
				logging.FieldRule, d.RuleID,
				logging.FieldLine, d.Line,
				logging.FieldKind, string(out.summary.Kind),
				logging.FieldError, out.summary.Message)
		}

		if out.abort {
			res.failf(fmt.Errorf("fix for %s at %s broke the source: %s",
				d.RuleID, d.Position(), out.summary.Message))
			p.abortRemaining(res, wave[i+1:], "batch aborted before this diagnostic was attempted")
			return code, true
		}
	}
	return code, false
}

// step runs the full per-diagnostic pipeline: safety check, fixer lookup,
// canFix, fix (panic-guarded), syntax validation, semantic validation.
func (p *Processor) step(ctx context.Context, code string, d fix.Diagnostic, applied int) stepOutcome {
	fail := func(kind fix.FailureKind, msg string) stepOutcome {
		return stepOutcome{code: code, summary: failedSummary(d, kind, msg)}
	}

	if !p.opts.Registry.IsFixable(d.RuleID) {
		return fail(fix.KindNoFixer, "no enabled fixer registered for rule")
	}

	if zone := scan.New(code).SafeEditZone(d.Line, d.Column); !zone.Safe {
		return fail(fix.KindUnsafeContext, zone.Reason)
	}

	fixer, ok := p.opts.Registry.Get(d.RuleID)
	if !ok {
		return fail(fix.KindNoFixer, "fixer disappeared from registry")
	}

	result, panicMsg := runFixer(fixer, code, d)
	if panicMsg != "" {
		recovered, strategy := p.recover(ctx, code)
		out := fail(fix.KindUnexpected, "fixer panic: "+panicMsg)
		out.code = recovered
		out.strategy = strategy
		out.abort = indicatesStructuralCause(panicMsg)
		return out
	}
	if !result.Success {
		return fail(fix.KindCannotHandle, result.Message)
	}

	after := result.Code
	if after == code {
		return fail(fix.KindCannotHandle, "fixer reported success without changing the source")
	}
	if !fixer.Validate(code, after) {
		return fail(fix.KindCannotHandle, "fixer self-check rejected the edit")
	}

	if err := p.validator.ValidateSyntax(ctx, after); err != nil {
		// The edit is discarded; recover from the last known-good code
		// and abort the remainder of the run.
		recovered, strategy := p.recover(ctx, code)
		out := fail(fix.KindSyntax, err.Error())
		out.code = recovered
		out.strategy = strategy
		out.abort = true
		return out
	}

	if pre, ok := p.validator.Snapshot(snapshotPreBatch); ok {
		warnings, err := p.validator.ValidateSemantics(pre, after, applied+1)
		if err != nil {
			return fail(fix.KindSemantic, err.Error())
		}
		if len(warnings) > 0 {
			result.Warnings = append(result.Warnings, warnings...)
		}
	}

	offset, orig, fixed := fix.DiffRegion(code, after)
	summary := fix.Summary{
		RuleID:       d.RuleID,
		Line:         d.Line,
		Column:       d.Column,
		Success:      true,
		Message:      result.Message,
		AppliedAt:    time.Now(),
		StartOffset:  offset,
		OriginalText: orig,
		FixedText:    fixed,
		Warnings:     result.Warnings,
	}
	p.validator.RecordFix(summary)
	p.validator.CreateSnapshot(snapshotLastGood, after)

	return stepOutcome{code: after, summary: summary}
}

// runFixer invokes canFix and fix behind a panic guard. A panicking fixer
// must never take the batch down.
func runFixer(fixer fix.Fixer, code string, d fix.Diagnostic) (result fix.Result, panicMsg string) {
	defer func() {
		if r := recover(); r != nil {
			result = fix.Refused(code, "fixer panicked")
			panicMsg = fmt.Sprint(r)
		}
	}()

	if !fixer.CanFix(code, d) {
		return fix.Refused(code, "fixer declined this instance"), ""
	}
	return fixer.Fix(code, d), ""
}

// indicatesStructuralCause reports whether a panic message points at a
// syntax- or validation-level failure, which escalates to a batch abort.
func indicatesStructuralCause(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "syntax") || strings.Contains(lower, "validation")
}

// nextWaveDiagnostics re-lints the current code and returns the sorted,
// not-yet-attempted diagnostics for the next wave. The second return is
// false when re-linting is unavailable, failed (soft), capped by MaxWaves,
// or reported nothing new.
func (p *Processor) nextWaveDiagnostics(ctx context.Context, code string, res *Result, attempted, counted map[string]bool) ([]fix.Diagnostic, bool) {
	if p.opts.Relint == nil || res.Waves >= p.opts.MaxWaves {
		return nil, false
	}

	waveCtx, cancel := context.WithTimeout(ctx, p.opts.RelintTimeout)
	defer cancel()

	fresh, err := p.opts.Relint(waveCtx, code)
	if err != nil {
		p.log.Warn("re-lint failed, continuing with stale diagnostics",
			logging.FieldError, err)
		return nil, false
	}
	res.Waves++

	var next []fix.Diagnostic
	for _, d := range fresh {
		key := d.Key()
		if attempted[key] {
			continue
		}
		attempted[key] = true
		if !counted[key] {
			counted[key] = true
			res.TotalDiagnostics++
		}
		next = append(next, d)
	}
	if len(next) == 0 {
		return nil, false
	}
	fix.SortForBatch(next)
	return next, true
}

// abortRemaining records every unattempted diagnostic as failed.
func (p *Processor) abortRemaining(res *Result, remaining []fix.Diagnostic, msg string) {
	for _, d := range remaining {
		res.Failed = append(res.Failed, failedSummary(d, fix.KindAborted, msg))
	}
}

func failedSummary(d fix.Diagnostic, kind fix.FailureKind, msg string) fix.Summary {
	return fix.Summary{
		RuleID:    d.RuleID,
		Line:      d.Line,
		Column:    d.Column,
		Success:   false,
		Message:   msg,
		Kind:      kind,
		AppliedAt: time.Now(),
	}
}
