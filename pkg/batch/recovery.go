package batch

import "context"

// Recovery strategy names, in the order they are attempted.
const (
	// StrategyContinueCurrent keeps the current code when it turns out to
	// be valid despite the triggering error.
	StrategyContinueCurrent = "continue-current"

	// StrategyRollbackSnapshot restores the last validated snapshot.
	StrategyRollbackSnapshot = "rollback-snapshot"

	// StrategyRevertLastFix undoes only the most recent applied fix via
	// its recorded original/fixed text pair.
	StrategyRevertLastFix = "revert-last-fix"

	// StrategyRestorePrebatch fails over to the full pre-batch snapshot.
	StrategyRestorePrebatch = "restore-prebatch"
)

// recover walks the recovery ladder and returns a syntactically valid
// source plus the name of the strategy that produced it. Each strategy is
// tried only after the previous one proved inapplicable.
func (p *Processor) recover(ctx context.Context, candidate string) (string, string) {
	if p.validator.ValidateSyntax(ctx, candidate) == nil {
		return candidate, StrategyContinueCurrent
	}

	if snap, ok := p.validator.Snapshot(snapshotLastGood); ok {
		if p.validator.ValidateSyntax(ctx, snap) == nil {
			return snap, StrategyRollbackSnapshot
		}
	}

	if reverted, ok := p.validator.RevertLastFix(candidate); ok {
		if p.validator.ValidateSyntax(ctx, reverted) == nil {
			return reverted, StrategyRevertLastFix
		}
	}

	pre, _ := p.validator.Snapshot(snapshotPreBatch)
	return pre, StrategyRestorePrebatch
}
