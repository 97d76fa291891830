// Package analysis turns a raw batch result into an aggregated report:
// counts by rule, failures grouped by reason, and human-readable
// recommendations for what to do about the unresolved remainder.
package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/esfix/pkg/batch"
	"github.com/yaklabco/esfix/pkg/fix"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

const defaultMessageCap = 5

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap    map[string]*RuleAnalysis
	kindMap    map[fix.FailureKind]*FailureGroup
	kindRules  map[fix.FailureKind]map[string]bool
	kindMsgs   map[fix.FailureKind]map[string]bool
	messageCap int
}

func newAnalysisContext(messageCap int) *analysisContext {
	if messageCap <= 0 {
		messageCap = defaultMessageCap
	}
	return &analysisContext{
		ruleMap:    make(map[string]*RuleAnalysis),
		kindMap:    make(map[fix.FailureKind]*FailureGroup),
		kindRules:  make(map[fix.FailureKind]map[string]bool),
		kindMsgs:   make(map[fix.FailureKind]map[string]bool),
		messageCap: messageCap,
	}
}

func (ctx *analysisContext) rule(ruleID string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID}
	}
	return ctx.ruleMap[ruleID]
}

func (ctx *analysisContext) recordFailure(s fix.Summary) {
	kind := s.Kind
	if kind == "" {
		kind = fix.KindUnexpected
	}
	if _, ok := ctx.kindMap[kind]; !ok {
		ctx.kindMap[kind] = &FailureGroup{Kind: kind}
		ctx.kindRules[kind] = make(map[string]bool)
		ctx.kindMsgs[kind] = make(map[string]bool)
	}
	group := ctx.kindMap[kind]
	group.Count++
	ctx.kindRules[kind][s.RuleID] = true

	if s.Message != "" && !ctx.kindMsgs[kind][s.Message] &&
		len(ctx.kindMsgs[kind]) < ctx.messageCap {
		ctx.kindMsgs[kind][s.Message] = true
		group.Messages = append(group.Messages, s.Message)
	}
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for _, ra := range ctx.ruleMap {
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func (ctx *analysisContext) buildFailures() []FailureGroup {
	result := make([]FailureGroup, 0, len(ctx.kindMap))
	for kind, group := range ctx.kindMap {
		for r := range ctx.kindRules[kind] {
			group.Rules = append(group.Rules, r)
		}
		slices.Sort(group.Rules)
		result = append(result, *group)
	}
	slices.SortFunc(result, func(left, right FailureGroup) int {
		if c := cmp.Compare(right.Count, left.Count); c != 0 {
			return c
		}
		return cmp.Compare(string(left.Kind), string(right.Kind))
	})
	return result
}

// Analyze transforms a batch Result into a Report.
// It performs a single pass through the fix summaries to compute all views.
func Analyze(result *batch.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	report.Totals = Totals{
		Diagnostics:  result.TotalDiagnostics,
		Applied:      len(result.Applied),
		Failed:       len(result.Failed),
		Waves:        result.Waves,
		Success:      result.Success,
		ProcessingMS: result.ProcessingTime.Milliseconds(),
	}
	if result.TotalDiagnostics > 0 {
		report.Totals.FixRate = float64(len(result.Applied)) / float64(result.TotalDiagnostics)
	}

	ctx := newAnalysisContext(opts.MessageCap)

	for _, s := range result.Applied {
		ra := ctx.rule(s.RuleID)
		ra.Attempts++
		ra.Applied++
	}
	for _, s := range result.Failed {
		ra := ctx.rule(s.RuleID)
		ra.Attempts++
		ra.Failed++
		ctx.recordFailure(s)
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeFailures {
		report.Failures = ctx.buildFailures()
	}
	if opts.IncludeRecommendations {
		report.Recommendations = recommend(ctx)
	}

	return report
}

// recommend derives follow-up suggestions from the failure groups.
func recommend(ctx *analysisContext) []string {
	var recs []string

	if group, ok := ctx.kindMap[fix.KindNoFixer]; ok {
		var rules []string
		for r := range ctx.kindRules[fix.KindNoFixer] {
			rules = append(rules, r)
		}
		slices.Sort(rules)
		recs = append(recs, fmt.Sprintf(
			"%d diagnostic(s) have no enabled fixer (%s); enable or register fixers for these rules",
			group.Count, strings.Join(rules, ", ")))
	}

	if group, ok := ctx.kindMap[fix.KindUnsafeContext]; ok {
		recs = append(recs, fmt.Sprintf(
			"%d diagnostic(s) point inside strings, comments, or templates; their positions may be stale, re-lint and retry",
			group.Count))
	}

	if group, ok := ctx.kindMap[fix.KindSyntax]; ok {
		recs = append(recs, fmt.Sprintf(
			"%d fix(es) produced unparseable code and were rolled back; report the rule and source pattern",
			group.Count))
	}

	if group, ok := ctx.kindMap[fix.KindAborted]; ok {
		recs = append(recs, fmt.Sprintf(
			"%d diagnostic(s) were never attempted because the batch aborted; re-run against the returned source",
			group.Count))
	}

	if group, ok := ctx.kindMap[fix.KindCannotHandle]; ok {
		recs = append(recs, fmt.Sprintf(
			"%d diagnostic(s) did not match their fixer's supported pattern; fix these by hand",
			group.Count))
	}

	return recs
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.RuleID, right.RuleID)
		case SortByFailures:
			// Most failures first, then most attempts
			result := cmp.Compare(right.Failed, left.Failed)
			if result == 0 {
				result = cmp.Compare(right.Attempts, left.Attempts)
			}
			if result == 0 {
				result = cmp.Compare(left.RuleID, right.RuleID)
			}
			return result
		default: // SortByCount
			result := cmp.Compare(left.Attempts, right.Attempts)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.RuleID, right.RuleID)
			}
			return result
		}
	})
}
