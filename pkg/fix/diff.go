package fix

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between the original and repaired source.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Hunks are the change hunks with surrounding context.
	Hunks []DiffHunk

	// Additions counts added lines across all hunks.
	Additions int

	// Deletions counts removed lines across all hunks.
	Deletions int
}

// DiffHunk is one hunk of a unified diff.
type DiffHunk struct {
	OriginalStart int // 1-based first line in the original
	OriginalCount int
	ModifiedStart int // 1-based first line in the repaired text
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a single display line within a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string // line text without the +/-/space prefix
}

// DiffLineKind classifies a hunk line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// GenerateDiff computes a unified diff between original and modified.
// Returns nil when the two texts are line-for-line identical.
func GenerateDiff(path, original, modified string) *Diff {
	if original == "" && modified == "" {
		return nil
	}

	origLines := splitDiffInput(original)
	modLines := splitDiffInput(modified)

	ops := diffOps(origLines, modLines)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges reports whether the diff carries any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format, without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			b.WriteString(linePrefix(line.Kind))
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FullString renders the diff with the git header on top.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func linePrefix(kind DiffLineKind) string {
	switch kind {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// splitDiffInput splits text into lines, dropping the final empty element
// a trailing newline produces.
func splitDiffInput(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffOp is one line-level operation in the raw diff sequence.
type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps walks the original and modified lines against their longest
// common subsequence, emitting context lines for LCS matches and
// remove/add runs for everything between them.
func diffOps(orig, mod []string) []diffOp {
	lcs := longestCommonSubsequence(orig, mod)

	var ops []diffOp
	oi, mi, li := 0, 0, 0
	for oi < len(orig) || mi < len(mod) {
		if li < len(lcs) && oi < len(orig) && mi < len(mod) &&
			orig[oi] == lcs[li] && mod[mi] == lcs[li] {
			ops = append(ops, diffOp{kind: DiffLineContext, content: orig[oi]})
			oi++
			mi++
			li++
			continue
		}
		for oi < len(orig) && (li >= len(lcs) || orig[oi] != lcs[li]) {
			ops = append(ops, diffOp{kind: DiffLineRemove, content: orig[oi]})
			oi++
		}
		for mi < len(mod) && (li >= len(lcs) || mod[mi] != lcs[li]) {
			ops = append(ops, diffOp{kind: DiffLineAdd, content: mod[mi]})
			mi++
		}
	}
	return ops
}

// groupHunks groups the op sequence into hunks, padding each change run
// with context lines and merging runs whose context would overlap.
func groupHunks(ops []diffOp) []DiffHunk {
	type span struct{ start, end int }

	var changes []span
	open := -1
	for i, op := range ops {
		if op.kind != DiffLineContext {
			if open < 0 {
				open = i
			}
		} else if open >= 0 {
			changes = append(changes, span{open, i})
			open = -1
		}
	}
	if open >= 0 {
		changes = append(changes, span{open, len(ops)})
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []DiffHunk
	for i := 0; i < len(changes); {
		j := i + 1
		for j < len(changes) && changes[j].start-changes[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, changes[i].start, changes[j-1].end))
		i = j
	}
	return hunks
}

// buildHunk assembles one hunk covering ops[changeStart:changeEnd), widened
// by the surrounding context lines.
func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for i := 0; i < start; i++ {
		if ops[i].kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if ops[i].kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}
	return hunk
}

// longestCommonSubsequence computes the line-level LCS with the standard
// dynamic-programming table.
func longestCommonSubsequence(orig, mod []string) []string {
	if len(orig) == 0 || len(mod) == 0 {
		return nil
	}

	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}
	for i := 1; i <= len(orig); i++ {
		for j := 1; j <= len(mod); j++ {
			if orig[i-1] == mod[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	length := dp[len(orig)][len(mod)]
	if length == 0 {
		return nil
	}

	lcs := make([]string, length)
	i, j, k := len(orig), len(mod), length-1
	for i > 0 && j > 0 {
		switch {
		case orig[i-1] == mod[j-1]:
			lcs[k] = orig[i-1]
			i--
			j--
			k--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return lcs
}
