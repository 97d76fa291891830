// Package validate checks repaired ECMAScript sources for structural damage.
//
// The validator runs two layers. Syntax validation parses the source with a
// real JavaScript grammar and fails on any parse error; a cheap bracket
// balance pre-check catches gross damage before paying for a parse.
// Semantic validation compares token populations before and after a repair
// run and flags constructs that vanished without a fix that should have
// removed them.
//
// The validator also keeps the per-run fix history and named snapshots that
// the batch processor's recovery strategies restore from.
package validate

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/yaklabco/esfix/pkg/fix"
)

// SyntaxError describes the first structural problem found in a source.
type SyntaxError struct {
	Line   int
	Column int
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Detail)
}

// Validator checks sources and tracks repair state for one batch run.
// Methods are safe for concurrent use; the underlying parser is guarded.
type Validator struct {
	mu        sync.Mutex
	parser    *sitter.Parser
	semantic  bool
	history   []fix.Summary
	snapshots map[string]string
}

// New creates a validator. When semantic is false ValidateSemantics
// reports nothing.
func New(semantic bool) *Validator {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	return &Validator{
		parser:    parser,
		semantic:  semantic,
		snapshots: make(map[string]string),
	}
}

// ValidateSyntax parses the source with the JavaScript grammar and returns
// a SyntaxError if the source no longer parses. A bracket balance check
// runs first so obviously broken sources fail without a parse.
func (v *Validator) ValidateSyntax(ctx context.Context, code string) error {
	if err := CheckBrackets(code); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	tree, err := v.parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return fmt.Errorf("parsing source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	if node := firstErrorNode(root); node != nil {
		point := node.StartPoint()
		detail := "unparseable region"
		if node.IsMissing() {
			detail = "missing " + node.Type()
		}
		return &SyntaxError{
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
			Detail: detail,
		}
	}
	return &SyntaxError{Line: 1, Column: 1, Detail: "source failed to parse"}
}

// firstErrorNode walks the tree depth first for the first ERROR or missing
// node.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// Reset clears the fix history and all snapshots, readying the validator
// for the next batch run.
func (v *Validator) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = nil
	v.snapshots = make(map[string]string)
}
