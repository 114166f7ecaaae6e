// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// SyntaxIssue is a syntax problem found in emitted Rust source.
type SyntaxIssue struct {
	// Line and Column are 1-based positions in the emitted source.
	Line   int
	Column int

	// Snippet is the offending source fragment.
	Snippet string

	// Missing is true for a node the parser had to invent to recover.
	Missing bool
}

func (i SyntaxIssue) String() string {
	kind := "syntax error"
	if i.Missing {
		kind = "missing syntax"
	}
	return fmt.Sprintf("%d:%d: %s near %q", i.Line, i.Column, kind, i.Snippet)
}

// Verifier parses emitted Rust with tree-sitter and reports syntax
// errors before the Rust toolchain ever sees the file.
type Verifier struct {
	parser *sitter.Parser
}

// NewVerifier creates a Rust syntax verifier.
func NewVerifier() *Verifier {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return &Verifier{parser: parser}
}

// Verify parses source and returns any syntax issues found.
func (v *Verifier) Verify(ctx context.Context, source []byte) ([]SyntaxIssue, error) {
	tree, err := v.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse emitted Rust: %w", err)
	}
	defer tree.Close()

	var issues []SyntaxIssue
	collectIssues(tree.RootNode(), source, &issues)
	return issues, nil
}

func collectIssues(node *sitter.Node, source []byte, issues *[]SyntaxIssue) {
	if node == nil {
		return
	}
	if node.IsError() || node.IsMissing() {
		start := node.StartPoint()
		snippet := node.Content(source)
		if len(snippet) > 40 {
			snippet = snippet[:40] + "..."
		}
		*issues = append(*issues, SyntaxIssue{
			Line:    int(start.Row) + 1,
			Column:  int(start.Column) + 1,
			Snippet: snippet,
			Missing: node.IsMissing(),
		})
		return
	}
	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectIssues(node.Child(i), source, issues)
	}
}
