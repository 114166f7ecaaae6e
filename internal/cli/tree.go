// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/parser"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the parse tree of a Zinc source file",
	Long: `Print the parse tree of a Zinc source file as an indented outline,
one node per line with its source interval.

Example:
  zinc tree main.zn`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	prog, errs := parser.Parse(string(content))
	if len(errs) > 0 {
		return syntaxErrors(errs)
	}

	fmt.Print(ast.Dump(prog))
	return nil
}
