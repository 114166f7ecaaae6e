// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/config"
)

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the call graph of a Zinc program",
	Long: `Export the reachability call graph of a Zinc program, rooted at
main(). Nodes are specializations; spawn-reached specializations are
marked asynchronous.

Example:
  zinc graph main.zn -o calls.dot
  zinc graph main.zn -o calls.svg --format svg`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "", "export format: dot, svg")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format := cfg.Graph.Format
	if graphFormat != "" {
		format = graphFormat
	}
	if format != "dot" && format != "svg" {
		return fmt.Errorf("unsupported graph format %q, must be dot or svg", format)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	a, err := analyzeSource(string(content))
	if err != nil {
		return err
	}

	outPath := output
	if outPath == "" {
		outPath = "calls." + format
	}

	exportFormat := atlas.FormatDOT
	if format == "svg" {
		exportFormat = atlas.FormatSVG
	}
	if err := a.Export(outPath, exportFormat); err != nil {
		return fmt.Errorf("failed to export call graph: %w", err)
	}

	printInfo("Call graph written to: %s", outPath)
	return nil
}
