// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zinclang/zinc/internal/config"
	"github.com/zinclang/zinc/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check Zinc source files for syntax errors",
	Long: `Check Zinc source files for syntax errors without compiling them.

Without arguments, the configured source paths are scanned. Exit code
is nonzero when any file has errors.

Example:
  zinc check main.zn
  zinc check`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files, err := collectSources(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printInfo("No source files found")
		return nil
	}

	failed := 0
	for _, file := range files {
		_, errs := parser.Parse(string(file.Content))
		if len(errs) > 0 {
			failed++
			printError("%s: %d syntax error(s)", file.Path, len(errs))
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  %s\n", e)
			}
			continue
		}
		printInfo("%s: OK", file.Path)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) with syntax errors", failed)
	}
	return nil
}
