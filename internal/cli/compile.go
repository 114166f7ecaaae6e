// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zinclang/zinc/internal/analyzer"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/codegen"
	"github.com/zinclang/zinc/internal/config"
	"github.com/zinclang/zinc/internal/parser"
	"github.com/zinclang/zinc/internal/scanner"
)

var (
	compileStdout bool
	compileVerify bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile Zinc source files to Rust",
	Long: `Compile Zinc source files to Rust source code.

Without arguments, the configured source paths are scanned for .zn
files and each is compiled into the output directory. With file
arguments, only those files are compiled.

Example:
  zinc compile                         # Compile configured source paths
  zinc compile main.zn                 # Compile a single file
  zinc compile main.zn -o out/main.rs  # Choose the output path
  zinc compile --emit-stdout main.zn   # Print Rust to stdout
  zinc compile --verify main.zn        # Syntax-check the emitted Rust`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().BoolVar(&compileStdout, "emit-stdout", false, "print generated Rust to stdout instead of writing files")
	compileCmd.Flags().BoolVar(&compileVerify, "verify", false, "parse the emitted Rust and fail on syntax errors")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if compileVerify {
		cfg.Verify = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files, err := collectSources(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printInfo("No source files found")
		return nil
	}

	if output != "" && len(files) > 1 {
		return fmt.Errorf("--output requires a single input file, got %d", len(files))
	}

	for _, file := range files {
		printVerbose("Compiling %s", file.Path)
		rust, err := compileSource(string(file.Content))
		if err != nil {
			return fmt.Errorf("%s: %w", file.Path, err)
		}

		if cfg.Verify {
			if err := verifyRust(rust); err != nil {
				return fmt.Errorf("%s: %w", file.Path, err)
			}
			printVerbose("Verified emitted Rust for %s", file.Path)
		}

		if compileStdout {
			fmt.Print(rust)
			continue
		}

		outPath := output
		if outPath == "" {
			outPath = filepath.Join(cfg.OutputDir, file.Name()+".rs")
		}
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(outPath, []byte(rust), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printInfo("Compiled %s -> %s", file.Path, outPath)
	}

	return nil
}

// collectSources resolves the files to compile: explicit arguments, or
// the configured source paths.
func collectSources(cfg *config.Config, args []string) ([]scanner.SourceFile, error) {
	s := scanner.New(scanner.Config{
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	files, err := s.ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}
	printVerbose("Discovered %d source files", len(files))
	return files, nil
}

// compileSource runs the full pipeline on one source text and returns
// the rendered Rust program.
func compileSource(src string) (string, error) {
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		return "", syntaxErrors(errs)
	}

	a, err := atlas.Build(prog)
	if err != nil {
		return "", err
	}

	res := analyzer.NewResolver(a)
	if _, err := res.Resolve(); err != nil {
		return "", err
	}

	gen := codegen.New(a, res)
	return gen.Generate().Render(), nil
}

// analyzeSource runs the pipeline up to resolution, for commands that
// only need the Atlas.
func analyzeSource(src string) (*atlas.Atlas, error) {
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		return nil, syntaxErrors(errs)
	}

	a, err := atlas.Build(prog)
	if err != nil {
		return nil, err
	}

	res := analyzer.NewResolver(a)
	if _, err := res.Resolve(); err != nil {
		return nil, err
	}
	return a, nil
}

func syntaxErrors(errs []*parser.Error) error {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return fmt.Errorf("syntax errors:\n  %s", strings.Join(parts, "\n  "))
}

func verifyRust(rust string) error {
	verifier := codegen.NewVerifier()
	issues, err := verifier.Verify(context.Background(), []byte(rust))
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return fmt.Errorf("emitted Rust has syntax issues:\n  %s", strings.Join(parts, "\n  "))
}
