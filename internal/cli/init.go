// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zinclang/zinc/internal/config"
	"github.com/zinclang/zinc/internal/util"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new zinc configuration file",
	Long: `Initialize a new zinc configuration file in the current directory.

This command creates a zinc.yaml file with sensible defaults that you
can customize for your project.

Example:
  zinc init                            # Create zinc.yaml
  zinc init --force                    # Overwrite an existing config`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "zinc.yaml"

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	cfg := config.Default()

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}
	projectName := util.TitleCase(filepath.Base(projectRoot))

	content, err := buildConfigYAML(cfg, projectName)
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Output directory: %s", cfg.OutputDir)
	printVerbose("Paths: %s", strings.Join(cfg.Source.Paths, ", "))
	return nil
}

// buildConfigYAML renders the config as YAML with a commented header.
func buildConfigYAML(cfg *config.Config, projectName string) (string, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# zinc configuration for %s\n", projectName)
	sb.WriteString("# Generated by `zinc init`.\n")
	sb.WriteString("#\n")
	sb.WriteString("# outputDir: directory compiled .rs files are written to\n")
	sb.WriteString("# verify:    parse emitted Rust and fail on syntax errors\n")
	sb.WriteString("# source:    paths and glob patterns selecting .zn files\n")
	sb.WriteString("# watch:     debounce (ms) and optional post-build command\n")
	sb.WriteString("\n")
	sb.Write(body)
	return sb.String(), nil
}
