// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for the
// zinc compiler.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the zinc configuration.
type Config struct {
	// OutputDir is the directory generated .rs files are written to.
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir"`

	// Verify enables syntax verification of the emitted Rust.
	Verify bool `mapstructure:"verify" yaml:"verify"`

	// Source contains source scanning configuration.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Watch contains file watching configuration.
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`

	// Graph contains call-graph export configuration.
	Graph GraphConfig `mapstructure:"graph" yaml:"graph"`
}

// SourceConfig contains source scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan.
	Paths []string `mapstructure:"paths" yaml:"paths"`

	// Include is a list of glob patterns to include.
	Include []string `mapstructure:"include" yaml:"include"`

	// Exclude is a list of glob patterns to exclude.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds.
	Debounce int `mapstructure:"debounce" yaml:"debounce"`

	// OnChange is a command to run after each recompilation.
	OnChange string `mapstructure:"onChange" yaml:"onChange"`
}

// GraphConfig contains call-graph export configuration.
type GraphConfig struct {
	// Format is the export format (dot, svg).
	Format string `mapstructure:"format" yaml:"format"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"zinc.yaml",
	".zinc.yaml",
}

// supportedGraphFormats is the list of supported graph export formats.
var supportedGraphFormats = []string{"dot", "svg"}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Verify:    false,
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: []string{"**/*.zn"},
			Exclude: []string{
				"target/**",
				".git/**",
				"**/testdata/**",
			},
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
		Graph: GraphConfig{
			Format: "dot",
		},
	}
}

// Load loads the configuration from a file. When configPath is empty,
// the known config file names are searched in order; a missing config
// file yields the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("outputDir", ".")
	v.SetDefault("verify", false)
	v.SetDefault("source.paths", []string{"."})
	v.SetDefault("source.include", []string{"**/*.zn"})
	v.SetDefault("source.exclude", []string{"target/**", ".git/**", "**/testdata/**"})
	v.SetDefault("watch.debounce", 500)
	v.SetDefault("graph.format", "dot")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.OutputDir == "" {
		errs = append(errs, ValidationError{
			Field:   "outputDir",
			Message: "output directory is required",
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if c.Graph.Format != "" && !contains(supportedGraphFormats, c.Graph.Format) {
		errs = append(errs, ValidationError{
			Field:   "graph.format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Graph.Format, strings.Join(supportedGraphFormats, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
