// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.OutputDir)
	assert.False(t, cfg.Verify)
	assert.Equal(t, []string{"."}, cfg.Source.Paths)
	assert.Equal(t, []string{"**/*.zn"}, cfg.Source.Include)
	assert.Equal(t, 500, cfg.Watch.Debounce)
	assert.Equal(t, "dot", cfg.Graph.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zinc.yaml")
	content := `
outputDir: build
verify: true
source:
  paths:
    - src
  include:
    - "**/*.zn"
  exclude:
    - "vendor/**"
watch:
  debounce: 250
  onChange: cargo fmt
graph:
  format: svg
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "build", cfg.OutputDir)
	assert.True(t, cfg.Verify)
	assert.Equal(t, []string{"src"}, cfg.Source.Paths)
	assert.Equal(t, []string{"vendor/**"}, cfg.Source.Exclude)
	assert.Equal(t, 250, cfg.Watch.Debounce)
	assert.Equal(t, "cargo fmt", cfg.Watch.OnChange)
	assert.Equal(t, "svg", cfg.Graph.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".zinc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outputDir: out\n"), 0o644))

	cfg, err := LoadFromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestValidate_Errors(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = ""
	cfg.Watch.Debounce = -1
	cfg.Graph.Format = "png"

	err := cfg.Validate()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
	assert.Contains(t, err.Error(), "outputDir")
	assert.Contains(t, err.Error(), "debounce")
	assert.Contains(t, err.Error(), "graph.format")
}

func TestValidationErrorFormatting(t *testing.T) {
	single := ValidationErrors{{Field: "outputDir", Message: "required"}}
	assert.Equal(t, "config validation error: outputDir: required", single.Error())

	var empty ValidationErrors
	assert.Equal(t, "no validation errors", empty.Error())
}
