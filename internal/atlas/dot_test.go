// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package atlas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinclang/zinc/internal/types"
)

func TestExport_WritesCallGraph(t *testing.T) {
	a := buildAtlas(t, `
fn work(n) { return n }

fn main() {
    x = work(1)
}
`)
	a.AddSpecialization("work", []types.Base{types.Integer}, a.FunctionDefs["work"], "main")

	path := filepath.Join(t.TempDir(), "calls.dot")
	require.NoError(t, a.Export(path, FormatDOT))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Contains(t, string(content), "work_i64")
}

func TestExport_MarksAsyncNodes(t *testing.T) {
	a := buildAtlas(t, `
fn worker(n) { print("{n}") }

fn main() {
    spawn worker(1)
}
`)
	mangled := a.AddSpecialization("worker", []types.Base{types.Integer}, a.FunctionDefs["worker"], "main")
	a.Functions[mangled].IsAsync = true

	path := filepath.Join(t.TempDir(), "calls.svg")
	require.NoError(t, a.Export(path, FormatSVG))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "worker_i64 (async)")
}
