// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func paths(files []SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Base(f.Path)
	}
	return out
}

func TestScan_FindsSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.zn", "fn main() { }")
	writeFile(t, dir, "lib/util.zn", "fn util() { }")
	writeFile(t, dir, "notes.txt", "not source")

	s := New(Config{BasePath: dir})
	files, err := s.Scan()
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.ElementsMatch(t, []string{"main.zn", "util.zn"}, paths(files))
	for _, f := range files {
		assert.NotEmpty(t, f.Content)
		assert.False(t, f.ModTime.IsZero())
	}
}

func TestScanPath_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.zn", "fn main() { }")

	s := New(Config{BasePath: dir})
	files, err := s.ScanPath(path)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "fn main() { }", string(files[0].Content))
}

func TestScanPath_NonexistentPath(t *testing.T) {
	s := New(Config{})
	_, err := s.ScanPath(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestScan_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.zn", "fn main() { }")
	writeFile(t, dir, "target/generated.zn", "fn main() { }")

	s := New(Config{
		BasePath:        dir,
		ExcludePatterns: []string{"target/**"},
	})
	files, err := s.Scan()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "main.zn", filepath.Base(files[0].Path))
}

func TestScan_IncludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep/main.zn", "fn main() { }")
	writeFile(t, dir, "skip/other.zn", "fn main() { }")

	s := New(Config{
		BasePath:        dir,
		IncludePatterns: []string{"keep/**"},
	})
	files, err := s.Scan()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "main.zn", filepath.Base(files[0].Path))
}

func TestScanPaths_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.zn", "fn main() { }")

	s := New(Config{BasePath: dir})
	files, err := s.ScanPaths([]string{dir, dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("main.zn"))
	assert.True(t, IsSourceFile("dir/MAIN.ZN"))
	assert.False(t, IsSourceFile("main.rs"))
	assert.False(t, IsSourceFile("main"))
}

func TestSourceFileName(t *testing.T) {
	f := SourceFile{Path: "/tmp/project/main.zn"}
	assert.Equal(t, "main", f.Name())
}
