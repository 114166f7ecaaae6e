// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// SourceFile is a discovered Zinc source file.
type SourceFile struct {
	// Path is the absolute file path.
	Path string

	// Content is the raw file content.
	Content []byte

	// ModTime is the file's last modification time.
	ModTime time.Time
}

// Name returns the file's base name without the .zn extension.
func (f SourceFile) Name() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsSourceFile reports whether path names a Zinc source file.
func IsSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zn")
}
