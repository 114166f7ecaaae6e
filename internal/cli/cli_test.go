// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinclang/zinc/internal/config"
)

func TestCompileSource_EndToEnd(t *testing.T) {
	rust, err := compileSource(`
fn add(a, b) {
    return a + b
}

fn main() {
    print(add(1, 2))
}
`)
	require.NoError(t, err)
	assert.Contains(t, rust, "fn add_i64_i64(a: i64, b: i64) -> i64 {")
	assert.Contains(t, rust, "fn main() {")
}

func TestCompileSource_SyntaxError(t *testing.T) {
	_, err := compileSource(`fn main( { }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax errors")
}

func TestCompileSource_MissingMain(t *testing.T) {
	_, err := compileSource(`fn helper() { return 1 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no main() function")
}

func TestVerifyRust(t *testing.T) {
	require.NoError(t, verifyRust("fn main() {\n    let x = 1;\n}\n"))

	err := verifyRust("fn main() { let x = ; }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax issues")
}

func TestVerifyRust_AcceptsGeneratedOutput(t *testing.T) {
	rust, err := compileSource(`
fn producer(ch) {
    ch <- 42
}

fn main() {
    c = chan()
    spawn producer(c)
    x = <- c
    print("{x}")
}
`)
	require.NoError(t, err)
	require.NoError(t, verifyRust(rust))
}

func TestBuildConfigYAML(t *testing.T) {
	content, err := buildConfigYAML(config.Default(), "My Project")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, "# zinc configuration for My Project"))
	assert.Contains(t, content, "outputDir: .")
	assert.Contains(t, content, "source:")
	assert.Contains(t, content, "- '**/*.zn'")
}

func TestSyntaxErrorsFormatting(t *testing.T) {
	_, err := compileSource("fn main() { x = }")
	require.Error(t, err)
	// Errors carry line:column positions.
	assert.Regexp(t, `\d+:\d+`, err.Error())
}
