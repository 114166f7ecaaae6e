// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinclang/zinc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_Assignment(t *testing.T) {
	toks, errs := New(`x = 42`).Tokenize()
	require.Empty(t, errs)

	assert.Equal(t, []token.Kind{token.Ident, token.Assign, token.Int, token.EOF}, kinds(toks))
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, "42", toks[2].Text)
}

func TestTokenize_Keywords(t *testing.T) {
	toks, errs := New(`fn struct const return if else for in while loop break continue spawn self true false`).Tokenize()
	require.Empty(t, errs)

	want := []token.Kind{
		token.Fn, token.Struct, token.Const, token.Return, token.If, token.Else,
		token.For, token.In, token.While, token.Loop, token.Break, token.Continue,
		token.Spawn, token.Self, token.True, token.False, token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestTokenize_ArrowVersusComparison(t *testing.T) {
	// `<-` is the channel operator, `<` and `<=` are comparisons.
	toks, errs := New(`c <- 1 a < b a <= b`).Tokenize()
	require.Empty(t, errs)

	want := []token.Kind{
		token.Ident, token.Arrow, token.Int,
		token.Ident, token.Lt, token.Ident,
		token.Ident, token.Le, token.Ident,
		token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestTokenize_RangeVersusFloat(t *testing.T) {
	toks, errs := New(`0..10 0..=10 1.5`).Tokenize()
	require.Empty(t, errs)

	want := []token.Kind{
		token.Int, token.Range, token.Int,
		token.Int, token.RangeIncl, token.Int,
		token.Float,
		token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
	assert.Equal(t, "1.5", toks[6].Text)
}

func TestTokenize_StringKeepsQuotesAndInterpolation(t *testing.T) {
	toks, errs := New(`print("hello {name}")`).Tokenize()
	require.Empty(t, errs)

	require.Equal(t, token.String, toks[2].Kind)
	assert.Equal(t, `"hello {name}"`, toks[2].Text)
}

func TestTokenize_LineComments(t *testing.T) {
	toks, errs := New("x = 1 // trailing\n// full line\ny = 2").Tokenize()
	require.Empty(t, errs)

	want := []token.Kind{
		token.Ident, token.Assign, token.Int,
		token.Ident, token.Assign, token.Int,
		token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestTokenize_Positions(t *testing.T) {
	toks, errs := New("x = 1\ny = 2").Tokenize()
	require.Empty(t, errs)

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[3].Line)
	assert.Equal(t, 1, toks[3].Column)
	// Token indices are sequential and stable.
	for i, tok := range toks {
		assert.Equal(t, i, tok.Index)
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, errs := New("x = \"oops\ny = 1").Tokenize()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unterminated")
}

func TestTokenize_UnexpectedCharacter(t *testing.T) {
	toks, errs := New(`x = 1 @`).Tokenize()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unexpected character")
	assert.Equal(t, token.Illegal, toks[3].Kind)
}

func TestTokenize_LogicalOperators(t *testing.T) {
	toks, errs := New(`a && b || !c and d or not e`).Tokenize()
	require.Empty(t, errs)

	want := []token.Kind{
		token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Bang, token.Ident,
		token.And, token.Ident, token.Or, token.Not, token.Ident,
		token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}
