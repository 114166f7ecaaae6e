// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/parser"
	"github.com/zinclang/zinc/internal/symbols"
	"github.com/zinclang/zinc/internal/types"
)

func resolve(t *testing.T, src string) (*atlas.Atlas, *Resolver, error) {
	t.Helper()
	prog, errs := parser.Parse(src)
	require.Empty(t, errs)
	a, err := atlas.Build(prog)
	require.NoError(t, err)
	res := NewResolver(a)
	_, resolveErr := res.Resolve()
	return a, res, resolveErr
}

func resolveOK(t *testing.T, src string) (*atlas.Atlas, *Resolver) {
	t.Helper()
	a, res, err := resolve(t, src)
	require.NoError(t, err)
	return a, res
}

// namedSymbols returns all non-temporary symbols with the given name.
func namedSymbols(res *Resolver, name string) []*symbols.Symbol {
	var out []*symbols.Symbol
	for _, sym := range res.Symbols().All() {
		if sym.Name == name && sym.Kind == symbols.Variable {
			out = append(out, sym)
		}
	}
	return out
}

func TestResolve_ArithmeticMonomorphization(t *testing.T) {
	a, _ := resolveOK(t, `
fn add(a, b) {
    return a + b
}

fn main() {
    print(add(1, 2))
    print(add(1.5, 2.5))
}
`)
	require.Contains(t, a.Functions, "add_i64_i64")
	require.Contains(t, a.Functions, "add_f64_f64")

	intAdd := a.Functions["add_i64_i64"]
	assert.Equal(t, []types.Base{types.Integer, types.Integer}, intAdd.ArgTypes)
	assert.Equal(t, types.Integer, intAdd.ReturnType)

	floatAdd := a.Functions["add_f64_f64"]
	assert.Equal(t, types.Float, floatAdd.ReturnType)

	// Exactly main plus the two specializations exist.
	assert.Len(t, a.Functions, 3)
}

func TestResolve_ZeroArgFunctionKeepsName(t *testing.T) {
	a, _ := resolveOK(t, `
fn used() {
    return 7
}

fn unused() {
    return 8
}

fn main() {
    x = used()
}
`)
	require.Contains(t, a.Functions, "used")
	assert.NotContains(t, a.Functions, "unused")
	assert.Equal(t, types.Integer, a.Functions["used"].ReturnType)
}

func TestResolve_ReturnTypePropagation(t *testing.T) {
	a, res := resolveOK(t, `
fn inner(n) {
    return n * 2
}

fn outer(n) {
    return inner(n)
}

fn main() {
    x = outer(21)
}
`)
	require.Contains(t, a.Functions, "outer_i64")
	require.Contains(t, a.Functions, "inner_i64")
	assert.Equal(t, types.Integer, a.Functions["outer_i64"].ReturnType)

	// The binding of x observes the propagated type.
	syms := namedSymbols(res, "x")
	require.Len(t, syms, 1)
	assert.Equal(t, types.Integer, syms[0].Resolved)
}

func TestResolve_ReassignmentAndShadowDiscipline(t *testing.T) {
	_, res := resolveOK(t, `
fn main() {
    x = 1
    x = 2
    x = "hi"
    x = "world"
}
`)
	syms := namedSymbols(res, "x")
	require.Len(t, syms, 2)

	first, second := syms[0], syms[1]
	assert.Equal(t, types.Integer, first.Resolved)
	assert.False(t, first.IsShadow)
	assert.True(t, first.IsMutated)

	assert.Equal(t, types.String, second.Resolved)
	assert.True(t, second.IsShadow)
	assert.True(t, second.IsMutated)
}

func TestResolve_SameTypeReassignmentCreatesNoSymbol(t *testing.T) {
	_, res := resolveOK(t, `
fn main() {
    n = 1
    n = 2
    n = 3
}
`)
	syms := namedSymbols(res, "n")
	require.Len(t, syms, 1)
	assert.True(t, syms[0].IsMutated)
}

func TestResolve_EmptyArrayReassignmentIsShadow(t *testing.T) {
	_, res := resolveOK(t, `
fn main() {
    b = []
    b.push(10)
    b = []
}
`)
	syms := namedSymbols(res, "b")
	require.Len(t, syms, 2)
	assert.True(t, syms[1].IsShadow)
	assert.Equal(t, types.Integer, syms[0].Element)
	assert.True(t, syms[0].IsMutated)
}

func TestResolve_ChannelElementInference(t *testing.T) {
	a, res := resolveOK(t, `
fn producer(ch) {
    ch <- 42
}

fn main() {
    c = chan()
    spawn producer(c)
    x = <- c
}
`)
	require.Contains(t, a.Functions, "producer_channel")
	producer := a.Functions["producer_channel"]
	assert.True(t, producer.IsAsync)

	// The sender parameter carries the inferred element type, shared
	// with the creator's channel info.
	require.Contains(t, producer.ArgChannels, 0)
	assert.Equal(t, types.Integer, producer.ArgChannels[0].Element)

	info := res.ChannelInfos()["c"]
	require.NotNil(t, info)
	assert.Equal(t, types.Integer, info.Element)
	assert.False(t, info.Bounded)

	// The receive materializes x with the element type.
	syms := namedSymbols(res, "x")
	require.Len(t, syms, 1)
	assert.Equal(t, types.Integer, syms[0].Resolved)
}

func TestResolve_BoundedChannel(t *testing.T) {
	_, res := resolveOK(t, `
fn main() {
    c = chan(4)
    c <- 10
}
`)
	info := res.ChannelInfos()["c"]
	require.NotNil(t, info)
	assert.True(t, info.Bounded)
	assert.Equal(t, "4", info.Capacity)
	assert.Equal(t, types.Integer, info.Element)
}

func TestResolve_ConflictingSendTypes(t *testing.T) {
	_, res, err := resolve(t, `
fn main() {
    c = chan()
    c <- 1
    c <- "oops"
}
`)
	require.Error(t, err)

	var found bool
	for _, d := range res.Diagnostics() {
		if d.Kind == ConflictingEvidence {
			found = true
			assert.NotEmpty(t, d.Evidence)
		}
	}
	assert.True(t, found, "expected a conflicting-evidence diagnostic")
}

func TestResolve_ElementTypeMonotonic(t *testing.T) {
	_, res := resolveOK(t, `
fn main() {
    c = chan()
    c <- 1
    c <- 2
}
`)
	info := res.ChannelInfos()["c"]
	require.NotNil(t, info)
	// Fixed by the first send, unchanged by the second.
	assert.Equal(t, types.Integer, info.Element)
}

func TestResolve_SpawnSiteBinding(t *testing.T) {
	a, res := resolveOK(t, `
fn worker(n) {
    print("{n}")
}

fn main() {
    spawn worker(5)
}
`)
	require.Contains(t, a.Functions, "worker_i64")
	assert.True(t, a.Functions["worker_i64"].IsAsync)

	// The spawn site resolves to the mangled name.
	prog, _ := parser.Parse(`
fn worker(n) {
    print("{n}")
}

fn main() {
    spawn worker(5)
}
`)
	spawn := prog.Funcs[1].Body.Stmts[0]
	mangled, ok := res.Specialization("main", spawn.Interval())
	require.True(t, ok)
	assert.Equal(t, "worker_i64", mangled)
}

func TestResolve_CallSitesBindToDistinctSpecializations(t *testing.T) {
	src := `
fn add(a, b) {
    return a + b
}

fn main() {
    x = add(1, 2)
    y = add(1.5, 2.5)
}
`
	_, res := resolveOK(t, src)

	prog, _ := parser.Parse(src)
	body := prog.Funcs[1].Body.Stmts

	first, ok := res.Specialization("main", assignValue(t, body[0]).Interval())
	require.True(t, ok)
	second, ok := res.Specialization("main", assignValue(t, body[1]).Interval())
	require.True(t, ok)

	assert.Equal(t, "add_i64_i64", first)
	assert.Equal(t, "add_f64_f64", second)
}

func assignValue(t *testing.T, stmt ast.Stmt) ast.Expr {
	t.Helper()
	assign, ok := stmt.(*ast.AssignStmt)
	require.True(t, ok)
	return assign.Value
}

func TestResolve_UnknownArgumentTypeIsInferenceFailure(t *testing.T) {
	_, res, err := resolve(t, `
fn show(n) {
    print("{n}")
}

fn main() {
    c = chan()
    x = <- c
    show(x)
}
`)
	require.Error(t, err)

	var found bool
	for _, d := range res.Diagnostics() {
		if d.Kind == InferenceFailure {
			found = true
			assert.NotEmpty(t, d.Evidence)
		}
	}
	assert.True(t, found, "expected an inference-failure diagnostic")
}

func TestResolve_UnresolvedIdentifier(t *testing.T) {
	_, res, err := resolve(t, `
fn main() {
    x = missing + 1
}
`)
	require.Error(t, err)
	require.NotEmpty(t, res.Diagnostics())
	assert.Equal(t, UnresolvedReference, res.Diagnostics()[0].Kind)
}

func TestResolve_ForLoopScopesAndTypes(t *testing.T) {
	_, res := resolveOK(t, `
fn main() {
    total = 0
    for i in 0..10 {
        total = total + i
    }
}
`)
	var loopVar *symbols.Symbol
	for _, sym := range res.Symbols().All() {
		if sym.Name == "i" {
			loopVar = sym
		}
	}
	require.NotNil(t, loopVar)
	assert.Equal(t, types.Integer, loopVar.Resolved)
	assert.Contains(t, loopVar.UniqueName, "for_0")

	totals := namedSymbols(res, "total")
	require.Len(t, totals, 1)
	assert.True(t, totals[0].IsMutated)
}

func TestResolve_ConstTypes(t *testing.T) {
	a, _ := resolveOK(t, `
const limit = 10
const greeting = "hi"

fn main() {
    x = limit
    s = greeting
}
`)
	assert.Equal(t, types.Integer, a.Consts["limit"].Resolved)
	assert.Equal(t, types.String, a.Consts["greeting"].Resolved)
}

func TestResolve_StructMutableMethodMarksReceiver(t *testing.T) {
	a, res := resolveOK(t, `
struct Counter {
    n: i32
    fn bump() {
        self.n = self.n + 1
    }
}

fn main() {
    c = Counter { n: 0 }
    c.bump()
    c.bump()
}
`)
	st := a.Structs["Counter"]
	require.NotNil(t, st)
	method := st.Method("bump")
	require.NotNil(t, method)
	assert.Equal(t, "&mut self", method.SelfMutability)
	assert.True(t, st.MethodsUsed["bump"])

	syms := namedSymbols(res, "c")
	require.Len(t, syms, 1)
	assert.True(t, syms[0].IsMutated)
	assert.Equal(t, "Counter", syms[0].StructName)
}

func TestResolve_MissingStaticMethodIsStructural(t *testing.T) {
	_, res, err := resolve(t, `
struct Point {
    x: i32
    fn zero() {
        return 0
    }
}

fn main() {
    p = Point.missing()
}
`)
	require.Error(t, err)
	require.NotEmpty(t, res.Diagnostics())
	assert.Equal(t, StructuralError, res.Diagnostics()[0].Kind)
}

func TestResolve_Idempotent(t *testing.T) {
	src := `
fn add(a, b) {
    return a + b
}

fn main() {
    x = add(1, 2)
}
`
	a1, _ := resolveOK(t, src)
	a2, _ := resolveOK(t, src)
	assert.Equal(t, a1.FunctionNames(), a2.FunctionNames())
	assert.Equal(t, a1.TopologicalOrder(), a2.TopologicalOrder())
}
