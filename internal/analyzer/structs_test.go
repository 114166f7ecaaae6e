// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/types"
)

func analyzedStruct(t *testing.T, src, name string) *atlas.StructInstance {
	t.Helper()
	a, _ := resolveOK(t, src)
	st := a.Structs[name]
	require.NotNil(t, st)
	return st
}

func TestAnalyzeStruct_Fields(t *testing.T) {
	st := analyzedStruct(t, `
struct Config {
    retries: i32
    rate = 1.5
    label = "x"
    const kind = "fixed"
    _hidden: i64
}

fn main() {
    c = Config { retries: 1 }
}
`, "Config")

	require.Len(t, st.Fields, 5)

	retries := st.Field("retries")
	assert.Equal(t, "i32", retries.TypeAnn)
	assert.Equal(t, types.Integer, retries.Resolved)
	assert.Equal(t, "i32", retries.RustType())

	rate := st.Field("rate")
	assert.Equal(t, types.Float, rate.Resolved)
	assert.Equal(t, "f64", rate.RustType())

	label := st.Field("label")
	assert.Equal(t, types.String, label.Resolved)

	kind := st.Field("kind")
	assert.True(t, kind.IsConst)

	hidden := st.Field("_hidden")
	assert.True(t, hidden.IsPrivate())
}

func TestAnalyzeStruct_FieldWithoutEvidenceIsUnknown(t *testing.T) {
	st := analyzedStruct(t, `
struct Box {
    payload
}

fn main() {
    b = Box { }
}
`, "Box")
	assert.Equal(t, types.Unknown, st.Field("payload").Resolved)
}

func TestAnalyzeStruct_MethodClassification(t *testing.T) {
	st := analyzedStruct(t, `
struct Account {
    balance: i64
    fn deposit(amount) {
        self.balance = self.balance + amount
    }
    fn report() {
        print("balance is {self.balance}")
    }
    fn zero() {
        return 0
    }
}

fn main() {
    a = Account { balance: 0 }
    a.deposit(5)
    a.report()
}
`, "Account")

	deposit := st.Method("deposit")
	require.NotNil(t, deposit)
	assert.False(t, deposit.IsStatic)
	assert.Equal(t, "&mut self", deposit.SelfMutability)

	// A `{self.field}` interpolation counts as a self read.
	report := st.Method("report")
	require.NotNil(t, report)
	assert.False(t, report.IsStatic)
	assert.Equal(t, "&self", report.SelfMutability)

	zero := st.Method("zero")
	require.NotNil(t, zero)
	assert.True(t, zero.IsStatic)
	assert.Empty(t, zero.SelfMutability)
}

func TestAnalyzeStruct_ParamInferenceFromFieldAssignment(t *testing.T) {
	st := analyzedStruct(t, `
struct Account {
    balance: i64
    fn deposit(amount) {
        self.balance = self.balance + amount
    }
}

fn main() {
    a = Account { balance: 0 }
    a.deposit(5)
}
`, "Account")

	deposit := st.Method("deposit")
	require.Len(t, deposit.Params, 1)
	assert.Equal(t, "amount", deposit.Params[0].Name)
	assert.Equal(t, "i64", deposit.Params[0].Resolved)
}

func TestAnalyzeStruct_ParamInferenceFromReturnedLiteral(t *testing.T) {
	st := analyzedStruct(t, `
struct Point {
    x: i32
    y: i32
    fn make(a, b) {
        return Point { x: a, y: b }
    }
}

fn main() {
    p = Point.make(1, 2)
}
`, "Point")

	make := st.Method("make")
	require.Len(t, make.Params, 2)
	assert.Equal(t, "i32", make.Params[0].Resolved)
	assert.Equal(t, "i32", make.Params[1].Resolved)
	assert.Equal(t, "Self", make.ReturnType)
	assert.True(t, make.IsStatic)
}

func TestAnalyzeStruct_ParamInferenceFromBinaryExpr(t *testing.T) {
	st := analyzedStruct(t, `
struct Scale {
    factor: f64
    fn apply(value) {
        return self.factor * value
    }
}

fn main() {
    s = Scale { factor: 2.0 }
    r = s.apply(3.0)
}
`, "Scale")

	apply := st.Method("apply")
	require.Len(t, apply.Params, 1)
	assert.Equal(t, "f64", apply.Params[0].Resolved)
	// Return type comes from the self-field operand.
	assert.Equal(t, "f64", apply.ReturnType)
}

func TestAnalyzeStruct_ReturnTypes(t *testing.T) {
	st := analyzedStruct(t, `
struct Shape {
    name = "square"
    sides: i32
    fn label() {
        return self.name
    }
    fn version() {
        return 3
    }
}

fn main() {
    s = Shape { sides: 4 }
    l = s.label()
    v = Shape.version()
}
`, "Shape")

	assert.Equal(t, "String", st.Method("label").ReturnType)
	assert.Equal(t, "i64", st.Method("version").ReturnType)
}

func TestAnalyzeStruct_AnnotatedParamsKeepAnnotation(t *testing.T) {
	st := analyzedStruct(t, `
struct Timer {
    ticks: i64
    fn set(n: i32) {
        self.ticks = self.ticks + n
    }
}

fn main() {
    t = Timer { ticks: 0 }
    t.set(1)
}
`, "Timer")

	set := st.Method("set")
	require.Len(t, set.Params, 1)
	assert.Equal(t, "i32", set.Params[0].TypeAnn)
}
