// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package symbols implements the scoped symbol table. Symbols are
// addressable two ways: by name through the scope stack, and by the
// pair (enclosing specialization scope, source interval). The function
// scope must be part of the interval key because the same source
// interval exists in every specialization of a template and must not
// collide across them.
package symbols

import (
	"fmt"
	"strings"

	"github.com/zinclang/zinc/internal/token"
	"github.com/zinclang/zinc/internal/types"
)

// Kind classifies a symbol.
type Kind int

const (
	Variable Kind = iota
	Parameter
	Const
	Temporary
	Function
	Builtin
	StructType
	LiteralValue
)

var kindNames = map[Kind]string{
	Variable:     "variable",
	Parameter:    "parameter",
	Const:        "const",
	Temporary:    "temporary",
	Function:     "function",
	Builtin:      "builtin",
	StructType:   "struct",
	LiteralValue: "literal",
}

func (k Kind) String() string { return kindNames[k] }

// Symbol is one named binding or expression temporary.
type Symbol struct {
	// Name is the original source name; empty for temporaries.
	Name string

	// UniqueName is the scoped unique name carrying the type suffix
	// (e.g. "main.a/i64"), or "tmp_<n>" for temporaries.
	UniqueName string

	Kind     Kind
	Resolved types.Base
	Interval token.Interval

	// IsMutated is true when the binding needs `mut`: it sees a
	// same-type reassignment, a mutating method call, or growth of an
	// array it holds.
	IsMutated bool

	// IsShadow is true when this binding shadows a live prior binding
	// of the same name with a different type.
	IsShadow bool

	// Element is the array element type, when known.
	Element types.Base

	// StructName names the struct type for Struct-kinded symbols.
	StructName string
}

// Table is the scoped symbol table.
type Table struct {
	all        []*Symbol
	byInterval map[string]*Symbol
	// index locates a symbol's slot in all by its interval key, so a
	// re-resolution pass replaces the prior pass's symbol in place
	// instead of accumulating duplicates.
	index      map[string]int
	scopeStack []map[string]*Symbol
	scopePath  []string
	fnScope    string
	tempCount  int
}

// NewTable creates an empty symbol table with the global scope open.
func NewTable() *Table {
	return &Table{
		byInterval: make(map[string]*Symbol),
		index:      make(map[string]int),
		scopeStack: []map[string]*Symbol{{}},
	}
}

// record stores a symbol under its interval key, replacing any symbol
// a previous resolution pass recorded at the same key.
func (t *Table) record(key string, sym *Symbol) {
	if i, ok := t.index[key]; ok {
		t.all[i] = sym
	} else {
		t.index[key] = len(t.all)
		t.all = append(t.all, sym)
	}
	t.byInterval[key] = sym
}

// CurrentScope returns the dotted scope path, or "global" at top level.
func (t *Table) CurrentScope() string {
	if len(t.scopePath) == 0 {
		return "global"
	}
	return strings.Join(t.scopePath, ".")
}

// FunctionScope returns the enclosing specialization's mangled name, or
// "" outside any function.
func (t *Table) FunctionScope() string { return t.fnScope }

func intervalKey(fnScope string, iv token.Interval) string {
	return fmt.Sprintf("%s:%s", fnScope, iv)
}

// EnterScope pushes a scope. The first scope entered is the function
// scope whose name qualifies every interval key defined inside it.
func (t *Table) EnterScope(name string) {
	t.scopePath = append(t.scopePath, name)
	t.scopeStack = append(t.scopeStack, map[string]*Symbol{})
	if len(t.scopePath) == 1 {
		t.fnScope = name
	}
}

// ExitScope pops the innermost scope.
func (t *Table) ExitScope() {
	t.scopePath = t.scopePath[:len(t.scopePath)-1]
	t.scopeStack = t.scopeStack[:len(t.scopeStack)-1]
	if len(t.scopePath) == 0 {
		t.fnScope = ""
	}
}

// Define adds a named symbol to the current scope. Defining an existing
// name replaces it in the scope map, which is how shadowing works: both
// symbols survive in the table, only the newest is found by name.
func (t *Table) Define(name string, kind Kind, resolved types.Base, iv token.Interval, shadow bool) *Symbol {
	base := name
	if len(t.scopePath) > 0 {
		base = t.CurrentScope() + "." + name
	}
	sym := &Symbol{
		Name:       name,
		UniqueName: base + "/" + types.ToRust(resolved),
		Kind:       kind,
		Resolved:   resolved,
		Interval:   iv,
		IsShadow:   shadow,
	}
	t.record(intervalKey(t.fnScope, iv), sym)
	t.scopeStack[len(t.scopeStack)-1][name] = sym
	return sym
}

// DefineTemp adds an unnamed expression temporary addressed only by its
// interval.
func (t *Table) DefineTemp(resolved types.Base, iv token.Interval, kind Kind) *Symbol {
	sym := &Symbol{
		UniqueName: fmt.Sprintf("tmp_%d", t.tempCount),
		Kind:       kind,
		Resolved:   resolved,
		Interval:   iv,
	}
	t.tempCount++
	t.record(intervalKey(t.fnScope, iv), sym)
	return sym
}

// LookupName finds a symbol by name in the current and enclosing scopes.
func (t *Table) LookupName(name string) *Symbol {
	for i := len(t.scopeStack) - 1; i >= 0; i-- {
		if sym, ok := t.scopeStack[i][name]; ok {
			return sym
		}
	}
	return nil
}

// LookupInterval finds a symbol by source interval within the current
// function scope.
func (t *Table) LookupInterval(iv token.Interval) *Symbol {
	return t.byInterval[intervalKey(t.fnScope, iv)]
}

// LookupIntervalIn finds a symbol by source interval within an explicit
// function scope, for callers resolving symbols of another
// specialization.
func (t *Table) LookupIntervalIn(fnScope string, iv token.Interval) *Symbol {
	return t.byInterval[intervalKey(fnScope, iv)]
}

// All returns every defined symbol in definition order.
func (t *Table) All() []*Symbol {
	return append([]*Symbol(nil), t.all...)
}
