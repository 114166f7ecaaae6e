// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package atlas holds the reachability graph rooted at main(): the
// functions, structs, and constants a program actually uses, the call
// and usage edges between them, and the monomorphized specializations
// created during type resolution.
package atlas

import (
	"errors"
	"sort"
	"strings"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/types"
)

// ErrNoMain is returned when the program has no main() function.
var ErrNoMain = errors.New("no main() function found")

// FunctionInstance is a specific instantiation of a function, possibly
// monomorphized. main is the only instance with no argument types that
// is created before resolution.
type FunctionInstance struct {
	// Name is the original function name.
	Name string

	// MangledName uniquely identifies the specialization (e.g. "add_i64_i64").
	MangledName string

	// Decl is the parse-tree reference.
	Decl *ast.FuncDecl

	// ArgTypes are the concrete argument types of this specialization.
	ArgTypes []types.Base

	// ReturnType is the inferred return type.
	ReturnType types.Base

	// IsAsync is true when the function is reached via spawn.
	IsAsync bool

	// ArgChannels carries channel type info for channel-typed arguments,
	// keyed by argument index. The info is shared with the creating
	// function so element types back-flow across the call.
	ArgChannels map[int]*types.ChannelInfo
}

// StructFieldInfo is an analyzed struct field.
type StructFieldInfo struct {
	Name     string
	TypeAnn  string   // explicit annotation like "i32", empty when absent
	Default  ast.Expr // default value expression, nil when absent
	IsConst  bool
	Resolved types.Base
}

// IsPrivate reports whether the field name starts with an underscore.
func (f *StructFieldInfo) IsPrivate() bool {
	return strings.HasPrefix(f.Name, "_")
}

// RustType returns the Rust type spelling for this field. An explicit
// annotation wins over the inferred kind so narrow annotations survive.
func (f *StructFieldInfo) RustType() string {
	if f.TypeAnn != "" {
		return types.AnnotationToRust(f.TypeAnn)
	}
	return types.ToRust(f.Resolved)
}

// MethodParam is a struct method parameter with its optional annotation
// and the Rust type resolved from usage evidence.
type MethodParam struct {
	Name     string
	TypeAnn  string
	Resolved string
}

// StructMethodInfo is an analyzed struct method.
type StructMethodInfo struct {
	Name   string
	Params []MethodParam

	// IsStatic is true when the body neither reads nor writes self.
	IsStatic bool

	// SelfMutability is "", "&self", or "&mut self".
	SelfMutability string

	// ReturnType is the inferred Rust return type, "" for none and
	// "Self" for a recursive struct literal return.
	ReturnType string

	Body *ast.Block
}

// StructInstance is a struct used by the reachable program.
type StructInstance struct {
	Name string
	Decl *ast.StructDecl

	// MethodsUsed records which methods are actually invoked.
	MethodsUsed map[string]bool

	// Fields and Methods are populated by the struct analyzer.
	Fields  []*StructFieldInfo
	Methods []*StructMethodInfo
}

// Method returns the analyzed method with the given name, or nil.
func (s *StructInstance) Method(name string) *StructMethodInfo {
	for _, m := range s.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Field returns the analyzed field with the given name, or nil.
func (s *StructInstance) Field(name string) *StructFieldInfo {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ConstInstance is a reachable global constant.
type ConstInstance struct {
	Name     string
	Decl     *ast.ConstDecl
	Resolved types.Base
}

// Atlas is the reachability graph of a program.
type Atlas struct {
	// Main is the entry point instance.
	Main *FunctionInstance

	// Functions maps mangled name to specialization. Initially it holds
	// only main; the resolver grows it via AddSpecialization.
	Functions map[string]*FunctionInstance

	// Structs maps struct name to reachable struct.
	Structs map[string]*StructInstance

	// Consts maps const name to reachable constant.
	Consts map[string]*ConstInstance

	// Calls is the call graph: caller mangled name to callee mangled names.
	Calls map[string]map[string]bool

	// StructUsages and ConstUsages record which functions use which
	// structs and constants. The reachability walk fills them, keyed by
	// the function's original name.
	StructUsages map[string]map[string]bool
	ConstUsages  map[string]map[string]bool

	// FunctionDefs holds every top-level function definition by original
	// name, for specialization creation.
	FunctionDefs map[string]*ast.FuncDecl
}

// Mangle derives the deterministic specialization name: the original
// name suffixed with the Rust spelling of each argument type. Arg-less
// functions keep their name unchanged.
func Mangle(name string, argTypes []types.Base) string {
	if len(argTypes) == 0 {
		return name
	}
	parts := make([]string, 0, len(argTypes)+1)
	parts = append(parts, name)
	for _, t := range argTypes {
		parts = append(parts, types.ToRust(t))
	}
	return strings.Join(parts, "_")
}

// AddSpecialization creates (or reuses) the specialization of name with
// the given argument types and returns its mangled name. The call is
// idempotent: an existing (name, argTypes) instance is returned without
// duplication. When caller is non-empty, the call graph gains the edge
// caller -> specialization.
func (a *Atlas) AddSpecialization(name string, argTypes []types.Base, decl *ast.FuncDecl, caller string) string {
	mangled := Mangle(name, argTypes)
	if _, ok := a.Functions[mangled]; !ok {
		a.Functions[mangled] = &FunctionInstance{
			Name:        name,
			MangledName: mangled,
			Decl:        decl,
			ArgTypes:    append([]types.Base(nil), argTypes...),
			ReturnType:  types.Void,
			ArgChannels: make(map[int]*types.ChannelInfo),
		}
		a.Calls[mangled] = make(map[string]bool)
	}
	if caller != "" {
		if edges, ok := a.Calls[caller]; ok {
			edges[mangled] = true
		}
	}
	return mangled
}

// IsReachable reports whether a function, struct, or const with the
// given name is part of the reachable program.
func (a *Atlas) IsReachable(name string) bool {
	if _, ok := a.Functions[name]; ok {
		return true
	}
	if _, ok := a.Structs[name]; ok {
		return true
	}
	_, ok := a.Consts[name]
	return ok
}

// FunctionNames returns the mangled names of all specializations in
// sorted order.
func (a *Atlas) FunctionNames() []string {
	return sortedKeys(a.Functions)
}

// StructNames returns the reachable struct names in sorted order.
func (a *Atlas) StructNames() []string {
	return sortedKeys(a.Structs)
}

// ConstNames returns the reachable const names in sorted order.
func (a *Atlas) ConstNames() []string {
	return sortedKeys(a.Consts)
}

// Callees returns the sorted callee set of a mangled name.
func (a *Atlas) Callees(mangled string) []string {
	edges := a.Calls[mangled]
	out := make([]string, 0, len(edges))
	for callee := range edges {
		out = append(out, callee)
	}
	sort.Strings(out)
	return out
}

// TopologicalOrder returns specialization mangled names in dependency
// order, callees first, via depth-first post-order over the call graph.
// Names without a specialization instance are skipped.
func (a *Atlas) TopologicalOrder() []string {
	visited := make(map[string]bool)
	var result []string

	var dfs func(name string)
	dfs = func(name string) {
		if visited[name] {
			return
		}
		if _, ok := a.Functions[name]; !ok {
			return
		}
		visited[name] = true
		for _, callee := range a.Callees(name) {
			dfs(callee)
		}
		result = append(result, name)
	}

	for _, name := range a.FunctionNames() {
		dfs(name)
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
