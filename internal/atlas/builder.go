// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package atlas

import (
	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/types"
)

// builtins are callable names that never resolve to user functions.
var builtins = map[string]bool{
	"print": true,
	"chan":  true,
}

// IsBuiltin reports whether name is a built-in function.
func IsBuiltin(name string) bool { return builtins[name] }

// Build walks the program, collects every top-level definition, and
// computes the set reachable from main() with a worklist. Only main
// receives a FunctionInstance here; other functions are deferred to the
// resolver because their argument types are unknown until call sites
// are typed.
func Build(prog *ast.Program) (*Atlas, error) {
	b := &builder{
		funcDefs:   make(map[string]*ast.FuncDecl),
		structDefs: make(map[string]*ast.StructDecl),
		constDefs:  make(map[string]*ast.ConstDecl),
		atlas: &Atlas{
			Functions:    make(map[string]*FunctionInstance),
			Structs:      make(map[string]*StructInstance),
			Consts:       make(map[string]*ConstInstance),
			Calls:        make(map[string]map[string]bool),
			StructUsages: make(map[string]map[string]bool),
			ConstUsages:  make(map[string]map[string]bool),
		},
	}
	return b.build(prog)
}

type builder struct {
	funcDefs   map[string]*ast.FuncDecl
	structDefs map[string]*ast.StructDecl
	constDefs  map[string]*ast.ConstDecl
	atlas      *Atlas

	current string // function whose body is being scanned
}

func (b *builder) build(prog *ast.Program) (*Atlas, error) {
	// First sweep: collect every top-level definition by name.
	var mainDecl *ast.FuncDecl
	for _, fn := range prog.Funcs {
		b.funcDefs[fn.Name] = fn
		if fn.Name == "main" {
			mainDecl = fn
		}
	}
	for _, st := range prog.Structs {
		b.structDefs[st.Name] = st
	}
	for _, c := range prog.Consts {
		b.constDefs[c.Name] = c
	}
	b.atlas.FunctionDefs = b.funcDefs

	if mainDecl == nil {
		return nil, ErrNoMain
	}

	b.atlas.Main = &FunctionInstance{
		Name:        "main",
		MangledName: "main",
		Decl:        mainDecl,
		ReturnType:  types.Void,
		ArgChannels: make(map[int]*types.ChannelInfo),
	}
	b.atlas.Functions["main"] = b.atlas.Main

	// Second sweep: worklist reachability from main.
	worklist := []string{"main"}
	visited := make(map[string]bool)
	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if visited[name] {
			continue
		}
		visited[name] = true

		decl, ok := b.funcDefs[name]
		if !ok {
			continue
		}

		b.current = name
		b.atlas.Calls[name] = make(map[string]bool)
		b.atlas.StructUsages[name] = make(map[string]bool)
		b.atlas.ConstUsages[name] = make(map[string]bool)
		b.scan(decl.Body)

		for callee := range b.atlas.Calls[name] {
			if !visited[callee] {
				if _, defined := b.funcDefs[callee]; defined {
					worklist = append(worklist, callee)
				}
			}
		}
	}

	return b.atlas, nil
}

// scan walks a function body recording function calls, spawn targets,
// struct usages, and const usages.
func (b *builder) scan(body *ast.Block) {
	ast.Inspect(body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.Ident:
			if _, ok := b.constDefs[node.Name]; ok {
				b.addConstUsage(node.Name)
			}
		case *ast.CallExpr:
			if name := ast.CalleeName(node.Callee); name != "" && !builtins[name] {
				b.atlas.Calls[b.current][name] = true
			}
			// Static method call: StructName.method(...)
			if member, ok := node.Callee.(*ast.MemberExpr); ok {
				if recv := ast.ReceiverName(member); recv != "" {
					if _, isStruct := b.structDefs[recv]; isStruct {
						b.addStructUsage(recv, member.Member)
					}
				}
			}
		case *ast.SpawnStmt:
			if name := ast.CalleeName(node.Callee); name != "" && !builtins[name] {
				b.atlas.Calls[b.current][name] = true
			}
		case *ast.StructLit:
			b.addStructUsage(node.Name, "")
		case *ast.MemberExpr:
			if recv := ast.ReceiverName(node); recv != "" {
				if _, isStruct := b.structDefs[recv]; isStruct {
					b.addStructUsage(recv, node.Member)
				}
			}
		}
		return true
	})
}

func (b *builder) addStructUsage(structName, methodName string) {
	decl, ok := b.structDefs[structName]
	if !ok {
		return
	}
	inst, ok := b.atlas.Structs[structName]
	if !ok {
		inst = &StructInstance{
			Name:        structName,
			Decl:        decl,
			MethodsUsed: make(map[string]bool),
		}
		b.atlas.Structs[structName] = inst
	}
	if methodName != "" {
		inst.MethodsUsed[methodName] = true
	}
	if b.current != "" {
		b.atlas.StructUsages[b.current][structName] = true
	}
}

func (b *builder) addConstUsage(name string) {
	decl, ok := b.constDefs[name]
	if !ok {
		return
	}
	if _, ok := b.atlas.Consts[name]; !ok {
		b.atlas.Consts[name] = &ConstInstance{Name: name, Decl: decl, Resolved: types.Unknown}
	}
	if b.current != "" {
		b.atlas.ConstUsages[b.current][name] = true
	}
}
