// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"strings"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/types"
)

// analyzeStruct populates a reachable struct's field and method info:
// field types from annotations or default literals, method receiver
// classification from self usage, and parameter/return types from
// usage evidence.
func (r *Resolver) analyzeStruct(st *atlas.StructInstance) {
	st.Fields = parseStructFields(st.Decl)

	fieldTypes := make(map[string]string, len(st.Fields))
	for _, f := range st.Fields {
		fieldTypes[f.Name] = f.RustType()
	}

	st.Methods = st.Methods[:0]
	for _, m := range st.Decl.Methods {
		st.Methods = append(st.Methods, analyzeStructMethod(m, fieldTypes, st.Name))
	}
}

func parseStructFields(decl *ast.StructDecl) []*atlas.StructFieldInfo {
	fields := make([]*atlas.StructFieldInfo, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		info := &atlas.StructFieldInfo{
			Name:     f.Name,
			TypeAnn:  f.TypeAnn,
			Default:  f.Default,
			IsConst:  f.IsConst,
			Resolved: types.Unknown,
		}
		if f.TypeAnn != "" {
			info.Resolved = types.FromAnnotation(f.TypeAnn)
		} else if lit, ok := f.Default.(*ast.Literal); ok {
			info.Resolved = literalType(lit)
		}
		fields = append(fields, info)
	}
	return fields
}

func analyzeStructMethod(decl *ast.FuncDecl, fieldTypes map[string]string, structName string) *atlas.StructMethodInfo {
	reads, writes := trackSelfUsage(decl.Body)

	info := &atlas.StructMethodInfo{
		Name: decl.Name,
		Body: decl.Body,
	}
	switch {
	case !reads && !writes:
		info.IsStatic = true
	case writes:
		info.SelfMutability = "&mut self"
	default:
		info.SelfMutability = "&self"
	}

	paramNames := make(map[string]bool, len(decl.Params))
	for _, p := range decl.Params {
		paramNames[p.Name] = true
	}
	inferred := inferMethodParams(decl.Body, paramNames, fieldTypes)

	for _, p := range decl.Params {
		info.Params = append(info.Params, atlas.MethodParam{
			Name:     p.Name,
			TypeAnn:  translateAnn(p.TypeAnn),
			Resolved: inferred[p.Name],
		})
	}

	info.ReturnType = inferMethodReturn(decl.Body, structName, fieldTypes)
	return info
}

// translateAnn converts a source type annotation to its Rust spelling,
// keeping "" for absent annotations.
func translateAnn(ann string) string {
	if ann == "" {
		return ""
	}
	return types.AnnotationToRust(ann)
}

// trackSelfUsage walks a method body and reports whether self fields
// are read and whether they are written. The target of a self-field
// assignment counts as a write only; a `{self.field}` substring inside
// an interpolated string literal counts as a read.
func trackSelfUsage(body *ast.Block) (reads, writes bool) {
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch node := n.(type) {
		case *ast.AssignStmt:
			if node.Member != nil && isSelfTarget(node.Member.Target) {
				writes = true
				walk(node.Value)
				return
			}
		case *ast.MemberExpr:
			if isSelfTarget(node.Target) {
				reads = true
			}
		case *ast.Literal:
			if node.Kind == ast.StringLit && strings.Contains(node.Text, "{self.") {
				reads = true
			}
		}
		for _, child := range ast.Children(n) {
			walk(child)
		}
	}
	walk(body)
	return reads, writes
}

func isSelfTarget(e ast.Expr) bool {
	_, ok := e.(*ast.SelfExpr)
	return ok
}

// selfFieldName returns the field name when e is `self.field`, else "".
func selfFieldName(e ast.Expr) string {
	if member, ok := e.(*ast.MemberExpr); ok && isSelfTarget(member.Target) {
		return member.Member
	}
	return ""
}

// inferMethodParams infers untyped method parameter types from three
// evidence sources, in order: a parameter initializing a known field in
// a returned struct literal, a parameter on the right-hand side of a
// self-field assignment, and a parameter appearing in a binary
// expression against a self-field operand.
func inferMethodParams(body *ast.Block, paramNames map[string]bool, fieldTypes map[string]string) map[string]string {
	inferred := make(map[string]string)

	adopt := func(name, rustType string) {
		if rustType == "" {
			return
		}
		if _, done := inferred[name]; !done {
			inferred[name] = rustType
		}
	}

	paramsIn := func(e ast.Expr) []string {
		var found []string
		ast.Inspect(e, func(n ast.Node) bool {
			if id, ok := n.(*ast.Ident); ok && paramNames[id.Name] {
				found = append(found, id.Name)
			}
			return true
		})
		return found
	}

	ast.Inspect(body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.ReturnStmt:
			// Evidence 1: returned struct literal whose field init is a
			// bare parameter adopts the field's type.
			if lit, ok := node.Value.(*ast.StructLit); ok {
				for _, init := range lit.Fields {
					if id, ok := init.Value.(*ast.Ident); ok && paramNames[id.Name] {
						adopt(id.Name, fieldTypes[init.Name])
					}
				}
			}
		case *ast.AssignStmt:
			// Evidence 2: self.f = ... param ... adopts f's type.
			if node.Member != nil && isSelfTarget(node.Member.Target) {
				fieldType := fieldTypes[node.Member.Member]
				for _, name := range paramsIn(node.Value) {
					adopt(name, fieldType)
				}
			}
		case *ast.BinaryExpr:
			// Evidence 3: a binary expression with a self-field operand
			// types the parameters on the other side.
			if field := selfFieldName(node.Left); field != "" {
				for _, name := range paramsIn(node.Right) {
					adopt(name, fieldTypes[field])
				}
			}
			if field := selfFieldName(node.Right); field != "" {
				for _, name := range paramsIn(node.Left) {
					adopt(name, fieldTypes[field])
				}
			}
		}
		return true
	})

	return inferred
}

// inferMethodReturn walks return statements and resolves the type of
// the first one it can: struct literals of the enclosing struct become
// Self, self-field returns take the field's type, binary expressions
// take an operand type, and literals their literal type.
func inferMethodReturn(body *ast.Block, structName string, fieldTypes map[string]string) string {
	var result string
	ast.Inspect(body, func(n ast.Node) bool {
		if result != "" {
			return false
		}
		ret, ok := n.(*ast.ReturnStmt)
		if !ok || ret.Value == nil {
			return true
		}
		if t := returnExprType(ret.Value, structName, fieldTypes); t != "" {
			result = t
		}
		return true
	})
	return result
}

func returnExprType(e ast.Expr, structName string, fieldTypes map[string]string) string {
	switch node := e.(type) {
	case *ast.StructLit:
		if node.Name == structName {
			return "Self"
		}
		return node.Name
	case *ast.Literal:
		return types.ToRust(literalType(node))
	case *ast.MemberExpr:
		if isSelfTarget(node.Target) {
			return fieldTypes[node.Member]
		}
	case *ast.BinaryExpr:
		if t := returnExprType(node.Left, structName, fieldTypes); t != "" {
			return t
		}
		return returnExprType(node.Right, structName, fieldTypes)
	case *ast.ParenExpr:
		return returnExprType(node.X, structName, fieldTypes)
	}
	return ""
}
