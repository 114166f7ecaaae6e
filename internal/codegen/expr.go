// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/types"
	"github.com/zinclang/zinc/internal/util"
)

var interpolationRe = regexp.MustCompile(`\{([^}]+)\}`)

// expr renders an expression as Rust code.
func (g *Generator) expr(e ast.Expr) string {
	switch node := e.(type) {
	case *ast.Literal:
		if node.Kind == ast.StringLit && strings.Contains(node.Text, "{") {
			return renderInterpolated(node.Text)
		}
		return node.Text

	case *ast.Ident:
		// Global constants are emitted under their UPPERCASE names.
		if _, ok := g.atlas.Consts[node.Name]; ok {
			return util.ToScreamingSnake(node.Name)
		}
		return node.Name

	case *ast.SelfExpr:
		return "self"

	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s%s)", node.Op, g.expr(node.X))

	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", g.expr(node.Left), node.Op, g.expr(node.Right))

	case *ast.ParenExpr:
		return fmt.Sprintf("(%s)", g.expr(node.X))

	case *ast.ArrayLit:
		if len(node.Elems) == 0 {
			return "Vec::new()"
		}
		elems := make([]string, len(node.Elems))
		for i, elem := range node.Elems {
			elems[i] = g.expr(elem)
		}
		return fmt.Sprintf("vec![%s]", strings.Join(elems, ", "))

	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", g.expr(node.Target), g.expr(node.Index))

	case *ast.RangeExpr:
		op := ".."
		if node.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("%s%s%s", g.expr(node.Start), op, g.expr(node.End))

	case *ast.MemberExpr:
		return g.memberExpr(node)

	case *ast.CallExpr:
		return g.callExpr(node)

	case *ast.StructLit:
		return g.structLit(node)

	case *ast.ReceiveExpr:
		return g.receiveExpr(node)
	}
	return ""
}

// memberExpr renders field access, or a Struct::member path when the
// target names a struct type.
func (g *Generator) memberExpr(node *ast.MemberExpr) string {
	if recv := ast.ReceiverName(node); recv != "" {
		if _, ok := g.atlas.Structs[recv]; ok {
			return fmt.Sprintf("%s::%s", recv, node.Member)
		}
	}
	return fmt.Sprintf("%s.%s", g.expr(node.Target), node.Member)
}

func (g *Generator) receiveExpr(node *ast.ReceiveExpr) string {
	if name := ast.CalleeName(node.Channel); name != "" && g.declaredChannels[name] {
		return fmt.Sprintf("%s_rx.recv().await.unwrap()", name)
	}
	return fmt.Sprintf("%s.recv().await.unwrap()", g.expr(node.Channel))
}

// callExpr renders function calls, static method calls, and instance
// method calls, binding user calls to their mangled specializations.
func (g *Generator) callExpr(node *ast.CallExpr) string {
	args := make([]string, len(node.Args))
	for i, arg := range node.Args {
		args[i] = g.expr(arg)
	}

	callee := g.expr(node.Callee)

	if callee == "print" {
		return renderPrint(args)
	}

	// Static method call: Struct::method.
	if structName, methodName, ok := strings.Cut(callee, "::"); ok {
		if st, found := g.atlas.Structs[structName]; found {
			args = g.processMethodArgs(st, methodName, args, node.Args)
		}
		return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	}

	// Instance method call on a struct variable.
	if member, ok := node.Callee.(*ast.MemberExpr); ok {
		if recv := ast.ReceiverName(member); recv != "" {
			if st := g.receiverStruct(member); st != nil {
				args = g.processMethodArgs(st, member.Member, args, node.Args)
			}
		}
		return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	}

	if mangled, ok := g.res.Specialization(g.currentFn, node.Interval()); ok {
		return fmt.Sprintf("%s(%s)", mangled, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

// receiverStruct resolves the struct a method call's receiver variable
// holds, via the symbol recorded at the receiver's use site.
func (g *Generator) receiverStruct(member *ast.MemberExpr) *atlas.StructInstance {
	id, ok := member.Target.(*ast.Ident)
	if !ok {
		return nil
	}
	sym := g.lookup(id.Interval())
	if sym == nil || sym.StructName == "" {
		return nil
	}
	return g.atlas.Structs[sym.StructName]
}

// processMethodArgs adapts call arguments to the method's parameter
// types: string literals become owned Strings, and compile-time
// numeric (integer or float) expressions narrow to i32 parameters.
func (g *Generator) processMethodArgs(st *atlas.StructInstance, methodName string, args []string, argExprs []ast.Expr) []string {
	method := st.Method(methodName)
	if method == nil {
		return args
	}

	processed := make([]string, 0, len(args))
	for i, arg := range args {
		if i >= len(method.Params) {
			processed = append(processed, arg)
			continue
		}
		paramType := method.Params[i].TypeAnn
		if paramType == "" {
			paramType = method.Params[i].Resolved
		}

		switch {
		case paramType == "String" && strings.HasPrefix(arg, `"`):
			processed = append(processed, fmt.Sprintf("String::from(%s)", arg))
		case paramType == "i32" || paramType == "i64":
			processed = append(processed, g.narrowLiteral(arg, paramType, argExprs[i]))
		default:
			processed = append(processed, arg)
		}
	}
	return processed
}

// narrowLiteral casts a compile-time numeric expression down to i32
// when the parameter requires it. Only expressions whose value is
// known at compile time are narrowed.
func (g *Generator) narrowLiteral(arg, paramType string, argExpr ast.Expr) string {
	if paramType != "i32" {
		return arg
	}
	if isCompileTimeLiteral(g, argExpr) {
		return fmt.Sprintf("(%s) as i32", arg)
	}
	return arg
}

// isCompileTimeLiteral reports whether an expression contains only
// compile-time-known numeric values: numeric literals, arithmetic over
// them, variables bound to literal values, and static methods whose
// body returns a numeric literal.
func isCompileTimeLiteral(g *Generator, e ast.Expr) bool {
	switch node := e.(type) {
	case *ast.Literal:
		return node.Kind == ast.IntLit || node.Kind == ast.FloatLit
	case *ast.Ident:
		return g.literalVars[node.Name]
	case *ast.BinaryExpr:
		switch node.Op {
		case "+", "-", "*", "/", "%":
			return isCompileTimeLiteral(g, node.Left) && isCompileTimeLiteral(g, node.Right)
		}
		return false
	case *ast.ParenExpr:
		return isCompileTimeLiteral(g, node.X)
	case *ast.CallExpr:
		member, ok := node.Callee.(*ast.MemberExpr)
		if !ok {
			return false
		}
		recv := ast.ReceiverName(member)
		st, found := g.atlas.Structs[recv]
		if !found {
			return false
		}
		method := st.Method(member.Member)
		return method != nil && method.IsStatic && methodReturnsLiteral(method)
	}
	return false
}

// methodReturnsLiteral reports whether a method body is exactly
// `return <numeric literal>`.
func methodReturnsLiteral(method *atlas.StructMethodInfo) bool {
	if method.Body == nil || len(method.Body.Stmts) != 1 {
		return false
	}
	ret, ok := method.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok || ret.Value == nil {
		return false
	}
	lit, ok := ret.Value.(*ast.Literal)
	return ok && (lit.Kind == ast.IntLit || lit.Kind == ast.FloatLit)
}

// structLit renders a struct literal with every declared field: the
// provided initializers where present, defaults or zero values for
// the rest.
func (g *Generator) structLit(node *ast.StructLit) string {
	provided := make(map[string]ast.Expr, len(node.Fields))
	for _, init := range node.Fields {
		provided[init.Name] = init.Value
	}

	st, found := g.atlas.Structs[node.Name]
	if !found {
		fields := make([]string, len(node.Fields))
		for i, init := range node.Fields {
			fields[i] = fmt.Sprintf("%s: %s", init.Name, g.expr(init.Value))
		}
		return fmt.Sprintf("%s { %s }", node.Name, strings.Join(fields, ", "))
	}

	var fields []string
	for _, f := range st.Fields {
		if value, ok := provided[f.Name]; ok {
			rendered := g.expr(value)
			if f.RustType() == "String" && strings.HasPrefix(rendered, `"`) {
				rendered = fmt.Sprintf("String::from(%s)", rendered)
			}
			fields = append(fields, fmt.Sprintf("%s: %s", f.Name, rendered))
			continue
		}
		fields = append(fields, fmt.Sprintf("%s: %s", f.Name, g.fieldDefault(f)))
	}
	return fmt.Sprintf("%s { %s }", node.Name, strings.Join(fields, ", "))
}

// fieldDefault renders a field's default value expression, or the zero
// value for its type.
func (g *Generator) fieldDefault(f *atlas.StructFieldInfo) string {
	if f.Default != nil {
		rendered := g.expr(f.Default)
		if f.RustType() == "String" && strings.HasPrefix(rendered, `"`) {
			return fmt.Sprintf("String::from(%s)", rendered)
		}
		return rendered
	}
	return types.ZeroValue(f.RustType())
}

// renderInterpolated converts a `"... {expr} ..."` literal into a
// format! call.
func renderInterpolated(text string) string {
	inner := text[1 : len(text)-1]
	matches := interpolationRe.FindAllStringSubmatch(inner, -1)
	if len(matches) == 0 {
		return text
	}
	formatStr := interpolationRe.ReplaceAllString(inner, "{}")
	args := make([]string, len(matches))
	for i, m := range matches {
		args[i] = m[1]
	}
	return fmt.Sprintf("format!(\"%s\", %s)", formatStr, strings.Join(args, ", "))
}

// renderPrint renders a print() call as println!.
func renderPrint(args []string) string {
	if len(args) == 0 {
		return "println!()"
	}
	arg := args[0]
	if strings.HasPrefix(arg, "format!(") {
		inner := arg[len("format!(") : len(arg)-1]
		return fmt.Sprintf("println!(%s)", inner)
	}
	if strings.HasPrefix(arg, `"`) {
		inner := arg[1 : len(arg)-1]
		matches := interpolationRe.FindAllStringSubmatch(inner, -1)
		if len(matches) > 0 {
			formatStr := interpolationRe.ReplaceAllString(inner, "{}")
			exprs := make([]string, len(matches))
			for i, m := range matches {
				exprs[i] = m[1]
			}
			return fmt.Sprintf("println!(\"%s\", %s)", formatStr, strings.Join(exprs, ", "))
		}
		return fmt.Sprintf("println!(\"%s\")", inner)
	}
	return fmt.Sprintf("println!(\"{}\", %s)", arg)
}
