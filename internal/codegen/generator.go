// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package codegen

import (
	"fmt"
	"strings"

	"github.com/zinclang/zinc/internal/analyzer"
	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/symbols"
	"github.com/zinclang/zinc/internal/token"
	"github.com/zinclang/zinc/internal/types"
	"github.com/zinclang/zinc/internal/util"
)

// Generator renders Rust code from the Atlas and the resolver's
// symbol, specialization, and channel tables.
type Generator struct {
	atlas *atlas.Atlas
	res   *analyzer.Resolver
	syms  *symbols.Table

	usesAsync bool
	currentFn string

	// declaredVars tracks names already declared in the function being
	// emitted, to choose between `let` and bare assignment.
	declaredVars map[string]bool

	// declaredChannels tracks channels created in the function being
	// emitted; their uses rewrite to the derived endpoint names.
	declaredChannels map[string]bool

	// literalVars tracks variables holding compile-time literal values,
	// which may participate in integer narrowing.
	literalVars map[string]bool

	// currentStruct is set while emitting a struct method body.
	currentStruct *atlas.StructInstance
}

// New creates a Generator over resolved analysis results.
func New(a *atlas.Atlas, res *analyzer.Resolver) *Generator {
	return &Generator{
		atlas: a,
		res:   res,
		syms:  res.Symbols(),
	}
}

// Generate renders all reachable code as a RustProgram.
func (g *Generator) Generate() *RustProgram {
	prog := &RustProgram{}

	// Const and struct bodies render outside any specialization scope.
	g.enterFunction("")

	for _, name := range g.atlas.ConstNames() {
		prog.Consts = append(prog.Consts, g.genConst(g.atlas.Consts[name]))
	}
	for _, name := range g.atlas.StructNames() {
		prog.Structs = append(prog.Structs, g.genStruct(g.atlas.Structs[name]))
	}

	for _, mangled := range g.atlas.TopologicalOrder() {
		fn := g.atlas.Functions[mangled]
		if fn.Name == "main" {
			g.enterFunction("main")
			prog.MainBody = g.genBlock(fn.Decl.Body)
			continue
		}
		prog.Functions = append(prog.Functions, g.genFunction(fn))
	}

	// The import section depends on spawn usage discovered while
	// emitting bodies, so it is filled last.
	if g.usesAsync {
		prog.Imports = append(prog.Imports, "use tokio;")
	}
	prog.UsesAsync = g.usesAsync
	return prog
}

func (g *Generator) enterFunction(mangled string) {
	g.currentFn = mangled
	g.declaredVars = make(map[string]bool)
	g.declaredChannels = make(map[string]bool)
	g.literalVars = make(map[string]bool)
}

// lookup finds the symbol recorded for a source interval within the
// function currently being emitted.
func (g *Generator) lookup(iv token.Interval) *symbols.Symbol {
	return g.syms.LookupIntervalIn(g.currentFn, iv)
}

func (g *Generator) genConst(c *atlas.ConstInstance) string {
	value := g.expr(c.Decl.Value)
	name := util.ToScreamingSnake(c.Name)
	if c.Resolved != types.Unknown {
		return fmt.Sprintf("const %s: %s = %s;", name, types.ToRust(c.Resolved), value)
	}
	return fmt.Sprintf("const %s = %s;", name, value)
}

func (g *Generator) genStruct(st *atlas.StructInstance) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("struct %s {", st.Name))
	for _, f := range st.Fields {
		vis := "pub "
		if f.IsPrivate() {
			vis = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s%s: %s,", indent, vis, f.Name, f.RustType()))
	}
	lines = append(lines, "}")

	if len(st.Methods) > 0 {
		lines = append(lines, "", fmt.Sprintf("impl %s {", st.Name))
		for _, m := range st.Methods {
			lines = indentLines(lines, g.genStructMethod(st, m))
		}
		lines = append(lines, "}")
	}

	return strings.Join(lines, "\n")
}

func (g *Generator) genStructMethod(st *atlas.StructInstance, m *atlas.StructMethodInfo) string {
	var params []string
	if !m.IsStatic {
		recv := m.SelfMutability
		if recv == "" {
			recv = "&self"
		}
		params = append(params, recv)
	}
	for _, p := range m.Params {
		switch {
		case p.TypeAnn != "":
			params = append(params, fmt.Sprintf("%s: %s", p.Name, p.TypeAnn))
		case p.Resolved != "":
			params = append(params, fmt.Sprintf("%s: %s", p.Name, p.Resolved))
		default:
			// No evidence bound this parameter; default to i64.
			params = append(params, fmt.Sprintf("%s: i64", p.Name))
		}
	}

	retType := ""
	if m.ReturnType != "" {
		retType = " -> " + m.ReturnType
	}

	prevStruct := g.currentStruct
	g.currentStruct = st
	body := g.genBlock(m.Body)
	g.currentStruct = prevStruct

	lines := []string{fmt.Sprintf("fn %s(%s)%s {", m.Name, strings.Join(params, ", "), retType)}
	for _, stmt := range body {
		lines = indentLines(lines, stmt)
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func (g *Generator) genFunction(fn *atlas.FunctionInstance) string {
	g.enterFunction(fn.MangledName)

	var params []string
	for i, p := range fn.Decl.Params {
		name := p.Name
		// A parameter that sees a same-type reassignment binds mutably.
		if sym := g.lookup(p.Interval()); sym != nil && sym.IsMutated {
			name = "mut " + name
		}
		switch {
		case fn.ArgChannels[i] != nil:
			params = append(params, fmt.Sprintf("%s: %s", name, fn.ArgChannels[i].RustSender()))
		case p.TypeAnn != "":
			params = append(params, fmt.Sprintf("%s: %s", name, types.AnnotationToRust(p.TypeAnn)))
		case i < len(fn.ArgTypes):
			params = append(params, fmt.Sprintf("%s: %s", name, types.ToRust(fn.ArgTypes[i])))
		default:
			params = append(params, name)
		}
		g.declaredVars[p.Name] = true
	}

	body := g.genBlock(fn.Decl.Body)

	retType := ""
	if fn.ReturnType != types.Void && fn.ReturnType != types.Unknown {
		retType = " -> " + types.ToRust(fn.ReturnType)
	}

	asyncKw := ""
	if fn.IsAsync {
		asyncKw = "async "
	}

	lines := []string{fmt.Sprintf("%sfn %s(%s)%s {", asyncKw, fn.MangledName, strings.Join(params, ", "), retType)}
	for _, stmt := range body {
		lines = indentLines(lines, stmt)
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func (g *Generator) genBlock(block *ast.Block) []string {
	var stmts []string
	for _, stmt := range block.Stmts {
		if rendered := g.stmt(stmt); rendered != "" {
			stmts = append(stmts, rendered)
		}
	}
	return stmts
}

// --- Statements ---

func (g *Generator) stmt(s ast.Stmt) string {
	switch node := s.(type) {
	case *ast.AssignStmt:
		return g.assignStmt(node)
	case *ast.IfStmt:
		return g.ifStmt(node)
	case *ast.ForStmt:
		return g.forStmt(node)
	case *ast.WhileStmt:
		return g.whileStmt(node)
	case *ast.LoopStmt:
		return g.loopStmt(node)
	case *ast.ReturnStmt:
		if node.Value != nil {
			return fmt.Sprintf("return %s;", g.expr(node.Value))
		}
		return "return;"
	case *ast.BreakStmt:
		return "break;"
	case *ast.ContinueStmt:
		return "continue;"
	case *ast.SpawnStmt:
		return g.spawnStmt(node)
	case *ast.SendStmt:
		return g.sendStmt(node)
	case *ast.ExprStmt:
		rendered := g.expr(node.X)
		if strings.HasSuffix(rendered, ";") {
			return rendered
		}
		return rendered + ";"
	}
	return ""
}

func (g *Generator) assignStmt(stmt *ast.AssignStmt) string {
	// Channel creation destructures into the derived endpoint pair.
	if call, ok := stmt.Value.(*ast.CallExpr); ok && ast.CalleeName(call.Callee) == "chan" && stmt.Name != "" {
		return g.channelDecl(stmt.Name)
	}

	value := g.expr(stmt.Value)

	if stmt.Member != nil {
		// Inside a method body, a string literal stored into a String
		// field needs an owned value.
		if g.currentStruct != nil {
			if _, isSelf := stmt.Member.Target.(*ast.SelfExpr); isSelf {
				if f := g.currentStruct.Field(stmt.Member.Member); f != nil {
					if f.RustType() == "String" && strings.HasPrefix(value, `"`) {
						value = fmt.Sprintf("String::from(%s)", value)
					}
				}
			}
		}
		return fmt.Sprintf("%s = %s;", g.expr(stmt.Member), value)
	}

	name := stmt.Name
	sym := g.lookup(stmt.TargetSpan)
	if sym == nil {
		// Method bodies are not resolved per-specialization; their
		// local bindings fall back to plain declarations.
		return fmt.Sprintf("let %s = %s;", name, value)
	}

	if isCompileTimeLiteral(g, stmt.Value) {
		g.literalVars[name] = true
	}

	if sym.IsShadow || !g.declaredVars[name] {
		g.declaredVars[name] = true
		mut := ""
		if sym.IsMutated {
			mut = "mut "
		}
		// An empty vector needs its element type spelled out.
		if lit, ok := stmt.Value.(*ast.ArrayLit); ok && len(lit.Elems) == 0 {
			elem := types.ToRust(sym.Element)
			return fmt.Sprintf("let %s%s: Vec<%s> = Vec::new();", mut, name, elem)
		}
		return fmt.Sprintf("let %s%s = %s;", mut, name, value)
	}
	return fmt.Sprintf("%s = %s;", name, value)
}

func (g *Generator) channelDecl(name string) string {
	g.declaredVars[name] = true
	g.declaredChannels[name] = true

	info := g.res.ChannelInfos()[name]
	if info == nil {
		return fmt.Sprintf("let (%s_tx, mut %s_rx) = tokio::sync::mpsc::unbounded_channel();", name, name)
	}
	elem := types.ToRust(info.Element)
	if info.Bounded {
		capacity := info.Capacity
		if capacity == "" {
			capacity = "32"
		}
		return fmt.Sprintf("let (%s_tx, mut %s_rx) = tokio::sync::mpsc::channel::<%s>(%s);", name, name, elem, capacity)
	}
	return fmt.Sprintf("let (%s_tx, mut %s_rx) = tokio::sync::mpsc::unbounded_channel::<%s>();", name, name, elem)
}

func (g *Generator) ifStmt(stmt *ast.IfStmt) string {
	var lines []string
	for i, cond := range stmt.Conds {
		keyword := "if"
		if i > 0 {
			keyword = "} else if"
		}
		lines = append(lines, fmt.Sprintf("%s %s {", keyword, g.expr(cond)))
		for _, s := range g.genBlock(stmt.Blocks[i]) {
			lines = indentLines(lines, s)
		}
	}
	if stmt.Else != nil {
		lines = append(lines, "} else {")
		for _, s := range g.genBlock(stmt.Else) {
			lines = indentLines(lines, s)
		}
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func (g *Generator) forStmt(stmt *ast.ForStmt) string {
	iter := g.expr(stmt.Iterable)
	// Ranges are consumed; collections iterate by reference so the
	// loop does not move them.
	if _, isRange := stmt.Iterable.(*ast.RangeExpr); !isRange {
		iter = "&" + iter
	}
	lines := []string{fmt.Sprintf("for %s in %s {", stmt.Var, iter)}
	for _, s := range g.genBlock(stmt.Body) {
		lines = indentLines(lines, s)
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func (g *Generator) whileStmt(stmt *ast.WhileStmt) string {
	lines := []string{fmt.Sprintf("while %s {", g.expr(stmt.Cond))}
	for _, s := range g.genBlock(stmt.Body) {
		lines = indentLines(lines, s)
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func (g *Generator) loopStmt(stmt *ast.LoopStmt) string {
	lines := []string{"loop {"}
	for _, s := range g.genBlock(stmt.Body) {
		lines = indentLines(lines, s)
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

func (g *Generator) spawnStmt(stmt *ast.SpawnStmt) string {
	g.usesAsync = true

	var args []string
	for _, arg := range stmt.Args {
		rendered := g.expr(arg)
		// Channel arguments hand the sender endpoint to the task.
		if name := ast.CalleeName(arg); name != "" && g.declaredChannels[name] {
			rendered = name + "_tx"
		}
		args = append(args, rendered)
	}

	callee := g.expr(stmt.Callee)
	if mangled, ok := g.res.Specialization(g.currentFn, stmt.Interval()); ok {
		callee = mangled
	}
	return fmt.Sprintf("tokio::spawn(%s(%s));", callee, strings.Join(args, ", "))
}

func (g *Generator) sendStmt(stmt *ast.SendStmt) string {
	sender := stmt.Channel
	if g.declaredChannels[sender] {
		sender += "_tx"
	}
	value := g.expr(stmt.Value)

	info := g.res.ChannelInfos()[stmt.Channel]
	if info != nil && info.Bounded {
		// Bounded sends suspend.
		return fmt.Sprintf("%s.send(%s).await.unwrap();", sender, value)
	}
	return fmt.Sprintf("%s.send(%s).unwrap();", sender, value)
}
