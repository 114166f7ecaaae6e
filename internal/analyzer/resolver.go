// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package analyzer is the semantic middle-end: it interleaves type
// inference with monomorphization, discovering one specialization per
// distinct argument-type signature at each call site, classifies
// channel endpoints and spawn-reached functions, and decides which
// bindings are reassignments, shadows, or need mutability.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/symbols"
	"github.com/zinclang/zinc/internal/token"
	"github.com/zinclang/zinc/internal/types"
)

// Resolver walks reachable code and builds the symbol table, the
// specialization map, and the channel info table.
type Resolver struct {
	atlas   *atlas.Atlas
	symbols *symbols.Table

	// specMap binds each call or spawn site, keyed by the enclosing
	// specialization scope plus the site's source interval, to its
	// mangled callee. Keying on the scope keeps call sites inside a
	// template from colliding across its specializations.
	specMap map[string]string

	// channelInfos tracks channel-bearing variables by name. Entries
	// are shared by pointer with FunctionInstance.ArgChannels so element
	// types fixed inside a spawned callee back-flow to the creator.
	channelInfos map[string]*types.ChannelInfo

	blockCounters map[string]int
	currentFn     string
	currentReturn types.Base

	// finalPass is set during the last validation sweep; only then are
	// still-Unknown argument types reported, so types that resolve in a
	// later discovery pass do not produce false failures.
	finalPass bool

	diags     Diagnostics
	diagsSeen map[string]bool
}

// NewResolver creates a Resolver over a built Atlas.
func NewResolver(a *atlas.Atlas) *Resolver {
	return &Resolver{
		atlas:         a,
		symbols:       symbols.NewTable(),
		specMap:       make(map[string]string),
		channelInfos:  make(map[string]*types.ChannelInfo),
		blockCounters: make(map[string]int),
		diagsSeen:     make(map[string]bool),
	}
}

// Symbols returns the symbol table built by Resolve.
func (r *Resolver) Symbols() *symbols.Table { return r.symbols }

// ChannelInfos returns the channel info table built by Resolve.
func (r *Resolver) ChannelInfos() map[string]*types.ChannelInfo { return r.channelInfos }

// Diagnostics returns the resolution failures observed so far.
func (r *Resolver) Diagnostics() Diagnostics { return r.diags }

// Specialization returns the mangled callee bound to a call or spawn
// site in the given specialization scope.
func (r *Resolver) Specialization(fnScope string, iv token.Interval) (string, bool) {
	mangled, ok := r.specMap[siteKey(fnScope, iv)]
	return mangled, ok
}

func siteKey(fnScope string, iv token.Interval) string {
	return fnScope + ":" + iv.String()
}

// Resolve types all reachable code. Specializations are discovered in
// caller-first order until a fixpoint, then every specialization is
// re-resolved in callee-first topological order so call expressions
// observe correct return types. Re-entry is deliberate: a body may be
// processed several times as more types become known.
func (r *Resolver) Resolve() (*symbols.Table, error) {
	r.registerBuiltins()

	for _, name := range r.atlas.ConstNames() {
		r.resolveConst(r.atlas.Consts[name])
	}

	for _, name := range r.atlas.StructNames() {
		r.analyzeStruct(r.atlas.Structs[name])
	}

	// Phase 1: discovery. Walking a body can add specializations, so
	// iterate until a pass finds nothing new.
	processed := make(map[string]bool)
	for {
		newWork := false
		names := r.atlas.FunctionNames()
		for _, mangled := range names {
			if processed[mangled] {
				continue
			}
			processed[mangled] = true
			newWork = true
			r.resolveFunction(r.atlas.Functions[mangled])
		}
		if !newWork {
			break
		}
	}

	// Phase 2: return-type propagation, callees first. Propagating a
	// return type can unlock a call site whose arguments were Unknown,
	// so repeat until the specialization set is stable.
	for {
		before := len(r.atlas.Functions)
		for _, mangled := range r.atlas.TopologicalOrder() {
			r.resolveFunction(r.atlas.Functions[mangled])
		}
		if len(r.atlas.Functions) == before {
			break
		}
	}

	// Final sweep: every type that can be inferred has been; call and
	// spawn sites still carrying Unknown argument types are failures.
	r.finalPass = true
	for _, mangled := range r.atlas.TopologicalOrder() {
		r.resolveFunction(r.atlas.Functions[mangled])
	}
	r.finalPass = false

	if len(r.diags) > 0 {
		sort.SliceStable(r.diags, func(i, j int) bool {
			return r.diags[i].Interval.Start < r.diags[j].Interval.Start
		})
		return r.symbols, r.diags
	}
	return r.symbols, nil
}

func (r *Resolver) registerBuiltins() {
	none := token.Interval{Start: -1, Stop: -1}
	r.symbols.Define("print", symbols.Builtin, types.Void, none, false)
	r.symbols.Define("chan", symbols.Builtin, types.Channel, token.Interval{Start: -2, Stop: -2}, false)
}

func (r *Resolver) report(kind DiagnosticKind, iv token.Interval, format string, args ...interface{}) *Diagnostic {
	d := &Diagnostic{
		Kind:     kind,
		Interval: iv,
		Function: r.currentFn,
		Message:  fmt.Sprintf(format, args...),
	}
	key := fmt.Sprintf("%d:%s:%s", kind, r.currentFn, iv)
	if r.diagsSeen[key] {
		return d
	}
	r.diagsSeen[key] = true
	r.diags = append(r.diags, d)
	return d
}

func (r *Resolver) resolveConst(c *atlas.ConstInstance) {
	t := r.exprType(c.Decl.Value)
	c.Resolved = t
	r.symbols.Define(c.Name, symbols.Const, t, c.Decl.Interval(), false)
}

// resolveFunction types one specialization's body. Parameters take
// their types from the specialization's argument tuple; channel-typed
// parameters also register their shared channel info under the
// parameter name.
func (r *Resolver) resolveFunction(fn *atlas.FunctionInstance) {
	r.blockCounters = make(map[string]int)
	r.currentFn = fn.MangledName
	r.currentReturn = types.Void

	r.symbols.EnterScope(fn.MangledName)

	for i, param := range fn.Decl.Params {
		paramType := types.Unknown
		if i < len(fn.ArgTypes) {
			paramType = fn.ArgTypes[i]
		}
		if param.TypeAnn != "" {
			paramType = types.FromAnnotation(param.TypeAnn)
		}
		r.symbols.Define(param.Name, symbols.Parameter, paramType, param.Interval(), false)
		if paramType == types.Channel {
			if info, ok := fn.ArgChannels[i]; ok {
				r.channelInfos[param.Name] = info
			}
		}
	}

	r.resolveBlock(fn.Decl.Body)
	fn.ReturnType = r.currentReturn

	r.symbols.ExitScope()
	r.currentFn = ""
}

func (r *Resolver) nextBlockName(prefix string) string {
	count := r.blockCounters[prefix]
	r.blockCounters[prefix] = count + 1
	return fmt.Sprintf("%s_%d", prefix, count)
}

func (r *Resolver) resolveBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch node := stmt.(type) {
	case *ast.AssignStmt:
		r.resolveAssign(node)
	case *ast.ExprStmt:
		r.exprType(node.X)
	case *ast.IfStmt:
		for _, cond := range node.Conds {
			r.exprType(cond)
		}
		for _, block := range node.Blocks {
			r.symbols.EnterScope(r.nextBlockName("if"))
			r.resolveBlock(block)
			r.symbols.ExitScope()
		}
		if node.Else != nil {
			r.symbols.EnterScope(r.nextBlockName("if"))
			r.resolveBlock(node.Else)
			r.symbols.ExitScope()
		}
	case *ast.ForStmt:
		iterType := r.exprType(node.Iterable)
		r.symbols.EnterScope(r.nextBlockName("for"))
		varType := types.Unknown
		if iterType == types.Integer {
			varType = types.Integer
		} else if iterType == types.Array {
			varType = r.iterableElement(node.Iterable)
		}
		r.symbols.Define(node.Var, symbols.Variable, varType, node.VarSpan, false)
		r.resolveBlock(node.Body)
		r.symbols.ExitScope()
	case *ast.WhileStmt:
		r.exprType(node.Cond)
		r.symbols.EnterScope(r.nextBlockName("while"))
		r.resolveBlock(node.Body)
		r.symbols.ExitScope()
	case *ast.LoopStmt:
		r.symbols.EnterScope(r.nextBlockName("loop"))
		r.resolveBlock(node.Body)
		r.symbols.ExitScope()
	case *ast.ReturnStmt:
		if node.Value != nil {
			t := r.exprType(node.Value)
			// The first return statement fixes the return type.
			if r.currentReturn == types.Void {
				r.currentReturn = t
			}
		}
	case *ast.SpawnStmt:
		r.resolveSpawn(node)
	case *ast.SendStmt:
		r.resolveSend(node)
	case *ast.BreakStmt, *ast.ContinueStmt:
	}
}

// iterableElement returns the element type of an iterated array
// variable, when the variable's element type is known.
func (r *Resolver) iterableElement(iterable ast.Expr) types.Base {
	if id, ok := iterable.(*ast.Ident); ok {
		if sym := r.symbols.LookupName(id.Name); sym != nil {
			return sym.Element
		}
	}
	return types.Unknown
}

// resolveAssign classifies an assignment as first declaration,
// same-type reassignment, or type-changing shadow, and tracks channel
// creations and struct-instance bindings.
func (r *Resolver) resolveAssign(stmt *ast.AssignStmt) {
	valueType := r.exprType(stmt.Value)

	if stmt.Member != nil {
		// Member assignment mutates the receiver.
		if recv := ast.ReceiverName(stmt.Member); recv != "" {
			if sym := r.symbols.LookupName(recv); sym != nil {
				sym.IsMutated = true
			}
		}
		r.symbols.DefineTemp(valueType, stmt.TargetSpan, symbols.Temporary)
		return
	}

	name := stmt.Name
	existing := r.symbols.LookupName(name)

	// Channel creation: remember the channel's shape under the variable
	// name. Info learned in a previous pass is preserved so element
	// types survive re-resolution.
	if valueType == types.Channel {
		if call, ok := stmt.Value.(*ast.CallExpr); ok && ast.CalleeName(call.Callee) == "chan" {
			prior := r.channelInfos[name]
			if prior == nil || prior.Element == types.Unknown {
				info := &types.ChannelInfo{Element: types.Unknown}
				if prior != nil {
					info = prior
				}
				info.Bounded = len(call.Args) > 0
				if info.Bounded {
					if lit, ok := call.Args[0].(*ast.Literal); ok {
						info.Capacity = lit.Text
					}
				}
				r.channelInfos[name] = info
			}
		}
	}

	// A receive into a variable whose prior binding has a known type
	// fixes the channel element type from the binding context.
	if valueType == types.Unknown && existing != nil && existing.Resolved != types.Unknown {
		if recv, ok := stmt.Value.(*ast.ReceiveExpr); ok {
			if chanName := ast.CalleeName(recv.Channel); chanName != "" {
				if info, ok := r.channelInfos[chanName]; ok && info.Element == types.Unknown {
					info.Element = existing.Resolved
					valueType = existing.Resolved
				}
			}
		}
	}

	switch {
	case existing == nil:
		sym := r.symbols.Define(name, symbols.Variable, valueType, stmt.TargetSpan, false)
		r.noteStructBinding(sym, stmt.Value)
		r.noteArrayBinding(sym, stmt.Value)
	case existing.Resolved != valueType:
		// Type change: a fresh binding shadows the old one.
		sym := r.symbols.Define(name, symbols.Variable, valueType, stmt.TargetSpan, true)
		r.noteStructBinding(sym, stmt.Value)
		r.noteArrayBinding(sym, stmt.Value)
	case valueType == types.Array && existing.Element != types.Unknown && isEmptyArrayLit(stmt.Value):
		// Reassigning an empty array literal over a binding with a known
		// element type: the literal cannot prove the same element type,
		// so it opens a fresh binding.
		r.symbols.Define(name, symbols.Variable, valueType, stmt.TargetSpan, true)
	default:
		// Same-type reassignment: the declaration becomes mutable and
		// the site itself is only a temporary.
		existing.IsMutated = true
		r.symbols.DefineTemp(valueType, stmt.TargetSpan, symbols.Temporary)
	}
}

// noteStructBinding records the struct type a variable holds when the
// value is a struct literal or a static method returning Self.
func (r *Resolver) noteStructBinding(sym *symbols.Symbol, value ast.Expr) {
	switch node := value.(type) {
	case *ast.StructLit:
		sym.StructName = node.Name
	case *ast.CallExpr:
		member, ok := node.Callee.(*ast.MemberExpr)
		if !ok {
			return
		}
		recv := ast.ReceiverName(member)
		st, ok := r.atlas.Structs[recv]
		if !ok {
			return
		}
		if m := st.Method(member.Member); m != nil && m.ReturnType == "Self" {
			sym.StructName = recv
		}
	}
}

// noteArrayBinding records the element type of a non-empty array
// literal on the binding.
func (r *Resolver) noteArrayBinding(sym *symbols.Symbol, value ast.Expr) {
	if lit, ok := value.(*ast.ArrayLit); ok && len(lit.Elems) > 0 {
		sym.Element = r.peekType(lit.Elems[0])
	}
}

func isEmptyArrayLit(e ast.Expr) bool {
	lit, ok := e.(*ast.ArrayLit)
	return ok && len(lit.Elems) == 0
}

func literalType(lit *ast.Literal) types.Base {
	switch lit.Kind {
	case ast.IntLit:
		return types.Integer
	case ast.FloatLit:
		return types.Float
	case ast.StringLit:
		return types.String
	case ast.BoolLit:
		return types.Boolean
	}
	return types.Unknown
}

// peekType returns the type of an expression without defining
// temporaries, for lookahead situations.
func (r *Resolver) peekType(e ast.Expr) types.Base {
	switch node := e.(type) {
	case *ast.Literal:
		return literalType(node)
	case *ast.Ident:
		if sym := r.symbols.LookupName(node.Name); sym != nil {
			return sym.Resolved
		}
	}
	return types.Unknown
}
