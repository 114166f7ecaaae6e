// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package ast

// Inspect walks the subtree rooted at node in depth-first order, calling
// fn for every node. If fn returns false for a node, its children are
// skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// Children returns the direct child nodes of node in source order, except
// that a Program's children come grouped: consts, then structs, then
// functions.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		switch v := n.(type) {
		case nil:
		case *Block:
			if v != nil {
				out = append(out, v)
			}
		default:
			out = append(out, n)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, c := range n.Consts {
			out = append(out, c)
		}
		for _, s := range n.Structs {
			out = append(out, s)
		}
		for _, f := range n.Funcs {
			out = append(out, f)
		}
	case *FuncDecl:
		for _, p := range n.Params {
			out = append(out, p)
		}
		add(n.Body)
	case *StructDecl:
		for _, f := range n.Fields {
			out = append(out, f)
		}
		for _, m := range n.Methods {
			out = append(out, m)
		}
	case *StructField:
		addExpr(n.Default)
	case *ConstDecl:
		addExpr(n.Value)
	case *Block:
		for _, s := range n.Stmts {
			out = append(out, s)
		}
	case *AssignStmt:
		if n.Member != nil {
			out = append(out, n.Member)
		}
		addExpr(n.Value)
	case *IfStmt:
		for i := range n.Conds {
			addExpr(n.Conds[i])
			add(n.Blocks[i])
		}
		add(n.Else)
	case *ForStmt:
		addExpr(n.Iterable)
		add(n.Body)
	case *WhileStmt:
		addExpr(n.Cond)
		add(n.Body)
	case *LoopStmt:
		add(n.Body)
	case *ReturnStmt:
		addExpr(n.Value)
	case *SpawnStmt:
		addExpr(n.Callee)
		for _, a := range n.Args {
			addExpr(a)
		}
	case *SendStmt:
		addExpr(n.Value)
	case *ExprStmt:
		addExpr(n.X)
	case *UnaryExpr:
		addExpr(n.X)
	case *BinaryExpr:
		addExpr(n.Left)
		addExpr(n.Right)
	case *ParenExpr:
		addExpr(n.X)
	case *CallExpr:
		addExpr(n.Callee)
		for _, a := range n.Args {
			addExpr(a)
		}
	case *MemberExpr:
		addExpr(n.Target)
	case *IndexExpr:
		addExpr(n.Target)
		addExpr(n.Index)
	case *RangeExpr:
		addExpr(n.Start)
		addExpr(n.End)
	case *ArrayLit:
		for _, e := range n.Elems {
			addExpr(e)
		}
	case *StructLit:
		for _, f := range n.Fields {
			out = append(out, f)
		}
	case *FieldInit:
		addExpr(n.Value)
	case *ReceiveExpr:
		addExpr(n.Channel)
	}
	return out
}
