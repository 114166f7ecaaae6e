// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package ast defines the Zinc parse tree. Every node exposes a stable
// source interval over token indices; the interval is the identity the
// symbol table and the specialization map key on.
package ast

import "github.com/zinclang/zinc/internal/token"

// Node is implemented by every parse-tree node.
type Node interface {
	Interval() token.Interval
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the parse-tree root: the ordered top-level declarations.
type Program struct {
	Funcs   []*FuncDecl
	Structs []*StructDecl
	Consts  []*ConstDecl
	Span    token.Interval
}

func (p *Program) Interval() token.Interval { return p.Span }

// Param is a function or method parameter. TypeAnn is empty when the
// parameter is untyped and must be bound by specialization.
type Param struct {
	Name    string
	TypeAnn string
	Span    token.Interval
}

func (p *Param) Interval() token.Interval { return p.Span }

// FuncDecl is a function declaration, top-level or inline in a struct.
type FuncDecl struct {
	Name   string
	Params []*Param
	Body   *Block
	Span   token.Interval
}

func (f *FuncDecl) Interval() token.Interval { return f.Span }

// StructField is a field declaration inside a struct body. A field has
// either an explicit type annotation or a default-value expression (or
// neither); the Const modifier marks it immutable after initialization.
type StructField struct {
	Name    string
	TypeAnn string
	Default Expr
	IsConst bool
	Span    token.Interval
}

func (f *StructField) Interval() token.Interval { return f.Span }

// IsPrivate reports whether the field is private (leading underscore).
func (f *StructField) IsPrivate() bool {
	return len(f.Name) > 0 && f.Name[0] == '_'
}

// StructDecl is a struct declaration with fields and inline methods.
type StructDecl struct {
	Name    string
	Fields  []*StructField
	Methods []*FuncDecl
	Span    token.Interval
}

func (s *StructDecl) Interval() token.Interval { return s.Span }

// ConstDecl is a top-level constant declaration.
type ConstDecl struct {
	Name  string
	Value Expr
	Span  token.Interval
}

func (c *ConstDecl) Interval() token.Interval { return c.Span }

// Block is a brace-delimited statement list.
type Block struct {
	Stmts []Stmt
	Span  token.Interval
}

func (b *Block) Interval() token.Interval { return b.Span }

// --- Statements ---

// AssignStmt is a variable or member assignment. Exactly one of Name or
// Member is set: Name for `x = expr`, Member for `self.f = expr` style
// targets. TargetSpan is the interval of the assignment target alone.
type AssignStmt struct {
	Name       string
	Member     *MemberExpr
	Value      Expr
	TargetSpan token.Interval
	Span       token.Interval
}

func (s *AssignStmt) Interval() token.Interval { return s.Span }
func (s *AssignStmt) stmtNode()                {}

// IfStmt is an if / else-if / else chain. Conds[i] guards Blocks[i];
// Else is the optional trailing block.
type IfStmt struct {
	Conds  []Expr
	Blocks []*Block
	Else   *Block
	Span   token.Interval
}

func (s *IfStmt) Interval() token.Interval { return s.Span }
func (s *IfStmt) stmtNode()                {}

// ForStmt is range-iteration: `for x in iterable { ... }`.
type ForStmt struct {
	Var      string
	VarSpan  token.Interval
	Iterable Expr
	Body     *Block
	Span     token.Interval
}

func (s *ForStmt) Interval() token.Interval { return s.Span }
func (s *ForStmt) stmtNode()                {}

// WhileStmt is a condition-guarded loop.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Span token.Interval
}

func (s *WhileStmt) Interval() token.Interval { return s.Span }
func (s *WhileStmt) stmtNode()                {}

// LoopStmt is an unconditional loop.
type LoopStmt struct {
	Body *Block
	Span token.Interval
}

func (s *LoopStmt) Interval() token.Interval { return s.Span }
func (s *LoopStmt) stmtNode()                {}

// ReturnStmt returns an optional value.
type ReturnStmt struct {
	Value Expr
	Span  token.Interval
}

func (s *ReturnStmt) Interval() token.Interval { return s.Span }
func (s *ReturnStmt) stmtNode()                {}

// BreakStmt exits the innermost loop.
type BreakStmt struct {
	Span token.Interval
}

func (s *BreakStmt) Interval() token.Interval { return s.Span }
func (s *BreakStmt) stmtNode()                {}

// ContinueStmt continues the innermost loop.
type ContinueStmt struct {
	Span token.Interval
}

func (s *ContinueStmt) Interval() token.Interval { return s.Span }
func (s *ContinueStmt) stmtNode()                {}

// SpawnStmt launches a function call as a background task.
type SpawnStmt struct {
	Callee Expr
	Args   []Expr
	Span   token.Interval
}

func (s *SpawnStmt) Interval() token.Interval { return s.Span }
func (s *SpawnStmt) stmtNode()                {}

// SendStmt is a channel send: `x <- value`.
type SendStmt struct {
	Channel  string
	ChanSpan token.Interval
	Value    Expr
	Span     token.Interval
}

func (s *SendStmt) Interval() token.Interval { return s.Span }
func (s *SendStmt) stmtNode()                {}

// ExprStmt is a standalone expression (typically a call).
type ExprStmt struct {
	X    Expr
	Span token.Interval
}

func (s *ExprStmt) Interval() token.Interval { return s.Span }
func (s *ExprStmt) stmtNode()                {}

// --- Expressions ---

// LitKind classifies literal spellings.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
)

// Literal is an integer, float, string, or boolean literal. Text keeps
// the source spelling (strings include their quotes).
type Literal struct {
	Kind LitKind
	Text string
	Span token.Interval
}

func (e *Literal) Interval() token.Interval { return e.Span }
func (e *Literal) exprNode()                {}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Span token.Interval
}

func (e *Ident) Interval() token.Interval { return e.Span }
func (e *Ident) exprNode()                {}

// SelfExpr is the `self` receiver inside a struct method.
type SelfExpr struct {
	Span token.Interval
}

func (e *SelfExpr) Interval() token.Interval { return e.Span }
func (e *SelfExpr) exprNode()                {}

// UnaryExpr is `-x`, `!x`, or `not x`.
type UnaryExpr struct {
	Op   string
	X    Expr
	Span token.Interval
}

func (e *UnaryExpr) Interval() token.Interval { return e.Span }
func (e *UnaryExpr) exprNode()                {}

// BinaryExpr covers arithmetic, relational, equality, and logical
// operators.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	Span  token.Interval
}

func (e *BinaryExpr) Interval() token.Interval { return e.Span }
func (e *BinaryExpr) exprNode()                {}

// ParenExpr preserves explicit grouping.
type ParenExpr struct {
	X    Expr
	Span token.Interval
}

func (e *ParenExpr) Interval() token.Interval { return e.Span }
func (e *ParenExpr) exprNode()                {}

// CallExpr is a function or method invocation.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   token.Interval
}

func (e *CallExpr) Interval() token.Interval { return e.Span }
func (e *CallExpr) exprNode()                {}

// MemberExpr is `target.member` - a field access, instance method
// reference, or static method reference when target names a struct.
type MemberExpr struct {
	Target Expr
	Member string
	Span   token.Interval
}

func (e *MemberExpr) Interval() token.Interval { return e.Span }
func (e *MemberExpr) exprNode()                {}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
	Span   token.Interval
}

func (e *IndexExpr) Interval() token.Interval { return e.Span }
func (e *IndexExpr) exprNode()                {}

// RangeExpr is `start..end` or `start..=end`.
type RangeExpr struct {
	Start     Expr
	End       Expr
	Inclusive bool
	Span      token.Interval
}

func (e *RangeExpr) Interval() token.Interval { return e.Span }
func (e *RangeExpr) exprNode()                {}

// ArrayLit is `[a, b, c]` or the empty `[]`.
type ArrayLit struct {
	Elems []Expr
	Span  token.Interval
}

func (e *ArrayLit) Interval() token.Interval { return e.Span }
func (e *ArrayLit) exprNode()                {}

// FieldInit is one `name: value` entry in a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
	Span  token.Interval
}

func (f *FieldInit) Interval() token.Interval { return f.Span }

// StructLit instantiates a struct: `Name { f: v, ... }`.
type StructLit struct {
	Name   string
	Fields []*FieldInit
	Span   token.Interval
}

func (e *StructLit) Interval() token.Interval { return e.Span }
func (e *StructLit) exprNode()                {}

// ReceiveExpr is a channel receive: `<- x`.
type ReceiveExpr struct {
	Channel Expr
	Span    token.Interval
}

func (e *ReceiveExpr) Interval() token.Interval { return e.Span }
func (e *ReceiveExpr) exprNode()                {}

// CalleeName returns the bare identifier a call or spawn targets, or
// "" when the callee is not a simple identifier.
func CalleeName(callee Expr) string {
	if id, ok := callee.(*Ident); ok {
		return id.Name
	}
	return ""
}

// ReceiverName returns the identifier a member expression is accessed
// on, or "" when the target is not a simple identifier.
func ReceiverName(m *MemberExpr) string {
	return CalleeName(m.Target)
}
