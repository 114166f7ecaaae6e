// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser builds the Zinc parse tree from source text. The parser
// is a hand-written recursive-descent pass over the token stream; every
// node it produces carries a stable token-index interval.
package parser

import (
	"fmt"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/lexer"
	"github.com/zinclang/zinc/internal/token"
)

// Error is a syntax error with source position.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse tokenizes and parses src, returning the parse tree and any
// lexical or syntax errors. The tree is usable (best-effort) even when
// errors are present.
func Parse(src string) (*ast.Program, []*Error) {
	lx := lexer.New(src)
	toks, lexErrs := lx.Tokenize()

	p := &parser{toks: toks}
	for _, le := range lexErrs {
		p.errs = append(p.errs, &Error{Line: le.Line, Column: le.Column, Message: le.Message})
	}
	prog := p.parseProgram()
	return prog, p.errs
}

type parser struct {
	toks []token.Token
	pos  int
	errs []*Error

	// noStructLit suppresses struct-literal parsing while a control-flow
	// header is being parsed, so `while x { ... }` does not read `x {`
	// as an instantiation.
	noStructLit bool
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind token.Kind) token.Token {
	if p.at(kind) {
		return p.advance()
	}
	tok := p.cur()
	p.errorf(tok, "expected %s, found %q", kind, tok.Text)
	return tok
}

func (p *parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.errs = append(p.errs, &Error{Line: tok.Line, Column: tok.Column, Message: fmt.Sprintf(format, args...)})
}

func iv(start, stop int) token.Interval { return token.Interval{Start: start, Stop: stop} }

func (p *parser) last() int {
	if p.pos == 0 {
		return 0
	}
	return p.pos - 1
}

// --- Declarations ---

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	start := p.pos
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Fn:
			prog.Funcs = append(prog.Funcs, p.parseFuncDecl())
		case token.Struct:
			prog.Structs = append(prog.Structs, p.parseStructDecl())
		case token.Const:
			prog.Consts = append(prog.Consts, p.parseConstDecl())
		case token.Semicolon:
			p.advance()
		default:
			tok := p.advance()
			p.errorf(tok, "expected declaration, found %q", tok.Text)
		}
	}
	prog.Span = iv(start, p.last())
	return prog
}

func (p *parser) parseFuncDecl() *ast.FuncDecl {
	start := p.pos
	p.expect(token.Fn)
	name := p.expect(token.Ident)
	p.expect(token.LParen)

	var params []*ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pstart := p.pos
		pname := p.expect(token.Ident)
		typeAnn := ""
		if p.accept(token.Colon) {
			typeAnn = p.expect(token.Ident).Text
		}
		params = append(params, &ast.Param{
			Name:    pname.Text,
			TypeAnn: typeAnn,
			Span:    iv(pstart, p.last()),
		})
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	body := p.parseBlock()

	return &ast.FuncDecl{
		Name:   name.Text,
		Params: params,
		Body:   body,
		Span:   iv(start, p.last()),
	}
}

func (p *parser) parseStructDecl() *ast.StructDecl {
	start := p.pos
	p.expect(token.Struct)
	name := p.expect(token.Ident)
	p.expect(token.LBrace)

	decl := &ast.StructDecl{Name: name.Text}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Fn:
			decl.Methods = append(decl.Methods, p.parseFuncDecl())
		case token.Semicolon, token.Comma:
			p.advance()
		default:
			decl.Fields = append(decl.Fields, p.parseStructField())
		}
	}
	p.expect(token.RBrace)
	decl.Span = iv(start, p.last())
	return decl
}

func (p *parser) parseStructField() *ast.StructField {
	start := p.pos
	isConst := p.accept(token.Const)
	name := p.expect(token.Ident)

	field := &ast.StructField{Name: name.Text, IsConst: isConst}
	if p.accept(token.Colon) {
		field.TypeAnn = p.expect(token.Ident).Text
	} else if p.accept(token.Assign) {
		field.Default = p.parseExpr()
	}
	field.Span = iv(start, p.last())
	return field
}

func (p *parser) parseConstDecl() *ast.ConstDecl {
	start := p.pos
	p.expect(token.Const)
	name := p.expect(token.Ident)
	p.expect(token.Assign)
	value := p.parseExpr()
	return &ast.ConstDecl{Name: name.Text, Value: value, Span: iv(start, p.last())}
}

// --- Statements ---

func (p *parser) parseBlock() *ast.Block {
	start := p.pos
	p.expect(token.LBrace)
	block := &ast.Block{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.accept(token.Semicolon) {
			continue
		}
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	p.expect(token.RBrace)
	block.Span = iv(start, p.last())
	return block
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.If:
		return p.parseIfStmt()
	case token.For:
		return p.parseForStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.Loop:
		return p.parseLoopStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.Break:
		start := p.pos
		p.advance()
		return &ast.BreakStmt{Span: iv(start, start)}
	case token.Continue:
		start := p.pos
		p.advance()
		return &ast.ContinueStmt{Span: iv(start, start)}
	case token.Spawn:
		return p.parseSpawnStmt()
	case token.Ident:
		// Channel send: IDENT '<-' expr
		if p.peek().Kind == token.Arrow {
			return p.parseSendStmt()
		}
		// Simple assignment: IDENT '=' expr
		if p.peek().Kind == token.Assign {
			return p.parseAssignStmt()
		}
	case token.Self:
		// Member assignment: self.f = expr (or a deeper member chain).
		if p.peek().Kind == token.Dot {
			if stmt := p.tryMemberAssign(); stmt != nil {
				return stmt
			}
		}
	}

	// Fall back to expression statement; `x.y = v` on identifiers also
	// lands here via tryMemberAssign.
	if p.at(token.Ident) && p.peek().Kind == token.Dot {
		if stmt := p.tryMemberAssign(); stmt != nil {
			return stmt
		}
	}

	start := p.pos
	x := p.parseExpr()
	return &ast.ExprStmt{X: x, Span: iv(start, p.last())}
}

// tryMemberAssign parses `target.member = expr` when the lookahead
// matches, restoring the position otherwise.
func (p *parser) tryMemberAssign() ast.Stmt {
	save := p.pos
	saveErrs := len(p.errs)
	start := p.pos

	x := p.parsePostfix()
	member, ok := x.(*ast.MemberExpr)
	if !ok || !p.at(token.Assign) {
		p.pos = save
		p.errs = p.errs[:saveErrs]
		return nil
	}
	targetStop := p.last()
	p.expect(token.Assign)
	value := p.parseExpr()
	return &ast.AssignStmt{
		Member:     member,
		Value:      value,
		TargetSpan: iv(start, targetStop),
		Span:       iv(start, p.last()),
	}
}

func (p *parser) parseAssignStmt() ast.Stmt {
	start := p.pos
	name := p.expect(token.Ident)
	targetStop := p.last()
	p.expect(token.Assign)
	value := p.parseExpr()
	return &ast.AssignStmt{
		Name:       name.Text,
		Value:      value,
		TargetSpan: iv(start, targetStop),
		Span:       iv(start, p.last()),
	}
}

func (p *parser) parseSendStmt() ast.Stmt {
	start := p.pos
	chanTok := p.expect(token.Ident)
	chanStop := p.last()
	p.expect(token.Arrow)
	value := p.parseExpr()
	return &ast.SendStmt{
		Channel:  chanTok.Text,
		ChanSpan: iv(start, chanStop),
		Value:    value,
		Span:     iv(start, p.last()),
	}
}

func (p *parser) parseIfStmt() ast.Stmt {
	start := p.pos
	p.expect(token.If)
	stmt := &ast.IfStmt{}
	stmt.Conds = append(stmt.Conds, p.parseCond())
	stmt.Blocks = append(stmt.Blocks, p.parseBlock())

	for p.at(token.Else) {
		p.advance()
		if p.accept(token.If) {
			stmt.Conds = append(stmt.Conds, p.parseCond())
			stmt.Blocks = append(stmt.Blocks, p.parseBlock())
			continue
		}
		stmt.Else = p.parseBlock()
		break
	}
	stmt.Span = iv(start, p.last())
	return stmt
}

func (p *parser) parseForStmt() ast.Stmt {
	start := p.pos
	p.expect(token.For)
	varStart := p.pos
	name := p.expect(token.Ident)
	varStop := p.last()
	p.expect(token.In)
	iterable := p.parseCond()
	body := p.parseBlock()
	return &ast.ForStmt{
		Var:      name.Text,
		VarSpan:  iv(varStart, varStop),
		Iterable: iterable,
		Body:     body,
		Span:     iv(start, p.last()),
	}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	start := p.pos
	p.expect(token.While)
	cond := p.parseCond()
	body := p.parseBlock()
	return &ast.WhileStmt{Cond: cond, Body: body, Span: iv(start, p.last())}
}

func (p *parser) parseLoopStmt() ast.Stmt {
	start := p.pos
	p.expect(token.Loop)
	body := p.parseBlock()
	return &ast.LoopStmt{Body: body, Span: iv(start, p.last())}
}

func (p *parser) parseReturnStmt() ast.Stmt {
	start := p.pos
	p.expect(token.Return)
	stmt := &ast.ReturnStmt{}
	if !p.at(token.RBrace) && !p.at(token.EOF) && !p.at(token.Semicolon) {
		stmt.Value = p.parseExpr()
	}
	stmt.Span = iv(start, p.last())
	return stmt
}

func (p *parser) parseSpawnStmt() ast.Stmt {
	start := p.pos
	p.expect(token.Spawn)
	x := p.parseExpr()

	stmt := &ast.SpawnStmt{Span: iv(start, p.last())}
	if call, ok := x.(*ast.CallExpr); ok {
		stmt.Callee = call.Callee
		stmt.Args = call.Args
	} else {
		p.errorf(p.cur(), "spawn target must be a function call")
		stmt.Callee = x
	}
	stmt.Span = iv(start, p.last())
	return stmt
}

// parseCond parses a control-flow header expression with struct
// literals suppressed.
func (p *parser) parseCond() ast.Expr {
	saved := p.noStructLit
	p.noStructLit = true
	x := p.parseExpr()
	p.noStructLit = saved
	return x
}

// --- Expressions ---

func (p *parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *parser) parseOr() ast.Expr {
	start := p.pos
	left := p.parseAnd()
	for p.at(token.OrOr) || p.at(token.Or) {
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Left: left, Op: "||", Right: right, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	start := p.pos
	left := p.parseEquality()
	for p.at(token.AndAnd) || p.at(token.And) {
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Left: left, Op: "&&", Right: right, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	start := p.pos
	left := p.parseRelational()
	for p.at(token.Eq) || p.at(token.Ne) {
		op := p.advance().Text
		right := p.parseRelational()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseRelational() ast.Expr {
	start := p.pos
	left := p.parseRange()
	for p.at(token.Lt) || p.at(token.Le) || p.at(token.Gt) || p.at(token.Ge) {
		op := p.advance().Text
		right := p.parseRange()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseRange() ast.Expr {
	start := p.pos
	left := p.parseAdditive()
	if p.at(token.Range) || p.at(token.RangeIncl) {
		inclusive := p.advance().Kind == token.RangeIncl
		right := p.parseAdditive()
		return &ast.RangeExpr{Start: left, End: right, Inclusive: inclusive, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	start := p.pos
	left := p.parseMultiplicative()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := p.advance().Text
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	start := p.pos
	left := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		op := p.advance().Text
		right := p.parseUnary()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Span: iv(start, p.last())}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	start := p.pos
	switch p.cur().Kind {
	case token.Minus:
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: "-", X: x, Span: iv(start, p.last())}
	case token.Bang, token.Not:
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: "!", X: x, Span: iv(start, p.last())}
	case token.Arrow:
		p.advance()
		x := p.parseUnary()
		return &ast.ReceiveExpr{Channel: x, Span: iv(start, p.last())}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	start := p.pos
	x := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Expr
			for !p.at(token.RParen) && !p.at(token.EOF) {
				args = append(args, p.parseExpr())
				if !p.accept(token.Comma) {
					break
				}
			}
			p.expect(token.RParen)
			x = &ast.CallExpr{Callee: x, Args: args, Span: iv(start, p.last())}
		case token.Dot:
			p.advance()
			member := p.expect(token.Ident)
			x = &ast.MemberExpr{Target: x, Member: member.Text, Span: iv(start, p.last())}
		case token.LBracket:
			p.advance()
			index := p.parseExpr()
			p.expect(token.RBracket)
			x = &ast.IndexExpr{Target: x, Index: index, Span: iv(start, p.last())}
		default:
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	start := p.pos
	tok := p.cur()

	switch tok.Kind {
	case token.Int:
		p.advance()
		return &ast.Literal{Kind: ast.IntLit, Text: tok.Text, Span: iv(start, start)}
	case token.Float:
		p.advance()
		return &ast.Literal{Kind: ast.FloatLit, Text: tok.Text, Span: iv(start, start)}
	case token.String:
		p.advance()
		return &ast.Literal{Kind: ast.StringLit, Text: tok.Text, Span: iv(start, start)}
	case token.True, token.False:
		p.advance()
		return &ast.Literal{Kind: ast.BoolLit, Text: tok.Text, Span: iv(start, start)}
	case token.Self:
		p.advance()
		return &ast.SelfExpr{Span: iv(start, start)}
	case token.Ident:
		// Struct literal: IDENT '{' fieldInit* '}'
		if p.peek().Kind == token.LBrace && !p.noStructLit {
			return p.parseStructLit()
		}
		p.advance()
		return &ast.Ident{Name: tok.Text, Span: iv(start, start)}
	case token.LParen:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen)
		return &ast.ParenExpr{X: x, Span: iv(start, p.last())}
	case token.LBracket:
		p.advance()
		lit := &ast.ArrayLit{}
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			lit.Elems = append(lit.Elems, p.parseExpr())
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RBracket)
		lit.Span = iv(start, p.last())
		return lit
	}

	p.advance()
	p.errorf(tok, "unexpected token %q in expression", tok.Text)
	return &ast.Ident{Name: tok.Text, Span: iv(start, start)}
}

func (p *parser) parseStructLit() ast.Expr {
	start := p.pos
	name := p.expect(token.Ident)
	p.expect(token.LBrace)

	lit := &ast.StructLit{Name: name.Text}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fstart := p.pos
		fname := p.expect(token.Ident)
		p.expect(token.Colon)

		// Field values may themselves contain struct literals.
		saved := p.noStructLit
		p.noStructLit = false
		value := p.parseExpr()
		p.noStructLit = saved

		lit.Fields = append(lit.Fields, &ast.FieldInit{
			Name:  fname.Text,
			Value: value,
			Span:  iv(fstart, p.last()),
		})
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	lit.Span = iv(start, p.last())
	return lit
}
