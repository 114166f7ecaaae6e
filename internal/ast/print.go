// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package ast

import (
	"fmt"
	"strings"
)

// Dump renders the parse tree as an indented outline, one node per line
// with its source interval. Used by the `zinc tree` command.
func Dump(node Node) string {
	var sb strings.Builder
	dump(&sb, node, 0)
	return sb.String()
}

func dump(sb *strings.Builder, node Node, depth int) {
	if node == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(label(node))
	fmt.Fprintf(sb, " %s\n", node.Interval())
	for _, child := range Children(node) {
		dump(sb, child, depth+1)
	}
}

func label(node Node) string {
	switch n := node.(type) {
	case *Program:
		return "Program"
	case *FuncDecl:
		return fmt.Sprintf("FuncDecl %s", n.Name)
	case *StructDecl:
		return fmt.Sprintf("StructDecl %s", n.Name)
	case *StructField:
		return fmt.Sprintf("Field %s", n.Name)
	case *ConstDecl:
		return fmt.Sprintf("ConstDecl %s", n.Name)
	case *Param:
		if n.TypeAnn != "" {
			return fmt.Sprintf("Param %s: %s", n.Name, n.TypeAnn)
		}
		return fmt.Sprintf("Param %s", n.Name)
	case *Block:
		return "Block"
	case *AssignStmt:
		if n.Member != nil {
			return "Assign (member)"
		}
		return fmt.Sprintf("Assign %s", n.Name)
	case *IfStmt:
		return "If"
	case *ForStmt:
		return fmt.Sprintf("For %s", n.Var)
	case *WhileStmt:
		return "While"
	case *LoopStmt:
		return "Loop"
	case *ReturnStmt:
		return "Return"
	case *BreakStmt:
		return "Break"
	case *ContinueStmt:
		return "Continue"
	case *SpawnStmt:
		return "Spawn"
	case *SendStmt:
		return fmt.Sprintf("Send %s", n.Channel)
	case *ExprStmt:
		return "ExprStmt"
	case *Literal:
		return fmt.Sprintf("Literal %s", n.Text)
	case *Ident:
		return fmt.Sprintf("Ident %s", n.Name)
	case *SelfExpr:
		return "Self"
	case *UnaryExpr:
		return fmt.Sprintf("Unary %s", n.Op)
	case *BinaryExpr:
		return fmt.Sprintf("Binary %s", n.Op)
	case *ParenExpr:
		return "Paren"
	case *CallExpr:
		return "Call"
	case *MemberExpr:
		return fmt.Sprintf("Member .%s", n.Member)
	case *IndexExpr:
		return "Index"
	case *RangeExpr:
		if n.Inclusive {
			return "Range ..="
		}
		return "Range .."
	case *ArrayLit:
		return "Array"
	case *StructLit:
		return fmt.Sprintf("StructLit %s", n.Name)
	case *FieldInit:
		return fmt.Sprintf("FieldInit %s", n.Name)
	case *ReceiveExpr:
		return "Receive"
	}
	return fmt.Sprintf("%T", node)
}
