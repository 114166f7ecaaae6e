// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/symbols"
	"github.com/zinclang/zinc/internal/types"
)

// exprType resolves the type of an expression, defining a symbol-table
// temporary for the expression's interval along the way. Call sites
// with fully known argument types create specializations as a side
// effect.
func (r *Resolver) exprType(e ast.Expr) types.Base {
	switch node := e.(type) {
	case *ast.Literal:
		t := literalType(node)
		r.symbols.DefineTemp(t, node.Interval(), symbols.LiteralValue)
		return t

	case *ast.Ident:
		if sym := r.symbols.LookupName(node.Name); sym != nil {
			temp := r.symbols.DefineTemp(sym.Resolved, node.Interval(), symbols.Temporary)
			// Carry binding facts onto the use site so the emitter can
			// resolve receivers and element types by interval alone.
			temp.StructName = sym.StructName
			temp.Element = sym.Element
			return sym.Resolved
		}
		r.report(UnresolvedReference, node.Interval(), "identifier %q is not defined", node.Name)
		r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
		return types.Unknown

	case *ast.SelfExpr:
		r.symbols.DefineTemp(types.Struct, node.Interval(), symbols.Temporary)
		return types.Struct

	case *ast.UnaryExpr:
		operand := r.exprType(node.X)
		result := types.Boolean
		if node.Op == "-" {
			result = operand
		}
		r.symbols.DefineTemp(result, node.Interval(), symbols.Temporary)
		return result

	case *ast.BinaryExpr:
		left := r.exprType(node.Left)
		right := r.exprType(node.Right)
		var result types.Base
		switch node.Op {
		case "+", "-", "*", "/", "%":
			result = types.Promote(left, right)
		default:
			// Relational, equality, and logical operators.
			result = types.Boolean
		}
		r.symbols.DefineTemp(result, node.Interval(), symbols.Temporary)
		return result

	case *ast.ParenExpr:
		inner := r.exprType(node.X)
		r.symbols.DefineTemp(inner, node.Interval(), symbols.Temporary)
		return inner

	case *ast.ArrayLit:
		for _, elem := range node.Elems {
			r.exprType(elem)
		}
		sym := r.symbols.DefineTemp(types.Array, node.Interval(), symbols.Temporary)
		if len(node.Elems) > 0 {
			sym.Element = r.peekType(node.Elems[0])
		}
		return types.Array

	case *ast.IndexExpr:
		targetType := r.exprType(node.Target)
		r.exprType(node.Index)
		result := types.Unknown
		if targetType == types.Array {
			if id, ok := node.Target.(*ast.Ident); ok {
				if sym := r.symbols.LookupName(id.Name); sym != nil {
					result = sym.Element
				}
			}
		}
		r.symbols.DefineTemp(result, node.Interval(), symbols.Temporary)
		return result

	case *ast.RangeExpr:
		r.exprType(node.Start)
		r.exprType(node.End)
		r.symbols.DefineTemp(types.Integer, node.Interval(), symbols.Temporary)
		return types.Integer

	case *ast.MemberExpr:
		return r.memberType(node)

	case *ast.CallExpr:
		return r.callType(node)

	case *ast.StructLit:
		for _, init := range node.Fields {
			r.exprType(init.Value)
		}
		sym := r.symbols.DefineTemp(types.Struct, node.Interval(), symbols.Temporary)
		sym.StructName = node.Name
		return types.Struct

	case *ast.ReceiveExpr:
		if chanName := ast.CalleeName(node.Channel); chanName != "" {
			r.exprType(node.Channel)
			if info, ok := r.channelInfos[chanName]; ok {
				r.symbols.DefineTemp(info.Element, node.Interval(), symbols.Temporary)
				return info.Element
			}
			r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
			return types.Unknown
		}
		r.exprType(node.Channel)
		r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
		return types.Unknown
	}

	r.symbols.DefineTemp(types.Unknown, e.Interval(), symbols.Temporary)
	return types.Unknown
}

// memberType types a member access outside call position: struct field
// reads on known struct variables resolve to the field's type.
func (r *Resolver) memberType(node *ast.MemberExpr) types.Base {
	// Static references to a struct name stay untyped here; call
	// handling resolves them.
	if recv := ast.ReceiverName(node); recv != "" {
		if _, ok := r.atlas.Structs[recv]; ok {
			r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
			return types.Unknown
		}
		if sym := r.symbols.LookupName(recv); sym != nil && sym.StructName != "" {
			if st, ok := r.atlas.Structs[sym.StructName]; ok {
				if field := st.Field(node.Member); field != nil {
					t := r.rustToBase(field.RustType())
					r.symbols.DefineTemp(t, node.Interval(), symbols.Temporary)
					return t
				}
			}
		}
		r.exprType(node.Target)
		r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
		return types.Unknown
	}

	r.exprType(node.Target)
	r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
	return types.Unknown
}

// callType types a call expression: builtins, struct method calls
// (static and instance), and user function calls. User calls with all
// argument types known create (or reuse) a specialization and bind the
// site to its mangled name.
func (r *Resolver) callType(node *ast.CallExpr) types.Base {
	argTypes := make([]types.Base, 0, len(node.Args))
	for _, arg := range node.Args {
		argTypes = append(argTypes, r.exprType(arg))
	}

	if member, ok := node.Callee.(*ast.MemberExpr); ok {
		return r.methodCallType(node, member, argTypes)
	}

	name := ast.CalleeName(node.Callee)
	if name == "" {
		r.exprType(node.Callee)
		r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
		return types.Unknown
	}

	switch name {
	case "print":
		r.symbols.DefineTemp(types.Void, node.Interval(), symbols.Temporary)
		return types.Void
	case "chan":
		r.symbols.DefineTemp(types.Channel, node.Interval(), symbols.Temporary)
		return types.Channel
	}

	decl, defined := r.atlas.FunctionDefs[name]
	if defined && hasUnknown(argTypes) {
		r.reportUnknownArgs(node.Interval(), name, argTypes)
	}
	if defined && !hasUnknown(argTypes) {
		mangled := r.atlas.AddSpecialization(name, argTypes, decl, r.currentFn)
		r.specMap[siteKey(r.currentFn, node.Interval())] = mangled

		// A specialization processed in an earlier pass already knows
		// its return type; one that has not been body-typed yet reads
		// as Unknown until a later pass.
		if fn := r.atlas.Functions[mangled]; fn != nil && fn.ReturnType != types.Void {
			r.symbols.DefineTemp(fn.ReturnType, node.Interval(), symbols.Temporary)
			return fn.ReturnType
		}
		r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
		return types.Unknown
	}

	if !defined {
		if sym := r.symbols.LookupName(name); sym != nil {
			r.symbols.DefineTemp(sym.Resolved, node.Interval(), symbols.Temporary)
			return sym.Resolved
		}
		r.report(UnresolvedReference, node.Interval(), "function %q is not defined", name)
	}

	r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
	return types.Unknown
}

// methodCallType types static and instance method calls, applying the
// mutability triggers for mutating receivers.
func (r *Resolver) methodCallType(node *ast.CallExpr, member *ast.MemberExpr, argTypes []types.Base) types.Base {
	recv := ast.ReceiverName(member)

	// Static method: StructName.method(args).
	if st, ok := r.atlas.Structs[recv]; ok {
		st.MethodsUsed[member.Member] = true
		method := st.Method(member.Member)
		if method == nil {
			r.report(StructuralError, node.Interval(), "struct %s has no method %q", recv, member.Member)
			r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
			return types.Unknown
		}
		if !method.IsStatic {
			r.report(StructuralError, node.Interval(), "instance method %s.%s called without a receiver", recv, member.Member)
		}
		t := r.rustToBase(method.ReturnType)
		r.symbols.DefineTemp(t, node.Interval(), symbols.Temporary)
		return t
	}

	if recv != "" {
		// Type the receiver's use site; the emitter resolves instance
		// receivers through the symbol recorded here.
		r.exprType(member.Target)
		sym := r.symbols.LookupName(recv)
		if sym != nil {
			// In-place collection mutation marks the receiver mutable
			// and contributes element-type evidence.
			if types.IsMutatingMethod(sym.Resolved, member.Member) {
				sym.IsMutated = true
			}
			if member.Member == "push" && sym.Resolved == types.Array && len(argTypes) > 0 {
				if sym.Element == types.Unknown {
					sym.Element = argTypes[0]
				}
			}

			// Instance method on a struct variable.
			if sym.StructName != "" {
				st, ok := r.atlas.Structs[sym.StructName]
				if !ok {
					r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
					return types.Unknown
				}
				st.MethodsUsed[member.Member] = true
				method := st.Method(member.Member)
				if method == nil {
					r.report(StructuralError, node.Interval(), "struct %s has no method %q", sym.StructName, member.Member)
					r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
					return types.Unknown
				}
				if method.SelfMutability == "&mut self" {
					sym.IsMutated = true
				}
				t := r.rustToBase(method.ReturnType)
				r.symbols.DefineTemp(t, node.Interval(), symbols.Temporary)
				return t
			}

			if sym.Resolved != types.Array && sym.Resolved != types.Struct && sym.Resolved != types.Unknown && sym.StructName == "" && !types.IsMutatingMethod(sym.Resolved, member.Member) {
				// Methods on scalars have no meaning in the source
				// language.
				if sym.Resolved != types.Channel && sym.Resolved != types.String {
					r.report(StructuralError, node.Interval(), "method %q called on non-struct %q (%s)", member.Member, recv, sym.Resolved)
				}
			}
		}
	}

	r.symbols.DefineTemp(types.Unknown, node.Interval(), symbols.Temporary)
	return types.Unknown
}

// rustToBase maps a Rust type spelling back onto a base kind.
func (r *Resolver) rustToBase(rustType string) types.Base {
	switch rustType {
	case "i32", "i64":
		return types.Integer
	case "f32", "f64":
		return types.Float
	case "String":
		return types.String
	case "bool":
		return types.Boolean
	case "Self":
		return types.Struct
	case "":
		return types.Void
	}
	if _, ok := r.atlas.Structs[rustType]; ok {
		return types.Struct
	}
	return types.Unknown
}
