package sema

import (
	"ocl/internal/ast"
	"ocl/internal/types"
)

// typeExpr computes and records the type of an expression. Подвыражения
// типизируются раньше родителя, поэтому ошибка в аргументе уже превращена
// в Unknown к моменту проверки вызова.
func (tc *typeChecker) typeExpr(id ast.ExprID) types.TypeID {
	if !id.IsValid() {
		return types.NoTypeID
	}
	if ty, ok := tc.result.ExprTypes[id]; ok {
		return ty
	}
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID
	}

	var ty types.TypeID
	switch expr.Kind {
	case ast.ExprIdent:
		ty = tc.typeIdent(id)
	case ast.ExprLit:
		if lit, ok := tc.builder.Exprs.Literal(id); ok {
			ty = tc.literalType(lit.Kind)
		}
	case ast.ExprGroup:
		if group, ok := tc.builder.Exprs.Group(id); ok {
			ty = tc.typeExpr(group.Inner)
		}
	case ast.ExprUnary:
		if unary, ok := tc.builder.Exprs.Unary(id); ok {
			ty = tc.typeUnary(expr, unary)
		}
	case ast.ExprBinary:
		if binary, ok := tc.builder.Exprs.Binary(id); ok {
			ty = tc.typeBinary(binary)
		}
	case ast.ExprCall:
		if call, ok := tc.builder.Exprs.Call(id); ok {
			ty = tc.typeCall(call)
		}
	case ast.ExprAssign:
		if assign, ok := tc.builder.Exprs.Assign(id); ok {
			ty = tc.typeAssign(assign)
		}
	}
	if ty == types.NoTypeID {
		ty = tc.builtins.Unknown
	}
	tc.result.ExprTypes[id] = ty
	return ty
}

func (tc *typeChecker) typeIdent(id ast.ExprID) types.TypeID {
	symID := tc.symbolForExpr(id)
	if !symID.IsValid() {
		// UndeclaredName уже сообщён резолвером.
		return tc.builtins.Unknown
	}
	return tc.symbolType(symID)
}

func (tc *typeChecker) literalType(kind ast.ExprLitKind) types.TypeID {
	switch kind {
	case ast.ExprLitInt:
		return tc.builtins.Int
	case ast.ExprLitFloat:
		return tc.builtins.Float
	case ast.ExprLitString:
		return tc.builtins.String
	case ast.ExprLitTrue, ast.ExprLitFalse:
		return tc.builtins.Bool
	default:
		return tc.builtins.Unknown
	}
}
