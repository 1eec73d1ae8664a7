package sema

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/symbols"
	"ocl/internal/types"
)

func (tc *typeChecker) typeUnary(expr *ast.Expr, data *ast.ExprUnaryData) types.TypeID {
	operand := tc.typeExpr(data.Operand)
	if tc.isUnknown(operand) {
		return tc.builtins.Unknown
	}
	if ty, ok := tc.types.UnaryResultType(data.Op, operand); ok {
		return ty
	}
	tc.report(diag.SemaTypeMismatch, expr.Span,
		"operator '%s' cannot be applied to %s", data.Op, tc.typeLabel(operand))
	return tc.builtins.Unknown
}

func (tc *typeChecker) typeBinary(data *ast.ExprBinaryData) types.TypeID {
	left := tc.typeExpr(data.Left)
	right := tc.typeExpr(data.Right)
	if tc.isUnknown(left) || tc.isUnknown(right) {
		return tc.builtins.Unknown
	}
	if ty, ok := tc.types.BinaryResultType(data.Op, left, right); ok {
		return ty
	}
	tc.report(diag.SemaTypeMismatch, data.OpSpan,
		"operator '%s' cannot be applied to %s and %s", data.Op, tc.typeLabel(left), tc.typeLabel(right))
	return tc.builtins.Unknown
}

// typeAssign checks `name = value`; the expression has the target's type,
// or Unknown once something about the assignment was reported.
func (tc *typeChecker) typeAssign(data *ast.ExprAssignData) types.TypeID {
	value := tc.typeExpr(data.Value)
	target := tc.typeExpr(data.Target)

	sym := tc.symbolFromID(tc.symbolForExpr(data.Target))
	if sym == nil {
		return tc.builtins.Unknown
	}
	name := tc.builder.Name(sym.Name)
	if !sym.IsAssignable() {
		what := "function"
		if sym.Flags&symbols.SymbolFlagConstant != 0 {
			what = "constant"
		}
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Target), "cannot assign to %s '%s'", what, name)
		return tc.builtins.Unknown
	}
	if tc.isUnknown(target) || tc.isUnknown(value) {
		return tc.builtins.Unknown
	}
	if !tc.types.Assignable(value, target) {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(data.Value),
			"cannot assign a value of type %s to '%s' of type %s",
			tc.typeLabel(value), name, tc.typeLabel(target))
		return tc.builtins.Unknown
	}
	return target
}
