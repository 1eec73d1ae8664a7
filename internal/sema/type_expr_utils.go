package sema

import (
	"fmt"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/types"
)

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...interface{}) {
	if tc.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(tc.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	if expr := tc.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func (tc *typeChecker) isUnknown(id types.TypeID) bool {
	return tc.types.IsUnknown(id)
}

func (tc *typeChecker) typeLabel(id types.TypeID) string {
	return tc.types.Format(id)
}
