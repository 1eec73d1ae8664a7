package sema

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/types"
)

func (tc *typeChecker) checkReturn(stmt *ast.Stmt, ret *ast.ReturnStmt) {
	if tc.fn == nil {
		tc.typeExpr(ret.Expr)
		return
	}
	expected := tc.fn.result
	isVoid := tc.types.KindOf(expected) == types.KindVoid

	if !ret.Expr.IsValid() {
		if !isVoid {
			tc.report(diag.SemaReturnTypeMismatch, stmt.Span,
				"function '%s' must return a value of type %s", tc.fn.name, tc.typeLabel(expected))
		}
		return
	}

	actual := tc.typeExpr(ret.Expr)
	if tc.isUnknown(actual) {
		return
	}
	if isVoid {
		if b := diag.ReportError(tc.reporter, diag.SemaReturnTypeMismatch, tc.exprSpan(ret.Expr),
			"void function '"+tc.fn.name+"' cannot return a value"); b != nil {
			b.WithNote(tc.fn.item.NameSpan, "function declared here").Emit()
		}
		return
	}
	if !tc.types.Assignable(actual, expected) {
		tc.report(diag.SemaReturnTypeMismatch, tc.exprSpan(ret.Expr),
			"function '%s' must return %s, got %s", tc.fn.name, tc.typeLabel(expected), tc.typeLabel(actual))
	}
}

// checkMissingReturn reports a non-void function whose body can fall off the
// end. Разбор консервативный: тело закрыто, только если его последний
// оператор безусловный return (или блок, который так заканчивается);
// возвраты из обеих веток if не учитываются.
func (tc *typeChecker) checkMissingReturn(fn *ast.FnItem, result types.TypeID) {
	if fn.Recovered || tc.isUnknown(result) || tc.types.KindOf(result) == types.KindVoid {
		return
	}
	if tc.returnStatus(fn.Body) == returnClosed {
		return
	}
	tc.report(diag.SemaMissingReturn, fn.NameSpan,
		"function '%s' may reach the end without returning a value of type %s",
		tc.builder.Name(fn.Name), tc.typeLabel(result))
}

func (tc *typeChecker) returnStatus(stmtID ast.StmtID) returnStatus {
	if !stmtID.IsValid() {
		return returnOpen
	}
	stmt := tc.builder.Stmts.Get(stmtID)
	if stmt == nil {
		return returnOpen
	}
	switch stmt.Kind {
	case ast.StmtReturn:
		return returnClosed
	case ast.StmtBlock:
		block := tc.builder.Stmts.Block(stmtID)
		if block == nil || len(block.Stmts) == 0 {
			return returnOpen
		}
		return tc.returnStatus(block.Stmts[len(block.Stmts)-1])
	default:
		return returnOpen
	}
}
