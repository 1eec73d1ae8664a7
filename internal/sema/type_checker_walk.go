package sema

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/types"
)

func (tc *typeChecker) checkFn(id ast.ItemID, fn *ast.FnItem) {
	name := tc.builder.Name(fn.Name)
	for _, pid := range tc.builder.Items.Params(fn) {
		param := tc.builder.Items.FnParam(pid)
		if param.Type == ast.TypeVoid {
			tc.report(diag.SemaTypeMismatch, param.TypeSpan,
				"parameter '%s' of '%s' cannot have type void", tc.builder.Name(param.Name), name)
		}
		if symID := tc.paramSymbol(pid); symID.IsValid() {
			tc.result.BindingTypes[symID] = tc.symbolType(symID)
		}
	}

	resultType := tc.builtins.Void
	if info, ok := tc.types.FnInfo(tc.result.FnTypes[id]); ok {
		resultType = info.Result
	}

	prev := tc.fn
	tc.fn = &fnContext{item: fn, name: name, result: resultType}
	defer func() { tc.fn = prev }()

	tc.walkStmt(fn.Body)
	tc.checkMissingReturn(fn, resultType)
}

func (tc *typeChecker) walkStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	stmt := tc.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		if block := tc.builder.Stmts.Block(id); block != nil {
			for _, child := range block.Stmts {
				tc.walkStmt(child)
			}
		}
	case ast.StmtLet:
		if let := tc.builder.Stmts.Let(id); let != nil {
			tc.checkDecl(&let.LetDecl, tc.stmtSymbol(id))
		}
	case ast.StmtExpr:
		if expr := tc.builder.Stmts.Expr(id); expr != nil {
			tc.typeExpr(expr.Expr)
		}
	case ast.StmtReturn:
		if ret := tc.builder.Stmts.Return(id); ret != nil {
			tc.checkReturn(stmt, ret)
		}
	case ast.StmtIf:
		if ifStmt := tc.builder.Stmts.If(id); ifStmt != nil {
			tc.checkCondition("if", ifStmt.Cond)
			tc.walkStmt(ifStmt.Then)
			tc.walkStmt(ifStmt.Else)
		}
	case ast.StmtWhile:
		if whileStmt := tc.builder.Stmts.While(id); whileStmt != nil {
			tc.checkCondition("while", whileStmt.Cond)
			tc.walkStmt(whileStmt.Body)
		}
	}
}

func (tc *typeChecker) checkCondition(keyword string, cond ast.ExprID) {
	if !cond.IsValid() {
		return
	}
	ty := tc.typeExpr(cond)
	if tc.isUnknown(ty) || tc.types.KindOf(ty) == types.KindBool {
		return
	}
	tc.report(diag.SemaTypeMismatch, tc.exprSpan(cond),
		"condition of '%s' must be bool, got %s", keyword, tc.typeLabel(ty))
}
