package symbols

import (
	"fmt"

	"ocl/internal/ast"
	"ocl/internal/diag"
)

// walkFn: параметры и верхний уровень тела делят одну область.
func (fr *fileResolver) walkFn(fn *ast.FnItem) {
	scope := fr.resolver.Enter(ScopeFunction, fn.Span)
	defer fr.resolver.Leave(scope)

	for _, pid := range fr.builder.Items.Params(fn) {
		param := fr.builder.Items.FnParam(pid)
		if param == nil {
			continue
		}
		symID, ok := fr.resolver.Declare(Symbol{
			Name: param.Name,
			Kind: SymbolParam,
			Span: param.NameSpan,
			Decl: SymbolDecl{Param: pid},
		})
		if ok {
			fr.result.ParamSymbols[pid] = symID
		}
	}

	if body := fr.builder.Stmts.Block(fn.Body); body != nil {
		for _, stmtID := range body.Stmts {
			fr.walkStmt(stmtID)
		}
	}
}

func (fr *fileResolver) walkStmt(id ast.StmtID) {
	stmt := fr.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		fr.walkBlock(id)
	case ast.StmtLet:
		let := fr.builder.Stmts.Let(id)
		// инициализатор разрешается до объявления: `let x = x;` видит внешний x
		fr.walkExpr(let.Value)
		symID, ok := fr.resolver.Declare(Symbol{
			Name: let.Name,
			Kind: SymbolVar,
			Span: let.NameSpan,
			Decl: SymbolDecl{Stmt: id},
		})
		if ok {
			fr.result.StmtSymbols[id] = symID
		}
	case ast.StmtExpr:
		fr.walkExpr(fr.builder.Stmts.Expr(id).Expr)
	case ast.StmtReturn:
		fr.walkExpr(fr.builder.Stmts.Return(id).Expr)
	case ast.StmtIf:
		ifStmt := fr.builder.Stmts.If(id)
		fr.walkExpr(ifStmt.Cond)
		fr.walkStmt(ifStmt.Then)
		fr.walkStmt(ifStmt.Else)
	case ast.StmtWhile:
		while := fr.builder.Stmts.While(id)
		fr.walkExpr(while.Cond)
		fr.walkStmt(while.Body)
	}
}

func (fr *fileResolver) walkBlock(id ast.StmtID) {
	block := fr.builder.Stmts.Block(id)
	if block == nil {
		return
	}
	scope := fr.resolver.Enter(ScopeBlock, fr.builder.Stmts.Get(id).Span)
	for _, stmtID := range block.Stmts {
		fr.walkStmt(stmtID)
	}
	fr.resolver.Leave(scope)
}

func (fr *fileResolver) walkExpr(id ast.ExprID) {
	expr := fr.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		fr.resolveIdent(id)
	case ast.ExprLit:
	case ast.ExprCall:
		call, _ := fr.builder.Exprs.Call(id)
		fr.walkExpr(call.Target)
		for _, arg := range call.Args {
			fr.walkExpr(arg)
		}
	case ast.ExprBinary:
		bin, _ := fr.builder.Exprs.Binary(id)
		fr.walkExpr(bin.Left)
		fr.walkExpr(bin.Right)
	case ast.ExprUnary:
		un, _ := fr.builder.Exprs.Unary(id)
		fr.walkExpr(un.Operand)
	case ast.ExprGroup:
		group, _ := fr.builder.Exprs.Group(id)
		fr.walkExpr(group.Inner)
	case ast.ExprAssign:
		assign, _ := fr.builder.Exprs.Assign(id)
		fr.walkExpr(assign.Target)
		fr.walkExpr(assign.Value)
	}
}

func (fr *fileResolver) resolveIdent(id ast.ExprID) {
	ident, ok := fr.builder.Exprs.Ident(id)
	if !ok {
		return
	}
	if symID, found := fr.resolver.Lookup(ident.Name); found {
		fr.result.ExprSymbols[id] = symID
		return
	}
	if fr.reporter == nil {
		return
	}
	name := fr.builder.Name(ident.Name)
	diag.ReportError(fr.reporter, diag.SemaUnresolvedSymbol, fr.builder.Exprs.Get(id).Span,
		fmt.Sprintf("undeclared name '%s'", name)).Emit()
}
