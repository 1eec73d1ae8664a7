package parser

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/token"
)

// parseIfStmt: if "(" expr ")" block [ else ( block | if ) ]
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseCondition("if")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseControlBody("if")
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		switch {
		case p.at(token.KwIf):
			els, ok = p.parseIfStmt()
		default:
			els, ok = p.parseControlBody("else")
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(ifTok.Span), cond, then, els), true
}

// parseWhileStmt: while "(" expr ")" block
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseCondition("while")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseControlBody("while")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(whileTok.Span), cond, body), true
}

func (p *Parser) parseCondition(keyword string) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, "expected '(' after '"+keyword+"'"); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, "expected ')' after "+keyword+" condition"); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseControlBody(keyword string) (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after "+keyword+", got "+describe(p.lx.Peek()))
		return ast.NoStmtID, false
	}
	return p.parseBlock()
}
