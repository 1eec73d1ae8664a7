package parser

import (
	"ocl/internal/ast"
	"ocl/internal/token"
)

func (p *Parser) parseIdentExpr() (ast.ExprID, bool) {
	tok := p.advance()
	name := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewIdent(tok.Span, name), true
}

// parseNumericLiteral: значение хранится как исходная лексема.
func (p *Parser) parseNumericLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	kind := ast.ExprLitInt
	if tok.Kind == token.FloatLit {
		kind = ast.ExprLitFloat
	}
	value := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, value), true
}

// parseStringLiteral хранит лексему вместе с кавычками; escape-последовательности
// не раскрываются.
func (p *Parser) parseStringLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	value := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitString, value), true
}

func (p *Parser) parseBoolLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	kind := ast.ExprLitTrue
	if tok.Kind == token.KwFalse {
		kind = ast.ExprLitFalse
	}
	value := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, value), true
}

// parseParenExpr: "(" expr ")"
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen, "expected ')' to close parenthesized expression")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(openTok.Span.Cover(closeTok.Span), inner), true
}
