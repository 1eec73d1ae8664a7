package parser

import (
	"ocl/internal/ast"
	"ocl/internal/token"
)

// parseCallExpr парсит вызов функции: expr(args...)
func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // съедаем '('

	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance() // съедаем ','
		}
	}

	closeTok, ok := p.expect(token.RParen, "expected ')' after function arguments")
	if !ok {
		return ast.NoExprID, false
	}

	finalSpan := p.arenas.Exprs.Get(target).Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(finalSpan, target, args), true
}
