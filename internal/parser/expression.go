package parser

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Присваивание имеет самый низкий приоритет и правоассоциативно.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	target, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Assign) {
		return target, true
	}

	assignTok := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	targetExpr := p.arenas.Exprs.Get(target)
	if targetExpr.Kind != ast.ExprIdent {
		p.reportWith(diag.SynUnexpectedToken, targetExpr.Span,
			"invalid assignment target: only a variable name can be assigned",
			func(b *diag.ReportBuilder) {
				b.WithNote(assignTok.Span, "assignment here")
			})
		// правую часть сохраняем, чтобы её проверили последующие фазы
		return value, true
	}
	span := targetExpr.Span.Cover(p.arenas.Exprs.Get(value).Span)
	return p.arenas.Exprs.NewAssign(span, target, value), true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec := getBinaryOperatorPrec(p.lx.Peek().Kind)
		if prec < minPrec {
			break // приоритет слишком низкий
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, tokenKindToBinaryOp(opTok.Kind), opTok.Span, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePowerExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		finalSpan := prefixes[i].span.Cover(p.arenas.Exprs.Get(expr).Span)
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePowerExpr: postfix [ "**" unary ]. Правая часть: unary, поэтому
// 2 ** 3 ** 2 == 2 ** (3 ** 2), а -2 ** 2 == -(2 ** 2).
func (p *Parser) parsePowerExpr() (ast.ExprID, bool) {
	base, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.StarStar) {
		return base, true
	}
	opTok := p.advance()
	exp, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(base).Span.Cover(p.arenas.Exprs.Get(exp).Span)
	return p.arenas.Exprs.NewBinary(span, ast.ExprBinaryPow, opTok.Span, base, exp), true
}

// parsePostfixExpr обрабатывает постфиксные операторы: только вызовы.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.LParen) {
		expr, ok = p.parseCallExpr(expr)
		if !ok {
			return ast.NoExprID, false
		}
	}
	return expr, true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentExpr()
	case token.IntLit, token.FloatLit:
		return p.parseNumericLiteral()
	case token.StringLit:
		return p.parseStringLiteral()
	case token.KwTrue, token.KwFalse:
		return p.parseBoolLiteral()
	case token.LParen:
		return p.parseParenExpr()
	case token.Invalid:
		// лексер уже сообщил об ошибке; statement дальше не репортим
		p.advance()
		return ast.NoExprID, false
	default:
		p.err(diag.SynUnexpectedToken, "expected expression, got "+describe(tok))
		return ast.NoExprID, false
	}
}
