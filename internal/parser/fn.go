package parser

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/token"
)

// parseFnRest: `( params ) block` после уже разобранных типа и имени.
func (p *Parser) parseFnRest(
	first token.Token,
	ret ast.TypeName,
	retSpan source.Span,
	name source.StringID,
	nameSpan source.Span,
) (ast.ItemID, bool) {
	p.recovered = false

	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoItemID, false
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to start function body, got "+describe(p.lx.Peek()))
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}

	fn := ast.FnItem{
		Name:       name,
		NameSpan:   nameSpan,
		ReturnType: ret,
		ReturnSpan: retSpan,
		Body:       body,
		Recovered:  p.recovered,
		Span:       p.spanFrom(first.Span),
	}
	return p.arenas.Items.NewFn(fn, params), true
}

// parseFnParams: "(" [ type IDENT { "," type IDENT } ] ")"
func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []ast.FnParam
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		typ, typeSpan, ok := p.parseTypeName("parameter type")
		if !ok {
			return nil, false
		}
		name, nameSpan, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, ast.FnParam{
			Name:     name,
			NameSpan: nameSpan,
			Type:     typ,
			TypeSpan: typeSpan,
			Span:     typeSpan.Cover(nameSpan),
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, "expected ',' or ')' in parameter list"); !ok {
		return nil, false
	}
	return params, true
}
