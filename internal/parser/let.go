package parser

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/token"
)

// parseLetItem: глобальная переменная `let x[: T] = e;`
func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	letTok := p.advance()
	decl, ok := p.parseLetBinding(letTok.Span, true)
	if !ok {
		return ast.NoItemID, false
	}
	p.finishItem("declaration")
	decl.Span = p.spanFrom(letTok.Span)
	return p.arenas.Items.NewLet(decl), true
}

// parseTypedItem: `T name(...) {...}` или `T name = e;`
func (p *Parser) parseTypedItem() (ast.ItemID, bool) {
	typeTok := p.lx.Peek()
	typ, typeSpan, _ := p.parseTypeName("type")
	name, nameSpan, ok := p.parseIdent("name after type '" + typ.String() + "'")
	if !ok {
		return ast.NoItemID, false
	}
	if p.at(token.LParen) {
		return p.parseFnRest(typeTok, typ, typeSpan, name, nameSpan)
	}

	decl := ast.LetDecl{
		Form:     ast.LetTyped,
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		TypeSpan: typeSpan,
	}
	if _, ok := p.expect(token.Assign, "expected '(' or '=' after global name"); !ok {
		return ast.NoItemID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoItemID, false
	}
	decl.Value = value
	p.finishItem("declaration")
	decl.Span = p.spanFrom(typeTok.Span)
	return p.arenas.Items.NewLet(decl), true
}

// parseLetBinding разбирает `IDENT [":" T] ["=" e]` после 'let'.
// Без типа нужен инициализатор; у глобальных он обязателен всегда.
func (p *Parser) parseLetBinding(start source.Span, requireInit bool) (ast.LetDecl, bool) {
	decl := ast.LetDecl{Form: ast.LetKeyword}
	name, nameSpan, ok := p.parseIdent("variable name after 'let'")
	if !ok {
		return decl, false
	}
	decl.Name, decl.NameSpan = name, nameSpan

	if p.at(token.Colon) {
		p.advance()
		typ, typeSpan, ok := p.parseTypeName("type after ':'")
		if !ok {
			return decl, false
		}
		decl.Type, decl.TypeSpan = typ, typeSpan
	}

	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return decl, false
		}
		decl.Value = value
	} else if requireInit || decl.Type == ast.TypeNone {
		p.err(diag.SynUnexpectedToken, "expected '=' and initializer for '"+p.arenas.Name(name)+"', got "+describe(p.lx.Peek()))
		return decl, false
	}
	decl.Span = p.spanFrom(start)
	return decl, true
}

// parseTypedDeclRest: `T x [= e]` после того как тип и имя уже съедены.
func (p *Parser) parseTypedDeclRest(decl ast.LetDecl) (ast.LetDecl, bool) {
	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return decl, false
		}
		decl.Value = value
	}
	return decl, true
}

// finishItem съедает ';' у top-level item; при ошибке: resyncTop.
func (p *Parser) finishItem(what string) {
	if !p.expectSemicolon(what) {
		p.resyncTop()
	}
}
