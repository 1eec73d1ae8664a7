package parser

import (
	"ocl/internal/ast"
	"ocl/internal/source"
	"ocl/internal/token"
)

// parseImportItem: import IDENT ;
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	importTok := p.advance()

	module, moduleSpan, ok := p.parseModuleName()
	if !ok {
		return ast.NoItemID, false
	}
	if !p.expectSemicolon("import") {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewImport(module, moduleSpan, p.spanFrom(importTok.Span)), true
}

// parseModuleName принимает и ключевые слова типов: стандартный модуль
// называется `string`.
func (p *Parser) parseModuleName() (source.StringID, source.Span, bool) {
	if tok := p.lx.Peek(); token.IsTypeKeyword(tok.Kind) {
		p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	return p.parseIdent("module name after 'import'")
}
