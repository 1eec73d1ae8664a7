package parser

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/fix"
	"ocl/internal/token"
)

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		return ast.NoStmtID, false
	}

	openTok := p.advance()
	var stmtIDs []ast.StmtID

	for !p.at(token.EOF) && !p.at(token.RBrace) {
		p.sawInvalid = false
		startOff := p.lx.Peek().Span.Start
		stmtID, ok := p.parseStmt()
		if ok {
			stmtIDs = append(stmtIDs, stmtID)
			continue
		}

		// ошибка при парсинге statement: восстанавливаемся до следующего statement
		p.resyncStatement()
		if p.lx.Peek().Span.Start == startOff && !p.at(token.RBrace) && !p.at(token.EOF) {
			p.advance() // гарантируем продвижение
		}
	}
	p.sawInvalid = false

	closeTok, ok := p.expect(token.RBrace, "expected '}' to close block", func(b *diag.ReportBuilder) {
		insertSpan := p.lastSpan.ZeroideToEnd()
		b.WithNote(openTok.Span, "block opened here")
		b.WithFixSuggestion(fix.InsertText(
			"insert '}' to close block",
			insertSpan,
			"}",
			"",
			fix.WithID(fix.MakeFixID(diag.SynUnexpectedToken, insertSpan)),
			fix.WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
		))
	})
	blockSpan := openTok.Span.Cover(p.lastSpan)
	if ok {
		blockSpan = openTok.Span.Cover(closeTok.Span)
	}
	// незакрытый блок всё равно сохраняем: тело функции пригодится следующим фазам
	return p.arenas.Stmts.NewBlock(blockSpan, stmtIDs), true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KwLet:
		return p.parseLetStmt()
	case token.IsTypeKeyword(tok.Kind):
		return p.parseTypedLetStmt()
	case tok.Kind == token.KwReturn:
		return p.parseReturnStmt()
	case tok.Kind == token.KwIf:
		return p.parseIfStmt()
	case tok.Kind == token.KwWhile:
		return p.parseWhileStmt()
	case tok.Kind == token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance()
	decl, ok := p.parseLetBinding(letTok.Span, false)
	if !ok {
		return ast.NoStmtID, false
	}
	p.finishStatement("declaration")
	decl.Span = p.spanFrom(letTok.Span)
	return p.arenas.Stmts.NewLet(decl), true
}

// parseTypedLetStmt: `T x [= e];`
func (p *Parser) parseTypedLetStmt() (ast.StmtID, bool) {
	typeTok := p.lx.Peek()
	typ, typeSpan, _ := p.parseTypeName("type")
	name, nameSpan, ok := p.parseIdent("variable name after type '" + typ.String() + "'")
	if !ok {
		return ast.NoStmtID, false
	}
	decl, ok := p.parseTypedDeclRest(ast.LetDecl{
		Form:     ast.LetTyped,
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		TypeSpan: typeSpan,
	})
	if !ok {
		return ast.NoStmtID, false
	}
	p.finishStatement("declaration")
	decl.Span = p.spanFrom(typeTok.Span)
	return p.arenas.Stmts.NewLet(decl), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	expr := ast.NoExprID
	if !p.at_or(token.Semicolon, token.RBrace, token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		expr = e
	}
	p.finishStatement("return")
	return p.arenas.Stmts.NewReturn(p.spanFrom(retTok.Span), expr), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.finishStatement("expression")
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}

// finishStatement съедает ';'; при UnexpectedToken statement сохраняется,
// а разбор восстанавливается через resyncStatement.
func (p *Parser) finishStatement(what string) {
	if !p.expectSemicolon(what) {
		p.resyncStatement()
	}
}

// resyncStatement пропускает токены до ';' (съедается), '}' или ключевого
// слова, начинающего statement. Вложенные {...} пропускаются целиком.
func (p *Parser) resyncStatement() {
	p.recovered = true
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		switch {
		case k == token.LBrace:
			depth++
		case k == token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case depth > 0:
		case k == token.Semicolon:
			p.advance()
			return
		case isStatementKeyword(k):
			return
		}
		p.advance()
	}
}

func isStatementKeyword(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwReturn, token.KwIf, token.KwWhile:
		return true
	}
	return token.IsTypeKeyword(k)
}
