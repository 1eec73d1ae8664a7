package parser

import (
	"fmt"

	"ocl/internal/diag"
	"ocl/internal/fix"
	"ocl/internal/source"
	"ocl/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	switch tok.Kind {
	case token.EOF:
	case token.Invalid:
		p.sawInvalid = true
		p.lastSpan = tok.Span
	default:
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: лучший span для диагностики: текущий токен,
// а на EOF: позиция сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, msg string, extra ...func(*diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.reportWith(diag.SynUnexpectedToken, diagSpan, fmt.Sprintf("%s, got %s", msg, describe(p.lx.Peek())), extra...)
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.reportWith(code, p.getDiagnosticSpan(), msg)
}

// reportWith: общий путь для синтаксических ошибок.
// Ошибки в statement с Invalid токеном подавляются: первопричина уже
// зарепорчена лексером.
func (p *Parser) reportWith(code diag.Code, sp source.Span, msg string, extra ...func(*diag.ReportBuilder)) bool {
	if code != diag.SynExpectSemicolon {
		p.recovered = true
	}
	if p.sawInvalid || p.blamesInvalidNext(code) {
		return false
	}
	if p.opts.Reporter == nil {
		return false
	}
	if p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	p.opts.CurrentErrors++
	b := diag.ReportError(p.opts.Reporter, code, sp, msg)
	for _, fn := range extra {
		if fn != nil {
			fn(b)
		}
	}
	b.Emit()
	return true
}

// blamesInvalidNext: ошибка вызвана Invalid токеном, который стоит следом
// в том же statement. MissingTerminator и MalformedLiteralForm относятся к
// уже разобранному тексту, а токен на новой строке начинает следующий
// statement, поэтому в этих случаях подавлять нечего.
func (p *Parser) blamesInvalidNext(code diag.Code) bool {
	if code == diag.SynExpectSemicolon || code == diag.SynMalformedLiteral {
		return false
	}
	next := p.lx.Peek()
	return next.Kind == token.Invalid && !next.HasNewlineBefore()
}

// resyncUntil прокручивает токены, пока не встретит один из stop или EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.at_or(stop...) {
		p.advance()
	}
}

// expectSemicolon завершает statement.
//
// Если ';' нет, но следующий токен явно начинает новый statement (или стоит
// на следующей строке), это MissingTerminator: statement сохраняется, а разбор
// продолжается с этого токена. Иначе: обычная UnexpectedToken, и вызывающий
// код восстанавливается через resyncStatement.
func (p *Parser) expectSemicolon(what string) bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	next := p.lx.Peek()
	if !isStatementStarter(next.Kind) && !next.HasNewlineBefore() {
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("expected ';' after %s, got %s", what, describe(next)))
		return false
	}

	insertAt := p.lastSpan.ZeroideToEnd()
	primary := next.Span
	if next.Kind == token.EOF {
		primary = insertAt
	}
	p.reportWith(diag.SynExpectSemicolon, primary, "missing ';' after "+what, func(b *diag.ReportBuilder) {
		b.WithNote(insertAt, "insert ';' here")
		b.WithFixSuggestion(fix.InsertText(
			"insert ';'",
			insertAt,
			";",
			"",
			fix.WithID(fix.MakeFixID(diag.SynExpectSemicolon, insertAt)),
			fix.Preferred(),
		))
	})
	return true
}

// isStatementStarter: токены, с которых начинается statement, плюс '}' и EOF,
// которые закрывают последовательность statements.
func isStatementStarter(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwReturn, token.KwIf, token.KwWhile, token.KwImport,
		token.Ident, token.LBrace, token.RBrace, token.EOF, token.At:
		return true
	}
	return token.IsTypeKeyword(k)
}

// describe: короткое описание токена для сообщений.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.IntLit, token.FloatLit:
		return fmt.Sprintf("number %s", tok.Text)
	case token.StringLit:
		return fmt.Sprintf("string %s", tok.Text)
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}

// spanFrom: span от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.End {
		return start
	}
	return start.Cover(p.lastSpan)
}
