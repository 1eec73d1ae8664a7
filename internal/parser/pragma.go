package parser

import (
	"strings"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/token"
)

// parsePragma разбирает `@name "value" ;?` в начале файла.
//
// Значение обязано быть строкой в кавычках. Голый идентификатор или число
// дают ровно одну MalformedLiteralForm на span всей прагмы; сырой текст
// (все токены до ';' или конца строки) сохраняется в Pragma.Raw.
func (p *Parser) parsePragma() {
	atTok := p.advance()
	pragma := ast.Pragma{Span: atTok.Span}
	defer func() {
		p.arenas.Files.Get(p.file).Pragma = pragma
	}()

	nameTok := p.lx.Peek()
	if nameTok.Kind != token.Ident {
		p.err(diag.SynUnexpectedToken, "expected pragma name after '@', got "+describe(nameTok))
		p.resyncUntil(token.Semicolon, token.KwImport, token.KwLet, token.KwInt, token.KwFloat,
			token.KwString, token.KwBool, token.KwVoid)
		p.skipSemicolon()
		return
	}
	p.advance()
	pragma.Name = p.arenas.StringsInterner.Intern(nameTok.Text)
	pragma.NameSpan = nameTok.Span
	pragma.Span = pragma.Span.Cover(nameTok.Span)

	valTok := p.lx.Peek()
	switch {
	case valTok.Kind == token.StringLit && !valTok.HasNewlineBefore():
		p.advance()
		pragma.ValueSpan = valTok.Span
		pragma.Raw = valTok.Text
		pragma.Value = unquote(valTok.Text)
		pragma.Span = pragma.Span.Cover(valTok.Span)
		if strings.TrimSpace(pragma.Value) == "" {
			pragma.Malformed = true
			p.reportWith(diag.SynMalformedLiteral, pragma.Span, "pragma '"+nameTok.Text+"' value must not be empty")
		}

	case valTok.Kind == token.Semicolon || valTok.Kind == token.EOF || valTok.HasNewlineBefore():
		pragma.Malformed = true
		p.reportWith(diag.SynMalformedLiteral, pragma.Span, "pragma '"+nameTok.Text+"' is missing a quoted value")

	default:
		// всё до ';' или конца строки считаем сырым значением
		first := p.advance()
		last := first
		for !p.at(token.Semicolon) && !p.at(token.EOF) && !p.lx.Peek().HasNewlineBefore() {
			last = p.advance()
		}
		pragma.Malformed = true
		pragma.ValueSpan = first.Span.Cover(last.Span)
		pragma.Raw = string(p.lx.File().Content[pragma.ValueSpan.Start:pragma.ValueSpan.End])
		pragma.Span = pragma.Span.Cover(pragma.ValueSpan)
		if first.Kind == token.Invalid {
			// незакрытая строка: лексер уже сообщил
			break
		}
		p.reportWith(diag.SynMalformedLiteral, pragma.Span,
			"pragma '"+nameTok.Text+"' value must be a quoted string, got "+pragma.Raw)
	}

	if p.at(token.Semicolon) {
		pragma.Span = pragma.Span.Cover(p.advance().Span)
	}
	p.sawInvalid = false
}

func (p *Parser) skipSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// unquote снимает кавычки и разворачивает escape-последовательности \" \\ \n \t.
func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	}
	if !strings.Contains(lit, `\`) {
		return lit
	}
	var sb strings.Builder
	sb.Grow(len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch lit[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteByte(lit[i])
		}
	}
	return sb.String()
}
