package lexer

import (
	"golang.org/x/text/unicode/norm"

	"ocl/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Для не-ASCII
// идентификаторов Token.Text приводится к NFC, чтобы "é" и "é" совпадали.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ascii := true

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if ascii {
		if k, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: k, Span: sp, Text: text}
		}
		return token.Token{Kind: token.Ident, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: norm.NFC.String(text)}
}
