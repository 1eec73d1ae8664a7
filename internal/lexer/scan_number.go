package lexer

import (
	"ocl/internal/token"
)

// Поддержка: 0, 123, 1.0, 1., .5.
// Знак числа не входит в литерал: "-1" это унарный минус и IntLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// ведущая точка: значит формат ".digits"
	if lx.cursor.Eat('.') {
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emitNumber(kind, start)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть; одиночная точка без цифр: допустимо как float "1."
	if lx.cursor.Eat('.') {
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.emitNumber(kind, start)
}

func (lx *Lexer) emitNumber(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
