package lexer

import (
	"ocl/internal/diag"
	"ocl/internal/token"
)

// "..." с escape \" \\ \n \t. Литерал обязан закрыться на той же строке.
// Незакрытая строка даёт Invalid от кавычки до конца строки; перевод строки
// не потребляется, и лексинг продолжается со следующей строки.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\n':
			return lx.unterminatedString(start)
		case '\\':
			lx.cursor.Bump()
			if next := lx.cursor.Peek(); next != '\n' && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminatedString(start)
}

func (lx *Lexer) unterminatedString(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
