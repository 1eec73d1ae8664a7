package lexer

import (
	"fmt"
	"strconv"

	"ocl/internal/diag"
	"ocl/internal/token"
)

var singleOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'@': token.At,
}

// startsOperator: может ли текущий байт начать оператор или пунктуацию.
// Одиночные '&' и '|' не являются токенами OCL.
func (lx *Lexer) startsOperator() bool {
	b0 := lx.cursor.Peek()
	switch b0 {
	case '&', '|':
		return lx.cursor.PeekAt(1) == b0
	}
	return singleOps[b0] != token.Invalid
}

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	ch := lx.cursor.Bump()
	if k := singleOps[ch]; k != token.Invalid {
		return emit(k)
	}
	lx.cursor.Reset(start)
	return lx.scanInvalidRun()
}

// scanInvalidRun склеивает максимальную последовательность символов,
// которые не могут начать токен, в один Invalid с одной диагностикой.
func (lx *Lexer) scanInvalidRun() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	for !lx.canStartToken() {
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.errLex(diag.LexUnknownChar, sp, describeInvalid(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func describeInvalid(text string) string {
	runes := []rune(text)
	if len(runes) == 1 {
		if strconv.IsPrint(runes[0]) {
			return fmt.Sprintf("unexpected character '%s'", text)
		}
		return fmt.Sprintf("unexpected character (U+%04X)", runes[0])
	}
	return fmt.Sprintf("unexpected characters %s", strconv.Quote(text))
}
