package lexer

import (
	"ocl/internal/diag"
	"ocl/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t' и '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыт: репорт и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}

		// нет больше trivia
		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// //... или /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true

	default:
		// это не комментарий: пусть сканируется как оператор '/'
		return false
	}
}
