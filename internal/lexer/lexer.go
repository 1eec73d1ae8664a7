package lexer

import (
	"fmt"

	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/token"
)

// Lexer выдаёт ленивый поток токенов одного файла.
// Ошибки никогда не прерывают лексинг: плохой фрагмент становится
// токеном Invalid, а диагностика уходит в Options.Reporter.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File возвращает файл, который читает лексер.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold приклеиваем и к EOF: парсеру нужен перевод строки перед концом файла
	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
		tok.Leading = lx.takeHold()
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор; иначе: мусорная последовательность
		if r, _ := lx.peekRune(); isIdentStartRune(r) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanInvalidRun()
		}
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case lx.startsOperator():
		tok = lx.scanOperatorOrPunct()
	default:
		tok = lx.scanInvalidRun()
	}

	tok = lx.checkTokenLen(tok)
	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan возвращает пустой span в текущей позиции курсора.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(lx.hold))
	copy(out, lx.hold)
	lx.hold = lx.hold[:0]
	return out
}

// checkTokenLen превращает слишком длинный токен в Invalid и
// перематывает лексер в конец файла: дальнейший разбор бессмысленен.
func (lx *Lexer) checkTokenLen(tok token.Token) token.Token {
	limit := lx.opts.maxTokenLen()
	if tok.Span.Len() <= limit {
		return tok
	}
	lx.errLex(diag.LexTokenTooLong, tok.Span,
		fmt.Sprintf("token is %d bytes long, limit is %d", tok.Span.Len(), limit))
	lx.cursor.SkipToEOF()
	tok.Kind = token.Invalid
	return tok
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
