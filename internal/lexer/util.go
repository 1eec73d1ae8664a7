package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = 0x80

// ===== Работа с рунами поверх Cursor =====

func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode: через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isDec(b byte) bool   { return b >= '0' && b <= '9' }
func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v' }

// Проверка для кейса ".5": текущая точка, дальше цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// canStartToken сообщает, может ли текущая позиция начать токен или trivia.
// Используется, чтобы найти конец последовательности недопустимых символов.
func (lx *Lexer) canStartToken() bool {
	if lx.cursor.EOF() {
		return true
	}
	b := lx.cursor.Peek()
	switch {
	case isSpace(b), b == '\n', b == '"', isDec(b), isIdentStartByte(b):
		return true
	case b == '.':
		return lx.isNumberAfterDot()
	case b >= utf8RuneSelf:
		r, _ := lx.peekRune()
		return isIdentStartRune(r) || unicode.IsSpace(r)
	default:
		return lx.startsOperator()
	}
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try2 пробует "съесть" 2 байта, если совпадает.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
