package token

import (
	"strings"

	"ocl/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	_, ok := keywords[t.Text]
	return ok && t.Kind != Ident
}

func (t Token) IsIdent() bool { return t.Kind == Ident }

// HasNewlineBefore сообщает, был ли перевод строки в leading trivia.
// Парсер использует это, чтобы распознать пропущенный ';' в конце строки.
func (t Token) HasNewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
		if tr.Kind == TriviaBlockComment && strings.Contains(tr.Text, "\n") {
			return true
		}
	}
	return false
}
