package token

import "ocl/internal/source"

// TriviaKind classifies non-significant source fragments.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "Trivia(?)"
	}
}

// Trivia is whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
