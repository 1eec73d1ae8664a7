package token_test

import (
	"testing"

	"ocl/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]token.Kind{
		"import": token.KwImport,
		"return": token.KwReturn,
		"float":  token.KwFloat,
		"void":   token.KwVoid,
		"true":   token.KwTrue,
	} {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v", word, got, ok, want)
		}
	}
	// регистр важен; fn вообще не ключевое слово
	for _, word := range []string{"Int", "RETURN", "fn", "const", "print"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Errorf("%q must not be a keyword", word)
		}
	}
}

func TestIsTypeKeyword(t *testing.T) {
	for _, k := range []token.Kind{token.KwInt, token.KwFloat, token.KwString, token.KwBool, token.KwVoid} {
		if !token.IsTypeKeyword(k) {
			t.Errorf("%v should be a type keyword", k)
		}
	}
	for _, k := range []token.Kind{token.KwLet, token.Ident, token.IntLit} {
		if token.IsTypeKeyword(k) {
			t.Errorf("%v must not be a type keyword", k)
		}
	}
}

func TestKindStringAndSpelling(t *testing.T) {
	if token.Semicolon.String() != "Semicolon" {
		t.Fatalf("String = %q", token.Semicolon.String())
	}
	cases := map[token.Kind]string{
		token.Semicolon: ";",
		token.StarStar:  "**",
		token.KwWhile:   "while",
		token.Ident:     "identifier",
		token.EOF:       "end of file",
	}
	for k, want := range cases {
		if got := k.Spelling(); got != want {
			t.Errorf("%v.Spelling() = %q, want %q", k, got, want)
		}
	}
}

func TestHasNewlineBefore(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Leading: []token.Trivia{{Kind: token.TriviaSpace}, {Kind: token.TriviaNewline}}}
	if !tok.HasNewlineBefore() {
		t.Fatal("expected newline")
	}
	tok.Leading = []token.Trivia{{Kind: token.TriviaLineComment}}
	if tok.HasNewlineBefore() {
		t.Fatal("comment alone is not a newline")
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.KwTrue} {
		if !(token.Token{Kind: k}).IsLiteral() {
			t.Errorf("%v should be literal", k)
		}
	}
	if (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Error("identifier is not a literal")
	}
}
