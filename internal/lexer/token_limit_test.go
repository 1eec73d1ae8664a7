package lexer

import (
	"strings"
	"testing"

	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/token"
)

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := strings.Repeat("a", 17) + " b"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.ocl", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}, MaxTokenLen: 16})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected one LexTokenTooLong, got %v", items)
	}
	// Lexer should fast-forward to EOF after the error.
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	content := strings.Repeat("b", DefaultMaxTokenLen)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.ocl", []byte(content)))

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics, got %v", bag.Items())
	}
}
