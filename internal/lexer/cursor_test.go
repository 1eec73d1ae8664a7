package lexer

import (
	"testing"

	"ocl/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ocl", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Peek(); got != want {
			t.Fatalf("peek = %q, want %q", got, want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("bump = %q, want %q", got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("cursor must stay at EOF")
	}
}

func TestCursorPeekAhead(t *testing.T) {
	c := NewCursor(createFile("**"))
	if b0, b1, ok := c.Peek2(); !ok || b0 != '*' || b1 != '*' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if c.PeekAt(2) != 0 {
		t.Fatal("PeekAt past end must be 0")
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 at last byte must fail")
	}
}

func TestCursorMarkSpanReset(t *testing.T) {
	c := NewCursor(createFile("hello"))
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Off = %d after reset", c.Off)
	}
	if !c.Eat('h') || c.Eat('x') {
		t.Fatal("Eat mismatch")
	}
	c.SkipToEOF()
	if !c.EOF() {
		t.Fatal("SkipToEOF")
	}
}
