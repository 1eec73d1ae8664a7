package source

import "testing"

func TestInternerBasic(t *testing.T) {
	in := NewInterner()

	// NoStringID зарезервирован под пустую строку
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID lookup = %q,%v", s, ok)
	}
	id1 := in.Intern("sqrt")
	id2 := in.Intern("sqrt")
	if id1 == NoStringID || id1 != id2 {
		t.Fatalf("expected stable non-zero id, got %d and %d", id1, id2)
	}
	if in.Intern("pi") == id1 {
		t.Fatal("different strings share an id")
	}
	if in.MustLookup(id1) != "sqrt" {
		t.Fatal("MustLookup mismatch")
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
	if in.Len() != 3 || len(in.Snapshot()) != 3 {
		t.Fatalf("Len = %d", in.Len())
	}
}
