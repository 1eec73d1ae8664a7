package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	for _, id := range []TypeID{b.Unknown, b.Void, b.Bool, b.String, b.Int, b.Float, b.Any} {
		if id == NoTypeID {
			t.Fatalf("builtins not initialized: %+v", b)
		}
	}
	if in.KindOf(b.Float) != KindFloat {
		t.Fatalf("expected float kind, got %v", in.KindOf(b.Float))
	}
	if !in.IsUnknown(b.Unknown) || !in.IsUnknown(NoTypeID) || in.IsUnknown(b.Int) {
		t.Fatalf("IsUnknown misclassifies types")
	}
}

func TestRegisterFnDeduplicates(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	f1 := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int, false)
	f2 := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int, false)
	if f1 != f2 {
		t.Fatalf("identical signatures should be deduplicated")
	}
	if v := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int, true); v == f1 {
		t.Fatalf("variadic flag must affect identity")
	}
}

func TestFormat(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	tests := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "int"},
		{b.Unknown, "unknown"},
		{in.RegisterFn([]TypeID{b.Float, b.Int}, b.Float, false), "fn(float, int) -> float"},
		{in.RegisterFn([]TypeID{b.Any}, b.Void, true), "fn(any...) -> void"},
		{in.RegisterFn(nil, b.String, false), "fn() -> string"},
	}
	for _, tt := range tests {
		if got := in.Format(tt.id); got != tt.want {
			t.Errorf("Format = %q, want %q", got, tt.want)
		}
	}
}

func TestAssignable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fn := in.RegisterFn(nil, b.Void, false)
	tests := []struct {
		from, to TypeID
		want     bool
	}{
		{b.Int, b.Int, true},
		{b.Int, b.Float, true},
		{b.Float, b.Int, false},
		{b.String, b.Int, false},
		{b.Bool, b.Int, false},
		{b.String, b.Any, true},
		{fn, b.Any, true},
		{b.Void, b.Any, false},
		{fn, b.Int, false},
	}
	for _, tt := range tests {
		if got := in.Assignable(tt.from, tt.to); got != tt.want {
			t.Errorf("Assignable(%s, %s) = %v, want %v", in.Format(tt.from), in.Format(tt.to), got, tt.want)
		}
	}
}

func TestFnArity(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fixed, _ := in.FnInfo(in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int, false))
	if fixed.AcceptsArgs(1) || !fixed.AcceptsArgs(2) || fixed.AcceptsArgs(3) {
		t.Errorf("fixed arity misreported")
	}
	variadic, _ := in.FnInfo(in.RegisterFn([]TypeID{b.Any}, b.Void, true))
	if !variadic.AcceptsArgs(0) || !variadic.AcceptsArgs(5) {
		t.Errorf("variadic arity misreported")
	}
	if p, ok := variadic.ParamAt(4); !ok || p != b.Any {
		t.Errorf("variadic ParamAt(4) = %v, %v", p, ok)
	}
	if _, ok := fixed.ParamAt(2); ok {
		t.Errorf("fixed ParamAt out of range must fail")
	}
}
