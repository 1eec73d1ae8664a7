package sema

import (
	"fmt"
	"strings"
	"testing"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/lexer"
	"ocl/internal/parser"
	"ocl/internal/source"
	"ocl/internal/stdlib"
	"ocl/internal/symbols"
	"ocl/internal/types"
)

type checked struct {
	fs      *source.FileSet
	builder *ast.Builder
	syms    symbols.Result
	res     Result
	bag     *diag.Bag
}

func checkSource(t *testing.T, src string) checked {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ocl", []byte(src))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter})
	syms := symbols.ResolveFile(builder, parsed.File, symbols.ResolveOptions{
		Reporter: reporter,
		Imports:  stdlib.Default(),
		Validate: true,
	})
	res := Check(builder, parsed.File, Options{Reporter: reporter, Symbols: &syms})
	return checked{fs: fs, builder: builder, syms: syms, res: res, bag: bag}
}

func summary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.Kind(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func kinds(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.Kind())
	}
	return out
}

func TestCheckInitializesTypeInterner(t *testing.T) {
	builder := ast.NewBuilder(ast.Hints{}, nil)
	file := builder.NewFile(source.Span{})
	res := Check(builder, file, Options{})
	if res.TypeInterner == nil {
		t.Fatalf("expected type interner")
	}
	if len(res.ExprTypes) != 0 {
		t.Fatalf("expected no expression types, got %d", len(res.ExprTypes))
	}
}

func TestCheckDiagnostics(t *testing.T) {
	const mathFns = `
int add(int a, int b) { return a + b; }
int sub(int a, int b) { return a - b; }
`
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "clean",
			src:  mathFns + `void main() { let x = add(1, 2); println(sub(x, 1)); }`,
			want: nil,
		},
		{
			name: "arity",
			src:  mathFns + `void main() { let r = sub(10); }`,
			want: []string{"ArityError"},
		},
		{
			name: "argument mismatch",
			src:  mathFns + `void main() { let r = add(2, "3"); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "unknown argument is not re-reported",
			src:  mathFns + `void main() { let r = add(sub(1), 2); }`,
			want: []string{"ArityError"},
		},
		{
			name: "unknown binding does not cascade",
			src:  mathFns + `void main() { let r = add(2, "3"); let q = r * 2; println(q + 1); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "undeclared name does not cascade",
			src:  `void main() { let x = missing + 1; print(x * 2); }`,
			want: []string{"UndeclaredName"},
		},
		{
			name: "int widens to float",
			src:  `float f = 1; void main() { let g = f + 2; float h = g * 3; }`,
			want: nil,
		},
		{
			name: "float does not narrow",
			src:  `int i = 1.5;`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "string concatenation",
			src:  `let s = "a" + "b"; string t = s;`,
			want: nil,
		},
		{
			name: "string plus int",
			src:  `let s = "a" + 1;`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "logical needs bool",
			src:  `let b = 1 && true;`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "unary minus on bool",
			src:  `let b = -true;`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "not on int",
			src:  `let b = !1;`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "equality across families",
			src:  `let b = 1 == "1";`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "mixed numeric comparison",
			src:  `let b = 1 < 2.5; bool c = b;`,
			want: nil,
		},
		{
			name: "condition must be bool",
			src:  `void main() { if (1) { } while ("x") { } }`,
			want: []string{"TypeMismatch", "TypeMismatch"},
		},
		{
			name: "void initializer",
			src:  `void main() { let x = print(1); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "void variable",
			src:  `void main() { void x = 1; }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "assign mismatch",
			src:  `void main() { int x = 1; x = "s"; }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "assign widening",
			src:  `void main() { float x = 1.0; x = 2; }`,
			want: nil,
		},
		{
			name: "assign to function",
			src:  `void f() { } void main() { f = 1; }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "assign to constant",
			src:  `import math; void main() { pi = 3.0; }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "call constant",
			src:  `import math; void main() { let x = pi(); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "call variable",
			src:  `void main() { let x = 1; x(); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "function value passed to any",
			src:  mathFns + `void main() { print(add); }`,
			want: nil,
		},
		{
			name: "function value in arithmetic",
			src:  mathFns + `void main() { let x = add + 1; }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "function value in scalar parameter",
			src:  mathFns + `void main() { let x = add(add, 1); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "variadic print",
			src:  `void main() { print(); print(1, "a", true, 2.5); }`,
			want: nil,
		},
		{
			name: "void argument to any",
			src:  `void main() { print(print(1)); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "conversion builtins",
			src:  `void main() { int i = to_int("3"); string s = to_string(i); float f = to_float(s); bool b = to_bool(f); }`,
			want: nil,
		},
		{
			name: "power and modulo",
			src:  `int a = 2 ** 3 % 5; float b = 2.0 ** 2;`,
			want: nil,
		},
		{
			name: "modulo on string",
			src:  `let a = "x" % 2;`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "string module",
			src:  `import string; void main() { int n = len(upper("ab")); string s = substr("abc", 0, n); }`,
			want: nil,
		},
		{
			name: "time module",
			src:  `import time; void main() { sleep(1); float t = uptime(); string d = date(); }`,
			want: nil,
		},
		{
			name: "time and timestamp are strings",
			src:  `import time; void main() { string t = time(); string s = timestamp(); }`,
			want: nil,
		},
		{
			name: "timestamp is not an int",
			src:  `import time; void main() { int s = timestamp(); }`,
			want: []string{"TypeMismatch"},
		},
		{
			name: "global initializer calls function",
			src:  mathFns + `int total = add(1, 2);`,
			want: nil,
		},
		{
			name: "parameter with void type",
			src:  `void f(void v) { }`,
			want: []string{"TypeMismatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checkSource(t, tt.src)
			got := kinds(c.bag)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %s", tt.want, summary(c.bag))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("diag %d: expected %s, got %s", i, tt.want[i], summary(c.bag))
				}
			}
		})
	}
}

func TestCheckReturns(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"value returned", `int f() { return 1; }`, nil},
		{"widened return", `float f() { return 1; }`, nil},
		{"narrowing return", `int f() { return 1.5; }`, []string{"ReturnTypeMismatch"}},
		{"value in void fn", `void f() { return 1; }`, []string{"ReturnTypeMismatch"}},
		{"bare return in int fn", `int f() { return; }`, []string{"ReturnTypeMismatch"}},
		{"bare return in void fn", `void f() { return; }`, nil},
		{"missing return", `int f() { let x = 1; }`, []string{"MissingReturn"}},
		{"empty body", `string f() { }`, []string{"MissingReturn"}},
		{"return in nested block", `int f() { { return 1; } }`, nil},
		{
			"both branches return is still open",
			`int f(bool c) { if (c) { return 1; } else { return 2; } }`,
			[]string{"MissingReturn"},
		},
		{
			"return after loop",
			`int f(int n) { while (n > 0) { n = n - 1; } return n; }`,
			nil,
		},
		{
			"unknown return value is not reported",
			`int f() { return missing; }`,
			[]string{"UndeclaredName"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checkSource(t, tt.src)
			got := kinds(c.bag)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("expected %v, got %s", tt.want, summary(c.bag))
			}
		})
	}
}

func TestMissingReturnReportedAtFunctionName(t *testing.T) {
	c := checkSource(t, "int compute() {\n  let x = 1;\n}\n")
	if c.bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %s", summary(c.bag))
	}
	d := c.bag.Items()[0]
	if d.Code != diag.SemaMissingReturn {
		t.Fatalf("expected MissingReturn, got %s", d.Code.Kind())
	}
	start, _ := c.fs.Resolve(d.Primary)
	if start.Line != 1 || start.Col != 5 {
		t.Fatalf("expected 1:5, got %d:%d", start.Line, start.Col)
	}
}

func TestMissingReturnSkippedAfterRecovery(t *testing.T) {
	c := checkSource(t, "int f() {\n  let x = ;\n}\n")
	for _, d := range c.bag.Items() {
		if d.Code == diag.SemaMissingReturn {
			t.Fatalf("missing return must not be reported after syntax recovery: %s", summary(c.bag))
		}
	}
	if c.bag.Len() == 0 {
		t.Fatalf("expected a syntax error")
	}
}

func TestArityNotePointsAtDeclaration(t *testing.T) {
	c := checkSource(t, "int sub(int a, int b) { return a - b; }\nvoid main() { sub(10); }\n")
	if c.bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %s", summary(c.bag))
	}
	d := c.bag.Items()[0]
	if d.Code != diag.SemaArityMismatch {
		t.Fatalf("expected ArityError, got %s", d.Code.Kind())
	}
	if !strings.Contains(d.Message, "'sub'") || !strings.Contains(d.Message, "expects 2 arguments, got 1") {
		t.Fatalf("unexpected message %q", d.Message)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected a declaration note, got %+v", d.Notes)
	}
	note, _ := c.fs.Resolve(d.Notes[0].Span)
	if note.Line != 1 {
		t.Fatalf("note must point at the declaration line, got %d", note.Line)
	}
}

func TestArityOfBuiltinHasNoNote(t *testing.T) {
	c := checkSource(t, `void main() { let s = to_string(1, 2); }`)
	if c.bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %s", summary(c.bag))
	}
	if n := len(c.bag.Items()[0].Notes); n != 0 {
		t.Fatalf("builtin has no source span, expected no notes, got %d", n)
	}
}

func TestArgumentMismatchMessage(t *testing.T) {
	c := checkSource(t, `import math; void main() { let r = sqrt("25"); }`)
	if c.bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %s", summary(c.bag))
	}
	d := c.bag.Items()[0]
	want := "argument 1 of 'sqrt': expected float, got string"
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
}

func TestNestedImportedCallsTypeCleanly(t *testing.T) {
	c := checkSource(t, `import math; void main() { let y = sin(div(pi, 2)); float z = y; }`)
	if c.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %s", summary(c.bag))
	}
}

func TestExpressionTypes(t *testing.T) {
	c := checkSource(t, `let a = 1; let b = a + 2.0; let s = "x"; let ok = a < 3 && !false;`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
	in := c.res.TypeInterner
	want := map[string]string{"a": "int", "b": "float", "s": "string", "ok": "bool"}
	for symID, ty := range c.res.BindingTypes {
		name := c.syms.Table.Name(symID)
		if exp, ok := want[name]; ok {
			if got := in.Format(ty); got != exp {
				t.Errorf("%s: got %s, want %s", name, got, exp)
			}
			delete(want, name)
		}
	}
	if len(want) != 0 {
		t.Fatalf("missing bindings: %v", want)
	}
}

func TestFunctionValueType(t *testing.T) {
	c := checkSource(t, `float add(int a, float b) { return a + b; } let f = add;`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
	for symID, ty := range c.res.BindingTypes {
		if c.syms.Table.Name(symID) == "f" {
			if got := c.res.TypeInterner.Format(ty); got != "fn(int, float) -> float" {
				t.Fatalf("f: got %s", got)
			}
			return
		}
	}
	t.Fatalf("binding f not found")
}

func TestCleanProgramHasNoUnknownTypes(t *testing.T) {
	src := `
@language "ocl";
import math;
import string;

let greeting = "hello";
float radius = 2;

float area(float r) {
    return pi * r ** 2;
}

string describe(string name, int n) {
    let out = upper(name);
    while (n > 0) {
        out = out + "!";
        n = n - 1;
    }
    return out;
}

void main() {
    let a = area(radius);
    if (a > 10.0 || len(greeting) == 5) {
        println(describe(greeting, 2), a);
    } else {
        print(to_string(floor(a)));
    }
    return;
}
`
	c := checkSource(t, src)
	if c.bag.Len() != 0 {
		t.Fatalf("expected a clean program, got %s", summary(c.bag))
	}
	if len(c.res.ExprTypes) == 0 {
		t.Fatalf("expected expression types")
	}
	in := c.res.TypeInterner
	for id, ty := range c.res.ExprTypes {
		if in.IsUnknown(ty) {
			t.Fatalf("expression %d has unknown type", id)
		}
	}
	for id, ty := range c.res.BindingTypes {
		if in.IsUnknown(ty) {
			t.Fatalf("binding %s has unknown type", c.syms.Table.Name(id))
		}
	}
}

func TestCheckWithoutSymbolsMarksIdentsUnknown(t *testing.T) {
	builder := ast.NewBuilder(ast.Hints{}, nil)
	file := builder.NewFile(source.Span{})
	x := builder.Exprs.NewIdent(source.Span{}, builder.StringsInterner.Intern("x"))
	one := builder.Exprs.NewLiteral(source.Span{}, ast.ExprLitInt, builder.StringsInterner.Intern("1"))
	sum := builder.Exprs.NewBinary(source.Span{}, ast.ExprBinaryAdd, source.Span{}, x, one)
	builder.PushItem(file, builder.Items.NewLet(ast.LetDecl{
		Name:  builder.StringsInterner.Intern("y"),
		Value: sum,
	}))

	bag := diag.NewBag(4)
	res := Check(builder, file, Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unresolved names must not produce type errors, got %s", summary(bag))
	}
	if kind := res.TypeInterner.KindOf(res.ExprTypes[sum]); kind != types.KindUnknown {
		t.Fatalf("expected unknown, got %s", kind)
	}
	if kind := res.TypeInterner.KindOf(res.ExprTypes[one]); kind != types.KindInt {
		t.Fatalf("expected int literal, got %s", kind)
	}
}

func TestAssignTypes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		unknown bool
	}{
		{name: "ok", src: `void main() { int x = 0; x = 1; }`, want: "int"},
		{name: "widened", src: `void main() { float x = 0.0; x = 1; }`, want: "float"},
		{name: "mismatch", src: `void main() { int x = 0; x = "s"; }`, unknown: true},
		{name: "constant", src: "import math;\nvoid main() { pi = 3.0; }", unknown: true},
		{name: "unknown value", src: `void main() { int x = 0; x = y; }`, unknown: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checkSource(t, tt.src)
			in := c.res.TypeInterner
			found := false
			for id, ty := range c.res.ExprTypes {
				if _, ok := c.builder.Exprs.Assign(id); !ok {
					continue
				}
				found = true
				if tt.unknown {
					if !in.IsUnknown(ty) {
						t.Fatalf("assignment typed %s, want unknown", in.Format(ty))
					}
					if c.bag.Len() != 1 {
						t.Fatalf("expected one diagnostic, got %s", summary(c.bag))
					}
					continue
				}
				if got := in.Format(ty); got != tt.want {
					t.Fatalf("assignment typed %s, want %s", got, tt.want)
				}
				if c.bag.Len() != 0 {
					t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
				}
			}
			if !found {
				t.Fatalf("no assignment expression typed")
			}
		})
	}
}
