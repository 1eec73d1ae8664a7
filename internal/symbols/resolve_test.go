package symbols

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/lexer"
	"ocl/internal/parser"
	"ocl/internal/source"
)

var errNoModule = errors.New("module not found")

var testModules = ImportResolverFunc(func(module string) ([]Export, error) {
	switch module {
	case "math":
		return []Export{
			{Name: "sqrt", Signature: "(float) -> float"},
			{Name: "add", Signature: "(int, int) -> int"},
			{Name: "pi", Signature: "float"},
		}, nil
	case "extra":
		return []Export{{Name: "add", Signature: "(float, float) -> float"}}, nil
	}
	return nil, fmt.Errorf("%w: %s", errNoModule, module)
})

func resolveSource(t *testing.T, src string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ocl", []byte(src))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("unexpected syntax errors: %s", summary(bag))
	}
	res := ResolveFile(builder, parsed.File, ResolveOptions{
		Reporter: reporter,
		Imports:  testModules,
		Validate: true,
	})
	return builder, res, bag
}

func summary(bag *diag.Bag) string {
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := codes(bag)
	if len(got) != len(want) {
		t.Fatalf("expected %d diagnostics, got %s", len(want), summary(bag))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diag %d: got %s, want %s (%s)", i, got[i].ID(), want[i].ID(), summary(bag))
		}
	}
}

func TestResolveCleanProgram(t *testing.T) {
	src := `import math;
int total = 0;
int a() { return b(); }
int b() { return add(total, 1); }
void main() {
  float r = sqrt(pi);
  print(r, to_string(a()));
}
`
	_, res, bag := resolveSource(t, src)
	expectCodes(t, bag)
	if len(res.Imports) != 1 || len(res.Imports[0].Symbols) != 3 {
		t.Fatalf("expected 3 imported symbols, got %+v", res.Imports)
	}
	pi := res.Table.Symbols.Get(res.Imports[0].Symbols[2])
	if pi.Flags&SymbolFlagConstant == 0 || pi.Kind != SymbolImport {
		t.Errorf("pi should be an imported constant, got %+v", pi)
	}
}

func TestGlobalsSeeOnlyEarlierGlobals(t *testing.T) {
	_, _, bag := resolveSource(t, "int x = y;\nint y = 1;\nint z = y + f();\nint f() { return x + y; }\n")
	expectCodes(t, bag, diag.SemaUnresolvedSymbol)
	if !strings.Contains(bag.Items()[0].Message, "'y'") {
		t.Errorf("unexpected message: %s", bag.Items()[0].Message)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"same block", "void f() { let a = 1; let a = 2; }"},
		{"param and body", "void f(int a) { float a = 1.0; }"},
		{"two params", "void f(int a, int a) { }"},
		{"two functions", "void f() { }\nvoid f() { }"},
		{"function and global", "void f() { }\nint f = 1;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := resolveSource(t, tt.src)
			expectCodes(t, bag, diag.SemaDuplicateSymbol)
			d := bag.Items()[0]
			if len(d.Notes) != 1 || d.Notes[0].Msg != "previous declaration here" {
				t.Errorf("expected note at previous declaration, got %+v", d.Notes)
			}
			if d.Notes[0].Span.Start >= d.Primary.Start {
				t.Errorf("note must point at the earlier declaration")
			}
		})
	}
}

func TestShadowingInNestedScopes(t *testing.T) {
	src := "void f(int a) {\n  { let a = 2; }\n  if (true) { let a = \"s\"; } else { let a = 1.5; }\n  while (false) { let a = true; }\n}\n"
	_, _, bag := resolveSource(t, src)
	expectCodes(t, bag)
}

func TestIdentifierBindsToInnermostDeclaration(t *testing.T) {
	src := "int a = 1;\nint f(int a) {\n  { let a = 2; return a; }\n}\n"
	b, res, bag := resolveSource(t, src)
	expectCodes(t, bag)

	var retIdent ast.ExprID
	for i := uint32(1); i <= b.Exprs.Arena.Len(); i++ {
		id := ast.ExprID(i)
		if b.Exprs.Get(id).Kind == ast.ExprIdent {
			retIdent = id // последний идентификатор: `a` в return
		}
	}
	symID, ok := res.ExprSymbols[retIdent]
	if !ok {
		t.Fatalf("return operand is unresolved")
	}
	sym := res.Table.Symbols.Get(symID)
	if sym.Kind != SymbolVar || sym.Flags&SymbolFlagGlobal != 0 || !sym.Decl.Stmt.IsValid() {
		t.Errorf("expected local let binding, got %+v", sym)
	}
}

func TestUndeclaredName(t *testing.T) {
	b, res, bag := resolveSource(t, "void f() { x = undefined_fn(1); }")
	expectCodes(t, bag, diag.SemaUnresolvedSymbol, diag.SemaUnresolvedSymbol)
	for i := uint32(1); i <= b.Exprs.Arena.Len(); i++ {
		if id := ast.ExprID(i); b.Exprs.Get(id).Kind == ast.ExprIdent {
			if _, ok := res.ExprSymbols[id]; ok {
				t.Errorf("identifier %d unexpectedly resolved", id)
			}
		}
	}
}

func TestLetInitializerSeesOuterBinding(t *testing.T) {
	_, _, bag := resolveSource(t, "void f() { let y = y; }")
	expectCodes(t, bag, diag.SemaUnresolvedSymbol)
}

func TestImports(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		src := "import nope;\nvoid f() { }"
		_, _, bag := resolveSource(t, src)
		expectCodes(t, bag, diag.SemaImportNotFound)
		d := bag.Items()[0]
		if d.Primary.Start != uint32(strings.Index(src, "nope")) {
			t.Errorf("primary must be the module name, got %v", d.Primary)
		}
	})
	t.Run("duplicate import", func(t *testing.T) {
		_, _, bag := resolveSource(t, "import math;\nimport math;\n")
		expectCodes(t, bag, diag.SemaDuplicateImport)
		if bag.Items()[0].Severity != diag.SevWarning {
			t.Errorf("duplicate import must be a warning")
		}
	})
	t.Run("clashing exports", func(t *testing.T) {
		_, _, bag := resolveSource(t, "import math;\nimport extra;\n")
		expectCodes(t, bag, diag.SemaDuplicateSymbol)
		if !strings.Contains(bag.Items()[0].Notes[0].Msg, "math") {
			t.Errorf("note should name the first module: %+v", bag.Items()[0].Notes)
		}
	})
	t.Run("user function clashes with import", func(t *testing.T) {
		_, _, bag := resolveSource(t, "import math;\nint add(int a, int b) { return a; }\n")
		expectCodes(t, bag, diag.SemaDuplicateSymbol)
	})
	t.Run("nil resolver", func(t *testing.T) {
		fs := source.NewFileSet()
		fileID := fs.AddVirtual("t.ocl", []byte("import math;"))
		bag := diag.NewBag(10)
		rep := &diag.BagReporter{Bag: bag}
		b := ast.NewBuilder(ast.Hints{}, nil)
		parsed := parser.ParseFile(fs, lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
		ResolveFile(b, parsed.File, ResolveOptions{Reporter: rep})
		expectCodes(t, bag, diag.SemaImportNotFound)
	})
}

func TestPreludeCanBeShadowed(t *testing.T) {
	_, res, bag := resolveSource(t, "void print(int x) { }\nvoid main() { print(1); }\n")
	expectCodes(t, bag)
	universe := res.Table.Scopes.Get(res.UniverseScope)
	if len(universe.Symbols) != len(builtinPreludeEntries()) {
		t.Errorf("universe scope holds %d symbols", len(universe.Symbols))
	}
}
