package parser

import (
	"fmt"
	"strings"
	"testing"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/lexer"
	"ocl/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ocl", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	opts.Reporter = reporter

	result := ParseFile(fs, lx, builder, opts)
	if result.Bag == nil {
		result.Bag = bag
	}
	return builder, result.File, result.Bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// onlyFn возвращает единственную функцию файла.
func onlyFn(t *testing.T, b *ast.Builder, fileID ast.FileID) *ast.FnItem {
	t.Helper()
	file := b.Files.Get(fileID)
	for _, id := range file.Items {
		if fn, ok := b.Items.Fn(id); ok {
			return fn
		}
	}
	t.Fatalf("no function in file")
	return nil
}

func bodyStmts(t *testing.T, b *ast.Builder, fn *ast.FnItem) []ast.StmtID {
	t.Helper()
	block := b.Stmts.Block(fn.Body)
	if block == nil {
		t.Fatalf("function body is not a block")
	}
	return block.Stmts
}

// letValue разбирает `let x = <expr>;` и возвращает инициализатор.
func letValue(t *testing.T, expr string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, fileID, bag := parseSource(t, "let x = "+expr+";")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	file := b.Files.Get(fileID)
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}
	let, ok := b.Items.Let(file.Items[0])
	if !ok {
		t.Fatalf("expected let item")
	}
	return b, let.Value
}
