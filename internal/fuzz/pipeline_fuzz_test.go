package fuzztests

import (
	"context"
	"testing"
	"time"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/driver"
	"ocl/internal/lexer"
	"ocl/internal/parser"
	"ocl/internal/source"
	"ocl/internal/testkit"
)

// parseTimeout is the maximum time allowed for analysing a single input.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ocl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		reporter := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{}, nil)

		res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter, MaxErrors: 128})
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzAnalyzeNoHang runs the whole pipeline with a deadline and checks the
// finalized diagnostics.
func FuzzAnalyzeNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("void f() { { { { } } } }"))
	f.Add([]byte("void f() { while (1 { } }"))
	f.Add([]byte("int f(int a int b) { return a b; }"))
	f.Add([]byte("let x = ((((1;"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		type outcome struct {
			res *driver.Result
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			res, err := driver.Analyze(context.Background(), "fuzz.ocl", input, driver.Options{MaxDiagnostics: 64})
			done <- outcome{res: res, err: err}
		}()

		select {
		case out := <-done:
			if out.err != nil {
				t.Fatalf("analyze failed: %v", out.err)
			}
			if err := testkit.CheckDiagnostics(out.res.Bag, out.res.FileSet); err != nil {
				t.Fatalf("diagnostics: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-time.After(parseTimeout):
			t.Fatalf("analysis hang detected after %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(data []byte, maxLen int) []byte {
	if len(data) <= maxLen {
		return data
	}
	return data[:maxLen]
}
