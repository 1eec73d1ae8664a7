package fuzztests

import (
	"testing"

	"ocl/internal/diag"
	"ocl/internal/lexer"
	"ocl/internal/source"
	"ocl/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ocl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		// каждый шаг лексера обязан продвигаться, иначе цикл не закончится
		for i := 0; i <= len(input)+1; i++ {
			tok := lx.Next()
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %s at %v overlaps previous end %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF on %d bytes", len(input))
	})
}
