package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ocl/internal/diag"
	"ocl/internal/source"
)

func TestCheckDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ocl", []byte("int x = y;\n"))
	span := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, span(8, 9), "undeclared name 'y'"))
	bag.Add(diag.NewError(diag.SynExpectSemicolon, span(2, 3), "x"))
	require.Error(t, CheckDiagnostics(bag, fs))

	bag.Finalize()
	require.NoError(t, CheckDiagnostics(bag, fs))

	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, span(8, 9), "again"))
	require.ErrorContains(t, CheckDiagnostics(bag, fs), "duplicate")

	past := diag.NewBag(1)
	past.Add(diag.NewError(diag.SemaTypeMismatch, span(5, 50), "x"))
	require.ErrorContains(t, CheckDiagnostics(past, fs), "past end")
}
