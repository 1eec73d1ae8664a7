package diagfmt

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"ocl/internal/diag"
	"ocl/internal/fix"
	"ocl/internal/source"
)

func singleDiagBag(d *diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(d)
	return bag
}

func TestPrettyExcerptAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ocl", []byte("let x = 1\nlet y = 2;\n"))
	bag := singleDiagBag(diag.New(diag.SevError, diag.SynExpectSemicolon,
		source.Span{File: fileID, Start: 8, End: 9}, "expected ';' after declaration"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	want := "test.ocl:1:9: ERROR SYN2012: expected ';' after declaration\n" +
		" 1 | let x = 1\n" +
		"   |         ^\n"
	assert.Equal(t, buf.String(), want)
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.ocl", []byte("int a = 1;\nint b = \"s\";\nint c = 3;\n"))
	bag := singleDiagBag(diag.New(diag.SevError, diag.SemaTypeMismatch,
		source.Span{File: fileID, Start: 19, End: 22}, "cannot initialize 'b' of type int with a value of type string"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})

	want := "ctx.ocl:2:9: ERROR SEM3015: cannot initialize 'b' of type int with a value of type string\n" +
		" 1 | int a = 1;\n" +
		" 2 | int b = \"s\";\n" +
		"   |         ^~~\n" +
		" 3 | int c = 3;\n"
	assert.Equal(t, buf.String(), want)
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fix.ocl", []byte("let x = 1\n"))
	at := source.Span{File: fileID, Start: 9, End: 9}
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, at, "expected ';' after declaration").
		WithNote(source.Span{File: fileID, Start: 0, End: 3}, "declaration starts here")
	d.Fixes = append(d.Fixes, fix.InsertText("insert ';'", at, ";", ""))

	var buf bytes.Buffer
	Pretty(&buf, singleDiagBag(d), fs, PrettyOpts{ShowNotes: true, ShowFixes: true, ShowPreview: true})
	out := buf.String()

	assert.Assert(t, cmp.Contains(out, "note: fix.ocl:1:1: declaration starts here"))
	assert.Assert(t, cmp.Contains(out, "   | ---"))
	assert.Assert(t, cmp.Contains(out, "fix: insert ';' ["))
	assert.Assert(t, cmp.Contains(out, "- let x = 1\n"))
	assert.Assert(t, cmp.Contains(out, "+ let x = 1;\n"))
}

func TestPrettyHidesNotesByDefault(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ocl", []byte("x;\n"))
	d := diag.New(diag.SevWarning, diag.SemaDuplicateImport, source.Span{File: fileID, Start: 0, End: 1}, "duplicate").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "first imported here")

	var buf bytes.Buffer
	Pretty(&buf, singleDiagBag(d), fs, PrettyOpts{})
	out := buf.String()
	assert.Assert(t, cmp.Contains(out, "WARNING"))
	assert.Assert(t, !bytes.Contains(buf.Bytes(), []byte("first imported here")))
}

func TestPrettyColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.ocl", []byte("x\n"))
	bag := singleDiagBag(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: 0, End: 1}, "undeclared name 'x'"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Color: false})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	assert.Assert(t, !bytes.Contains(plain.Bytes(), []byte("\x1b[")))
	assert.Assert(t, bytes.Contains(colored.Bytes(), []byte("\x1b[")))
}

func TestCaretColumnsWideRunes(t *testing.T) {
	line := `let s = "日本" + 1;`
	// '+' is byte 17 (col 18): 8 ASCII bytes, the quoted string takes 8 bytes.
	indent, width := caretColumns(line, 18, 19, false)
	assert.Equal(t, indent, 15)
	assert.Equal(t, width, 1)

	indent, width = caretColumns(line, 9, 17, false)
	assert.Equal(t, indent, 8)
	assert.Equal(t, width, 6)
}

func TestCaretColumnsTabsAndMultiline(t *testing.T) {
	indent, width := caretColumns("\tfoo(bar", 2, 1, true)
	assert.Equal(t, indent, tabWidth)
	assert.Equal(t, width, 7)
}

func TestShortFormat(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.ocl", []byte("let x = 1\n"))
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, source.Span{File: fileID, Start: 9, End: 9}, "expected ';'").
		WithNote(source.Span{File: fileID, Start: 0, End: 3}, "here")

	var buf bytes.Buffer
	Short(&buf, singleDiagBag(d), fs, ShortOpts{ShowNotes: true})
	assert.Equal(t, buf.String(), "error SYN2012 main.ocl:1:10 expected ';'\n  note main.ocl:1:1 here\n")
}
