package diagfmt

import (
	"fmt"
	"io"

	"ocl/internal/diag"
	"ocl/internal/source"
)

// Short prints one line per diagnostic:
//
//	error SYN2012 main.ocl:3:10 expected ';' after declaration
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s %s %s %s\n", d.Severity.Label(), d.Code.ID(), shortLocation(fs, d.Primary, opts.PathMode), d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note %s %s\n", shortLocation(fs, note.Span, opts.PathMode), note.Msg)
		}
	}
}

func shortLocation(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if fs == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, sp.File, mode), start.Line, start.Col)
}
