package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ocl/internal/diag"
	"ocl/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	location        *color.Color
	gutter          *color.Color
	note            *color.Color
	fix             *color.Color
	removed, added  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:      color.New(color.FgRed, color.Bold),
		warn:     color.New(color.FgYellow, color.Bold),
		info:     color.New(color.FgCyan, color.Bold),
		location: color.New(color.Bold),
		gutter:   color.New(color.FgBlue),
		note:     color.New(color.FgCyan),
		fix:      color.New(color.FgGreen),
		removed:  color.New(color.FgRed),
		added:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.location, p.gutter, p.note, p.fix, p.removed, p.added} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Finalize() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pr := prettyPrinter{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		pr.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
}

func (pr *prettyPrinter) diagnostic(d *diag.Diagnostic) {
	sev := pr.pal.severity(d.Severity)
	fmt.Fprintf(pr.w, "%s %s %s: %s\n",
		pr.pal.location.Sprint(pr.location(d.Primary)+":"),
		sev.Sprint(d.Severity.String()),
		sev.Sprint(d.Code.ID()),
		d.Message,
	)
	pr.excerpt(d.Primary, '^', sev, int(pr.opts.Context))

	if pr.opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(pr.w, "  %s %s %s\n",
				pr.pal.note.Sprint("note:"), pr.pal.location.Sprint(pr.location(note.Span)+":"), note.Msg)
			pr.excerpt(note.Span, '-', pr.pal.note, 0)
		}
	}
	if pr.opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(pr.w, "  %s %s [%s]\n", pr.pal.fix.Sprint("fix:"), fx.Title, fx.Applicability)
			if pr.opts.ShowPreview {
				pr.fixPreview(fx)
			}
		}
	}
}

func (pr *prettyPrinter) location(sp source.Span) string {
	return shortLocation(pr.fs, sp, pr.opts.PathMode)
}

// excerpt печатает строки вокруг span и подчёркивание под первой строкой span.
func (pr *prettyPrinter) excerpt(sp source.Span, mark rune, c *color.Color, context int) {
	if pr.fs == nil {
		return
	}
	file := pr.fs.Get(sp.File)
	if file == nil {
		return
	}
	start, end := pr.fs.Resolve(sp)
	if start.Line == 0 {
		return
	}

	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+context, int(file.LineCount()))
	gutterWidth := len(strconv.Itoa(last))
	emptyGutter := pr.pal.gutter.Sprint(strings.Repeat(" ", gutterWidth+1) + " |")

	for n := first; n <= last; n++ {
		line := expandTabs(file.Line(uint32(n)))
		if pr.opts.Width > 0 {
			line = runewidth.Truncate(line, int(pr.opts.Width), "…")
		}
		fmt.Fprintf(pr.w, "%s %s\n", pr.pal.gutter.Sprintf(" %*d |", gutterWidth, n), line)
		if n != int(start.Line) {
			continue
		}
		raw := file.Line(uint32(n))
		indent, width := caretColumns(raw, start.Col, end.Col, end.Line != start.Line)
		marks := string(mark) + strings.Repeat("~", max(width-1, 0))
		if mark != '^' {
			marks = strings.Repeat(string(mark), max(width, 1))
		}
		fmt.Fprintf(pr.w, "%s %s%s\n", emptyGutter, strings.Repeat(" ", indent), c.Sprint(marks))
	}
}

func (pr *prettyPrinter) fixPreview(fx *diag.Fix) {
	for _, edit := range fx.Edits {
		preview, err := buildFixEditPreview(pr.fs, edit)
		if err != nil {
			continue
		}
		for _, line := range preview.before {
			fmt.Fprintf(pr.w, "    %s\n", pr.pal.removed.Sprint("- "+expandTabs(line)))
		}
		for _, line := range preview.after {
			fmt.Fprintf(pr.w, "    %s\n", pr.pal.added.Sprint("+ "+expandTabs(line)))
		}
	}
}

// caretColumns возвращает отступ и ширину подчёркивания в колонках терминала.
// Колонки span считаются в байтах, поэтому ширина берётся у соответствующих
// кусков строки: широкие символы занимают две колонки.
func caretColumns(line string, startCol, endCol uint32, multiline bool) (indent, width int) {
	startByte := clampByte(line, int(startCol)-1)
	endByte := len(line)
	if !multiline {
		endByte = clampByte(line, int(endCol)-1)
	}
	if endByte < startByte {
		endByte = startByte
	}
	indent = runewidth.StringWidth(expandTabs(line[:startByte]))
	width = runewidth.StringWidth(expandTabs(line[startByte:endByte]))
	if width == 0 {
		width = 1
	}
	return indent, width
}

func clampByte(line string, off int) int {
	if off < 0 {
		return 0
	}
	if off > len(line) {
		return len(line)
	}
	return off
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
