package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"ocl/internal/diag"
	"ocl/internal/source"
)

// SpanJSON: позиция диагностики: 1-based строка и колонка в байтах.
type SpanJSON struct {
	File      string `json:"file"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	EndLine   uint32 `json:"end_line"`
	EndColumn uint32 `json:"end_column"`
}

// RelatedSpanJSON is a note attached to a diagnostic.
type RelatedSpanJSON struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Span        SpanJSON `json:"span"`
	NewText     string   `json:"new_text"`
	OldText     string   `json:"old_text,omitempty"`
	BeforeLines []string `json:"before_lines,omitempty"`
	AfterLines  []string `json:"after_lines,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity     string            `json:"severity"`
	Kind         string            `json:"kind"`
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	Span         SpanJSON          `json:"span"`
	RelatedSpans []RelatedSpanJSON `json:"related_spans"`
	Fixes        []FixJSON         `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeSpan(sp source.Span, fs *source.FileSet, mode PathMode) SpanJSON {
	if fs == nil {
		return SpanJSON{}
	}
	start, end := fs.Resolve(sp)
	return SpanJSON{
		File:      displayPath(fs, sp.File, mode),
		Line:      start.Line,
		Column:    start.Col,
		EndLine:   end.Line,
		EndColumn: end.Col,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	var items []*diag.Diagnostic
	if bag != nil {
		items = bag.Items()
	}
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	diagnostics := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		out := DiagnosticJSON{
			Severity:     d.Severity.Label(),
			Kind:         d.Code.Kind(),
			Code:         d.Code.ID(),
			Message:      d.Message,
			Span:         makeSpan(d.Primary, fs, opts.PathMode),
			RelatedSpans: make([]RelatedSpanJSON, 0, len(d.Notes)),
		}
		for _, note := range d.Notes {
			sp := makeSpan(note.Span, fs, opts.PathMode)
			related := RelatedSpanJSON{Message: note.Msg, Line: sp.Line, Column: sp.Column}
			if note.Span.File != d.Primary.File {
				related.File = sp.File
			}
			out.RelatedSpans = append(out.RelatedSpans, related)
		}
		if opts.IncludeFixes && len(d.Fixes) > 0 {
			out.Fixes = buildFixes(d.Fixes, fs, opts)
		}
		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

func buildFixes(src []*diag.Fix, fs *source.FileSet, opts JSONOpts) []FixJSON {
	fixes := append([]*diag.Fix(nil), src...)
	sort.SliceStable(fixes, func(i, j int) bool {
		fi, fj := fixes[i], fixes[j]
		if fi.IsPreferred != fj.IsPreferred {
			return fi.IsPreferred
		}
		if fi.Applicability != fj.Applicability {
			return fi.Applicability < fj.Applicability
		}
		return fi.Title < fj.Title
	})

	out := make([]FixJSON, 0, len(fixes))
	for _, fx := range fixes {
		fixJSON := FixJSON{
			ID:            fx.ID,
			Title:         fx.Title,
			Kind:          fx.Kind.String(),
			Applicability: fx.Applicability.String(),
			IsPreferred:   fx.IsPreferred,
			Edits:         make([]FixEditJSON, 0, len(fx.Edits)),
		}
		for _, edit := range fx.Edits {
			editJSON := FixEditJSON{
				Span:    makeSpan(edit.Span, fs, opts.PathMode),
				NewText: edit.NewText,
				OldText: edit.OldText,
			}
			if opts.IncludePreviews {
				if preview, err := buildFixEditPreview(fs, edit); err == nil {
					editJSON.BeforeLines = preview.before
					editJSON.AfterLines = preview.after
				}
			}
			fixJSON.Edits = append(fixJSON.Edits, editJSON)
		}
		out = append(out, fixJSON)
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return EncodeJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}

// EncodeJSON writes an indented JSON document; used for outputs merged from
// several files.
func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
