package fix

import (
	"fmt"

	"ocl/internal/diag"
	"ocl/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// MakeFixID строит стабильный идентификатор из кода диагностики и позиции.
func MakeFixID(code diag.Code, at source.Span) string {
	return fmt.Sprintf("%s-%d-%d", code.ID(), at.File, at.Start)
}

func newFix(title string, kind diag.FixKind, app diag.FixApplicability, edits []diag.TextEdit, opts []Option) *diag.Fix {
	f := &diag.Fix{
		Title:         title,
		Kind:          kind,
		Applicability: app,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
// guard, when non-empty, must match the text currently at span.
func InsertText(title string, at source.Span, text string, guard string, opts ...Option) *diag.Fix {
	edit := diag.TextEdit{Span: at, NewText: text, OldText: guard}
	return newFix(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe, []diag.TextEdit{edit}, opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) *diag.Fix {
	edit := diag.TextEdit{Span: span, OldText: expect}
	return newFix(title, diag.FixKindQuickFix, diag.FixApplicabilityAlwaysSafe, []diag.TextEdit{edit}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) *diag.Fix {
	edit := diag.TextEdit{Span: span, NewText: newText, OldText: expect}
	return newFix(title, diag.FixKindQuickFix, diag.FixApplicabilitySafeWithHeuristics, []diag.TextEdit{edit}, opts)
}
