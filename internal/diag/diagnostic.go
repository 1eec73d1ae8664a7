package diag

import (
	"ocl/internal/source"
)

// Note is a related span with a short explanation ("declared here").
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. OldText, when set, guards the edit.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind classifies fix suggestions.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
)

func (k FixKind) String() string {
	if k == FixKindRefactor {
		return "refactor"
	}
	return "quickfix"
}

// FixApplicability says how safe it is to apply a fix without review.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	default:
		return "manual-review"
	}
}

// Fix is a data-only suggestion; internal/fix applies it.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []*Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d *Diagnostic) WithFix(title string, edits ...TextEdit) *Diagnostic {
	d.Fixes = append(d.Fixes, &Fix{Title: title, Edits: edits})
	return d
}
