package ast

import "ocl/internal/source"

// Pragma represents the file-level `@name "value"` header, e.g. `@version "1.0"`.
// Raw keeps the value exactly as written; for a well-formed pragma Value holds
// the unquoted text. Malformed is set when the value was not a quoted string.
type Pragma struct {
	Span      source.Span
	Name      source.StringID
	NameSpan  source.Span
	Value     string
	ValueSpan source.Span
	Raw       string
	Malformed bool
}

// IsEmpty reports whether pragma information was present.
func (p Pragma) IsEmpty() bool {
	return p.Span == source.Span{}
}
