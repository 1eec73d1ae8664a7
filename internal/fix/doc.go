// Package fix builds text-edit suggestions attached to diagnostics and
// applies them to source files.
//
// Builders (InsertText, DeleteSpan, ReplaceSpan) create *diag.Fix values
// that the parser attaches via ReportBuilder.WithFixSuggestion. Apply
// collects fixes from a diagnostic list, orders them deterministically,
// selects them by ApplyMode and rewrites files, skipping overlapping or
// guard-mismatched edits.
package fix
