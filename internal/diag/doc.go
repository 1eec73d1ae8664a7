// Package diag defines the diagnostic model shared by the lexer, parser,
// resolver and type checker.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier (codes.go) with a stable ID such as
//     "SEM3046". Code.Kind names the user-facing taxonomy entry
//     (ArityError, MissingTerminator, ...) and Code.Family its group
//     (LexError, SyntaxError, ResolutionError, TypeError).
//   - Message – short, actionable text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – related spans, e.g. "declared here" for arity errors.
//   - Fixes – optional text edits (insert missing ';').
//
// # Emitting
//
// Phases receive a Reporter and either call Report directly or build a
// diagnostic with ReportError(...).WithNote(...).Emit(). BagReporter stores
// into a Bag; DedupReporter drops repeated (code, span) pairs; MultiReporter
// fans out.
//
// # Ordering
//
// Bag keeps emission order. Finalize removes duplicates by (code, primary
// span) and sorts stably by position, so diagnostics sharing a position stay
// in emission order and output is deterministic.
//
// Formatting lives in internal/diagfmt; applying fixes in internal/fix.
package diag
