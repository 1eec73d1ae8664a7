// Package parser builds the arena AST for one source file.
//
// The parser is a recursive-descent parser with a Pratt loop for binary
// operators. It never stops at the first error: a missing ';' is reported
// as a MissingTerminator and the statement is kept, any other local error
// is reported once and the parser resynchronises at the next statement
// (or top-level item). Statements that already contain a lexer Invalid
// token produce no further syntax diagnostics.
package parser
