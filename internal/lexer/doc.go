// Package lexer turns an OCL source file into a lazy stream of tokens.
//
// Whitespace and comments are attached to the following token as leading
// trivia. Malformed input (unterminated strings, runs of unknown characters,
// over-long tokens) becomes a token.Invalid and is reported through
// Options.Reporter; the stream always ends with token.EOF.
package lexer
