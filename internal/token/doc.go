// Package token defines lexical token kinds and trivia for OCL sources.
// Invariants:
//   - Token.Span matches Text exactly (Start..End).
//   - Pragmas are lexed as '@' (Kind: At) + Ident; there is no per-pragma kind.
//   - Type names (int, float, string, bool, void) are keywords: the language
//     has no user-defined types, so the parser can recognise declarations
//     by their first token.
//   - Comments and whitespace are Leading trivia and never appear in the
//     main token stream.
package token
