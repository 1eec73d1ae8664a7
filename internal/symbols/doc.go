// Package symbols builds lexical scopes for a parsed file and binds every
// identifier to its declaration.
//
// Scopes form a parent-linked chain: universe (built-in functions) →
// module (imports, functions, globals) → function → nested blocks.
package symbols
