// Package sema type-checks a resolved OCL file.
//
// Check walks global declarations in source order and then every function
// body, assigning a type to each expression. Failed expressions get the
// Unknown type; every operator, call and return rule is skipped when an
// operand is already Unknown, so a single defect is reported once.
// The only implicit conversion is int to float.
package sema
