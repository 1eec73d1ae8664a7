// Package types interns the semantic types of OCL programs and holds the
// operator and coercion tables used by the checker.
package types
