// Package ast holds the arena-allocated syntax tree produced by the parser.
//
// Nodes are addressed by 1-based IDs (FileID, ItemID, StmtID, ExprID); the
// zero ID means "absent". Each node records its Kind, Span and a Payload
// index into a per-kind arena, so the tree has no pointers, no sharing and
// no cycles. Later phases read the tree through Builder and never mutate it.
package ast
