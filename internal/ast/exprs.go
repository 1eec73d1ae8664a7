package ast

import (
	"ocl/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Calls    *Arena[ExprCallData]
	Groups   *Arena[ExprGroupData]
	Assigns  *Arena[ExprAssignData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint / 4),
		Calls:    NewArena[ExprCallData](capHint / 2),
		Groups:   NewArena[ExprGroupData](capHint / 4),
		Assigns:  NewArena[ExprAssignData](capHint / 4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewCall creates a new function call expression.
func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target: target,
		Args:   append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

// NewGroup creates a parenthesised expression.
func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

// Group returns the group data for the given expression ID.
func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

// NewAssign creates an assignment expression.
func (e *Exprs) NewAssign(span source.Span, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

// Assign returns the assignment data for the given expression ID.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}
