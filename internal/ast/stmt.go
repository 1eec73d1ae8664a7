package ast

import (
	"ocl/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtExpr
	StmtReturn
	StmtIf
	StmtWhile
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	default:
		return "Stmt(?)"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type LetStmt struct {
	LetDecl
}

type ExprStmt struct {
	Expr ExprID
}

type ReturnStmt struct {
	Expr ExprID // NoExprID для `return;`
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID, блок или вложенный if
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[BlockStmt]
	Lets    *Arena[LetStmt]
	Exprs   *Arena[ExprStmt]
	Returns *Arena[ReturnStmt]
	Ifs     *Arena[IfStmt]
	Whiles  *Arena[WhileStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[BlockStmt](capHint / 4),
		Lets:    NewArena[LetStmt](capHint / 2),
		Exprs:   NewArena[ExprStmt](capHint / 2),
		Returns: NewArena[ReturnStmt](capHint / 4),
		Ifs:     NewArena[IfStmt](capHint / 8),
		Whiles:  NewArena[WhileStmt](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(BlockStmt{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) *BlockStmt {
	if p, ok := s.payload(id, StmtBlock); ok {
		return s.Blocks.Get(p)
	}
	return nil
}

func (s *Stmts) NewLet(decl LetDecl) StmtID {
	payload := s.Lets.Allocate(LetStmt{LetDecl: decl})
	return s.new(StmtLet, decl.Span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) *LetStmt {
	if p, ok := s.payload(id, StmtLet); ok {
		return s.Lets.Get(p)
	}
	return nil
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) *ExprStmt {
	if p, ok := s.payload(id, StmtExpr); ok {
		return s.Exprs.Get(p)
	}
	return nil
}

func (s *Stmts) NewReturn(span source.Span, expr ExprID) StmtID {
	payload := s.Returns.Allocate(ReturnStmt{Expr: expr})
	return s.new(StmtReturn, span, PayloadID(payload))
}

func (s *Stmts) Return(id StmtID) *ReturnStmt {
	if p, ok := s.payload(id, StmtReturn); ok {
		return s.Returns.Get(p)
	}
	return nil
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) *IfStmt {
	if p, ok := s.payload(id, StmtIf); ok {
		return s.Ifs.Get(p)
	}
	return nil
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) *WhileStmt {
	if p, ok := s.payload(id, StmtWhile); ok {
		return s.Whiles.Get(p)
	}
	return nil
}
