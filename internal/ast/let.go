package ast

import (
	"ocl/internal/source"
)

// LetForm различает две формы объявления.
type LetForm uint8

const (
	LetKeyword LetForm = iota // let x[: T] = e;
	LetTyped                  // T x = e;
)

// LetDecl: общее тело объявления переменной; используется и для глобальных
// `let`, и для объявлений внутри функций.
type LetDecl struct {
	Form     LetForm
	Name     source.StringID
	NameSpan source.Span
	Type     TypeName // TypeNone if type is inferred
	TypeSpan source.Span
	Value    ExprID // NoExprID if no initialization
	Span     source.Span
}

// LetItem is a global variable declaration.
type LetItem struct {
	LetDecl
}

func (i *Items) Let(id ItemID) (*LetItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) NewLet(decl LetDecl) ItemID {
	payload := i.Lets.Allocate(LetItem{LetDecl: decl})
	return i.New(ItemLet, decl.Span, PayloadID(payload))
}
