package ast

import (
	"ocl/internal/source"
)

type ItemKind uint8

const (
	ItemImport ItemKind = iota
	ItemFn
	ItemLet
)

func (k ItemKind) String() string {
	switch k {
	case ItemImport:
		return "Import"
	case ItemFn:
		return "Fn"
	case ItemLet:
		return "Let"
	default:
		return "Item(?)"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena    *Arena[Item]
	Imports  *Arena[ImportItem]
	Fns      *Arena[FnItem]
	FnParams *Arena[FnParam]
	Lets     *Arena[LetItem]
}

// NewItems creates an *Items with per-kind arenas initialized to capHint.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Imports:  NewArena[ImportItem](capHint),
		Fns:      NewArena[FnItem](capHint),
		FnParams: NewArena[FnParam](capHint * 2),
		Lets:     NewArena[LetItem](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}
