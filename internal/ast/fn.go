package ast

import (
	"fmt"

	"fortio.org/safecast"

	"ocl/internal/source"
)

type FnItem struct {
	Name        source.StringID
	NameSpan    source.Span
	ReturnType  TypeName
	ReturnSpan  source.Span
	ParamsStart FnParamID
	ParamsCount uint32
	Body        StmtID
	// Recovered выставляется, если при разборе тела парсер восстанавливался
	// после синтаксической ошибки; проверка MissingReturn для таких функций не нужна.
	Recovered bool
	Span      source.Span
}

type FnParam struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeName
	TypeSpan source.Span
	Span     source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// NewFn stores params contiguously and allocates the function item.
func (i *Items) NewFn(fn FnItem, params []FnParam) ItemID {
	fn.ParamsStart, fn.ParamsCount = i.allocateParams(params)
	payload := i.Fns.Allocate(fn)
	return i.New(ItemFn, fn.Span, PayloadID(payload))
}

func (i *Items) allocateParams(params []FnParam) (FnParamID, uint32) {
	if len(params) == 0 {
		return NoFnParamID, 0
	}
	var first FnParamID
	for idx, p := range params {
		id := FnParamID(i.FnParams.Allocate(p))
		if idx == 0 {
			first = id
		}
	}
	count, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("fn params count overflow: %w", err))
	}
	return first, count
}

// Params returns the parameter IDs of fn in declaration order.
func (i *Items) Params(fn *FnItem) []FnParamID {
	if fn == nil || fn.ParamsCount == 0 || !fn.ParamsStart.IsValid() {
		return nil
	}
	ids := make([]FnParamID, 0, fn.ParamsCount)
	for off := range fn.ParamsCount {
		ids = append(ids, fn.ParamsStart+FnParamID(off))
	}
	return ids
}

func (i *Items) FnParam(id FnParamID) *FnParam {
	return i.FnParams.Get(uint32(id))
}
