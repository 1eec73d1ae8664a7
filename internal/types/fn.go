package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types.
// Variadic: последний параметр может повторяться ноль и более раз.
type FnInfo struct {
	Params   []TypeID
	Result   TypeID
	Variadic bool
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(params []TypeID, result TypeID, variadic bool) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Result == result && info.Variadic == variadic && slices.Equal(info.Params, params) {
			return id
		}
	}
	slot := in.appendFnInfo(FnInfo{
		Params:   slices.Clone(params),
		Result:   result,
		Variadic: variadic,
	})
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// ParamAt returns the expected type of argument i, honoring variadics.
func (info *FnInfo) ParamAt(i int) (TypeID, bool) {
	if i < len(info.Params) {
		return info.Params[i], true
	}
	if info.Variadic && len(info.Params) > 0 {
		return info.Params[len(info.Params)-1], true
	}
	return NoTypeID, false
}

// AcceptsArgs reports whether n arguments satisfy the arity.
func (info *FnInfo) AcceptsArgs(n int) bool {
	if info.Variadic {
		return n >= len(info.Params)-1
	}
	return n == len(info.Params)
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}
