package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Unknown TypeID
	Void    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Float   TypeID
	Any     TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Одинаковые сигнатуры функций получают один и тот же TypeID.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	fns      []FnInfo
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 32),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // 0: NoTypeID
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns the kind of id, KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// IsUnknown reports whether id is the Unknown sentinel or no type at all.
func (in *Interner) IsUnknown(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindUnknown || k == KindInvalid
}

// Format renders a type the way it is spelled in diagnostics:
// "int", "fn(float, int) -> float", "fn(any...) -> void".
func (in *Interner) Format(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	if tt.Kind != KindFn {
		return tt.Kind.String()
	}
	info, _ := in.FnInfo(id)
	var sb strings.Builder
	sb.WriteString("fn(")
	for i, p := range info.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(in.Format(p))
	}
	if info.Variadic {
		sb.WriteString("...")
	}
	sb.WriteString(") -> ")
	sb.WriteString(in.Format(info.Result))
	return sb.String()
}
