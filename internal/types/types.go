package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindUnknown: тип выражения, проверка которого уже завершилась ошибкой.
	// Правила над Unknown-операндами молча пропускаются.
	KindUnknown
	KindVoid
	KindBool
	KindString
	KindInt
	KindFloat
	// KindAny принимает любой значимый тип; встречается только в параметрах
	// встроенных функций (print, to_string, ...).
	KindAny
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindAny:
		return "any"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
// Payload indexes FnInfo for KindFn.
type Type struct {
	Kind    Kind
	Payload uint32
}
