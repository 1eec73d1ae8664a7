package ast

import "ocl/internal/token"

// TypeName: синтаксическое имя типа. В OCL типы задаются только ключевыми словами.
type TypeName uint8

const (
	TypeNone TypeName = iota // тип не указан (`let x = ...`)
	TypeInt
	TypeFloat
	TypeString
	TypeBool
	TypeVoid
)

var typeNames = [...]string{
	TypeNone:   "",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeString: "string",
	TypeBool:   "bool",
	TypeVoid:   "void",
}

func (t TypeName) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "?"
}

// TypeNameFromToken maps a type keyword onto TypeName.
func TypeNameFromToken(k token.Kind) (TypeName, bool) {
	switch k {
	case token.KwInt:
		return TypeInt, true
	case token.KwFloat:
		return TypeFloat, true
	case token.KwString:
		return TypeString, true
	case token.KwBool:
		return TypeBool, true
	case token.KwVoid:
		return TypeVoid, true
	default:
		return TypeNone, false
	}
}
