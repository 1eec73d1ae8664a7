package symbols

import (
	"ocl/internal/source"
)

// ScopeID identifies a scope in the resolver arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeUniverse           // встроенные функции (prelude)
	ScopeModule             // импорты, функции и глобальные переменные файла
	ScopeFunction           // параметры + верхний уровень тела функции
	ScopeBlock              // вложенный блок, тело if/while
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeUniverse:
		return "universe"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
