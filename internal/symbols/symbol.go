package symbols

import (
	"ocl/internal/ast"
	"ocl/internal/source"
)

// SymbolID identifies a symbol inside the resolver arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolVar
	SymbolParam
	// SymbolImport: имя, пришедшее из импортированного модуля
	// (функция или константа, см. SymbolFlagConstant).
	SymbolImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolVar:
		return "variable"
	case SymbolParam:
		return "param"
	case SymbolImport:
		return "import"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagBuiltin SymbolFlags = 1 << iota
	SymbolFlagImported
	SymbolFlagGlobal
	SymbolFlagConstant
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagImported != 0 {
		labels = append(labels, "imported")
	}
	if f&SymbolFlagGlobal != 0 {
		labels = append(labels, "global")
	}
	if f&SymbolFlagConstant != 0 {
		labels = append(labels, "constant")
	}
	return labels
}

// SymbolDecl points back at the AST origin of a symbol.
type SymbolDecl struct {
	Item  ast.ItemID
	Stmt  ast.StmtID
	Param ast.FnParamID
}

// Symbol describes a named entity available in a scope.
//
// Signature заполнен только для встроенных и импортированных имён:
// это строка вида "(float, int) -> float" или "float" для констант.
// Для пользовательских объявлений тип выводит checker по AST.
type Symbol struct {
	Name      source.StringID
	Kind      SymbolKind
	Scope     ScopeID
	Span      source.Span
	Flags     SymbolFlags
	Decl      SymbolDecl
	Signature string
	Module    string
}

// IsAssignable reports whether the symbol may appear on the left of '='.
func (s *Symbol) IsAssignable() bool {
	return s.Kind == SymbolVar || s.Kind == SymbolParam
}
