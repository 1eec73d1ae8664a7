package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"ocl/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Name returns the text of a symbol's name.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}

// LookupFrom walks the scope chain from scope looking for name.
func (t *Table) LookupFrom(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for scope.IsValid() {
		s := t.Scopes.Get(scope)
		if s == nil {
			break
		}
		if id, ok := s.NameIndex[name]; ok {
			return id, true
		}
		scope = s.Parent
	}
	return NoSymbolID, false
}
