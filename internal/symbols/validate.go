package symbols

import (
	"errors"
	"fmt"
	"slices"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID := ScopeID(idx) //nolint:gosec // bounded by arena size
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if parent := t.Scopes.Get(scope.Parent); parent != nil {
			if !slices.Contains(parent.Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		} else if scope.Parent.IsValid() {
			errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
		}
		for name, id := range scope.NameIndex {
			if !slices.Contains(scope.Symbols, id) {
				errs = append(errs, fmt.Errorf("scope %d name index %d references missing symbol %d", scopeID, name, id))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID := SymbolID(idx) //nolint:gosec // bounded by arena size
		sym := &t.Symbols.data[idx]
		scope := t.Scopes.Get(sym.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, sym.Scope))
			continue
		}
		if !slices.Contains(scope.Symbols, symbolID) {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d list", symbolID, sym.Scope))
		}
	}

	return errors.Join(errs...)
}
