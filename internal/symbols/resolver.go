package symbols

import (
	"fmt"

	"ocl/internal/diag"
	"ocl/internal/source"
)

// Resolver drives scope management and declaration/lookup routines.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

// NewResolver wires a resolver to an existing scope stack. If root is valid it
// becomes the current scope.
func NewResolver(table *Table, root ScopeID, reporter diag.Reporter) *Resolver {
	r := &Resolver{
		table:    table,
		reporter: reporter,
		stack:    make([]ScopeID, 0, 8),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. Несовпадение с expected: ошибка в коде
// обхода, а не в программе пользователя.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Sprintf("symbols: scope stack mismatch: closing %d while expecting %d", top, expected))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a symbol into the current scope. A name already bound in
// the same scope is a DuplicateDeclaration: the first binding is kept and
// (NoSymbolID, false) is returned.
func (r *Resolver) Declare(sym Symbol) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	if existing, ok := scope.NameIndex[sym.Name]; ok {
		r.reportDuplicateSymbol(sym.Name, sym.Span, existing)
		return NoSymbolID, false
	}
	sym.Scope = scopeID
	id := r.table.Symbols.New(sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[sym.Name] = id
	return id, true
}

// Lookup walks the scope chain searching for a symbol with the given name.
// Внутренние объявления затеняют внешние.
func (r *Resolver) Lookup(name source.StringID) (SymbolID, bool) {
	return r.table.LookupFrom(r.CurrentScope(), name)
}

func (r *Resolver) reportDuplicateSymbol(name source.StringID, span source.Span, prevID SymbolID) {
	if r.reporter == nil {
		return
	}
	nameStr := r.table.Strings.MustLookup(name)
	msg := fmt.Sprintf("duplicate declaration of '%s'", nameStr)
	builder := diag.ReportError(r.reporter, diag.SemaDuplicateSymbol, span, msg)
	if prev := r.table.Symbols.Get(prevID); prev != nil && prev.Span != (source.Span{}) {
		noteMsg := "previous declaration here"
		if prev.Flags&SymbolFlagImported != 0 {
			noteMsg = fmt.Sprintf("previously imported from '%s' here", prev.Module)
		}
		builder.WithNote(prev.Span, noteMsg)
	}
	builder.Emit()
}
