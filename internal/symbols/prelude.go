package symbols

// PreludeEntry describes a symbol injected into the universe scope before
// source traversal.
type PreludeEntry struct {
	Name      string
	Signature string
}

// builtinPreludeEntries returns the default set of built-in functions exposed to every file.
func builtinPreludeEntries() []PreludeEntry {
	return []PreludeEntry{
		{Name: "print", Signature: "(any...) -> void"},
		{Name: "println", Signature: "(any...) -> void"},
		{Name: "to_string", Signature: "(any) -> string"},
		{Name: "to_int", Signature: "(any) -> int"},
		{Name: "to_float", Signature: "(any) -> float"},
		{Name: "to_bool", Signature: "(any) -> bool"},
	}
}

// Builtins returns the functions every file sees without an import.
func Builtins() []PreludeEntry {
	return builtinPreludeEntries()
}

// mergePrelude combines default builtins with user provided entries.
func mergePrelude(custom []PreludeEntry) []PreludeEntry {
	defaults := builtinPreludeEntries()
	if len(custom) == 0 {
		return defaults
	}
	result := make([]PreludeEntry, 0, len(defaults)+len(custom))
	result = append(result, defaults...)
	result = append(result, custom...)
	return result
}

// installPrelude declares prelude entries into the universe scope.
// Повторяющиеся имена из custom перекрывают встроенные.
func (r *Resolver) installPrelude(entries []PreludeEntry) {
	scope := r.table.Scopes.Get(r.CurrentScope())
	if scope == nil {
		return
	}
	for _, entry := range entries {
		nameID := r.table.Strings.Intern(entry.Name)
		id := r.table.Symbols.New(Symbol{
			Name:      nameID,
			Kind:      SymbolFunction,
			Scope:     r.CurrentScope(),
			Flags:     SymbolFlagBuiltin,
			Signature: entry.Signature,
		})
		scope.Symbols = append(scope.Symbols, id)
		scope.NameIndex[nameID] = id
	}
}
