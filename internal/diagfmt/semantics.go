package diagfmt

import (
	"io"
	"sort"

	"fortio.org/safecast"

	"ocl/internal/ast"
	"ocl/internal/sema"
	"ocl/internal/source"
	"ocl/internal/symbols"
)

// SemanticsInput carries the data required to build a semantic dump.
type SemanticsInput struct {
	Builder *ast.Builder
	FileID  ast.FileID
	Symbols *symbols.Result
	Sema    *sema.Result
}

// SemanticsOutput represents scopes, symbols and typed expressions of one file.
type SemanticsOutput struct {
	Scopes       []ScopeJSON       `json:"scopes"`
	Symbols      []SymbolJSON      `json:"symbols"`
	ExprBindings []ExprBindingJSON `json:"expr_bindings"`
	ExprTypes    []ExprTypeJSON    `json:"expr_types,omitempty"`
}

type ScopeJSON struct {
	ID     uint32      `json:"id"`
	Kind   string      `json:"kind"`
	Parent uint32      `json:"parent,omitempty"`
	Span   source.Span `json:"span"`
}

type SymbolJSON struct {
	ID        uint32      `json:"id"`
	Name      string      `json:"name"`
	Kind      string      `json:"kind"`
	Scope     uint32      `json:"scope"`
	Span      source.Span `json:"span"`
	Flags     []string    `json:"flags,omitempty"`
	Module    string      `json:"module,omitempty"`
	Signature string      `json:"signature,omitempty"`
	Type      string      `json:"type,omitempty"`
}

type ExprBindingJSON struct {
	ExprID   uint32      `json:"expr_id"`
	SymbolID uint32      `json:"symbol_id"`
	Span     source.Span `json:"span"`
	Name     string      `json:"name"`
}

type ExprTypeJSON struct {
	ExprID uint32      `json:"expr_id"`
	Span   source.Span `json:"span"`
	Type   string      `json:"type"`
}

// BuildSemanticsOutput collects the dump; nil input yields nil.
func BuildSemanticsOutput(in *SemanticsInput) *SemanticsOutput {
	if in == nil || in.Symbols == nil || in.Symbols.Table == nil {
		return nil
	}
	table := in.Symbols.Table
	output := &SemanticsOutput{
		Scopes:       make([]ScopeJSON, 0, table.Scopes.Len()),
		Symbols:      make([]SymbolJSON, 0, table.Symbols.Len()),
		ExprBindings: make([]ExprBindingJSON, 0, len(in.Symbols.ExprSymbols)),
	}

	for i := 1; i <= table.Scopes.Len(); i++ {
		id := symbols.ScopeID(mustU32(i))
		scope := table.Scopes.Get(id)
		output.Scopes = append(output.Scopes, ScopeJSON{
			ID:     uint32(id),
			Kind:   scope.Kind.String(),
			Parent: uint32(scope.Parent),
			Span:   scope.Span,
		})
	}

	bindingTypes := map[symbols.SymbolID]string{}
	if in.Sema != nil && in.Sema.TypeInterner != nil {
		for id, ty := range in.Sema.BindingTypes {
			bindingTypes[id] = in.Sema.TypeInterner.Format(ty)
		}
	}
	for i := 1; i <= table.Symbols.Len(); i++ {
		id := symbols.SymbolID(mustU32(i))
		sym := table.Symbols.Get(id)
		output.Symbols = append(output.Symbols, SymbolJSON{
			ID:        uint32(id),
			Name:      table.Name(id),
			Kind:      sym.Kind.String(),
			Scope:     uint32(sym.Scope),
			Span:      sym.Span,
			Flags:     sym.Flags.Strings(),
			Module:    sym.Module,
			Signature: sym.Signature,
			Type:      bindingTypes[id],
		})
	}

	for exprID, symID := range in.Symbols.ExprSymbols {
		binding := ExprBindingJSON{ExprID: uint32(exprID), SymbolID: uint32(symID), Name: table.Name(symID)}
		if in.Builder != nil {
			if expr := in.Builder.Exprs.Get(exprID); expr != nil {
				binding.Span = expr.Span
			}
		}
		output.ExprBindings = append(output.ExprBindings, binding)
	}
	sort.Slice(output.ExprBindings, func(i, j int) bool {
		return output.ExprBindings[i].ExprID < output.ExprBindings[j].ExprID
	})

	if in.Sema != nil && in.Sema.TypeInterner != nil {
		output.ExprTypes = make([]ExprTypeJSON, 0, len(in.Sema.ExprTypes))
		for exprID, ty := range in.Sema.ExprTypes {
			entry := ExprTypeJSON{ExprID: uint32(exprID), Type: in.Sema.TypeInterner.Format(ty)}
			if in.Builder != nil {
				if expr := in.Builder.Exprs.Get(exprID); expr != nil {
					entry.Span = expr.Span
				}
			}
			output.ExprTypes = append(output.ExprTypes, entry)
		}
		sort.Slice(output.ExprTypes, func(i, j int) bool {
			return output.ExprTypes[i].ExprID < output.ExprTypes[j].ExprID
		})
	}
	return output
}

// FormatSemanticsJSON writes the semantic dump.
func FormatSemanticsJSON(w io.Writer, in *SemanticsInput) error {
	return EncodeJSON(w, BuildSemanticsOutput(in))
}

func mustU32(v int) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(err)
	}
	return out
}
