package symbols

import (
	"fmt"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
)

// ResolveOptions controls a resolve pass for a single AST file.
type ResolveOptions struct {
	Table    *Table
	Hints    Hints
	Prelude  []PreludeEntry
	Imports  ImportResolver
	Reporter diag.Reporter
	Validate bool
}

// Result captures resolve artefacts for one file.
//
// ExprSymbols содержит только разрешённые идентификаторы: отсутствие
// ExprIdent в карте означает UndeclaredName.
type Result struct {
	Table         *Table
	File          ast.FileID
	UniverseScope ScopeID
	ModuleScope   ScopeID
	ItemSymbols   map[ast.ItemID]SymbolID
	StmtSymbols   map[ast.StmtID]SymbolID
	ParamSymbols  map[ast.FnParamID]SymbolID
	ExprSymbols   map[ast.ExprID]SymbolID
	Imports       []ImportedModule
}

// ResolveFile walks the AST file and populates the symbol table.
//
// Порядок модульной области: сначала импорты, затем сигнатуры всех функций
// (взаимные ссылки разрешены), затем глобальные переменные по порядку:
// инициализатор видит только более ранние глобальные. Тела функций
// обходятся последними и видят всё содержимое модуля.
func ResolveFile(builder *ast.Builder, fileID ast.FileID, opts ResolveOptions) Result {
	table := opts.Table
	if table == nil {
		table = NewTable(opts.Hints, builder.StringsInterner)
	}

	result := Result{
		Table:        table,
		File:         fileID,
		ItemSymbols:  make(map[ast.ItemID]SymbolID),
		StmtSymbols:  make(map[ast.StmtID]SymbolID),
		ParamSymbols: make(map[ast.FnParamID]SymbolID),
		ExprSymbols:  make(map[ast.ExprID]SymbolID),
	}

	file := builder.Files.Get(fileID)
	if file == nil {
		return result
	}

	result.UniverseScope = table.Scopes.New(ScopeUniverse, NoScopeID, source.Span{File: file.Span.File})
	resolver := NewResolver(table, result.UniverseScope, opts.Reporter)
	resolver.installPrelude(mergePrelude(opts.Prelude))
	result.ModuleScope = resolver.Enter(ScopeModule, file.Span)

	fr := fileResolver{
		builder:  builder,
		result:   &result,
		resolver: resolver,
		reporter: opts.Reporter,
		imports:  opts.Imports,
		imported: make(map[string]source.Span),
	}

	fr.forEachItem(file, ast.ItemImport, func(id ast.ItemID) {
		if imp, ok := builder.Items.Import(id); ok {
			fr.declareImport(id, imp)
		}
	})
	fr.forEachItem(file, ast.ItemFn, func(id ast.ItemID) {
		if fn, ok := builder.Items.Fn(id); ok {
			fr.declareFn(id, fn)
		}
	})
	fr.forEachItem(file, ast.ItemLet, func(id ast.ItemID) {
		if let, ok := builder.Items.Let(id); ok {
			fr.walkExpr(let.Value)
			fr.declareGlobal(id, let)
		}
	})
	fr.forEachItem(file, ast.ItemFn, func(id ast.ItemID) {
		if fn, ok := builder.Items.Fn(id); ok {
			fr.walkFn(fn)
		}
	})

	resolver.Leave(result.ModuleScope)

	if opts.Validate {
		if err := table.Validate(); err != nil {
			panic(fmt.Errorf("symbol table invariant violation: %w", err))
		}
	}
	return result
}

type fileResolver struct {
	builder  *ast.Builder
	result   *Result
	resolver *Resolver
	reporter diag.Reporter
	imports  ImportResolver
	imported map[string]source.Span
}

func (fr *fileResolver) forEachItem(file *ast.File, kind ast.ItemKind, fn func(ast.ItemID)) {
	for _, id := range file.Items {
		if item := fr.builder.Items.Get(id); item != nil && item.Kind == kind {
			fn(id)
		}
	}
}

func (fr *fileResolver) declareFn(id ast.ItemID, fn *ast.FnItem) {
	symID, ok := fr.resolver.Declare(Symbol{
		Name:  fn.Name,
		Kind:  SymbolFunction,
		Span:  fn.NameSpan,
		Flags: SymbolFlagGlobal,
		Decl:  SymbolDecl{Item: id},
	})
	if ok {
		fr.result.ItemSymbols[id] = symID
	}
}

func (fr *fileResolver) declareGlobal(id ast.ItemID, let *ast.LetItem) {
	symID, ok := fr.resolver.Declare(Symbol{
		Name:  let.Name,
		Kind:  SymbolVar,
		Span:  let.NameSpan,
		Flags: SymbolFlagGlobal,
		Decl:  SymbolDecl{Item: id},
	})
	if ok {
		fr.result.ItemSymbols[id] = symID
	}
}
