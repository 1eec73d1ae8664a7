package sema

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/symbols"
	"ocl/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Result
	Types    *types.Interner
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	TypeInterner *types.Interner
	ExprTypes    map[ast.ExprID]types.TypeID
	BindingTypes map[symbols.SymbolID]types.TypeID
	FnTypes      map[ast.ItemID]types.TypeID
}

// Check performs type checking of one resolved file. Every expression
// reachable from the file receives an entry in ExprTypes; expressions whose
// checking failed get the Unknown type, and rules over Unknown operands are
// skipped so that one defect yields one diagnostic.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		ExprTypes:    make(map[ast.ExprID]types.TypeID),
		BindingTypes: make(map[symbols.SymbolID]types.TypeID),
		FnTypes:      make(map[ast.ItemID]types.TypeID),
	}
	if opts.Types != nil {
		res.TypeInterner = opts.Types
	} else {
		res.TypeInterner = types.NewInterner()
	}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}

	checker := typeChecker{
		builder:    builder,
		fileID:     fileID,
		reporter:   opts.Reporter,
		symbols:    opts.Symbols,
		types:      res.TypeInterner,
		builtins:   res.TypeInterner.Builtins(),
		result:     &res,
		signatures: make(map[symbols.SymbolID]types.TypeID),
	}
	checker.run()
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	symbols  *symbols.Result
	types    *types.Interner
	builtins types.Builtins
	result   *Result

	// signatures кеширует разобранные сигнатуры встроенных и импортированных имён.
	signatures map[symbols.SymbolID]types.TypeID
	// fn: функция, тело которой сейчас проверяется; nil на уровне модуля.
	fn *fnContext
}

type fnContext struct {
	item   *ast.FnItem
	name   string
	result types.TypeID
}

type returnStatus int

const (
	returnOpen returnStatus = iota
	returnClosed
)

func (tc *typeChecker) run() {
	if tc.builder == nil || tc.result == nil {
		return
	}
	file := tc.builder.Files.Get(tc.fileID)
	if file == nil {
		return
	}

	// Сигнатуры функций нужны до проверки глобальных: инициализатор
	// глобальной переменной может вызывать функции модуля.
	for _, id := range file.Items {
		if fn, ok := tc.builder.Items.Fn(id); ok {
			tc.result.FnTypes[id] = tc.fnSignature(fn)
		}
	}
	for _, id := range file.Items {
		if let, ok := tc.builder.Items.Let(id); ok {
			tc.checkDecl(&let.LetDecl, tc.itemSymbol(id))
		}
	}
	for _, id := range file.Items {
		if fn, ok := tc.builder.Items.Fn(id); ok {
			tc.checkFn(id, fn)
		}
	}
}

func (tc *typeChecker) itemSymbol(id ast.ItemID) symbols.SymbolID {
	if tc.symbols == nil {
		return symbols.NoSymbolID
	}
	return tc.symbols.ItemSymbols[id]
}

func (tc *typeChecker) stmtSymbol(id ast.StmtID) symbols.SymbolID {
	if tc.symbols == nil {
		return symbols.NoSymbolID
	}
	return tc.symbols.StmtSymbols[id]
}

func (tc *typeChecker) paramSymbol(id ast.FnParamID) symbols.SymbolID {
	if tc.symbols == nil {
		return symbols.NoSymbolID
	}
	return tc.symbols.ParamSymbols[id]
}

func (tc *typeChecker) symbolForExpr(id ast.ExprID) symbols.SymbolID {
	if tc.symbols == nil {
		return symbols.NoSymbolID
	}
	return tc.symbols.ExprSymbols[id]
}

func (tc *typeChecker) symbolFromID(id symbols.SymbolID) *symbols.Symbol {
	if !id.IsValid() || tc.symbols == nil || tc.symbols.Table == nil {
		return nil
	}
	return tc.symbols.Table.Symbols.Get(id)
}
