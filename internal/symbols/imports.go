package symbols

import (
	"errors"
	"fmt"
	"strings"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
)

// Export is one name provided by an importable module. Signature is either a
// function signature "(float, int) -> float" or a bare type for constants.
type Export struct {
	Name      string
	Signature string
}

// IsConstant reports whether the export is a value rather than a function.
func (e Export) IsConstant() bool {
	return !strings.HasPrefix(strings.TrimSpace(e.Signature), "(")
}

// ImportResolver looks up the exports of a module by name. Order of the
// returned exports is preserved in the module scope.
type ImportResolver interface {
	Resolve(module string) ([]Export, error)
}

// ImportResolverFunc adapts a plain function to ImportResolver.
type ImportResolverFunc func(module string) ([]Export, error)

// Resolve calls f(module).
func (f ImportResolverFunc) Resolve(module string) ([]Export, error) {
	return f(module)
}

var errNoResolver = errors.New("no import resolver configured")

// ImportedModule records one successfully resolved import.
type ImportedModule struct {
	Item    ast.ItemID
	Name    string
	Span    source.Span
	Symbols []SymbolID
}

func (fr *fileResolver) declareImport(itemID ast.ItemID, imp *ast.ImportItem) {
	module := fr.builder.Name(imp.Module)

	if prev, seen := fr.imported[module]; seen {
		if fr.reporter != nil {
			diag.ReportWarning(fr.reporter, diag.SemaDuplicateImport, imp.ModuleSpan,
				fmt.Sprintf("module '%s' is imported more than once", module)).
				WithNote(prev, "first imported here").
				Emit()
		}
		return
	}
	fr.imported[module] = imp.ModuleSpan

	var (
		exports []Export
		err     error
	)
	if fr.imports == nil {
		err = errNoResolver
	} else {
		exports, err = fr.imports.Resolve(module)
	}
	if err != nil {
		if fr.reporter != nil {
			diag.ReportError(fr.reporter, diag.SemaImportNotFound, imp.ModuleSpan,
				fmt.Sprintf("cannot import module '%s': %v", module, err)).Emit()
		}
		return
	}

	rec := ImportedModule{Item: itemID, Name: module, Span: imp.ModuleSpan}
	for _, exp := range exports {
		flags := SymbolFlagImported | SymbolFlagGlobal
		if exp.IsConstant() {
			flags |= SymbolFlagConstant
		}
		symID, ok := fr.resolver.Declare(Symbol{
			Name:      fr.builder.StringsInterner.Intern(exp.Name),
			Kind:      SymbolImport,
			Span:      imp.ModuleSpan,
			Flags:     flags,
			Decl:      SymbolDecl{Item: itemID},
			Signature: exp.Signature,
			Module:    module,
		})
		if ok {
			rec.Symbols = append(rec.Symbols, symID)
		}
	}
	fr.result.Imports = append(fr.result.Imports, rec)
}
