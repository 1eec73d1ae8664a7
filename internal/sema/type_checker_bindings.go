package sema

import (
	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/symbols"
	"ocl/internal/types"
)

// typeFromName maps a syntactic type keyword to an interned type.
func (tc *typeChecker) typeFromName(name ast.TypeName) types.TypeID {
	switch name {
	case ast.TypeInt:
		return tc.builtins.Int
	case ast.TypeFloat:
		return tc.builtins.Float
	case ast.TypeString:
		return tc.builtins.String
	case ast.TypeBool:
		return tc.builtins.Bool
	case ast.TypeVoid:
		return tc.builtins.Void
	default:
		return types.NoTypeID
	}
}

// fnSignature builds the function type of a user declaration from its header.
// Параметр типа void получает Unknown: ошибку сообщает checkFn.
func (tc *typeChecker) fnSignature(fn *ast.FnItem) types.TypeID {
	paramIDs := tc.builder.Items.Params(fn)
	params := make([]types.TypeID, 0, len(paramIDs))
	for _, pid := range paramIDs {
		param := tc.builder.Items.FnParam(pid)
		ty := tc.typeFromName(param.Type)
		if ty == tc.builtins.Void || ty == types.NoTypeID {
			ty = tc.builtins.Unknown
		}
		params = append(params, ty)
	}
	result := tc.typeFromName(fn.ReturnType)
	if result == types.NoTypeID {
		result = tc.builtins.Void
	}
	return tc.types.RegisterFn(params, result, false)
}

// symbolType returns the type a reference to symID evaluates to.
func (tc *typeChecker) symbolType(symID symbols.SymbolID) types.TypeID {
	sym := tc.symbolFromID(symID)
	if sym == nil {
		return tc.builtins.Unknown
	}
	if sym.Signature != "" {
		return tc.signatureType(symID, sym)
	}
	switch sym.Kind {
	case symbols.SymbolFunction:
		if ty, ok := tc.result.FnTypes[sym.Decl.Item]; ok {
			return ty
		}
	case symbols.SymbolParam:
		if param := tc.builder.Items.FnParam(sym.Decl.Param); param != nil {
			ty := tc.typeFromName(param.Type)
			if ty == tc.builtins.Void || ty == types.NoTypeID {
				return tc.builtins.Unknown
			}
			return ty
		}
	case symbols.SymbolVar:
		if ty, ok := tc.result.BindingTypes[symID]; ok {
			return ty
		}
	}
	return tc.builtins.Unknown
}

// signatureType parses the textual signature carried by builtin and imported
// symbols. A malformed signature degrades to Unknown; catalogs are validated
// when they are loaded, so this only happens with hand-built resolvers.
func (tc *typeChecker) signatureType(symID symbols.SymbolID, sym *symbols.Symbol) types.TypeID {
	if ty, ok := tc.signatures[symID]; ok {
		return ty
	}
	ty, err := tc.types.ParseSignature(sym.Signature)
	if err != nil {
		ty = tc.builtins.Unknown
	}
	tc.signatures[symID] = ty
	return ty
}

// checkDecl types a variable declaration and records its binding type.
func (tc *typeChecker) checkDecl(decl *ast.LetDecl, symID symbols.SymbolID) {
	name := tc.builder.Name(decl.Name)
	declared := tc.typeFromName(decl.Type)
	if declared == tc.builtins.Void {
		tc.report(diag.SemaTypeMismatch, decl.TypeSpan, "variable '%s' cannot have type void", name)
		declared = tc.builtins.Unknown
	}

	binding := declared
	if decl.Value.IsValid() {
		valueType := tc.typeExpr(decl.Value)
		switch {
		case declared != types.NoTypeID:
			if !tc.isUnknown(declared) && !tc.isUnknown(valueType) && !tc.types.Assignable(valueType, declared) {
				tc.report(diag.SemaTypeMismatch, tc.exprSpan(decl.Value),
					"cannot initialize '%s' of type %s with a value of type %s",
					name, tc.typeLabel(declared), tc.typeLabel(valueType))
			}
		case tc.isUnknown(valueType):
			binding = tc.builtins.Unknown
		case tc.types.KindOf(valueType) == types.KindVoid:
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(decl.Value),
				"cannot initialize '%s' with an expression of type void", name)
			binding = tc.builtins.Unknown
		default:
			binding = valueType
		}
	}
	if binding == types.NoTypeID {
		// let x;: без типа и значения: парсер уже сообщил об ошибке.
		binding = tc.builtins.Unknown
	}
	if symID.IsValid() {
		tc.result.BindingTypes[symID] = binding
	}
}
