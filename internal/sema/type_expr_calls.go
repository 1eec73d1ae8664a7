package sema

import (
	"fmt"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
	"ocl/internal/symbols"
	"ocl/internal/types"
)

// callee describes the function being called for diagnostics.
type callee struct {
	name string
	sym  *symbols.Symbol
}

func (tc *typeChecker) typeCall(call *ast.ExprCallData) types.TypeID {
	target := tc.typeExpr(call.Target)
	args := make([]types.TypeID, len(call.Args))
	for i, arg := range call.Args {
		args[i] = tc.typeExpr(arg)
	}
	if tc.isUnknown(target) {
		return tc.builtins.Unknown
	}

	fn := tc.calleeOf(call.Target)
	info, ok := tc.types.FnInfo(target)
	if !ok {
		what := "value"
		if fn.sym != nil && fn.sym.Flags&symbols.SymbolFlagConstant != 0 {
			what = "constant"
		}
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(call.Target),
			"%s '%s' of type %s is not a function", what, fn.name, tc.typeLabel(target))
		return tc.builtins.Unknown
	}

	if !info.AcceptsArgs(len(args)) {
		tc.reportArity(fn, info, len(args), tc.exprSpan(call.Target))
		return tc.builtins.Unknown
	}

	failed := false
	for i, arg := range args {
		if tc.isUnknown(arg) {
			failed = true
			continue
		}
		param, _ := info.ParamAt(i)
		if tc.isUnknown(param) || tc.types.Assignable(arg, param) {
			continue
		}
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(call.Args[i]),
			"argument %d of '%s': expected %s, got %s", i+1, fn.name, tc.typeLabel(param), tc.typeLabel(arg))
		failed = true
	}
	if failed {
		return tc.builtins.Unknown
	}
	return info.Result
}

func (tc *typeChecker) calleeOf(target ast.ExprID) callee {
	if ident, ok := tc.builder.Exprs.Ident(target); ok {
		return callee{
			name: tc.builder.Name(ident.Name),
			sym:  tc.symbolFromID(tc.symbolForExpr(target)),
		}
	}
	return callee{name: "<expression>"}
}

func (tc *typeChecker) reportArity(fn callee, info *types.FnInfo, got int, span source.Span) {
	expected := fmt.Sprintf("%d", len(info.Params))
	if info.Variadic {
		expected = fmt.Sprintf("at least %d", len(info.Params)-1)
	}
	noun := "arguments"
	if !info.Variadic && len(info.Params) == 1 {
		noun = "argument"
	}
	msg := fmt.Sprintf("function '%s' expects %s %s, got %d", fn.name, expected, noun, got)
	b := diag.ReportError(tc.reporter, diag.SemaArityMismatch, span, msg)
	if b == nil {
		return
	}
	if fn.sym != nil && !fn.sym.Span.Empty() {
		note := fmt.Sprintf("'%s' declared here", fn.name)
		if fn.sym.Kind == symbols.SymbolImport {
			note = fmt.Sprintf("'%s' imported from '%s' here", fn.name, fn.sym.Module)
		}
		b.WithNote(fn.sym.Span, note)
	}
	b.Emit()
}
