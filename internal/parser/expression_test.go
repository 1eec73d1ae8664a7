package parser

import (
	"strings"
	"testing"

	"ocl/internal/ast"
	"ocl/internal/diag"
)

// render печатает выражение в полностью скобочной форме.
func render(b *ast.Builder, id ast.ExprID) string {
	expr := b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		return b.Name(data.Name)
	case ast.ExprLit:
		data, _ := b.Exprs.Literal(id)
		return b.Name(data.Value)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return "(" + render(b, data.Left) + " " + data.Op.String() + " " + render(b, data.Right) + ")"
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		op := "-"
		if data.Op == ast.ExprUnaryNot {
			op = "!"
		}
		return op + render(b, data.Operand)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		return render(b, data.Inner)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		args := make([]string, len(data.Args))
		for i, a := range data.Args {
			args[i] = render(b, a)
		}
		return render(b, data.Target) + "(" + strings.Join(args, ", ") + ")"
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		return "(" + render(b, data.Target) + " = " + render(b, data.Value) + ")"
	}
	return "?"
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "-(2 ** 2)"},
		{"2 ** -1", "(2 ** -1)"},
		{"a * b ** 2", "(a * (b ** 2))"},
		{"1 < 2 == true", "((1 < 2) == true)"},
		{"a || b && !c", "(a || (b && !c))"},
		{"x % 3 + 1 >= y", "(((x % 3) + 1) >= y)"},
		{"a = b = 1", "(a = (b = 1))"},
		{"f(1, g(2 + 3))", "f(1, g((2 + 3)))"},
		{"f()", "f()"},
		{"f(1)(2)", "f(1)(2)"},
		{`"hi" + "there"`, `("hi" + "there")`},
		{"--1", "--1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, id := letValue(t, tt.input)
			if got := render(b, id); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBinaryOpSpan(t *testing.T) {
	b, id := letValue(t, "a  +  b")
	data, ok := b.Exprs.Binary(id)
	if !ok {
		t.Fatalf("expected binary expression")
	}
	// "let x = " занимает 8 байт
	if data.OpSpan.Start != 11 || data.OpSpan.End != 12 {
		t.Errorf("op span = %v", data.OpSpan)
	}
	if span := b.Exprs.Get(id).Span; span.Start != 8 || span.End != 15 {
		t.Errorf("expr span = %v", span)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	for _, src := range []string{"void f() { (a) = 1; }", "void f() { 1 = 2; }", "void f() { g() = 2; }"} {
		t.Run(src, func(t *testing.T) {
			b, fileID, bag := parseSource(t, src)
			if bag.Len() != 1 || countCode(bag, diag.SynUnexpectedToken) != 1 {
				t.Fatalf("expected one UnexpectedToken, got %s", diagnosticsSummary(bag))
			}
			if !strings.Contains(bag.Items()[0].Message, "invalid assignment target") {
				t.Errorf("unexpected message: %s", bag.Items()[0].Message)
			}
			// выражение-statement сохраняется с правой частью
			if n := len(bodyStmts(t, b, onlyFn(t, b, fileID))); n != 1 {
				t.Errorf("expected statement to be kept, got %d", n)
			}
		})
	}
}

func TestCallArgumentErrors(t *testing.T) {
	tests := []string{
		"void f() { g(1, ); }",
		"void f() { g(1 2); }",
		"void f() { g(1; }",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, _, bag := parseSource(t, src)
			if bag.Len() != 1 || countCode(bag, diag.SynUnexpectedToken) != 1 {
				t.Fatalf("expected one UnexpectedToken, got %s", diagnosticsSummary(bag))
			}
		})
	}
}
