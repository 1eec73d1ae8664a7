package types

import (
	"testing"

	"ocl/internal/ast"
)

func TestBinarySpecsLogicalAnd(t *testing.T) {
	specs := BinarySpecs(ast.ExprBinaryLogicalAnd)
	if len(specs) != 1 {
		t.Fatalf("expected single spec for logical and")
	}
	spec := specs[0]
	if spec.Left&FamilyBool == 0 || spec.Right&FamilyBool == 0 {
		t.Fatalf("logical and expects bool operands, got %+v", spec)
	}
	if spec.Result != BinaryResultBool {
		t.Fatalf("expected bool result, got %+v", spec)
	}
}

func TestBinaryResultType(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fn := in.RegisterFn([]TypeID{b.Int}, b.Int, false)
	tests := []struct {
		name        string
		op          ast.ExprBinaryOp
		left, right TypeID
		want        TypeID
		ok          bool
	}{
		{"int+int", ast.ExprBinaryAdd, b.Int, b.Int, b.Int, true},
		{"int+float widens", ast.ExprBinaryAdd, b.Int, b.Float, b.Float, true},
		{"float**int", ast.ExprBinaryPow, b.Float, b.Int, b.Float, true},
		{"int%int", ast.ExprBinaryMod, b.Int, b.Int, b.Int, true},
		{"string+string", ast.ExprBinaryAdd, b.String, b.String, b.String, true},
		{"string+int", ast.ExprBinaryAdd, b.String, b.Int, NoTypeID, false},
		{"string-string", ast.ExprBinarySub, b.String, b.String, NoTypeID, false},
		{"int<float", ast.ExprBinaryLess, b.Int, b.Float, b.Bool, true},
		{"string<string", ast.ExprBinaryLess, b.String, b.String, NoTypeID, false},
		{"int==float", ast.ExprBinaryEq, b.Int, b.Float, b.Bool, true},
		{"string==string", ast.ExprBinaryEq, b.String, b.String, b.Bool, true},
		{"string!=int", ast.ExprBinaryNotEq, b.String, b.Int, NoTypeID, false},
		{"fn+int", ast.ExprBinaryAdd, fn, b.Int, NoTypeID, false},
		{"bool&&bool", ast.ExprBinaryLogicalAnd, b.Bool, b.Bool, b.Bool, true},
		{"int||bool", ast.ExprBinaryLogicalOr, b.Int, b.Bool, NoTypeID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := in.BinaryResultType(tt.op, tt.left, tt.right)
			if ok != tt.ok || got != tt.want {
				t.Errorf("got (%s, %v), want (%s, %v)", in.Format(got), ok, in.Format(tt.want), tt.ok)
			}
		})
	}
}

func TestUnaryResultType(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if got, ok := in.UnaryResultType(ast.ExprUnaryMinus, b.Float); !ok || got != b.Float {
		t.Errorf("-float should be float")
	}
	if _, ok := in.UnaryResultType(ast.ExprUnaryMinus, b.String); ok {
		t.Errorf("-string must be rejected")
	}
	if got, ok := in.UnaryResultType(ast.ExprUnaryNot, b.Bool); !ok || got != b.Bool {
		t.Errorf("!bool should be bool")
	}
	if _, ok := in.UnaryResultType(ast.ExprUnaryNot, b.Int); ok {
		t.Errorf("!int must be rejected")
	}
}
