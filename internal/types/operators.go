package types

import "ocl/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyBool FamilyMask = 1 << iota
	FamilyInt
	FamilyFloat
	FamilyString
	FamilyFn
	FamilyVoid
)

const (
	FamilyNumeric = FamilyInt | FamilyFloat
	FamilyScalar  = FamilyNumeric | FamilyBool | FamilyString
)

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
	// BinaryResultNumeric: Int op Int → Int, иначе Float.
	BinaryResultNumeric
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint16

const (
	BinaryFlagNone         BinaryFlags = 0
	BinaryFlagShortCircuit BinaryFlags = 1 << iota
	// BinaryFlagSameFamily: операнды должны совпадать по семейству
	// (числа считаются одним семейством).
	BinaryFlagSameFamily
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnaryResult indicates how to derive the resulting type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResult
}

var arithmetic = []BinarySpec{
	{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
}

var ordering = []BinarySpec{
	{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
}

var equality = []BinarySpec{
	{Left: FamilyScalar, Right: FamilyScalar, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
}

var logical = []BinarySpec{
	{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
}

var binarySpecTable = map[ast.ExprBinaryOp][]BinarySpec{
	ast.ExprBinaryAdd: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
		{Left: FamilyString, Right: FamilyString, Result: BinaryResultLeft, Flags: BinaryFlagSameFamily},
	},
	ast.ExprBinarySub:        arithmetic,
	ast.ExprBinaryMul:        arithmetic,
	ast.ExprBinaryDiv:        arithmetic,
	ast.ExprBinaryMod:        arithmetic,
	ast.ExprBinaryPow:        arithmetic,
	ast.ExprBinaryLess:       ordering,
	ast.ExprBinaryLessEq:     ordering,
	ast.ExprBinaryGreater:    ordering,
	ast.ExprBinaryGreaterEq:  ordering,
	ast.ExprBinaryEq:         equality,
	ast.ExprBinaryNotEq:      equality,
	ast.ExprBinaryLogicalAnd: logical,
	ast.ExprBinaryLogicalOr:  logical,
}

var unarySpecTable = map[ast.ExprUnaryOp]UnarySpec{
	ast.ExprUnaryMinus: {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.ExprUnaryNot:   {Operand: FamilyBool, Result: UnaryResultBool},
}

// BinarySpecs returns operand rules for the given operator.
func BinarySpecs(op ast.ExprBinaryOp) []BinarySpec {
	return binarySpecTable[op]
}

// UnarySpecFor returns operand/result hints for unary operators.
func UnarySpecFor(op ast.ExprUnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// FamilyOf maps a type onto its operator family.
func (in *Interner) FamilyOf(id TypeID) FamilyMask {
	switch in.KindOf(id) {
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindString:
		return FamilyString
	case KindFn:
		return FamilyFn
	case KindVoid:
		return FamilyVoid
	default:
		return FamilyNone
	}
}

// BinaryResultType подбирает первую подходящую спецификацию и возвращает
// тип результата. ok == false, если ни одна спецификация не подошла.
func (in *Interner) BinaryResultType(op ast.ExprBinaryOp, left, right TypeID) (TypeID, bool) {
	lf, rf := in.FamilyOf(left), in.FamilyOf(right)
	for _, spec := range BinarySpecs(op) {
		if lf&spec.Left == 0 || rf&spec.Right == 0 {
			continue
		}
		if spec.Flags&BinaryFlagSameFamily != 0 && !sameFamily(lf, rf) {
			continue
		}
		switch spec.Result {
		case BinaryResultLeft:
			return left, true
		case BinaryResultBool:
			return in.builtins.Bool, true
		case BinaryResultNumeric:
			if lf == FamilyInt && rf == FamilyInt {
				return in.builtins.Int, true
			}
			return in.builtins.Float, true
		}
	}
	return NoTypeID, false
}

// UnaryResultType: то же самое для унарных операторов.
func (in *Interner) UnaryResultType(op ast.ExprUnaryOp, operand TypeID) (TypeID, bool) {
	spec, ok := UnarySpecFor(op)
	if !ok || in.FamilyOf(operand)&spec.Operand == 0 {
		return NoTypeID, false
	}
	if spec.Result == UnaryResultBool {
		return in.builtins.Bool, true
	}
	return operand, true
}

func sameFamily(a, b FamilyMask) bool {
	if a == b {
		return true
	}
	return a&FamilyNumeric != 0 && b&FamilyNumeric != 0
}
