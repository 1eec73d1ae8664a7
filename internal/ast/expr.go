package ast

import (
	"ocl/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprCall represents a function call expression.
	ExprCall
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprUnary represents a unary expression.
	ExprUnary
	// ExprGroup represents a parenthesised expression.
	ExprGroup
	// ExprAssign represents `name = value`.
	ExprAssign
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Lit"
	case ExprCall:
		return "Call"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprGroup:
		return "Group"
	case ExprAssign:
		return "Assign"
	default:
		return "Expr(?)"
	}
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryPow

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	// Логические
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

var binaryOpText = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryPow:        "**",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsArithmetic reports + - * / % **.
func (op ExprBinaryOp) IsArithmetic() bool { return op <= ExprBinaryPow }

// IsOrdering reports < <= > >=.
func (op ExprBinaryOp) IsOrdering() bool {
	return op >= ExprBinaryLess && op <= ExprBinaryGreaterEq
}

// IsEquality reports == and !=.
func (op ExprBinaryOp) IsEquality() bool {
	return op == ExprBinaryEq || op == ExprBinaryNotEq
}

// IsLogical reports && and ||.
func (op ExprBinaryOp) IsLogical() bool {
	return op == ExprBinaryLogicalAnd || op == ExprBinaryLogicalOr
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryMinus ExprUnaryOp = iota
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "!"
	}
	return "-"
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitInt:
		return "int"
	case ExprLitFloat:
		return "float"
	case ExprLitString:
		return "string"
	default:
		return "bool"
	}
}

// ExprIdentData хранит имя идентификатора.
type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData: Value: исходный текст литерала (строки вместе с кавычками).
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprBinaryData struct {
	Op     ExprBinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

// ExprAssignData: Target всегда ExprIdent.
type ExprAssignData struct {
	Target ExprID
	Value  ExprID
}
