package parser

import (
	"ocl/internal/ast"
	"ocl/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет. Присваивание и '**' разбираются
// отдельно (правоассоциативны).
const (
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// getBinaryOperatorPrec возвращает приоритет оператора или -1.
func getBinaryOperatorPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1 // не бинарный оператор
	}
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func tokenKindToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.Percent:
		return ast.ExprBinaryMod
	case token.StarStar:
		return ast.ExprBinaryPow
	case token.AndAnd:
		return ast.ExprBinaryLogicalAnd
	case token.OrOr:
		return ast.ExprBinaryLogicalOr
	case token.EqEq:
		return ast.ExprBinaryEq
	case token.BangEq:
		return ast.ExprBinaryNotEq
	case token.Lt:
		return ast.ExprBinaryLess
	case token.LtEq:
		return ast.ExprBinaryLessEq
	case token.Gt:
		return ast.ExprBinaryGreater
	case token.GtEq:
		return ast.ExprBinaryGreaterEq
	default:
		panic("tokenKindToBinaryOp: not a binary operator: " + kind.String())
	}
}

// getUnaryOperator проверяет, является ли токен унарным оператором
func getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryMinus, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	default:
		return 0, false
	}
}
