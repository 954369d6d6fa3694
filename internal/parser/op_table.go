package parser

import (
	"octls/internal/ast"
	"octls/internal/token"
)

// Binary operator precedence, low to high. Higher binds tighter.
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
	precPower          = 3 // ^
	precAccess         = 4 // .
)

// binaryOp returns the ast operator, precedence and associativity for a
// token kind, or ok=false if the token is not a binary operator.
func binaryOp(kind token.Kind) (op ast.Op, prec int, rightAssoc, ok bool) {
	switch kind {
	case token.Plus:
		return ast.OpAdd, precAdditive, false, true
	case token.Minus:
		return ast.OpSub, precAdditive, false, true
	case token.Star:
		return ast.OpMul, precMultiplicative, false, true
	case token.Slash:
		return ast.OpDiv, precMultiplicative, false, true
	case token.Caret:
		return ast.OpPow, precPower, true, true
	case token.Dot:
		return ast.OpAccess, precAccess, true, true
	default:
		return 0, 0, false, false
	}
}

// augOp maps a compound assignment token to its operator.
func augOp(kind token.Kind) (ast.Op, bool) {
	switch kind {
	case token.PlusAssign:
		return ast.OpAdd, true
	case token.MinusAssign:
		return ast.OpSub, true
	case token.StarAssign:
		return ast.OpMul, true
	case token.SlashAssign:
		return ast.OpDiv, true
	default:
		return 0, false
	}
}
