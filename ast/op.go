package ast

import (
	"fmt"

	"climb/token"
)

// Op は二項演算子の閉じた列挙。
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Exp
)

var opNames = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Exp: "^",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// OpFromToken は演算子トークンを Op に変換する。
// 5つの算術演算子以外が渡されるのは文法上ありえないので panic する。
func OpFromToken(t token.TokenType) Op {
	switch t {
	case token.PLUS:
		return Add
	case token.MINUS:
		return Sub
	case token.ASTERISK:
		return Mul
	case token.SLASH:
		return Div
	case token.CARET:
		return Exp
	default:
		panic(fmt.Sprintf("ast: %q is not a binary operator", t))
	}
}
