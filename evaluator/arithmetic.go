// arithmetic.go は二項演算子の意味を定義する。
// 演算は math/big で計算してから int64 に収まるか確かめるので、
// 黙って桁あふれすることはない。
package evaluator

import (
	"math/big"

	"climb/ast"
	"climb/object"
)

// maxExponentBits を超える指数は |底| >= 2 のとき必ず int64 をあふれる。
const maxExponentBits = 63

// Apply は2つの値に演算子を適用する。
// 両辺が整数の組み合わせだけを受け付け、それ以外は TypeMismatch。
func Apply(op ast.Op, left, right object.Object) (object.Object, error) {
	l, lok := left.(*object.Integer)
	r, rok := right.(*object.Integer)
	if !lok || !rok {
		return nil, typeMismatch(op, left, right)
	}
	return applyInteger(op, l.Value, r.Value)
}

func typeMismatch(op ast.Op, left, right object.Object) *object.Error {
	return object.NewError(object.TypeMismatch, "%s %s %s", left.Type(), op, right.Type())
}

// applyInteger は整数同士の演算を行う。
// 除算はゼロ方向への切り捨て（-7 / 2 = -3）。
func applyInteger(op ast.Op, x, y int64) (object.Object, error) {
	a, b := big.NewInt(x), big.NewInt(y)
	result := new(big.Int)

	switch op {
	case ast.Add:
		result.Add(a, b)
	case ast.Sub:
		result.Sub(a, b)
	case ast.Mul:
		result.Mul(a, b)
	case ast.Div:
		if y == 0 {
			return nil, object.NewError(object.DivisionByZero, "%d / 0", x)
		}
		// Quo はゼロ方向に切り捨てる（Div はユークリッド除算なので使わない）
		result.Quo(a, b)
	case ast.Exp:
		if y < 0 {
			return nil, object.NewError(object.NegativeExponent, "%d ^ %d", x, y)
		}
		if x != 0 && x != 1 && x != -1 && y > maxExponentBits {
			return nil, object.NewError(object.Overflow, "%d ^ %d", x, y)
		}
		result.Exp(a, b, nil)
	default:
		return nil, object.NewError(object.Unknown, "unknown operator %s", op)
	}

	if !result.IsInt64() {
		return nil, object.NewError(object.Overflow, "%d %s %d", x, op, y)
	}
	return &object.Integer{Value: result.Int64()}, nil
}
