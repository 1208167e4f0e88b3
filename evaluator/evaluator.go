// Package evaluator は climb 言語のTree-walking評価器を実装するパッケージ。
// ASTを再帰的にたどりながら各ノードを評価し、object.Object を返す。
//
// 評価器は1つの Environment（変数表と関数表）を所有する。
// 関数呼び出しも同じ環境で本体を実行するので、呼び出しフレームの分離はない。
// 失敗したら *object.Error を返し、その場で評価全体を打ち切る。
package evaluator

import (
	"fortio.org/log"

	"climb/ast"
	"climb/object"
)

// DefaultMaxCallDepth は関数呼び出しのネストの既定の上限。
const DefaultMaxCallDepth = 10000

// Evaluator は評価器の状態。プログラムの実行1回につき1つ作る。
// 並行に使うことは想定していない。
type Evaluator struct {
	env *object.Environment

	depth        int
	maxCallDepth int
}

// Option は評価器の設定を変更する関数。
type Option func(*Evaluator)

// WithMaxCallDepth は関数呼び出しのネストの上限を設定する。
// 0 以下なら DefaultMaxCallDepth を使う。
func WithMaxCallDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxCallDepth = n
		}
	}
}

// New は空の環境を持つ評価器を生成する。
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		env:          object.NewEnvironment(),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Env は評価器が所有する環境を返す。
func (e *Evaluator) Env() *object.Environment {
	return e.env
}

// Eval はASTノードの種類に応じて評価を振り分ける。
func (e *Evaluator) Eval(node ast.Node) (object.Object, error) {
	switch node := node.(type) {
	case *ast.Program:
		return e.EvalProgram(node)
	case ast.Statement:
		return e.EvalStatement(node)
	case ast.Expression:
		return e.EvalExpr(node)
	}
	return nil, object.NewError(object.Unknown, "cannot evaluate %T", node)
}

// EvalProgram はトップレベルの文を順に評価し、最後の文の値を返す。
// 文がなければ NONE。
func (e *Evaluator) EvalProgram(program *ast.Program) (object.Object, error) {
	log.LogVf("eval program (%d statements)", len(program.Statements))
	return e.evalStatements(program.Statements)
}

// evalStatements は文の列を順に評価し、最後に実行した文の値を返す。
// return 文でも途中で打ち切らない。
func (e *Evaluator) evalStatements(stmts []ast.Statement) (object.Object, error) {
	var result object.Object = object.NONE

	for _, stmt := range stmts {
		val, err := e.EvalStatement(stmt)
		if err != nil {
			return nil, err
		}
		result = val
	}

	return result, nil
}

// EvalStatement は文の種類に応じて評価する。
func (e *Evaluator) EvalStatement(stmt ast.Statement) (object.Object, error) {
	switch stmt := stmt.(type) {

	// 右辺を評価し、整数なら変数に束縛してその値を返す
	case *ast.AssignStatement:
		val, err := e.EvalExpr(stmt.Value)
		if err != nil {
			return nil, err
		}
		integer, ok := val.(*object.Integer)
		if !ok {
			return nil, object.NewErrorAt(stmt.Pos(), object.TypeMismatch,
				"cannot assign %s to %s", val.Type(), stmt.Name.Value)
		}
		if log.LogVerbose() {
			log.LogVf("eval let %s = %d", stmt.Name.Value, integer.Value)
		}
		return e.env.Set(stmt.Name.Value, integer), nil

	// 関数表に登録する。同名の関数は上書き
	case *ast.FunctionDeclaration:
		fn := &object.Function{Name: stmt.Name.Value, Body: stmt.Body}
		if log.LogVerbose() {
			log.LogVf("eval %s", fn.Inspect())
		}
		e.env.Declare(fn)
		return object.NONE, nil

	case *ast.ReturnStatement:
		return e.EvalExpr(stmt.ReturnValue)

	case *ast.BlockStatement:
		return e.evalStatements(stmt.Statements)
	}

	return nil, object.NewErrorAt(stmt.Pos(), object.Unknown, "unhandled statement %T", stmt)
}

// EvalExpr は式を後順（子を先に評価）で評価する。
func (e *Evaluator) EvalExpr(expr ast.Expression) (object.Object, error) {
	switch expr := expr.(type) {

	case *ast.IntegerLiteral:
		return &object.Integer{Value: expr.Value}, nil

	// 環境から変数の値を取得する。暗黙のゼロ初期化はない
	case *ast.Identifier:
		val, ok := e.env.Get(expr.Value)
		if !ok {
			return nil, object.NewErrorAt(expr.Pos(), object.VariableNotInit, "%s", expr.Value)
		}
		return val, nil

	case *ast.CallExpression:
		val, err := e.Call(expr.Function.Value)
		if err != nil {
			if oe, ok := err.(*object.Error); ok && !oe.Pos.IsValid() {
				oe.Pos = expr.Pos()
			}
			return nil, err
		}
		return val, nil

	// 左辺、右辺の順に評価してから演算子を適用する。短絡評価はない
	case *ast.InfixExpression:
		left, err := e.EvalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.EvalExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		val, err := Apply(expr.Operator, left, right)
		if err != nil {
			if oe, ok := err.(*object.Error); ok {
				oe.Pos = expr.Pos()
			}
			return nil, err
		}
		return val, nil
	}

	return nil, object.NewError(object.Unknown, "unhandled expression %T", expr)
}

// Call は宣言済みの関数を名前で呼び出す。
// 本体の文を共有の環境で順に実行し、最後に実行した文の値を返す。
// 呼び出しのネストが上限を超えたら StackOverflow エラーになる。
func (e *Evaluator) Call(name string) (object.Object, error) {
	fn, ok := e.env.Function(name)
	if !ok {
		return nil, object.NewError(object.FuncNotDef, "%s", name)
	}

	if e.depth >= e.maxCallDepth {
		return nil, object.NewError(object.StackOverflow,
			"call depth limit %d exceeded calling %s", e.maxCallDepth, name)
	}
	e.depth++
	defer func() { e.depth-- }()

	log.LogVf("call %s (depth %d)", name, e.depth)
	return e.evalStatements(fn.Body.Statements)
}

// EvalMain は main 関数を呼び出す。宣言されていなければ MainNotDef。
func (e *Evaluator) EvalMain() (object.Object, error) {
	if _, ok := e.env.Function("main"); !ok {
		return nil, object.NewError(object.MainNotDef, "declare fn main() { ... }")
	}
	return e.Call("main")
}
