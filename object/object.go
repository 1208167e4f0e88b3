// Package object は climb 言語のランタイム値を定義するパッケージ。
// 評価器がASTを評価した結果はすべてこのパッケージの Object として表現される。
//
// 値の種類は Integer と Null の2つだけ。どちらもコピーしても意味が変わらない
// スカラーで、解放を気にする必要はない。
package object

import (
	"fmt"

	"climb/ast"
)

// ObjectType はオブジェクトの種類を識別する文字列型。
type ObjectType string

const (
	INTEGER_OBJ = "INTEGER" // 整数
	NULL_OBJ    = "NONE"    // 宣言など値を持たない文の結果

	FUNCTION_OBJ = "FUNCTION" // 関数テーブルに格納される関数
)

// Object は評価結果として現れる値のインターフェース。
// value() は外部パッケージから新しい種類を足せないようにするためのマーカー。
type Object interface {
	Type() ObjectType
	Inspect() string
	value()
}

// Integer は整数値を表すオブジェクト。
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) value()           {}

// Null は値が存在しないことを表す。評価器ではシングルトン（NONE）として扱う。
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "none" }
func (n *Null) value()           {}

// NONE は Null のシングルトン。
var NONE = &Null{}

// Function は宣言済みの引数なし関数。
// 関数テーブルにだけ置かれ、式の値として現れることはない。
type Function struct {
	Name string
	Body *ast.BlockStatement
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }

// Inspect は `fn <name>() { <body> }` の形式で返す。
func (f *Function) Inspect() string {
	return fmt.Sprintf("fn %s() { %s }", f.Name, f.Body.String())
}
