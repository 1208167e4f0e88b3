// environment.go は評価器が持つ実行時の環境を管理する。
// 変数も関数も1つのフラットな表に入り、レキシカルスコープやシャドーイングはない。
// 関数本体の中で代入した変数も、同じグローバルな表を書き換える。
package object

// Environment は変数表と関数表の組。
// 評価器ごとに1つ作られ、プログラムの実行中ずっと生き続ける。
type Environment struct {
	vars  map[string]Object
	funcs map[string]*Function
}

// NewEnvironment は空の環境を作成する。
func NewEnvironment() *Environment {
	return &Environment{
		vars:  make(map[string]Object),
		funcs: make(map[string]*Function),
	}
}

// Get は変数名から値を検索する。
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.vars[name]
	return obj, ok
}

// Set は変数を束縛（または再束縛）する。
func (e *Environment) Set(name string, val Object) Object {
	e.vars[name] = val
	return val
}

// Function は関数名から宣言済みの関数を検索する。
func (e *Environment) Function(name string) (*Function, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// Declare は関数を登録する。同名の関数があれば後勝ちで上書きする。
// 関数表から削除する操作はない。
func (e *Environment) Declare(fn *Function) {
	e.funcs[fn.Name] = fn
}

// Len は束縛済みの変数と関数の数を返す。
func (e *Environment) Len() (vars, funcs int) {
	return len(e.vars), len(e.funcs)
}
