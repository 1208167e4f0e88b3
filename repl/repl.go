// Package repl は climb 言語のREPL（Read-Eval-Print Loop）を実装するパッケージ。
// ユーザーが入力した1行を字句解析 → 構文解析 → 評価し、結果を表示する。
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"climb/ast"
	"climb/evaluator"
	"climb/lexer"
	"climb/object"
	"climb/parser"
)

// PROMPT はREPLのプロンプト文字列。
const PROMPT = ">> "

// Options はREPLの設定。
type Options struct {
	// Locale は結果の表示に使うロケール。空なら桁区切りなし。
	Locale string
	// TraceParser はパーサーのトレースを有効にする。
	TraceParser bool
	// EvalOptions は評価器に渡すオプション。
	EvalOptions []evaluator.Option
}

// Start はREPLを起動する。
// 入力ストリームからコードを1行ずつ読み取り、評価結果を出力ストリームに書き出す。
// 評価器をループ全体で共有するので、変数と関数はセッション中持続する。
// エラーが起きた行の結果は捨てられるが、それまでに束縛された変数は残る。
func Start(in io.Reader, out io.Writer, opts Options) error {
	formatter, err := NewFormatter(opts.Locale)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	// 評価器をループの外で作成し、環境をセッション間で保持する
	e := evaluator.New(opts.EvalOptions...)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		p := parser.New(lexer.New(line), parser.WithTrace(opts.TraceParser))
		node, err := p.ParseLine()
		if err != nil {
			printError(out, err)
			continue
		}

		evaluated, err := e.Eval(node)
		if err != nil {
			printError(out, err)
			continue
		}

		// 文の行（let や fn）で値がないときは何も表示しない
		if _, isProgram := node.(*ast.Program); isProgram && evaluated == object.NONE {
			continue
		}
		io.WriteString(out, formatter.Format(evaluated))
		io.WriteString(out, "\n")
	}
}

// printError はエラーを1行で出力する。
func printError(out io.Writer, err error) {
	log.LogVf("repl error kind %s", object.KindOf(err))
	fmt.Fprintf(out, "error: %v\n", err)
}
