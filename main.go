// climb は整数と引数なし関数だけを持つ小さな言語のインタプリタ。
//
// ファイルを渡すとプログラムとして評価し main() の値を表示する。
// 引数がなければREPLを起動する。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"github.com/kr/pretty"

	"climb/ast"
	"climb/callgraph"
	"climb/config"
	"climb/evaluator"
	"climb/lexer"
	"climb/object"
	"climb/parser"
	"climb/repl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run はコマンドラインを解釈して実行し、終了コードを返す。
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("climb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration `file`")
	dumpAST := fs.Bool("ast", false, "print the parsed program instead of running it")
	check := fs.Bool("check", false, "report recursion and undefined functions instead of running")
	verbose := fs.Bool("v", false, "verbose logging (overrides log_level)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: climb [flags] [file ...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	if *verbose {
		log.SetLogLevel(log.Verbose)
	} else {
		log.SetLogLevel(cfg.Level())
	}

	if fs.NArg() == 0 {
		err := repl.Start(stdin, stdout, repl.Options{
			Locale:      cfg.Locale,
			TraceParser: cfg.TraceParser,
			EvalOptions: cfg.EvaluatorOptions(),
		})
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	formatter, err := repl.NewFormatter(cfg.Locale)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	status := 0
	for _, path := range fs.Args() {
		program, err := parseFile(path, cfg.TraceParser)
		if err != nil {
			report(stderr, path, err)
			return 1
		}

		switch {
		case *dumpAST:
			pretty.Fprintf(stdout, "%# v\n", program)
		case *check:
			if !checkProgram(stdout, path, program) {
				status = 1
			}
		default:
			if cfg.CheckRecursion {
				for _, cycle := range callgraph.Build(program).Cycles() {
					log.Warnf("%s: recursive functions %v may hit the call depth limit of %d",
						path, cycle, cfg.MaxCallDepth)
				}
			}
			e := evaluator.New(cfg.EvaluatorOptions()...)
			if _, err := e.EvalProgram(program); err != nil {
				report(stderr, path, err)
				return 1
			}
			result, err := e.EvalMain()
			if err != nil {
				report(stderr, path, err)
				return 1
			}
			fmt.Fprintf(stdout, "Final result: %s\n", formatter.Format(result))
		}
	}
	return status
}

func parseFile(path string, trace bool) (*ast.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.LogVf("parsing %s (%d bytes)", path, len(src))
	return parser.New(lexer.New(string(src)), parser.WithTrace(trace)).ParseProgram()
}

// checkProgram は呼び出しグラフの検査結果を書き出す。
// 未定義の関数の呼び出しがあれば false を返す。再帰は報告するだけ。
func checkProgram(out io.Writer, path string, program *ast.Program) bool {
	g := callgraph.Build(program)

	for _, cycle := range g.Cycles() {
		fmt.Fprintf(out, "%s: recursive: %v\n", path, cycle)
	}
	undefined := g.Undefined()
	for _, c := range undefined {
		caller := c.Caller
		if caller == "" {
			caller = "top level"
		}
		fmt.Fprintf(out, "%s:%s: call to undefined function %s from %s\n", path, c.Pos, c.Callee, caller)
	}
	if !g.Declared("main") {
		fmt.Fprintf(out, "%s: no main function\n", path)
	}

	if log.LogVerbose() {
		if order, err := g.Order(); err == nil {
			log.LogVf("%s: call order %v", path, order)
		}
	}
	return len(undefined) == 0
}

// report はエラーを "file:line:col: ..." の形で書き出す。
func report(w io.Writer, path string, err error) {
	var oe *object.Error
	if errors.As(err, &oe) && oe.Pos.IsValid() {
		fmt.Fprintf(w, "error: %s:%v\n", path, err)
		return
	}
	fmt.Fprintf(w, "error: %s: %v\n", path, err)
}
