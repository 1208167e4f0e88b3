package callgraph

import (
	"testing"

	"github.com/kr/pretty"

	"climb/lexer"
	"climb/parser"
	"climb/token"
)

func build(t *testing.T, input string) *Graph {
	t.Helper()
	program, err := parser.New(lexer.New(input)).ParseProgram()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return Build(program)
}

func TestFunctionsAndCallees(t *testing.T) {
	g := build(t, `
fn main() { return helper() + other(); }
fn helper() {
  fn nested() { return other(); }
  return nested();
}
fn other() { return 1; }
`)

	if diff := pretty.Diff(g.Functions(), []string{"helper", "main", "nested", "other"}); len(diff) > 0 {
		t.Errorf("Functions mismatch: %v", diff)
	}
	if diff := pretty.Diff(g.Callees("main"), []string{"helper", "other"}); len(diff) > 0 {
		t.Errorf("Callees(main) mismatch: %v", diff)
	}
	// 入れ子の関数本体の呼び出しは外側の関数に数えない
	if diff := pretty.Diff(g.Callees("helper"), []string{"nested"}); len(diff) > 0 {
		t.Errorf("Callees(helper) mismatch: %v", diff)
	}
	if diff := pretty.Diff(g.Callees("nested"), []string{"other"}); len(diff) > 0 {
		t.Errorf("Callees(nested) mismatch: %v", diff)
	}
	if g.Callees("missing") != nil {
		t.Errorf("Callees of an unknown function should be nil")
	}
	if len(g.Cycles()) != 0 {
		t.Errorf("unexpected cycles: %v", g.Cycles())
	}
}

func TestCycles(t *testing.T) {
	g := build(t, `
fn main() { return even() + loop(); }
fn even() { return odd(); }
fn odd() { return even(); }
fn loop() { return loop(); }
fn leaf() { return 0; }
`)

	want := [][]string{{"even", "odd"}, {"loop"}}
	if diff := pretty.Diff(g.Cycles(), want); len(diff) > 0 {
		t.Errorf("Cycles mismatch: %v\ngot=%# v", diff, pretty.Formatter(g.Cycles()))
	}
	if diff := pretty.Diff(g.Callees("loop"), []string{"loop"}); len(diff) > 0 {
		t.Errorf("Callees(loop) mismatch: %v", diff)
	}
}

func TestUndefined(t *testing.T) {
	g := build(t, "fn main() {\n  return missing() + declaredLater();\n}\nlet x = gone();\nfn declaredLater() { return 1; }")

	want := []Call{
		{Caller: "main", Callee: "missing", Pos: token.Position{Line: 2, Column: 10}},
		{Caller: "", Callee: "gone", Pos: token.Position{Line: 4, Column: 9}},
	}
	if diff := pretty.Diff(g.Undefined(), want); len(diff) > 0 {
		t.Errorf("Undefined mismatch: %v", diff)
	}
	if len(g.Calls()) != 3 {
		t.Errorf("expected 3 call sites, got %d", len(g.Calls()))
	}
}

func TestOrder(t *testing.T) {
	g := build(t, `
fn b() { return c(); }
fn main() { return a() + b(); }
fn a() { return b() * c(); }
fn c() { return c(); }
`)

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order error: %v", err)
	}
	index := make(map[string]int)
	for i, name := range order {
		index[name] = i
	}
	if len(index) != 4 {
		t.Fatalf("order = %v", order)
	}
	for _, edge := range [][2]string{{"main", "a"}, {"main", "b"}, {"a", "b"}, {"a", "c"}, {"b", "c"}} {
		if index[edge[0]] >= index[edge[1]] {
			t.Errorf("%s should come before %s in %v", edge[0], edge[1], order)
		}
	}
}

func TestOrderFailsOnMutualRecursion(t *testing.T) {
	g := build(t, "fn f() { return g(); } fn g() { return f(); }")
	if _, err := g.Order(); err == nil {
		t.Errorf("expected an error for mutually recursive functions")
	}
}
