// Package callgraph はプログラムを実行せずに関数の呼び出し関係を調べる。
//
// 関数表はフラットなので、入れ子で宣言された関数もトップレベルの関数と同じ扱いになる。
// 入れ子の関数本体にある呼び出しは、その入れ子の関数からの呼び出しとして数える。
package callgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"climb/ast"
	"climb/token"
)

// Call は1つの呼び出し箇所。Caller が空ならトップレベルの文からの呼び出し。
type Call struct {
	Caller string
	Callee string
	Pos    token.Position
}

// Graph は関数を頂点、呼び出しを辺とする有向グラフ。
type Graph struct {
	g     *simple.DirectedGraph
	ids   map[string]int64
	names map[int64]string

	declared  map[string]token.Position
	// simple.DirectedGraph は自己ループを持てないので別に記録する
	selfCalls map[string]bool
	calls     []Call
}

// Build はプログラム全体を走査して呼び出しグラフを作る。
func Build(program *ast.Program) *Graph {
	g := &Graph{
		g:         simple.NewDirectedGraph(),
		ids:       make(map[string]int64),
		names:     make(map[int64]string),
		declared:  make(map[string]token.Position),
		selfCalls: make(map[string]bool),
	}
	g.collect("", program)
	return g
}

func (g *Graph) collect(caller string, root ast.Node) {
	ast.Inspect(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionDeclaration:
			g.declare(n.Name.Value, n.Pos())
			g.collect(n.Name.Value, n.Body)
			return false
		case *ast.CallExpression:
			g.call(caller, n.Function.Value, n.Pos())
			return false
		}
		return true
	})
}

func (g *Graph) node(name string) graph.Node {
	if id, ok := g.ids[name]; ok {
		return g.g.Node(id)
	}
	n := g.g.NewNode()
	g.g.AddNode(n)
	g.ids[name] = n.ID()
	g.names[n.ID()] = name
	return n
}

func (g *Graph) declare(name string, pos token.Position) {
	g.node(name)
	g.declared[name] = pos
}

func (g *Graph) call(caller, callee string, pos token.Position) {
	g.calls = append(g.calls, Call{Caller: caller, Callee: callee, Pos: pos})
	if caller == "" {
		return
	}
	if caller == callee {
		g.node(caller)
		g.selfCalls[caller] = true
		return
	}
	g.g.SetEdge(g.g.NewEdge(g.node(caller), g.node(callee)))
}

// Declared は name がどこかで宣言されているかを返す。
func (g *Graph) Declared(name string) bool {
	_, ok := g.declared[name]
	return ok
}

// Functions は宣言された関数名を辞書順で返す。
func (g *Graph) Functions() []string {
	names := make([]string, 0, len(g.declared))
	for name := range g.declared {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calls は呼び出し箇所をソース順で返す。
func (g *Graph) Calls() []Call {
	calls := make([]Call, len(g.calls))
	copy(calls, g.calls)
	return calls
}

// Callees は name が直接呼び出す関数を辞書順で返す。自分自身の呼び出しも含む。
func (g *Graph) Callees(name string) []string {
	id, ok := g.ids[name]
	if !ok {
		return nil
	}
	var out []string
	for _, n := range graph.NodesOf(g.g.From(id)) {
		out = append(out, g.names[n.ID()])
	}
	if g.selfCalls[name] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Cycles は互いに再帰する関数の組を返す。自分自身を呼ぶ関数は要素1つの組になる。
// 各組の中も組同士も辞書順に並ぶ。
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, scc := range topo.TarjanSCC(g.g) {
		if len(scc) == 1 {
			name := g.names[scc[0].ID()]
			if g.selfCalls[name] {
				cycles = append(cycles, []string{name})
			}
			continue
		}
		cycles = append(cycles, g.sortedNames(scc))
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// Undefined はどこでも宣言されていない関数への呼び出しをソース順で返す。
func (g *Graph) Undefined() []Call {
	var out []Call
	for _, c := range g.calls {
		if !g.Declared(c.Callee) {
			out = append(out, c)
		}
	}
	return out
}

// Order は呼び出し元が呼び出し先より前に来る順序で関数名を返す。
// 相互再帰があれば順序は決まらずエラーになる。自己再帰は順序に影響しない。
func (g *Graph) Order() ([]string, error) {
	sorted, err := topo.SortStabilized(g.g, g.byName)
	if err != nil {
		if u, ok := err.(topo.Unorderable); ok {
			groups := make([][]string, len(u))
			for i, c := range u {
				groups[i] = g.sortedNames(c)
			}
			return nil, fmt.Errorf("callgraph: no call order, recursive groups %v", groups)
		}
		return nil, fmt.Errorf("callgraph: %w", err)
	}
	return g.nameList(sorted), nil
}

func (g *Graph) byName(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return g.names[nodes[i].ID()] < g.names[nodes[j].ID()]
	})
}

func (g *Graph) nameList(nodes []graph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, g.names[n.ID()])
	}
	return out
}

func (g *Graph) sortedNames(nodes []graph.Node) []string {
	out := g.nameList(nodes)
	sort.Strings(out)
	return out
}
