// Package ast は climb 言語の抽象構文木（AST）を定義するパッケージ。
// パーサーがトークン列から変換した結果がこのASTになる。
// ASTの各ノードは Node インターフェースを実装し、
// 文（Statement）と式（Expression）の2種類に大別される。
//
// 子ノードは親が排他的に所有する。共有も循環もない木なので、
// 評価器は単純な再帰で走査できる。
package ast

import (
	"bytes"

	"climb/token"
)

// Node はASTの全ノードが実装する基本インターフェース。
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Statement は「文」を表すノードのインターフェース。
type Statement interface {
	Node
	statementNode()
}

// Expression は「式」を表すノードのインターフェース。
type Expression interface {
	Node
	expressionNode()
}

// Program はASTのルートノード。トップレベルの文の列。
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var out bytes.Buffer

	for _, s := range p.Statements {
		out.WriteString(s.String())
	}

	return out.String()
}

// =====================
// 文（Statements）
// =====================

// AssignStatement は `let <name> = <expression>;` という変数束縛の文を表す。
// 同名の変数が既にあれば再束縛する。
type AssignStatement struct {
	Token token.Token // token.LET トークン
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() token.Position  { return as.Token.Pos }

func (as *AssignStatement) String() string {
	var out bytes.Buffer

	out.WriteString(as.TokenLiteral() + " ")
	out.WriteString(as.Name.String())
	out.WriteString(" = ")
	if as.Value != nil {
		out.WriteString(as.Value.String())
	}
	out.WriteString(";")

	return out.String()
}

// FunctionDeclaration は `fn <name>() { <statements> }` という関数宣言を表す。
// 引数は持たない。同名の関数を再宣言すると後勝ちで上書きされる。
type FunctionDeclaration struct {
	Token token.Token // 'fn' トークン
	Name  *Identifier
	Body  *BlockStatement
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) Pos() token.Position  { return fd.Token.Pos }

// String は `fn <name>() { <body> }` の形式で返す。
func (fd *FunctionDeclaration) String() string {
	var out bytes.Buffer

	out.WriteString(fd.TokenLiteral() + " ")
	out.WriteString(fd.Name.String())
	out.WriteString("() { ")
	out.WriteString(fd.Body.String())
	out.WriteString(" }")

	return out.String()
}

// ReturnStatement は `return <expression>;` を表す。
// 評価器はこの文で処理を打ち切らない。関数の値は最後に実行された文の値になる。
type ReturnStatement struct {
	Token       token.Token // 'return' トークン
	ReturnValue Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() token.Position  { return rs.Token.Pos }

func (rs *ReturnStatement) String() string {
	var out bytes.Buffer

	out.WriteString(rs.TokenLiteral() + " ")
	if rs.ReturnValue != nil {
		out.WriteString(rs.ReturnValue.String())
	}
	out.WriteString(";")

	return out.String()
}

// BlockStatement は `{ ... }` で囲まれた文の列。関数本体で使われる。
type BlockStatement struct {
	Token      token.Token // '{' トークン
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() token.Position  { return bs.Token.Pos }

func (bs *BlockStatement) String() string {
	var out bytes.Buffer

	for i, s := range bs.Statements {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
	}

	return out.String()
}

// =====================
// 式（Expressions）
// =====================

// Identifier は変数参照を表す。名前は評価時に環境から解決される。
type Identifier struct {
	Token token.Token // token.IDENT トークン
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral は整数リテラル（例: 5, 100）を表す。
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Pos() token.Position  { return il.Token.Pos }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// CallExpression は引数なしの関数呼び出し `<name>()` を表す。
type CallExpression struct {
	Token    token.Token // 関数名の IDENT トークン
	Function *Identifier
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() token.Position  { return ce.Token.Pos }
func (ce *CallExpression) String() string       { return ce.Function.String() + "()" }

// InfixExpression は二項演算式（例: 5 + 10）を表す。
// Left と Right はこのノードだけが所有する。
type InfixExpression struct {
	Token    token.Token // 演算子トークン（例: +）
	Left     Expression
	Operator Op
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Pos() token.Position  { return ie.Token.Pos }

// String は `(<left> <operator> <right>)` の形式で返す（例: "(5 + 10)"）。
// 括弧で結合順序がそのまま読めるので、パーサーのテストで使う。
func (ie *InfixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator.String() + " ")
	out.WriteString(ie.Right.String())
	out.WriteString(")")

	return out.String()
}
