// Package parser は climb 言語のパーサーを実装するパッケージ。
// 文は再帰下降で、二項演算式は優先順位上昇法（precedence climbing）で解析し、
// トークン列をAST（抽象構文木）に変換する。
//
// 優先順位上昇法の核心:
// - 左辺のアトムを読んだあと、最小優先順位 minPrecedence 以上の演算子が続く限り
//   その演算子を消費して右辺を再帰的に読み、左辺に畳み込む
// - 右辺を読むときの最小優先順位を、左結合なら precedence+1、
//   右結合なら precedence のままにすることで結合性まで表現できる
//
// 構文エラーは見つけた時点で *object.Error を返して打ち切る（fail-fast）。
package parser

import (
	"strconv"

	"climb/ast"
	"climb/lexer"
	"climb/object"
	"climb/token"
)

// 演算子の優先順位。数値が大きいほど強く結合する。
const (
	_       int = iota
	SUM         // + -
	PRODUCT     // * /
	POWER       // ^
)

// LOWEST は実在する演算子の最小優先順位。
// 式の先頭と括弧の内側はこの値から解析を始める。
const LOWEST = SUM

type associativity int

const (
	leftAssoc associativity = iota
	rightAssoc
)

type operator struct {
	precedence int
	assoc      associativity
}

// precedences はトークンタイプから優先順位と結合性への対応表。
// 構築後は読み取り専用。
var precedences = map[token.TokenType]operator{
	token.PLUS:     {SUM, leftAssoc},
	token.MINUS:    {SUM, leftAssoc},
	token.ASTERISK: {PRODUCT, leftAssoc},
	token.SLASH:    {PRODUCT, leftAssoc},
	token.CARET:    {POWER, rightAssoc},
}

// Parser は climb 言語のパーサー。
// curToken はまだ消費していない現在のトークン、peekToken はその次のトークン。
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	tracing    bool
	traceLevel int
}

// Option はパーサーの設定を変更する関数。
type Option func(*Parser)

// WithTrace は各解析関数の入口と出口を verbose ログに出力させる。
func WithTrace(on bool) Option {
	return func(p *Parser) { p.tracing = on }
}

// New はレキサーからパーサーを生成する。
// curToken と peekToken の両方をセットするために2回読む。
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l}
	for _, opt := range opts {
		opt(p)
	}

	p.nextToken()
	p.nextToken()

	return p
}

// nextToken は現在のトークンを消費して次に進む。
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expect は現在のトークンが期待する型であれば消費して返す。
// 違う場合はトークンを進めずに UnexpectedToken エラーを返す。
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	if !p.curTokenIs(t) {
		return p.curToken, p.unexpected(string(t))
	}
	tok := p.curToken
	p.nextToken()
	return tok, nil
}

// unexpected は現在のトークンが期待と違った場合のエラーを作る。
func (p *Parser) unexpected(want string) *object.Error {
	got := string(p.curToken.Type)
	if p.curTokenIs(token.EOF) {
		got = "end of input"
	} else if p.curToken.Literal != "" && p.curToken.Literal != got {
		got += " " + strconv.Quote(p.curToken.Literal)
	}
	return object.NewErrorAt(p.curToken.Pos, object.UnexpectedToken,
		"expected %s, got %s", want, got)
}

// =====================
// プログラムと文のパース
// =====================

// ParseProgram はプログラム全体をパースしてASTのルートノードを返す。
// 文として解釈できないトークンが残った場合はエラーにする。
func (p *Parser) ParseProgram() (*ast.Program, error) {
	stmts, err := p.ParseStatements()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.unexpected("let, fn, return or end of input")
	}
	return &ast.Program{Statements: stmts}, nil
}

// ParseStatements は現在のトークンに応じて文を読み続ける。
// let, fn, return 以外のトークンが来たら文の列の終わりとみなして返す。
// 各文は最低でもキーワードを1つ消費するので、このループは空回りしない。
func (p *Parser) ParseStatements() ([]ast.Statement, error) {
	defer p.untrace(p.trace("ParseStatements"))

	stmts := []ast.Statement{}
	for {
		var (
			stmt ast.Statement
			err  error
		)
		switch p.curToken.Type {
		case token.LET:
			stmt, err = p.ParseAssign()
		case token.FUNCTION:
			stmt, err = p.ParseFnDecl()
		case token.RETURN:
			stmt, err = p.ParseReturn()
		default:
			return stmts, nil
		}
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// ParseAssign は `let <identifier> = <expression>;` をパースする。
func (p *Parser) ParseAssign() (*ast.AssignStatement, error) {
	defer p.untrace(p.trace("ParseAssign"))

	letTok, err := p.expect(token.LET)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.ParseExpr(LOWEST)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.AssignStatement{
		Token: letTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Value: value,
	}, nil
}

// ParseFnDecl は `fn <identifier>() { <statements> }` をパースする。
// 括弧は必須で、中にパラメータを書くとエラーになる。
func (p *Parser) ParseFnDecl() (*ast.FunctionDeclaration, error) {
	defer p.untrace(p.trace("ParseFnDecl"))

	fnTok, err := p.expect(token.FUNCTION)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.RPAREN) {
		return nil, p.unexpected(") (function parameters are not supported)")
	}
	p.nextToken()

	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	stmts, err := p.ParseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Token: fnTok,
		Name:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Body:  &ast.BlockStatement{Token: lbrace, Statements: stmts},
	}, nil
}

// ParseReturn は `return <expression>;` をパースする。
func (p *Parser) ParseReturn() (*ast.ReturnStatement, error) {
	defer p.untrace(p.trace("ParseReturn"))

	retTok, err := p.expect(token.RETURN)
	if err != nil {
		return nil, err
	}
	value, err := p.ParseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.ReturnStatement{Token: retTok, ReturnValue: value}, nil
}

// =====================
// 式のパース（優先順位上昇法）
// =====================

// ParseExpr は優先順位上昇法のメインループ。
// 例: `1 + 2 * 3` を ParseExpr(LOWEST) で読む場合
//   - アトム 1 を読む
//   - + (SUM) >= LOWEST なので消費し、右辺を ParseExpr(SUM+1) で読む
//   - その中で 2 を読み、* (PRODUCT) >= SUM+1 なので (2 * 3) を畳み込む
//   - 結果: (1 + (2 * 3))
func (p *Parser) ParseExpr(minPrecedence int) (ast.Expression, error) {
	defer p.untrace(p.trace("ParseExpr"))

	lhs, err := p.ParseAtom()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := precedences[p.curToken.Type]
		if !ok || op.precedence < minPrecedence {
			return lhs, nil
		}

		next := op.precedence + 1
		if op.assoc == rightAssoc {
			next = op.precedence
		}

		opTok := p.curToken
		p.nextToken()

		rhs, err := p.ParseExpr(next)
		if err != nil {
			return nil, err
		}

		lhs = &ast.InfixExpression{
			Token:    opTok,
			Left:     lhs,
			Operator: ast.OpFromToken(opTok.Type),
			Right:    rhs,
		}
	}
}

// ParseAtom は整数リテラル、変数参照、関数呼び出し `name()`、
// 括弧で囲まれた式のいずれかをパースする。
func (p *Parser) ParseAtom() (ast.Expression, error) {
	defer p.untrace(p.trace("ParseAtom"))

	switch p.curToken.Type {
	case token.INT:
		return p.parseIntegerLiteral()

	case token.IDENT:
		ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		// 1トークン先読みして `name` と `name(` を区別する
		if !p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			return ident, nil
		}
		p.nextToken()
		p.nextToken()
		if !p.curTokenIs(token.RPAREN) {
			return nil, p.unexpected(") (call arguments are not supported)")
		}
		p.nextToken()
		return &ast.CallExpression{Token: ident.Token, Function: ident}, nil

	case token.LPAREN:
		p.nextToken()
		// 括弧の内側は外側の最小優先順位に関係なく全ての演算子を受け付ける
		exp, err := p.ParseExpr(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return exp, nil

	case token.EOF:
		return nil, object.NewErrorAt(p.curToken.Pos, object.InvalidAtom,
			"unexpected end of input, expected an integer, identifier or (")

	default:
		return nil, object.NewErrorAt(p.curToken.Pos, object.InvalidAtom,
			"got %q, expected an integer, identifier or (", p.curToken.Literal)
	}
}

// parseIntegerLiteral は整数リテラルを int64 に変換する。
// int64 に収まらないリテラルは Overflow エラーにする。
func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		return nil, object.NewErrorAt(p.curToken.Pos, object.Overflow,
			"could not parse %q as a 64-bit integer", p.curToken.Literal)
	}

	lit := &ast.IntegerLiteral{Token: p.curToken, Value: value}
	p.nextToken()
	return lit, nil
}

// =====================
// 対話モード
// =====================

// ParseExpression は1行に書かれた式を1つだけパースする。
// 末尾のセミコロンは省略可能で、それ以外のトークンが残るとエラーになる。
func (p *Parser) ParseExpression() (ast.Expression, error) {
	exp, err := p.ParseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.unexpected("operator or end of input")
	}
	return exp, nil
}

// ParseLine は対話モードの1行をパースする。
// let, fn, return で始まる行は文の列（*ast.Program）、それ以外は式として扱う。
func (p *Parser) ParseLine() (ast.Node, error) {
	switch p.curToken.Type {
	case token.LET, token.FUNCTION, token.RETURN:
		program, err := p.ParseProgram()
		if err != nil {
			return nil, err
		}
		return program, nil
	default:
		return p.ParseExpression()
	}
}
