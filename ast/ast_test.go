package ast

import (
	"testing"

	"climb/token"
)

// TestString は `let myVar = 10 + 11;` と関数宣言を手で組み立て、
// String() の出力が期待通りかを検証する。
func TestString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&AssignStatement{
				Token: token.Token{Type: token.LET, Literal: "let"},
				Name: &Identifier{
					Token: token.Token{Type: token.IDENT, Literal: "myVar"},
					Value: "myVar",
				},
				Value: &InfixExpression{
					Token:    token.Token{Type: token.PLUS, Literal: "+"},
					Left:     &IntegerLiteral{Token: token.Token{Type: token.INT, Literal: "10"}, Value: 10},
					Operator: Add,
					Right:    &IntegerLiteral{Token: token.Token{Type: token.INT, Literal: "11"}, Value: 11},
				},
			},
			&FunctionDeclaration{
				Token: token.Token{Type: token.FUNCTION, Literal: "fn"},
				Name:  &Identifier{Token: token.Token{Type: token.IDENT, Literal: "main"}, Value: "main"},
				Body: &BlockStatement{
					Token: token.Token{Type: token.LBRACE, Literal: "{"},
					Statements: []Statement{
						&ReturnStatement{
							Token: token.Token{Type: token.RETURN, Literal: "return"},
							ReturnValue: &CallExpression{
								Token:    token.Token{Type: token.IDENT, Literal: "f"},
								Function: &Identifier{Token: token.Token{Type: token.IDENT, Literal: "f"}, Value: "f"},
							},
						},
					},
				},
			},
		},
	}

	want := "let myVar = (10 + 11);fn main() { return f(); }"
	if program.String() != want {
		t.Errorf("program.String() wrong. got=%q", program.String())
	}
}

func TestOpFromToken(t *testing.T) {
	tests := []struct {
		tok  token.TokenType
		want Op
	}{
		{token.PLUS, Add},
		{token.MINUS, Sub},
		{token.ASTERISK, Mul},
		{token.SLASH, Div},
		{token.CARET, Exp},
	}
	for _, tt := range tests {
		if got := OpFromToken(tt.tok); got != tt.want {
			t.Errorf("OpFromToken(%q) = %s, want %s", tt.tok, got, tt.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Errorf("OpFromToken(%q) did not panic", token.ASSIGN)
		}
	}()
	OpFromToken(token.ASSIGN)
}

func TestInspectVisitsCalls(t *testing.T) {
	call := func(name string) *CallExpression {
		id := &Identifier{Token: token.Token{Type: token.IDENT, Literal: name}, Value: name}
		return &CallExpression{Token: id.Token, Function: id}
	}
	body := &BlockStatement{Statements: []Statement{
		&ReturnStatement{ReturnValue: &InfixExpression{Left: call("a"), Operator: Mul, Right: call("b")}},
	}}
	decl := &FunctionDeclaration{Name: &Identifier{Value: "main"}, Body: body}

	var names []string
	Inspect(decl, func(n Node) bool {
		if c, ok := n.(*CallExpression); ok {
			names = append(names, c.Function.Value)
		}
		return true
	})

	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Inspect visited calls %v, want [a b]", names)
	}
}
