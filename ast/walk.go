package ast

// Inspect はASTを深さ優先（前順）で走査し、各ノードで f を呼ぶ。
// f が false を返すとそのノードの子は辿らない。
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch node := node.(type) {
	case *Program:
		for _, s := range node.Statements {
			Inspect(s, f)
		}

	case *BlockStatement:
		for _, s := range node.Statements {
			Inspect(s, f)
		}

	case *AssignStatement:
		Inspect(node.Name, f)
		Inspect(node.Value, f)

	case *FunctionDeclaration:
		Inspect(node.Name, f)
		Inspect(node.Body, f)

	case *ReturnStatement:
		Inspect(node.ReturnValue, f)

	case *InfixExpression:
		Inspect(node.Left, f)
		Inspect(node.Right, f)

	case *CallExpression:
		Inspect(node.Function, f)
	}
}
