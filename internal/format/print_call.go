package format

import "tsxlower/internal/ast"

func callRules() map[string]Rule {
	return map[string]Rule{
		ast.KindCallExpression: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("callee"))
			if n.Bool("optional") {
				e.Write("?.")
			}
			e.typeArgs(n.Nodes("typeArguments"))
			e.args(n.Nodes("arguments"))
		},
		ast.KindNewExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("new ")
			e.Node(n.Node("callee"))
			e.typeArgs(n.Nodes("typeArguments"))
			e.args(n.Nodes("arguments"))
		},
		ast.KindMemberExpression: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("object"))
			optional := n.Bool("optional")
			if n.Bool("computed") {
				if optional {
					e.Write("?.")
				}
				e.Write("[")
				e.Node(n.Node("property"))
				e.Write("]")
				return
			}
			if optional {
				e.Write("?.")
			} else {
				e.Write(".")
			}
			e.Node(n.Node("property"))
		},
		ast.KindSpreadElement: func(e *Emitter, n *ast.Opaque) {
			e.Write("...")
			e.Node(n.Node("argument"))
		},
	}
}

// args emits a parenthesized argument list.
func (e *Emitter) args(nodes []ast.Node) {
	e.Write("(")
	e.commaList(nodes)
	e.Write(")")
}
