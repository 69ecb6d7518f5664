package format

import (
	"strings"

	"tsxlower/internal/ast"
)

func expressionRules() map[string]Rule {
	return map[string]Rule{
		ast.KindIdentifier: func(e *Emitter, n *ast.Opaque) {
			e.Write(n.Text("name"))
			e.bindingSuffix(n)
		},
		ast.KindPrivateIdentifier: func(e *Emitter, n *ast.Opaque) {
			e.Write(n.Text("name"))
		},
		ast.KindThisExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("this")
		},
		ast.KindSuper: func(e *Emitter, n *ast.Opaque) {
			e.Write("super")
		},
		ast.KindStringLiteral: func(e *Emitter, n *ast.Opaque) {
			if raw := n.Text("raw"); raw != "" {
				e.Write(raw)
				return
			}
			e.Write(jsQuote(n.Text("value")))
		},
		ast.KindNumericLiteral: printRaw,
		ast.KindBigIntLiteral:  printRaw,
		ast.KindRegExpLiteral:  printRaw,
		ast.KindBooleanLiteral: func(e *Emitter, n *ast.Opaque) {
			if n.Bool("value") {
				e.Write("true")
			} else {
				e.Write("false")
			}
		},
		ast.KindNullLiteral: func(e *Emitter, n *ast.Opaque) {
			e.Write("null")
		},
		ast.KindArrayExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("[")
			e.holeList(n.List("elements"))
			e.Write("]")
		},
		ast.KindObjectExpression: func(e *Emitter, n *ast.Opaque) {
			e.braced(n.Nodes("properties"))
		},
		ast.KindProperty:             printProperty,
		ast.KindUnaryExpression:      printUnary,
		ast.KindUpdateExpression:     printUpdate,
		ast.KindBinaryExpression:     printBinary,
		ast.KindLogicalExpression:    printBinary,
		ast.KindAssignmentExpression: printBinary,
		ast.KindConditionalExpression: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("test"))
			e.Write(" ? ")
			e.Node(n.Node("consequent"))
			e.Write(" : ")
			e.Node(n.Node("alternate"))
		},
		ast.KindSequenceExpression: func(e *Emitter, n *ast.Opaque) {
			for i, x := range n.Nodes("expressions") {
				if i > 0 {
					e.Write(", ")
				}
				e.Node(x)
			}
		},
		ast.KindParenthesizedExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("(")
			e.Node(n.Node("expression"))
			e.Write(")")
		},
		ast.KindAwaitExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("await ")
			e.Node(n.Node("argument"))
		},
		ast.KindYieldExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("yield")
			if n.Bool("delegate") {
				e.Write("*")
			}
			if arg := n.Node("argument"); arg != nil {
				e.Write(" ")
				e.Node(arg)
			}
		},
		ast.KindMetaProperty: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("meta"))
			e.Write(".")
			e.Node(n.Node("property"))
		},
		ast.KindImportExpression: func(e *Emitter, n *ast.Opaque) {
			e.Write("import(")
			e.listItem(n.Node("source"))
			if opts := n.Node("options"); opts != nil {
				e.Write(", ")
				e.listItem(opts)
			}
			e.Write(")")
		},
		ast.KindTSAsExpression: func(e *Emitter, n *ast.Opaque) {
			e.typed(n, " as ")
		},
		ast.KindTSSatisfiesExpression: func(e *Emitter, n *ast.Opaque) {
			e.typed(n, " satisfies ")
		},
		ast.KindCastMarker: func(e *Emitter, n *ast.Opaque) {
			e.typed(n, " as ")
		},
		ast.KindTSNonNullExpression: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("expression"))
			e.Write("!")
		},
		ast.KindTSInstantiation: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("expression"))
			e.typeArgs(n.Nodes("typeArguments"))
		},
		ast.KindDecorator: func(e *Emitter, n *ast.Opaque) {
			e.Write("@")
			e.Node(n.Node("expression"))
		},
	}
}

func printRaw(e *Emitter, n *ast.Opaque) {
	e.Write(n.Text("raw"))
}

// typed emits `expression op typeAnnotation`.
func (e *Emitter) typed(n *ast.Opaque, op string) {
	e.Node(n.Node("expression"))
	e.Write(op)
	e.Node(n.Node("typeAnnotation"))
}

// braced emits { a, b } on one line, or {} when empty.
func (e *Emitter) braced(items []ast.Node) {
	if len(items) == 0 {
		e.Write("{}")
		return
	}
	e.Write("{ ")
	e.commaList(items)
	e.Write(" }")
}

// propertyKey emits a member name, bracketed when computed.
func (e *Emitter) propertyKey(n *ast.Opaque) {
	if n.Bool("computed") {
		e.Write("[")
		e.Node(n.Node("key"))
		e.Write("]")
		return
	}
	e.Node(n.Node("key"))
}

func printProperty(e *Emitter, n *ast.Opaque) {
	value := n.Node("value")
	fn, isFn := ast.AsOpaque(value)
	switch kind := n.Text("kind"); {
	case kind == "get" || kind == "set":
		e.Write(kind)
		e.Write(" ")
		e.propertyKey(n)
		e.method(fn)
		return
	case n.Bool("method") && isFn:
		e.methodPrefix(fn)
		e.propertyKey(n)
		e.method(fn)
		return
	}
	if n.Bool("shorthand") {
		if ast.Is(value, ast.KindAssignmentPattern) {
			e.Node(value)
			return
		}
		e.Node(n.Node("key"))
		return
	}
	e.propertyKey(n)
	e.Write(": ")
	e.listItem(value)
}

func printUnary(e *Emitter, n *ast.Opaque) {
	op := n.Text("operator")
	arg := n.Node("argument")
	e.Write(op)
	if needsUnarySpace(op, arg) {
		e.Write(" ")
	}
	e.Node(arg)
}

// needsUnarySpace reports whether op and its operand would fuse into a
// different token without a space: typeof x, - -x, + ++x.
func needsUnarySpace(op string, arg ast.Node) bool {
	if op == "" {
		return false
	}
	if c := op[0]; c >= 'a' && c <= 'z' {
		return true
	}
	if op != "+" && op != "-" {
		return false
	}
	o, ok := ast.AsOpaque(arg)
	if !ok {
		return false
	}
	switch o.Type {
	case ast.KindUnaryExpression:
		return strings.HasPrefix(o.Text("operator"), op)
	case ast.KindUpdateExpression:
		return o.Bool("prefix") && strings.HasPrefix(o.Text("operator"), op)
	case ast.KindNumericLiteral, ast.KindBigIntLiteral:
		return strings.HasPrefix(o.Text("raw"), op)
	}
	return false
}

func printUpdate(e *Emitter, n *ast.Opaque) {
	if n.Bool("prefix") {
		e.Write(n.Text("operator"))
		e.Node(n.Node("argument"))
		return
	}
	e.Node(n.Node("argument"))
	e.Write(n.Text("operator"))
}

func printBinary(e *Emitter, n *ast.Opaque) {
	e.Node(n.Node("left"))
	e.Write(" ")
	e.Write(n.Text("operator"))
	e.Write(" ")
	e.Node(n.Node("right"))
}
