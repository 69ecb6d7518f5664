package format

import "tsxlower/internal/ast"

func patternRules() map[string]Rule {
	return map[string]Rule{
		ast.KindObjectPattern: func(e *Emitter, n *ast.Opaque) {
			e.braced(n.Nodes("properties"))
			e.bindingSuffix(n)
		},
		ast.KindArrayPattern: func(e *Emitter, n *ast.Opaque) {
			e.Write("[")
			e.holeList(n.List("elements"))
			e.Write("]")
			e.bindingSuffix(n)
		},
		ast.KindAssignmentPattern: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("left"))
			e.Write(" = ")
			e.listItem(n.Node("right"))
		},
		ast.KindRestElement: func(e *Emitter, n *ast.Opaque) {
			e.Write("...")
			e.Node(n.Node("argument"))
			e.bindingSuffix(n)
		},
		ast.KindTSParameterProperty: func(e *Emitter, n *ast.Opaque) {
			e.textList(n.List("modifiers"))
			e.Node(n.Node("parameter"))
		},
	}
}

// bindingSuffix emits the `?` and `: T` a parameter or declarator carries.
func (e *Emitter) bindingSuffix(n *ast.Opaque) {
	if n.Bool("optional") {
		e.Write("?")
	}
	e.typeAnnotation(n.Node("typeAnnotation"))
}

// params emits (a, b?: T, ...rest). Parameter decorators go first, ahead
// of any parameter-property modifiers.
func (e *Emitter) params(nodes []ast.Node) {
	e.Write("(")
	for i, p := range nodes {
		if i > 0 {
			e.Write(", ")
		}
		e.decorators(paramDecorators(p))
		e.Node(p)
	}
	e.Write(")")
}

func paramDecorators(p ast.Node) []ast.Node {
	o, ok := ast.AsOpaque(p)
	if !ok {
		return nil
	}
	if o.Type == ast.KindTSParameterProperty {
		if inner, ok := ast.AsOpaque(o.Node("parameter")); ok {
			return inner.Nodes("decorators")
		}
		return nil
	}
	return o.Nodes("decorators")
}

// decorators emits each decorator followed by a space.
func (e *Emitter) decorators(nodes []ast.Node) {
	for _, d := range nodes {
		e.Node(d)
		e.Write(" ")
	}
}
