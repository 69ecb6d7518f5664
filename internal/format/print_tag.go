package format

import "tsxlower/internal/ast"

func templateRules() map[string]Rule {
	return map[string]Rule{
		ast.KindTemplateLiteral: func(e *Emitter, n *ast.Opaque) {
			e.template(n.Nodes("quasis"), n.Nodes("expressions"))
		},
		ast.KindTSTemplateLiteralType: func(e *Emitter, n *ast.Opaque) {
			e.template(n.Nodes("quasis"), n.Nodes("types"))
		},
		ast.KindTemplateElement: func(e *Emitter, n *ast.Opaque) {
			e.writer.WriteRaw(n.Text("raw"))
		},
		ast.KindTaggedTemplateExpression: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("tag"))
			e.typeArgs(n.Nodes("typeArguments"))
			e.Node(n.Node("quasi"))
		},
	}
}

// template emits `q0${s0}q1${s1}q2`. Quasi text is written raw so that
// line breaks inside the literal are not indented.
func (e *Emitter) template(quasis, subs []ast.Node) {
	e.writer.WriteRaw("`")
	for i, q := range quasis {
		e.Node(q)
		if i < len(subs) {
			e.writer.WriteRaw("${")
			e.Node(subs[i])
			e.writer.WriteRaw("}")
		}
	}
	e.writer.WriteRaw("`")
}
