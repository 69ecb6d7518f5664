package format

import "tsxlower/internal/ast"

func typeRules() map[string]Rule {
	return map[string]Rule{
		ast.KindTSKeywordType: func(e *Emitter, n *ast.Opaque) {
			e.Write(n.Text("keyword"))
		},
		ast.KindTSThisType: func(e *Emitter, n *ast.Opaque) {
			e.Write("this")
		},
		ast.KindTSTypeReference: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("typeName"))
			e.typeArgs(n.Nodes("typeArguments"))
		},
		ast.KindTSQualifiedName: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("left"))
			e.Write(".")
			e.Node(n.Node("right"))
		},
		ast.KindTSArrayType: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("elementType"))
			e.Write("[]")
		},
		ast.KindTSIndexedAccessType: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("objectType"))
			e.Write("[")
			e.Node(n.Node("indexType"))
			e.Write("]")
		},
		ast.KindTSTupleType: func(e *Emitter, n *ast.Opaque) {
			e.Write("[")
			e.commaList(n.Nodes("elementTypes"))
			e.Write("]")
		},
		ast.KindTSNamedTupleMember: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("label"))
			if n.Bool("optional") {
				e.Write("?")
			}
			e.typeAnnotation(n.Node("elementType"))
		},
		ast.KindTSOptionalType: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("typeAnnotation"))
			e.Write("?")
		},
		ast.KindTSRestType: func(e *Emitter, n *ast.Opaque) {
			e.Write("...")
			e.Node(n.Node("typeAnnotation"))
		},
		ast.KindTSUnionType: func(e *Emitter, n *ast.Opaque) {
			e.joined(n.Nodes("types"), " | ")
		},
		ast.KindTSIntersectionType: func(e *Emitter, n *ast.Opaque) {
			e.joined(n.Nodes("types"), " & ")
		},
		ast.KindTSFunctionType: func(e *Emitter, n *ast.Opaque) {
			e.signature(n, " => ")
		},
		ast.KindTSConstructorType: func(e *Emitter, n *ast.Opaque) {
			if n.Bool("abstract") {
				e.Write("abstract ")
			}
			e.Write("new ")
			e.signature(n, " => ")
		},
		ast.KindTSTypeLiteral: func(e *Emitter, n *ast.Opaque) {
			e.memberBlock(n.Nodes("members"), n.Span, ";")
		},
		ast.KindTSPropertySignature: func(e *Emitter, n *ast.Opaque) {
			e.textList(n.List("modifiers"))
			e.propertyKey(n)
			if n.Bool("optional") {
				e.Write("?")
			}
			e.typeAnnotation(n.Node("typeAnnotation"))
		},
		ast.KindTSMethodSignature: func(e *Emitter, n *ast.Opaque) {
			if kind := n.Text("kind"); kind == "get" || kind == "set" {
				e.Write(kind)
				e.Write(" ")
			}
			e.propertyKey(n)
			if n.Bool("optional") {
				e.Write("?")
			}
			e.signature(n, ": ")
		},
		ast.KindTSCallSignature: func(e *Emitter, n *ast.Opaque) {
			e.signature(n, ": ")
		},
		ast.KindTSConstructSignature: func(e *Emitter, n *ast.Opaque) {
			e.Write("new ")
			e.signature(n, ": ")
		},
		ast.KindTSIndexSignature: func(e *Emitter, n *ast.Opaque) {
			e.textList(n.List("modifiers"))
			e.Write("[")
			e.commaList(n.Nodes("parameters"))
			e.Write("]")
			e.typeAnnotation(n.Node("typeAnnotation"))
		},
		ast.KindTSLiteralType: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("literal"))
		},
		ast.KindTSTypeQuery: func(e *Emitter, n *ast.Opaque) {
			e.Write("typeof ")
			e.Node(n.Node("exprName"))
			e.typeArgs(n.Nodes("typeArguments"))
		},
		ast.KindTSTypeOperator: func(e *Emitter, n *ast.Opaque) {
			e.Write(n.Text("operator"))
			e.Write(" ")
			e.Node(n.Node("typeAnnotation"))
		},
		ast.KindTSConditionalType: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("checkType"))
			e.Write(" extends ")
			e.Node(n.Node("extendsType"))
			e.Write(" ? ")
			e.Node(n.Node("trueType"))
			e.Write(" : ")
			e.Node(n.Node("falseType"))
		},
		ast.KindTSInferType: func(e *Emitter, n *ast.Opaque) {
			e.Write("infer ")
			e.Node(n.Node("typeParameter"))
		},
		ast.KindTSParenthesizedType: func(e *Emitter, n *ast.Opaque) {
			e.Write("(")
			e.Node(n.Node("typeAnnotation"))
			e.Write(")")
		},
		ast.KindTSMappedType: printMappedType,
		ast.KindTSTypePredicate: func(e *Emitter, n *ast.Opaque) {
			if n.Bool("asserts") {
				e.Write("asserts ")
			}
			e.Node(n.Node("parameterName"))
			if typ := n.Node("typeAnnotation"); typ != nil {
				e.Write(" is ")
				e.Node(typ)
			}
		},
		ast.KindTSImportType: func(e *Emitter, n *ast.Opaque) {
			e.Write("import(")
			e.Node(n.Node("argument"))
			e.Write(")")
			if q := n.Node("qualifier"); q != nil {
				e.Write(".")
				e.Node(q)
			}
			e.typeArgs(n.Nodes("typeArguments"))
		},
		ast.KindTSTypeParameter: func(e *Emitter, n *ast.Opaque) {
			e.textList(n.List("modifiers"))
			e.Node(n.Node("name"))
			if c := n.Node("constraint"); c != nil {
				e.Write(" extends ")
				e.Node(c)
			}
			if d := n.Node("default"); d != nil {
				e.Write(" = ")
				e.Node(d)
			}
		},
	}
}

// typeAnnotation emits `: T` when typ is present.
func (e *Emitter) typeAnnotation(typ ast.Node) {
	if typ == nil {
		return
	}
	e.Write(": ")
	e.Node(typ)
}

// signature emits <T>(params) followed by ret and the return type, if any.
// Function types always have one; methods and call signatures may not.
func (e *Emitter) signature(n *ast.Opaque, ret string) {
	e.typeArgs(n.Nodes("typeParameters"))
	e.params(n.Nodes("params"))
	if rt := n.Node("returnType"); rt != nil {
		e.Write(ret)
		e.Node(rt)
	}
}

func (e *Emitter) joined(nodes []ast.Node, sep string) {
	for i, n := range nodes {
		if i > 0 {
			e.Write(sep)
		}
		e.Node(n)
	}
}

func printMappedType(e *Emitter, n *ast.Opaque) {
	e.Write("{ ")
	if ro := n.Text("readonly"); ro != "" {
		e.Write(ro)
		if ro != "+" && ro != "-" {
			e.Write(" ")
		}
	}
	e.Write("[")
	if param, ok := ast.AsOpaque(n.Node("typeParameter")); ok {
		e.Node(param.Node("name"))
		e.Write(" in ")
		e.Node(param.Node("constraint"))
	}
	if nt := n.Node("nameType"); nt != nil {
		e.Write(" as ")
		e.Node(nt)
	}
	e.Write("]")
	e.Write(n.Text("optional"))
	e.typeAnnotation(n.Node("typeAnnotation"))
	e.Write(" }")
}
