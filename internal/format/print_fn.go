package format

import "tsxlower/internal/ast"

func declRules() map[string]Rule {
	return map[string]Rule{
		ast.KindProgram: func(e *Emitter, n *ast.Opaque) {
			e.statements(n.Nodes("body"), n.Span.End)
		},
		ast.KindFunctionDeclaration:     printFunction,
		ast.KindFunctionExpression:      printFunction,
		ast.KindArrowFunctionExpression: printArrow,
		ast.KindClassDeclaration: func(e *Emitter, n *ast.Opaque) {
			printClass(e, n, true)
		},
		ast.KindClassExpression: func(e *Emitter, n *ast.Opaque) {
			printClass(e, n, true)
		},
		ast.KindClassBody: func(e *Emitter, n *ast.Opaque) {
			e.classBody(n)
		},
		ast.KindMethodDefinition:   printMethodDefinition,
		ast.KindPropertyDefinition: printPropertyDefinition,
		ast.KindStaticBlock: func(e *Emitter, n *ast.Opaque) {
			e.Write("static ")
			e.Node(n.Node("body"))
		},
		ast.KindTSInterfaceDeclaration: func(e *Emitter, n *ast.Opaque) {
			e.declare(n)
			e.Write("interface ")
			e.Node(n.Node("id"))
			e.typeArgs(n.Nodes("typeParameters"))
			if ext := n.Nodes("extends"); len(ext) > 0 {
				e.Write(" extends ")
				e.commaList(ext)
			}
			e.Write(" ")
			e.Node(n.Node("body"))
		},
		ast.KindTSInterfaceBody: func(e *Emitter, n *ast.Opaque) {
			e.memberBlock(n.Nodes("body"), n.Span, ";")
		},
		ast.KindTSInterfaceHeritage: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("expression"))
			e.typeArgs(n.Nodes("typeArguments"))
		},
		ast.KindTSTypeAliasDeclaration: func(e *Emitter, n *ast.Opaque) {
			e.declare(n)
			e.Write("type ")
			e.Node(n.Node("id"))
			e.typeArgs(n.Nodes("typeParameters"))
			e.Write(" = ")
			e.Node(n.Node("typeAnnotation"))
			e.Write(";")
		},
		ast.KindTSEnumDeclaration: func(e *Emitter, n *ast.Opaque) {
			e.declare(n)
			if n.Bool("const") {
				e.Write("const ")
			}
			e.Write("enum ")
			e.Node(n.Node("id"))
			e.Write(" ")
			e.memberBlock(n.Nodes("members"), n.Span, ",")
		},
		ast.KindTSEnumMember: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("id"))
			if init := n.Node("initializer"); init != nil {
				e.Write(" = ")
				e.Node(init)
			}
		},
		ast.KindTSModuleDeclaration: func(e *Emitter, n *ast.Opaque) {
			e.declare(n)
			if kind := n.Text("kind"); kind == "global" {
				e.Write("global")
			} else {
				e.Write(kind)
				e.Write(" ")
				e.Node(n.Node("id"))
			}
			if body := n.Node("body"); body != nil {
				e.Write(" ")
				e.Node(body)
				return
			}
			e.Write(";")
		},
		ast.KindTSModuleBlock: func(e *Emitter, n *ast.Opaque) {
			e.block(n.Nodes("body"), n.Span)
		},
	}
}

func (e *Emitter) declare(n *ast.Opaque) {
	if n.Bool("declare") {
		e.Write("declare ")
	}
}

// printFunction emits function declarations and expressions. A declaration
// without a body is an overload signature and ends with a semicolon.
func printFunction(e *Emitter, n *ast.Opaque) {
	e.declare(n)
	if n.Bool("async") {
		e.Write("async ")
	}
	e.Write("function")
	if n.Bool("generator") {
		e.Write("*")
	}
	if id := n.Node("id"); id != nil {
		e.Write(" ")
		e.Node(id)
	}
	e.signature(n, ": ")
	if body := n.Node("body"); body != nil {
		e.Write(" ")
		e.Node(body)
		return
	}
	e.Write(";")
}

func printArrow(e *Emitter, n *ast.Opaque) {
	if n.Bool("async") {
		e.Write("async ")
	}
	e.signature(n, ": ")
	e.Write(" => ")
	body := n.Node("body")
	if n.Bool("expression") && startsWithBrace(body) {
		e.Write("(")
		e.Node(body)
		e.Write(")")
		return
	}
	e.listItem(body)
}

// startsWithBrace reports whether n prints with a leading '{', which after
// => would read as a block.
func startsWithBrace(n ast.Node) bool {
	for n != nil {
		o, ok := ast.AsOpaque(n)
		if !ok {
			return false
		}
		switch o.Type {
		case ast.KindObjectExpression, ast.KindObjectPattern:
			return true
		case ast.KindMemberExpression:
			n = o.Node("object")
		case ast.KindCallExpression, ast.KindTaggedTemplateExpression:
			n = o.Node(leftChild[o.Type])
		case ast.KindBinaryExpression, ast.KindLogicalExpression, ast.KindAssignmentExpression:
			n = o.Node("left")
		case ast.KindConditionalExpression:
			n = o.Node("test")
		case ast.KindSequenceExpression:
			items := o.Nodes("expressions")
			if len(items) == 0 {
				return false
			}
			n = items[0]
		case ast.KindTSAsExpression, ast.KindTSSatisfiesExpression, ast.KindTSNonNullExpression, ast.KindCastMarker:
			n = o.Node("expression")
		case ast.KindUpdateExpression:
			if o.Bool("prefix") {
				return false
			}
			n = o.Node("argument")
		default:
			return false
		}
	}
	return false
}

var leftChild = map[string]string{
	ast.KindCallExpression:           "callee",
	ast.KindTaggedTemplateExpression: "tag",
}

// printClass emits a class. Exports pass withDecorators=false after
// writing the decorators ahead of the export keyword themselves.
func printClass(e *Emitter, n *ast.Opaque, withDecorators bool) {
	if withDecorators {
		e.decorators(n.Nodes("decorators"))
	}
	e.declare(n)
	if n.Bool("abstract") {
		e.Write("abstract ")
	}
	e.Write("class")
	if id := n.Node("id"); id != nil {
		e.Write(" ")
		e.Node(id)
	}
	e.typeArgs(n.Nodes("typeParameters"))
	if super := n.Node("superClass"); super != nil {
		e.Write(" extends ")
		e.Node(super)
		e.typeArgs(n.Nodes("superTypeArguments"))
	}
	if impl := n.Nodes("implements"); len(impl) > 0 {
		e.Write(" implements ")
		e.commaList(impl)
	}
	e.Write(" ")
	e.Node(n.Node("body"))
}

// classBody emits members one per line. Index signatures need the
// semicolon that interface members get from memberBlock.
func (e *Emitter) classBody(n *ast.Opaque) {
	members := n.Nodes("body")
	if len(members) == 0 && !e.pendingBefore(n.Span.End) {
		e.Write("{}")
		return
	}
	e.Write("{")
	e.writer.Newline()
	e.writer.IndentPush()
	for _, m := range members {
		e.flushBefore(m.Pos().Start)
		e.Node(m)
		if ast.Is(m, ast.KindTSIndexSignature) {
			e.Write(";")
		}
		e.writer.Newline()
	}
	e.flushBefore(n.Span.End)
	e.writer.IndentPop()
	e.Write("}")
}

// methodPrefix emits async and * from a method's function value.
func (e *Emitter) methodPrefix(fn *ast.Opaque) {
	if fn == nil {
		return
	}
	if fn.Bool("async") {
		e.Write("async ")
	}
	if fn.Bool("generator") {
		e.Write("*")
	}
}

// method emits the signature and body of a method's function value.
func (e *Emitter) method(fn *ast.Opaque) {
	if fn == nil {
		e.Write("()")
		return
	}
	e.signature(fn, ": ")
	if body := fn.Node("body"); body != nil {
		e.Write(" ")
		e.Node(body)
	}
}

func printMethodDefinition(e *Emitter, n *ast.Opaque) {
	e.decorators(n.Nodes("decorators"))
	e.textList(n.List("modifiers"))
	fn, _ := ast.AsOpaque(n.Node("value"))
	if kind := n.Text("kind"); kind == "get" || kind == "set" {
		e.Write(kind)
		e.Write(" ")
	} else {
		e.methodPrefix(fn)
	}
	e.propertyKey(n)
	if n.Bool("optional") {
		e.Write("?")
	}
	e.method(fn)
	if fn == nil || fn.Node("body") == nil {
		e.Write(";")
	}
}

func printPropertyDefinition(e *Emitter, n *ast.Opaque) {
	e.decorators(n.Nodes("decorators"))
	e.textList(n.List("modifiers"))
	e.propertyKey(n)
	switch {
	case n.Bool("optional"):
		e.Write("?")
	case n.Bool("definite"):
		e.Write("!")
	}
	e.typeAnnotation(n.Node("typeAnnotation"))
	if v := n.Node("value"); v != nil {
		e.Write(" = ")
		e.listItem(v)
	}
	e.Write(";")
}
