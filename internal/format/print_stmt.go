package format

import (
	"tsxlower/internal/ast"
)

func statementRules() map[string]Rule {
	return map[string]Rule{
		ast.KindExpressionStatement: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("expression"))
			e.Write(";")
		},
		ast.KindBlockStatement: func(e *Emitter, n *ast.Opaque) {
			e.block(n.Nodes("body"), n.Span)
		},
		ast.KindEmptyStatement: func(e *Emitter, n *ast.Opaque) {
			e.Write(";")
		},
		ast.KindDebuggerStatement: func(e *Emitter, n *ast.Opaque) {
			e.Write("debugger;")
		},
		ast.KindVariableDeclaration: func(e *Emitter, n *ast.Opaque) {
			e.varDecl(n)
			e.Write(";")
		},
		ast.KindVariableDeclarator: printDeclarator,
		ast.KindIfStatement:        printIf,
		ast.KindForStatement:       printFor,
		ast.KindForInStatement: func(e *Emitter, n *ast.Opaque) {
			printForInOf(e, n, " in ")
		},
		ast.KindForOfStatement: func(e *Emitter, n *ast.Opaque) {
			printForInOf(e, n, " of ")
		},
		ast.KindWhileStatement: func(e *Emitter, n *ast.Opaque) {
			e.Write("while (")
			e.Node(n.Node("test"))
			e.Write(")")
			e.body(n.Node("body"))
		},
		ast.KindDoWhileStatement: func(e *Emitter, n *ast.Opaque) {
			e.Write("do")
			e.body(n.Node("body"))
			e.Write(" while (")
			e.Node(n.Node("test"))
			e.Write(");")
		},
		ast.KindWithStatement: func(e *Emitter, n *ast.Opaque) {
			e.Write("with (")
			e.Node(n.Node("object"))
			e.Write(")")
			e.body(n.Node("body"))
		},
		ast.KindReturnStatement: func(e *Emitter, n *ast.Opaque) {
			e.keywordArg("return", n.Node("argument"))
		},
		ast.KindThrowStatement: func(e *Emitter, n *ast.Opaque) {
			e.keywordArg("throw", n.Node("argument"))
		},
		ast.KindBreakStatement: func(e *Emitter, n *ast.Opaque) {
			e.keywordArg("break", n.Node("label"))
		},
		ast.KindContinueStatement: func(e *Emitter, n *ast.Opaque) {
			e.keywordArg("continue", n.Node("label"))
		},
		ast.KindLabeledStatement: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("label"))
			e.Write(":")
			e.body(n.Node("body"))
		},
		ast.KindSwitchStatement: printSwitch,
		ast.KindSwitchCase:      printSwitchCase,
		ast.KindTryStatement:    printTry,
		ast.KindCatchClause: func(e *Emitter, n *ast.Opaque) {
			e.Write("catch ")
			if param := n.Node("param"); param != nil {
				e.Write("(")
				e.Node(param)
				e.Write(") ")
			}
			e.Node(n.Node("body"))
		},
	}
}

// keywordArg emits `kw;` or `kw arg;`.
func (e *Emitter) keywordArg(kw string, arg ast.Node) {
	e.Write(kw)
	if arg != nil {
		e.Write(" ")
		e.Node(arg)
	}
	e.Write(";")
}

// body emits the statement controlled by if/for/while/labels after a space.
func (e *Emitter) body(n ast.Node) {
	if n == nil {
		e.Write(";")
		return
	}
	if ast.Is(n, ast.KindEmptyStatement) {
		e.Write(";")
		return
	}
	e.Write(" ")
	e.Node(n)
}

// varDecl emits a declaration without its semicolon, as for-loop heads need.
func (e *Emitter) varDecl(n *ast.Opaque) {
	if n.Bool("declare") {
		e.Write("declare ")
	}
	e.Write(n.Text("kind"))
	e.Write(" ")
	e.commaList(n.Nodes("declarations"))
}

func printDeclarator(e *Emitter, n *ast.Opaque) {
	id := n.Node("id")
	if n.Bool("definite") {
		if o, ok := ast.AsOpaque(id); ok && o.Type == ast.KindIdentifier {
			e.Write(o.Text("name"))
			e.Write("!")
			e.typeAnnotation(o.Node("typeAnnotation"))
		} else {
			e.Node(id)
		}
	} else {
		e.Node(id)
	}
	if init := n.Node("init"); init != nil {
		e.Write(" = ")
		e.Node(init)
	}
}

// forHead emits the init clause of a for statement.
func (e *Emitter) forHead(n ast.Node) {
	if o, ok := ast.AsOpaque(n); ok && o.Type == ast.KindVariableDeclaration {
		e.varDecl(o)
		return
	}
	e.Node(n)
}

func printIf(e *Emitter, n *ast.Opaque) {
	e.Write("if (")
	e.Node(n.Node("test"))
	e.Write(")")
	cons := n.Node("consequent")
	e.body(cons)
	alt := n.Node("alternate")
	if alt == nil {
		return
	}
	if ast.Is(cons, ast.KindBlockStatement) {
		e.Write(" else")
	} else {
		e.writer.Newline()
		e.Write("else")
	}
	e.body(alt)
}

func printFor(e *Emitter, n *ast.Opaque) {
	e.Write("for (")
	if init := n.Node("init"); init != nil {
		e.forHead(init)
	}
	e.Write(";")
	if test := n.Node("test"); test != nil {
		e.Write(" ")
		e.Node(test)
	}
	e.Write(";")
	if update := n.Node("update"); update != nil {
		e.Write(" ")
		e.Node(update)
	}
	e.Write(")")
	e.body(n.Node("body"))
}

func printForInOf(e *Emitter, n *ast.Opaque, op string) {
	e.Write("for ")
	if n.Bool("await") {
		e.Write("await ")
	}
	e.Write("(")
	e.forHead(n.Node("left"))
	e.Write(op)
	e.Node(n.Node("right"))
	e.Write(")")
	e.body(n.Node("body"))
}

func printSwitch(e *Emitter, n *ast.Opaque) {
	e.Write("switch (")
	e.Node(n.Node("discriminant"))
	e.Write(") ")
	e.block(n.Nodes("cases"), n.Span)
}

func printSwitchCase(e *Emitter, n *ast.Opaque) {
	if test := n.Node("test"); test != nil {
		e.Write("case ")
		e.Node(test)
		e.Write(":")
	} else {
		e.Write("default:")
	}
	cons := n.Nodes("consequent")
	if len(cons) == 1 && ast.Is(cons[0], ast.KindBlockStatement) {
		e.Write(" ")
		e.Node(cons[0])
		return
	}
	if len(cons) == 0 {
		return
	}
	e.writer.Newline()
	e.writer.IndentPush()
	e.statements(cons, n.Span.End)
	e.writer.IndentPop()
}

func printTry(e *Emitter, n *ast.Opaque) {
	e.Write("try ")
	e.Node(n.Node("block"))
	if h := n.Node("handler"); h != nil {
		e.Write(" ")
		e.Node(h)
	}
	if f := n.Node("finalizer"); f != nil {
		e.Write(" finally ")
		e.Node(f)
	}
}
