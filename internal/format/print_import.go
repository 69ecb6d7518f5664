package format

import "tsxlower/internal/ast"

func moduleRules() map[string]Rule {
	return map[string]Rule{
		ast.KindImportDeclaration: printImport,
		ast.KindImportSpecifier: func(e *Emitter, n *ast.Opaque) {
			e.kindPrefix(n.Text("importKind"))
			e.Node(n.Node("imported"))
			if local := n.Node("local"); local != nil {
				e.Write(" as ")
				e.Node(local)
			}
		},
		ast.KindImportDefaultSpecifier: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("local"))
		},
		ast.KindImportNamespaceSpecifier: func(e *Emitter, n *ast.Opaque) {
			e.Write("* as ")
			e.Node(n.Node("local"))
		},
		ast.KindImportAttribute: func(e *Emitter, n *ast.Opaque) {
			e.Node(n.Node("key"))
			e.Write(": ")
			e.Node(n.Node("value"))
		},
		ast.KindExportNamedDeclaration: printExportNamed,
		ast.KindExportSpecifier: func(e *Emitter, n *ast.Opaque) {
			e.kindPrefix(n.Text("exportKind"))
			e.Node(n.Node("local"))
			if exported := n.Node("exported"); exported != nil {
				e.Write(" as ")
				e.Node(exported)
			}
		},
		ast.KindExportDefaultDeclaration: func(e *Emitter, n *ast.Opaque) {
			decl := n.Node("declaration")
			e.classDecorators(decl)
			e.Write("export default ")
			e.declaration(decl)
			if !isDeclarationKind(decl) {
				e.Write(";")
			}
		},
		ast.KindExportAllDeclaration: func(e *Emitter, n *ast.Opaque) {
			e.Write("export ")
			e.kindPrefix(n.Text("exportKind"))
			e.Write("*")
			if exported := n.Node("exported"); exported != nil {
				e.Write(" as ")
				e.Node(exported)
			}
			e.from(n)
			e.Write(";")
		},
		ast.KindTSExportAssignment: func(e *Emitter, n *ast.Opaque) {
			e.Write("export = ")
			e.Node(n.Node("expression"))
			e.Write(";")
		},
		ast.KindTSNamespaceExport: func(e *Emitter, n *ast.Opaque) {
			e.Write("export as namespace ")
			e.Node(n.Node("id"))
			e.Write(";")
		},
		ast.KindTSImportEqualsDeclaration: func(e *Emitter, n *ast.Opaque) {
			if n.Bool("isExport") {
				e.Write("export ")
			}
			e.Write("import ")
			e.kindPrefix(n.Text("importKind"))
			e.Node(n.Node("id"))
			e.Write(" = ")
			e.Node(n.Node("moduleReference"))
			e.Write(";")
		},
		ast.KindTSExternalModuleReference: func(e *Emitter, n *ast.Opaque) {
			e.Write("require(")
			e.Node(n.Node("expression"))
			e.Write(")")
		},
	}
}

// kindPrefix emits "type " for type-only imports and exports.
func (e *Emitter) kindPrefix(kind string) {
	if kind == "type" {
		e.Write("type ")
	}
}

// from emits ` from "m"` and any import attributes.
func (e *Emitter) from(n *ast.Opaque) {
	src := n.Node("source")
	if src == nil {
		return
	}
	e.Write(" from ")
	e.Node(src)
	e.attributes(n.Nodes("attributes"))
}

func (e *Emitter) attributes(attrs []ast.Node) {
	if len(attrs) == 0 {
		return
	}
	e.Write(" with ")
	e.braced(attrs)
}

func printImport(e *Emitter, n *ast.Opaque) {
	e.Write("import ")
	kind := n.Text("importKind")
	specs := n.Nodes("specifiers")
	if len(specs) == 0 && kind != "type" {
		e.Node(n.Node("source"))
		e.attributes(n.Nodes("attributes"))
		e.Write(";")
		return
	}
	e.kindPrefix(kind)
	var named []ast.Node
	wrote := false
	for _, s := range specs {
		if ast.Is(s, ast.KindImportSpecifier) {
			named = append(named, s)
			continue
		}
		if wrote {
			e.Write(", ")
		}
		e.Node(s)
		wrote = true
	}
	if len(named) > 0 || !wrote {
		if wrote {
			e.Write(", ")
		}
		e.braced(named)
	}
	e.from(n)
	e.Write(";")
}

func printExportNamed(e *Emitter, n *ast.Opaque) {
	if decl := n.Node("declaration"); decl != nil {
		e.classDecorators(decl)
		e.Write("export ")
		e.declaration(decl)
		return
	}
	e.Write("export ")
	e.kindPrefix(n.Text("exportKind"))
	e.braced(n.Nodes("specifiers"))
	e.from(n)
	e.Write(";")
}

// classDecorators emits the decorators of an exported class ahead of the
// export keyword.
func (e *Emitter) classDecorators(decl ast.Node) {
	if o, ok := ast.AsOpaque(decl); ok && o.Type == ast.KindClassDeclaration {
		e.decorators(o.Nodes("decorators"))
	}
}

// declaration emits decl, leaving out class decorators already written by
// classDecorators.
func (e *Emitter) declaration(decl ast.Node) {
	if o, ok := ast.AsOpaque(decl); ok && o.Type == ast.KindClassDeclaration {
		printClass(e, o, false)
		return
	}
	e.Node(decl)
}

func isDeclarationKind(n ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case ast.KindFunctionDeclaration, ast.KindClassDeclaration, ast.KindTSInterfaceDeclaration:
		return true
	}
	return false
}
