package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// parseImport parses an import declaration or import x = require("m").
func (p *Parser) parseImport() ast.Node {
	start := p.pos()
	p.advance() // import

	if p.at(token.StringLit) {
		src := p.parseModuleSource()
		attrs := p.parseImportAttributes()
		p.consumeSemicolon()
		return p.node(ast.KindImportDeclaration, start,
			ast.F("specifiers", ast.List()),
			ast.F("source", ast.NodeValue(src)),
			ast.F("importKind", ast.Str("value")),
			ast.F("attributes", ast.NodeList(attrs)),
		)
	}

	kind := "value"
	if p.atTypeModifier() {
		p.advance()
		kind = "type"
	}

	if p.at(token.Ident) && p.peek2().Kind == token.Assign {
		return p.parseImportEquals(start, kind, false)
	}

	var specs []ast.Node
	if p.at(token.Ident) {
		specStart := p.pos()
		local := p.ident(false)
		specs = append(specs, p.node(ast.KindImportDefaultSpecifier, specStart, ast.F("local", ast.NodeValue(local))))
		if !p.eat(token.Comma) {
			return p.finishImport(start, specs, kind)
		}
	}
	switch {
	case p.at(token.Star):
		specStart := p.pos()
		p.advance()
		p.expectWord("as")
		local := p.ident(false)
		specs = append(specs, p.node(ast.KindImportNamespaceSpecifier, specStart, ast.F("local", ast.NodeValue(local))))
	case p.at(token.LBrace):
		specs = append(specs, p.parseSpecifierList(ast.KindImportSpecifier)...)
	default:
		p.unexpected(diag.SynUnexpectedToken, "expected import specifiers")
	}
	return p.finishImport(start, specs, kind)
}

func (p *Parser) finishImport(start uint32, specs []ast.Node, kind string) ast.Node {
	p.expectWord("from")
	src := p.parseModuleSource()
	attrs := p.parseImportAttributes()
	p.consumeSemicolon()
	return p.node(ast.KindImportDeclaration, start,
		ast.F("specifiers", ast.NodeList(specs)),
		ast.F("source", ast.NodeValue(src)),
		ast.F("importKind", ast.Str(kind)),
		ast.F("attributes", ast.NodeList(attrs)),
	)
}

// parseImportEquals parses the rest of import id = require("m") or
// import id = A.B.
func (p *Parser) parseImportEquals(start uint32, kind string, isExport bool) ast.Node {
	id := p.ident(false)
	p.advance() // =
	var ref ast.Node
	if p.atWord("require") && p.peek2().Kind == token.LParen {
		refStart := p.pos()
		p.advance()
		open := p.advance()
		expr := p.parseModuleSource()
		p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
		ref = p.node(ast.KindTSExternalModuleReference, refStart, ast.F("expression", ast.NodeValue(expr)))
	} else {
		ref = p.parseEntityName(false)
	}
	p.consumeSemicolon()
	return p.node(ast.KindTSImportEqualsDeclaration, start,
		ast.F("id", ast.NodeValue(id)),
		ast.F("moduleReference", ast.NodeValue(ref)),
		ast.F("importKind", ast.Str(kind)),
		ast.F("isExport", ast.Bool(isExport)),
	)
}

// atTypeModifier reports whether the current 'type' word marks a type-only
// import or export rather than naming a default binding called type.
func (p *Parser) atTypeModifier() bool {
	if !p.atWord("type") {
		return false
	}
	next := p.peek2()
	switch next.Kind {
	case token.LBrace, token.Star:
		return true
	case token.Ident:
		if next.Text == "from" {
			return p.peekN(2).Kind != token.StringLit
		}
		return true
	}
	return false
}

// parseSpecifierList parses { a, b as c, type d } for imports and exports.
func (p *Parser) parseSpecifierList(kind string) []ast.Node {
	open := p.advance()
	var specs []ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		specStart := p.pos()
		specKind := "value"
		if p.atWord("type") {
			next := p.peek2()
			if next.IsIdentName() || next.Kind == token.StringLit {
				afterAs := next.Text == "as" && p.peekN(2).Kind != token.Comma && p.peekN(2).Kind != token.RBrace
				if next.Text != "as" || afterAs {
					p.advance()
					specKind = "type"
				}
			}
		}
		first := p.moduleExportName()
		var second ast.Node
		if p.eatWord("as") {
			second = p.moduleExportName()
		}
		if kind == ast.KindImportSpecifier {
			specs = append(specs, p.node(kind, specStart,
				ast.F("imported", ast.NodeValue(first)),
				ast.F("local", ast.NodeValue(second)),
				ast.F("importKind", ast.Str(specKind)),
			))
		} else {
			specs = append(specs, p.node(kind, specStart,
				ast.F("local", ast.NodeValue(first)),
				ast.F("exported", ast.NodeValue(second)),
				ast.F("exportKind", ast.Str(specKind)),
			))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return specs
}

// moduleExportName parses an identifier name or a string used as a name.
func (p *Parser) moduleExportName() ast.Node {
	if tok := p.peek(); tok.Kind == token.StringLit {
		p.advance()
		return p.stringLiteral(tok)
	}
	return p.ident(true)
}

func (p *Parser) parseModuleSource() ast.Node {
	tok := p.peek()
	if tok.Kind != token.StringLit {
		p.err(diag.SynUnexpectedToken, tok.Span, "expected module specifier string, got "+describe(tok))
		return ast.NewStringLiteral("", p.span(tok.Span.Start, tok.Span.Start))
	}
	p.advance()
	return p.stringLiteral(tok)
}

// parseImportAttributes parses an optional with { type: "json" } clause.
// The older assert spelling is accepted on the same line.
func (p *Parser) parseImportAttributes() []ast.Node {
	if !p.at(token.KwWith) && !(p.atWord("assert") && !p.peek().NewlineBefore) {
		return nil
	}
	p.advance()
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after import attributes keyword")
	if !ok {
		return nil
	}
	attrs := []ast.Node{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		attrStart := p.pos()
		key := p.moduleExportName()
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' in import attribute")
		value := p.parseModuleSource()
		attrs = append(attrs, p.node(ast.KindImportAttribute, attrStart,
			ast.F("key", ast.NodeValue(key)),
			ast.F("value", ast.NodeValue(value)),
		))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return attrs
}

func (p *Parser) expectWord(word string) bool {
	if p.eatWord(word) {
		return true
	}
	tok := p.peek()
	p.err(diag.SynUnexpectedToken, tok.Span, "expected '"+word+"', got "+describe(tok))
	return false
}

// parseExport parses every export form.
func (p *Parser) parseExport() ast.Node {
	start := p.pos()
	p.advance() // export

	switch {
	case p.at(token.KwDefault):
		p.advance()
		decl := p.parseExportDefault()
		return p.node(ast.KindExportDefaultDeclaration, start, ast.F("declaration", ast.NodeValue(decl)))

	case p.at(token.Assign):
		p.advance()
		expr := allowIn(p, p.parseAssign)
		p.consumeSemicolon()
		return p.node(ast.KindTSExportAssignment, start, ast.F("expression", ast.NodeValue(expr)))

	case p.atWord("as") && p.peek2().Text == "namespace":
		p.advance()
		p.advance()
		id := p.ident(false)
		p.consumeSemicolon()
		return p.node(ast.KindTSNamespaceExport, start, ast.F("id", ast.NodeValue(id)))

	case p.at(token.KwImport) && p.peek2().Kind == token.Ident:
		p.advance()
		kind := "value"
		if p.atTypeModifier() {
			p.advance()
			kind = "type"
		}
		return p.parseImportEquals(start, kind, true)
	}

	kind := "value"
	if p.atWord("type") {
		if next := p.peek2(); next.Kind == token.LBrace || next.Kind == token.Star {
			p.advance()
			kind = "type"
		}
	}

	switch {
	case p.at(token.Star):
		p.advance()
		var exported ast.Node
		if p.eatWord("as") {
			exported = p.moduleExportName()
		}
		p.expectWord("from")
		src := p.parseModuleSource()
		attrs := p.parseImportAttributes()
		p.consumeSemicolon()
		return p.node(ast.KindExportAllDeclaration, start,
			ast.F("exported", ast.NodeValue(exported)),
			ast.F("source", ast.NodeValue(src)),
			ast.F("exportKind", ast.Str(kind)),
			ast.F("attributes", ast.NodeList(attrs)),
		)

	case p.at(token.LBrace):
		specs := p.parseSpecifierList(ast.KindExportSpecifier)
		var src ast.Node
		var attrs []ast.Node
		if p.eatWord("from") {
			src = p.parseModuleSource()
			attrs = p.parseImportAttributes()
		}
		p.consumeSemicolon()
		return p.node(ast.KindExportNamedDeclaration, start,
			ast.F("declaration", ast.Absent()),
			ast.F("specifiers", ast.NodeList(specs)),
			ast.F("source", ast.NodeValue(src)),
			ast.F("exportKind", ast.Str(kind)),
			ast.F("attributes", ast.NodeList(attrs)),
		)
	}

	declStart := p.pos()
	var decl ast.Node
	if p.at(token.At) {
		decl = p.parseDecorated(declStart, p.parseDecorators())
	} else {
		decl = p.parseStatement()
	}
	if !isDeclaration(decl) {
		p.err(diag.SynUnexpectedToken, decl.Pos(), "expected declaration after 'export'")
	}
	return p.node(ast.KindExportNamedDeclaration, start,
		ast.F("declaration", ast.NodeValue(decl)),
		ast.F("specifiers", ast.List()),
		ast.F("source", ast.Absent()),
		ast.F("exportKind", ast.Str(kind)),
		ast.F("attributes", ast.List()),
	)
}

// parseExportDefault parses what follows export default: a function or
// class declaration with an optional name, an interface, or an expression.
func (p *Parser) parseExportDefault() ast.Node {
	start := p.pos()
	switch {
	case p.at(token.KwFunction):
		return p.parseFunctionDeclaration(start, true)
	case p.atWord("async") && p.peek2().Kind == token.KwFunction && !p.peek2().NewlineBefore:
		return p.parseFunctionDeclaration(start, true)
	case p.at(token.KwClass):
		return p.parseClass(start, false, nil, false)
	case p.atWord("abstract") && p.peek2().Kind == token.KwClass:
		p.advance()
		return p.parseClass(start, false, nil, true)
	case p.at(token.At):
		decorators := p.parseDecorators()
		return p.parseDecorated(start, decorators)
	case p.atDeclWord("interface"):
		return p.parseInterface(start)
	}
	expr := allowIn(p, p.parseAssign)
	p.consumeSemicolon()
	return expr
}

var declarationKinds = map[string]bool{
	ast.KindVariableDeclaration:    true,
	ast.KindFunctionDeclaration:    true,
	ast.KindClassDeclaration:       true,
	ast.KindTSInterfaceDeclaration: true,
	ast.KindTSTypeAliasDeclaration: true,
	ast.KindTSEnumDeclaration:      true,
	ast.KindTSModuleDeclaration:    true,
}

func isDeclaration(n ast.Node) bool {
	return n != nil && declarationKinds[n.Kind()]
}
