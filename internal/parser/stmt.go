package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// parseStatementList parses statements until stop reports true. Module
// items (import, export) are accepted only at top level.
func (p *Parser) parseStatementList(stop func() bool, topLevel bool) []ast.Node {
	var body []ast.Node
	for !stop() && !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		before := p.pos()
		stmt := p.parseStatementItem(topLevel)
		if stmt != nil {
			body = append(body, stmt)
		}
		if p.pos() == before && !p.at(token.EOF) {
			p.unexpected(diag.SynUnexpectedToken, "expected statement")
		}
	}
	return body
}

func (p *Parser) parseStatementItem(topLevel bool) ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.KwImport:
		if next := p.peek2(); next.Kind != token.LParen && next.Kind != token.Dot {
			if !topLevel {
				p.err(diag.SynUnexpectedTopLevel, tok.Span, "import declarations may only appear at top level")
			}
			return p.parseImport()
		}
	case token.KwExport:
		if !topLevel {
			p.err(diag.SynUnexpectedTopLevel, tok.Span, "export declarations may only appear at top level")
		}
		return p.parseExport()
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Node {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return p.node(ast.KindEmptyStatement, start)
	case token.KwVar, token.KwLet:
		return p.parseVariableStatement(start)
	case token.KwConst:
		if p.peek2().Kind == token.KwEnum {
			p.advance()
			return p.parseEnum(start, true)
		}
		return p.parseVariableStatement(start)
	case token.KwFunction:
		return p.parseFunctionDeclaration(start, false)
	case token.KwClass:
		return p.parseClass(start, false, nil, false)
	case token.At:
		decorators := p.parseDecorators()
		return p.parseDecorated(start, decorators)
	case token.KwEnum:
		return p.parseEnum(start, false)
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		p.advance()
		test := p.parseParenExpression()
		body := p.parseStatement()
		return p.node(ast.KindWhileStatement, start,
			ast.F("test", ast.NodeValue(test)),
			ast.F("body", ast.NodeValue(body)),
		)
	case token.KwDo:
		p.advance()
		body := p.parseStatement()
		p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body")
		test := p.parseParenExpression()
		p.eat(token.Semicolon)
		return p.node(ast.KindDoWhileStatement, start,
			ast.F("body", ast.NodeValue(body)),
			ast.F("test", ast.NodeValue(test)),
		)
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwTry:
		return p.parseTry()
	case token.KwReturn:
		p.advance()
		var arg ast.Node
		if !p.canInsertSemicolon() {
			arg = p.parseExpression()
		}
		p.consumeSemicolon()
		return p.node(ast.KindReturnStatement, start, ast.F("argument", ast.NodeValue(arg)))
	case token.KwThrow:
		p.advance()
		arg := p.parseExpression()
		p.consumeSemicolon()
		return p.node(ast.KindThrowStatement, start, ast.F("argument", ast.NodeValue(arg)))
	case token.KwBreak, token.KwContinue:
		p.advance()
		var label ast.Node
		if next := p.peek(); next.Kind == token.Ident && !next.NewlineBefore {
			label = p.ident(false)
		}
		p.consumeSemicolon()
		kind := ast.KindBreakStatement
		if tok.Kind == token.KwContinue {
			kind = ast.KindContinueStatement
		}
		return p.node(kind, start, ast.F("label", ast.NodeValue(label)))
	case token.KwDebugger:
		p.advance()
		p.consumeSemicolon()
		return p.node(ast.KindDebuggerStatement, start)
	case token.KwWith:
		p.advance()
		object := p.parseParenExpression()
		body := p.parseStatement()
		return p.node(ast.KindWithStatement, start,
			ast.F("object", ast.NodeValue(object)),
			ast.F("body", ast.NodeValue(body)),
		)
	case token.Ident:
		if decl := p.tryContextualDeclaration(start); decl != nil {
			return decl
		}
		if next := p.peek2(); next.Kind == token.Colon {
			label := p.ident(false)
			p.advance()
			body := p.parseStatement()
			return p.node(ast.KindLabeledStatement, start,
				ast.F("label", ast.NodeValue(label)),
				ast.F("body", ast.NodeValue(body)),
			)
		}
	}

	expr := p.parseExpression()
	p.consumeSemicolon()
	return p.node(ast.KindExpressionStatement, start, ast.F("expression", ast.NodeValue(expr)))
}

// tryContextualDeclaration handles declarations introduced by words that
// are also valid identifiers: async, type, interface, namespace, module,
// declare, abstract, global.
func (p *Parser) tryContextualDeclaration(start uint32) ast.Node {
	tok := p.peek()
	next := p.peek2()
	switch tok.Text {
	case "async":
		if next.Kind == token.KwFunction && !next.NewlineBefore {
			return p.parseFunctionDeclaration(start, false)
		}
	case "type":
		if p.atDeclWord("type") {
			return p.parseTypeAlias(start)
		}
	case "interface":
		if p.atDeclWord("interface") {
			return p.parseInterface(start)
		}
	case "namespace", "module":
		if p.atDeclWord(tok.Text) {
			return p.parseModuleDeclaration(start)
		}
	case "global":
		if next.Kind == token.LBrace && !next.NewlineBefore {
			return p.parseModuleDeclaration(start)
		}
	case "abstract":
		if next.Kind == token.KwClass && !next.NewlineBefore {
			p.advance()
			return p.parseClass(start, false, nil, true)
		}
	case "declare":
		if !next.NewlineBefore && p.startsDeclaration(next) {
			p.advance()
			decl := p.parseStatement()
			if o, ok := ast.AsOpaque(decl); ok {
				o.Set("declare", ast.Bool(true))
				o.Span = p.spanFrom(start)
			}
			return decl
		}
	}
	return nil
}

// startsDeclaration reports whether tok can follow 'declare'.
func (p *Parser) startsDeclaration(tok token.Token) bool {
	switch tok.Kind {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass, token.KwEnum:
		return true
	case token.Ident:
		switch tok.Text {
		case "async", "type", "interface", "namespace", "module", "global", "abstract":
			return true
		}
	}
	return false
}

func (p *Parser) parseBlock() ast.Node {
	start := p.pos()
	open := p.advance()
	body := p.parseStatementList(func() bool { return p.at(token.RBrace) }, false)
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return p.node(ast.KindBlockStatement, start, ast.F("body", ast.NodeList(body)))
}

// parseFunctionBody parses a block with module items disallowed.
func (p *Parser) parseFunctionBody() ast.Node {
	if !p.at(token.LBrace) {
		tok := p.peek()
		p.err(diag.SynUnexpectedToken, tok.Span, "expected '{' to start function body, got "+describe(tok))
		return p.node(ast.KindBlockStatement, tok.Span.Start, ast.F("body", ast.List()))
	}
	return p.parseBlock()
}

func (p *Parser) parseParenExpression() ast.Node {
	open, _ := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	expr := allowIn(p, p.parseExpression)
	p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	return expr
}

func (p *Parser) parseIf() ast.Node {
	start := p.pos()
	p.advance()
	test := p.parseParenExpression()
	consequent := p.parseStatement()
	var alternate ast.Node
	if p.eat(token.KwElse) {
		alternate = p.parseStatement()
	}
	return p.node(ast.KindIfStatement, start,
		ast.F("test", ast.NodeValue(test)),
		ast.F("consequent", ast.NodeValue(consequent)),
		ast.F("alternate", ast.NodeValue(alternate)),
	)
}

func (p *Parser) parseFor() ast.Node {
	start := p.pos()
	p.advance()
	await := false
	if p.atWord("await") {
		p.advance()
		await = true
	}
	open, _ := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for")

	var init ast.Node
	switch {
	case p.at(token.Semicolon):
	case p.at(token.KwVar) || p.at(token.KwLet) || p.at(token.KwConst):
		declStart := p.pos()
		p.noIn = true
		init = p.parseVariableDeclaration(declStart)
		p.noIn = false
	default:
		p.noIn = true
		init = p.parseExpression()
		p.noIn = false
	}

	if init != nil && (p.at(token.KwIn) || p.atWord("of")) {
		kind := ast.KindForInStatement
		if p.atWord("of") {
			kind = ast.KindForOfStatement
		}
		p.advance()
		if !ast.Is(init, ast.KindVariableDeclaration) {
			init = p.toAssignTarget(init)
		}
		var right ast.Node
		if kind == ast.KindForOfStatement {
			right = allowIn(p, p.parseAssign)
		} else {
			right = allowIn(p, p.parseExpression)
		}
		p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
		body := p.parseStatement()
		fields := []ast.Field{
			ast.F("left", ast.NodeValue(init)),
			ast.F("right", ast.NodeValue(right)),
			ast.F("body", ast.NodeValue(body)),
		}
		if kind == ast.KindForOfStatement {
			fields = append(fields, ast.F("await", ast.Bool(await)))
		}
		return p.node(kind, start, fields...)
	}

	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for statement")
	var test, update ast.Node
	if !p.at(token.Semicolon) {
		test = allowIn(p, p.parseExpression)
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for statement")
	if !p.at(token.RParen) {
		update = allowIn(p, p.parseExpression)
	}
	p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	body := p.parseStatement()
	return p.node(ast.KindForStatement, start,
		ast.F("init", ast.NodeValue(init)),
		ast.F("test", ast.NodeValue(test)),
		ast.F("update", ast.NodeValue(update)),
		ast.F("body", ast.NodeValue(body)),
	)
}

func (p *Parser) parseSwitch() ast.Node {
	start := p.pos()
	p.advance()
	disc := p.parseParenExpression()
	open, _ := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch")
	var cases []ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseStart := p.pos()
		var test ast.Node
		switch {
		case p.eat(token.KwCase):
			test = allowIn(p, p.parseExpression)
		case p.eat(token.KwDefault):
		default:
			p.unexpected(diag.SynUnexpectedToken, "expected 'case' or 'default'")
			continue
		}
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case")
		body := p.parseStatementList(func() bool {
			return p.at(token.KwCase) || p.at(token.KwDefault) || p.at(token.RBrace)
		}, false)
		cases = append(cases, p.node(ast.KindSwitchCase, caseStart,
			ast.F("test", ast.NodeValue(test)),
			ast.F("consequent", ast.NodeList(body)),
		))
	}
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return p.node(ast.KindSwitchStatement, start,
		ast.F("discriminant", ast.NodeValue(disc)),
		ast.F("cases", ast.NodeList(cases)),
	)
}

func (p *Parser) parseTry() ast.Node {
	start := p.pos()
	p.advance()
	block := p.parseFunctionBody()
	var handler, finalizer ast.Node
	if p.at(token.KwCatch) {
		catchStart := p.pos()
		p.advance()
		var param ast.Node
		if open, ok := p.expectOpt(token.LParen); ok {
			param = p.parseBindingTarget()
			annotate(param, false, p.parseTypeAnnotationOpt())
			p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
		}
		body := p.parseFunctionBody()
		handler = p.node(ast.KindCatchClause, catchStart,
			ast.F("param", ast.NodeValue(param)),
			ast.F("body", ast.NodeValue(body)),
		)
	}
	if p.eat(token.KwFinally) {
		finalizer = p.parseFunctionBody()
	}
	if handler == nil && finalizer == nil {
		p.err(diag.SynUnexpectedToken, p.peek().Span, "expected catch or finally after try block")
	}
	return p.node(ast.KindTryStatement, start,
		ast.F("block", ast.NodeValue(block)),
		ast.F("handler", ast.NodeValue(handler)),
		ast.F("finalizer", ast.NodeValue(finalizer)),
	)
}

// expectOpt consumes a token of kind k when present.
func (p *Parser) expectOpt(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) parseVariableStatement(start uint32) ast.Node {
	decl := p.parseVariableDeclaration(start)
	p.consumeSemicolon()
	decl.Span = p.spanFrom(start)
	return decl
}

// parseVariableDeclaration parses var/let/const and its declarators without
// the trailing semicolon.
func (p *Parser) parseVariableDeclaration(start uint32) *ast.Opaque {
	kind := p.advance().Text
	var decls []ast.Node
	for {
		declStart := p.pos()
		id := p.parseBindingTarget()
		definite := p.eat(token.Bang)
		annotate(id, false, p.parseTypeAnnotationOpt())
		var init ast.Node
		if p.eat(token.Assign) {
			init = p.parseAssign()
		}
		decls = append(decls, p.node(ast.KindVariableDeclarator, declStart,
			ast.F("id", ast.NodeValue(id)),
			ast.F("init", ast.NodeValue(init)),
			ast.F("definite", ast.Bool(definite)),
		))
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.node(ast.KindVariableDeclaration, start,
		ast.F("kind", ast.Str(kind)),
		ast.F("declarations", ast.NodeList(decls)),
		ast.F("declare", ast.Bool(false)),
	)
}
