package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/lexer"
	"tsxlower/internal/token"
)

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident:
		if tok.Text == "async" {
			if next := p.peek2(); next.Kind == token.KwFunction && !next.NewlineBefore {
				return p.parseFunctionExpression()
			}
		}
		p.advance()
		return ast.NewIdentifier(tok.Text, tok.Span)
	case token.KwThis:
		p.advance()
		return ast.NewThis(tok.Span)
	case token.KwSuper:
		p.advance()
		return ast.NewOpaque(ast.KindSuper, tok.Span)
	case token.KwNull:
		p.advance()
		return ast.NewNullLiteral(tok.Span)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.NewBooleanLiteral(tok.Kind == token.KwTrue, tok.Span)
	case token.NumberLit:
		p.advance()
		return ast.NewOpaque(ast.KindNumericLiteral, tok.Span, ast.F("raw", ast.Str(tok.Text)))
	case token.BigIntLit:
		p.advance()
		return ast.NewOpaque(ast.KindBigIntLiteral, tok.Span, ast.F("raw", ast.Str(tok.Text)))
	case token.StringLit:
		p.advance()
		return p.stringLiteral(tok)
	case token.Slash, token.SlashAssign:
		tok = p.lx.RescanRegex()
		p.advance()
		return ast.NewOpaque(ast.KindRegExpLiteral, tok.Span, ast.F("raw", ast.Str(tok.Text)))
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplate()
	case token.LParen:
		return p.parseParenthesized()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunctionExpression()
	case token.KwClass:
		return p.parseClass(start, true, nil, false)
	case token.At:
		decorators := p.parseDecorators()
		if !p.at(token.KwClass) {
			p.unexpected(diag.SynUnexpectedToken, "expected class after decorators")
			return ast.NewIdentifier("", p.spanFrom(start))
		}
		return p.parseClass(start, true, decorators, false)
	case token.KwImport:
		return p.parseImportExpression()
	case token.PrivateName:
		p.advance()
		return ast.NewOpaque(ast.KindPrivateIdentifier, tok.Span, ast.F("name", ast.Str(tok.Text)))
	case token.Lt:
		p.advance()
		p.lx.SetMode(lexer.ModeTag)
		el := p.parseMarkup(start, lexer.ModeNormal)
		p.skipAdjacentMarkup(el)
		return el
	}
	p.err(diag.SynExpectExpression, tok.Span, "expected expression, got "+describe(tok))
	if tok.Kind != token.EOF && tok.Kind != token.RBrace && tok.Kind != token.RParen &&
		tok.Kind != token.RBracket && tok.Kind != token.Semicolon {
		p.advance()
	}
	return ast.NewIdentifier("", p.span(start, start))
}

func (p *Parser) stringLiteral(tok token.Token) *ast.Opaque {
	return ast.NewOpaque(ast.KindStringLiteral, tok.Span,
		ast.F("value", ast.Str(cookString(tok.Text))),
		ast.F("raw", ast.Str(tok.Text)),
	)
}

// parseTemplate parses a template literal starting at the current
// NoSubstTemplate or TemplateHead token.
func (p *Parser) parseTemplate() ast.Node {
	start := p.pos()
	tok := p.advance()
	var quasis, exprs []ast.Node
	quasis = append(quasis, p.templateElement(tok))
	if tok.Kind == token.TemplateHead {
		for {
			exprs = append(exprs, allowIn(p, p.parseExpression))
			if !p.at(token.RBrace) {
				p.err(diag.LexUnterminatedTemplate, p.peek().Span, "expected '}' to close template substitution")
				break
			}
			part := p.lx.RescanTemplateContinuation()
			p.advance()
			quasis = append(quasis, p.templateElement(part))
			if part.Kind != token.TemplateMiddle {
				break
			}
		}
	}
	return p.node(ast.KindTemplateLiteral, start,
		ast.F("quasis", ast.NodeList(quasis)),
		ast.F("expressions", ast.NodeList(exprs)),
	)
}

func (p *Parser) templateElement(tok token.Token) ast.Node {
	tail := tok.Kind == token.NoSubstTemplate || tok.Kind == token.TemplateTail
	return ast.NewOpaque(ast.KindTemplateElement, tok.Span,
		ast.F("raw", ast.Str(templateRaw(tok.Text))),
		ast.F("tail", ast.Bool(tail)),
	)
}

func (p *Parser) parseParenthesized() ast.Node {
	start := p.pos()
	open := p.advance()
	expr := allowIn(p, p.parseExpression)
	p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	return p.node(ast.KindParenthesizedExpression, start, ast.F("expression", ast.NodeValue(expr)))
}

func (p *Parser) parseArrayLiteral() ast.Node {
	start := p.pos()
	open := p.advance()
	elems := allowIn(p, func() []ast.Value {
		var elems []ast.Value
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			if p.at(token.Comma) {
				p.advance()
				elems = append(elems, ast.Absent())
				continue
			}
			elems = append(elems, ast.NodeValue(p.parseSpreadOrAssign()))
			if !p.eat(token.Comma) {
				break
			}
		}
		return elems
	})
	p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span)
	return p.node(ast.KindArrayExpression, start, ast.F("elements", ast.List(elems...)))
}

func (p *Parser) parseObjectLiteral() ast.Node {
	start := p.pos()
	open := p.advance()
	props := allowIn(p, func() []ast.Node {
		var props []ast.Node
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			props = append(props, p.parseObjectMember())
			if !p.eat(token.Comma) {
				break
			}
		}
		return props
	})
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return p.node(ast.KindObjectExpression, start, ast.F("properties", ast.NodeList(props)))
}

func (p *Parser) parseObjectMember() ast.Node {
	start := p.pos()
	if p.eat(token.DotDotDot) {
		arg := p.parseAssign()
		return p.node(ast.KindSpreadElement, start, ast.F("argument", ast.NodeValue(arg)))
	}

	kind := "init"
	async, generator := false, false
	if p.atWord("async") && p.modifierApplies() {
		p.advance()
		async = true
	}
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	if !async && !generator && (p.atWord("get") || p.atWord("set")) && p.modifierApplies() {
		kind = p.advance().Text
	}

	key, computed := p.parsePropertyKey()
	if p.at(token.LParen) || p.at(token.Lt) {
		fn := p.parseMethodFunction(start, async, generator)
		return p.node(ast.KindProperty, start,
			ast.F("key", ast.NodeValue(key)),
			ast.F("value", ast.NodeValue(fn)),
			ast.F("computed", ast.Bool(computed)),
			ast.F("shorthand", ast.Bool(false)),
			ast.F("kind", ast.Str(kind)),
			ast.F("method", ast.Bool(kind == "init")),
		)
	}
	if kind != "init" || async || generator {
		p.unexpected(diag.SynUnexpectedToken, "expected '(' after accessor or method name")
	}

	var value ast.Node
	shorthand := false
	switch {
	case p.eat(token.Colon):
		value = p.parseAssign()
	case ast.Is(key, ast.KindIdentifier) && !computed:
		shorthand = true
		value = key
		if p.at(token.Assign) {
			p.advance()
			def := p.parseAssign()
			value = p.node(ast.KindAssignmentPattern, start,
				ast.F("left", ast.NodeValue(key)),
				ast.F("right", ast.NodeValue(def)),
			)
		}
	default:
		p.unexpected(diag.SynExpectColon, "expected ':' after property name")
	}
	return p.node(ast.KindProperty, start,
		ast.F("key", ast.NodeValue(key)),
		ast.F("value", ast.NodeValue(value)),
		ast.F("computed", ast.Bool(computed)),
		ast.F("shorthand", ast.Bool(shorthand)),
		ast.F("kind", ast.Str("init")),
		ast.F("method", ast.Bool(false)),
	)
}

// modifierApplies reports whether a word like get, set, async or static is
// used as a modifier, that is, a property name follows it.
func (p *Parser) modifierApplies() bool {
	next := p.peek2()
	switch next.Kind {
	case token.StringLit, token.NumberLit, token.BigIntLit, token.PrivateName,
		token.LBracket, token.Star:
		return true
	}
	return next.IsIdentName()
}

// parsePropertyKey parses an object or class member name.
func (p *Parser) parsePropertyKey() (ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.StringLit:
		p.advance()
		return p.stringLiteral(tok), false
	case token.NumberLit:
		p.advance()
		return ast.NewOpaque(ast.KindNumericLiteral, tok.Span, ast.F("raw", ast.Str(tok.Text))), false
	case token.BigIntLit:
		p.advance()
		return ast.NewOpaque(ast.KindBigIntLiteral, tok.Span, ast.F("raw", ast.Str(tok.Text))), false
	case token.PrivateName:
		p.advance()
		return ast.NewOpaque(ast.KindPrivateIdentifier, tok.Span, ast.F("name", ast.Str(tok.Text))), false
	case token.LBracket:
		p.advance()
		key := allowIn(p, p.parseAssign)
		p.expectClose(token.RBracket, diag.SynUnclosedBracket, tok.Span)
		return key, true
	}
	return p.ident(true), false
}

// parseMethodFunction parses the signature and body of a method whose name
// was already consumed. The body is absent for overloads and abstract members.
func (p *Parser) parseMethodFunction(start uint32, async, generator bool) *ast.Opaque {
	typeParams := p.parseTypeParamsOpt()
	params := withFlags(p, async, generator, p.parseParams)
	returnType := p.parseReturnTypeOpt()
	var body ast.Node
	if p.at(token.LBrace) {
		body = withFlags(p, async, generator, p.parseFunctionBody)
	}
	return p.node(ast.KindFunctionExpression, start,
		ast.F("id", ast.Absent()),
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("params", ast.NodeList(params)),
		ast.F("returnType", ast.NodeValue(returnType)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("async", ast.Bool(async)),
		ast.F("generator", ast.Bool(generator)),
	)
}

func (p *Parser) parseFunctionExpression() ast.Node {
	start := p.pos()
	async := p.eatWord("async")
	p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'")
	generator := p.eat(token.Star)
	var id ast.Node
	if p.at(token.Ident) {
		id = p.ident(false)
	}
	typeParams := p.parseTypeParamsOpt()
	params := withFlags(p, async, generator, p.parseParams)
	returnType := p.parseReturnTypeOpt()
	body := withFlags(p, async, generator, p.parseFunctionBody)
	return p.node(ast.KindFunctionExpression, start,
		ast.F("id", ast.NodeValue(id)),
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("params", ast.NodeList(params)),
		ast.F("returnType", ast.NodeValue(returnType)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("async", ast.Bool(async)),
		ast.F("generator", ast.Bool(generator)),
	)
}

// parseImportExpression parses import(...) and import.meta.
func (p *Parser) parseImportExpression() ast.Node {
	start := p.pos()
	kw := p.advance()
	if p.eat(token.Dot) {
		prop := p.ident(true)
		return p.node(ast.KindMetaProperty, start,
			ast.F("meta", ast.NodeValue(ast.NewIdentifier("import", kw.Span))),
			ast.F("property", ast.NodeValue(prop)),
		)
	}
	args := p.parseArguments()
	var src, options ast.Node
	if len(args) > 0 {
		src = args[0]
	}
	if len(args) > 1 {
		options = args[1]
	}
	return p.node(ast.KindImportExpression, start,
		ast.F("source", ast.NodeValue(src)),
		ast.F("options", ast.NodeValue(options)),
	)
}

// tryArrow parses an arrow function when one starts at the current token.
func (p *Parser) tryArrow() (ast.Node, bool) {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident:
		next := p.peek2()
		if next.Kind == token.FatArrow && !next.NewlineBefore {
			return p.parseArrowFromIdent(start, false), true
		}
		if tok.Text != "async" || next.NewlineBefore {
			return nil, false
		}
		switch next.Kind {
		case token.Ident:
			if after := p.peekN(2); after.Kind == token.FatArrow && !after.NewlineBefore {
				p.advance()
				return p.parseArrowFromIdent(start, true), true
			}
		case token.LParen, token.Lt:
			return speculate(p, func() (ast.Node, bool) {
				p.advance()
				return p.parseArrowRest(start, true), true
			})
		}
	case token.LParen:
		after, ok := p.skipBalanced()
		if !ok {
			return nil, false
		}
		switch {
		case after.Kind == token.FatArrow && !after.NewlineBefore:
			return p.parseArrowRest(start, false), true
		case after.Kind == token.Colon:
			return speculate(p, func() (ast.Node, bool) {
				return p.parseArrowRest(start, false), true
			})
		}
	case token.Lt:
		if p.atGenericArrow() {
			return p.parseArrowRest(start, false), true
		}
	}
	return nil, false
}

// atGenericArrow tells <T,>(x) => x and <T extends U>(x) => x from markup.
func (p *Parser) atGenericArrow() bool {
	i := 1
	if t := p.peekN(1); t.Kind == token.KwConst || t.Kind == token.KwIn || (t.Kind == token.Ident && t.Text == "out") {
		i++
	}
	if p.peekN(i).Kind != token.Ident {
		return false
	}
	next := p.peekN(i + 1)
	return next.Kind == token.Comma || next.Kind == token.KwExtends
}

func (p *Parser) parseArrowFromIdent(start uint32, async bool) ast.Node {
	param := p.ident(false)
	p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'")
	body, expression := p.parseArrowBody(async)
	return p.node(ast.KindArrowFunctionExpression, start,
		ast.F("typeParameters", ast.List()),
		ast.F("params", ast.NodeList([]ast.Node{param})),
		ast.F("returnType", ast.Absent()),
		ast.F("body", ast.NodeValue(body)),
		ast.F("async", ast.Bool(async)),
		ast.F("expression", ast.Bool(expression)),
	)
}

// parseArrowRest parses [<T>](params)[: R] => body.
func (p *Parser) parseArrowRest(start uint32, async bool) ast.Node {
	typeParams := p.parseTypeParamsOpt()
	params := withFlags(p, async, false, p.parseParams)
	returnType := p.parseReturnTypeOpt()
	if tok := p.peek(); tok.Kind != token.FatArrow || tok.NewlineBefore {
		p.err(diag.SynUnexpectedToken, tok.Span, "expected '=>', got "+describe(tok))
	} else {
		p.advance()
	}
	body, expression := p.parseArrowBody(async)
	return p.node(ast.KindArrowFunctionExpression, start,
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("params", ast.NodeList(params)),
		ast.F("returnType", ast.NodeValue(returnType)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("async", ast.Bool(async)),
		ast.F("expression", ast.Bool(expression)),
	)
}

func (p *Parser) parseArrowBody(async bool) (ast.Node, bool) {
	if p.at(token.LBrace) {
		return withFlags(p, async, false, p.parseFunctionBody), false
	}
	noIn := p.noIn
	body := withFlags(p, async, false, func() ast.Node {
		p.noIn = noIn
		return p.parseAssign()
	})
	return body, true
}
