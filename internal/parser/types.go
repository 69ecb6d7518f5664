package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// Type annotations are parsed into TS* opaque nodes. Inside types '>' is
// always a single token, so nested generics need no splitting.

func (p *Parser) parseTypeAnnotationOpt() ast.Node {
	if !p.eat(token.Colon) {
		return nil
	}
	return p.parseType()
}

func (p *Parser) parseReturnTypeOpt() ast.Node {
	if !p.eat(token.Colon) {
		return nil
	}
	return p.parseReturnType()
}

// parseReturnType parses a type or a type predicate (x is T, asserts x).
func (p *Parser) parseReturnType() ast.Node {
	start := p.pos()
	asserts := false
	if p.atWord("asserts") {
		next := p.peek2()
		if !next.NewlineBefore && (next.Kind == token.Ident || next.Kind == token.KwThis) {
			p.advance()
			asserts = true
		}
	}
	tok := p.peek()
	if asserts || tok.Kind == token.Ident || tok.Kind == token.KwThis {
		if next := p.peek2(); asserts || (next.Kind == token.Ident && next.Text == "is" && !next.NewlineBefore) {
			var name ast.Node
			if p.at(token.KwThis) {
				p.advance()
				name = ast.NewOpaque(ast.KindTSThisType, tok.Span)
			} else {
				name = p.ident(false)
			}
			var typ ast.Node
			if p.eatWord("is") {
				typ = p.parseType()
			}
			return p.node(ast.KindTSTypePredicate, start,
				ast.F("asserts", ast.Bool(asserts)),
				ast.F("parameterName", ast.NodeValue(name)),
				ast.F("typeAnnotation", ast.NodeValue(typ)),
			)
		}
	}
	return p.parseType()
}

func (p *Parser) parseType() ast.Node {
	return p.parseTypeWith(true)
}

// parseTypeWith parses a full type. Conditional types are disabled inside
// the extends clause of another conditional type and after 'infer X'.
func (p *Parser) parseTypeWith(allowConditional bool) ast.Node {
	start := p.pos()
	if p.atFunctionType() {
		return p.parseFunctionType(start, false)
	}
	if p.atWord("abstract") && p.peek2().Kind == token.KwNew {
		p.advance()
		return p.parseFunctionType(start, true)
	}
	if p.at(token.KwNew) {
		return p.parseFunctionType(start, false)
	}

	check := p.parseUnionType()
	if !allowConditional || !p.at(token.KwExtends) || p.peek().NewlineBefore {
		return check
	}
	p.advance()
	ext := p.parseTypeWith(false)
	p.expect(token.Question, diag.SynUnexpectedToken, "expected '?' in conditional type")
	trueType := p.parseType()
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional type")
	falseType := p.parseType()
	return p.node(ast.KindTSConditionalType, start,
		ast.F("checkType", ast.NodeValue(check)),
		ast.F("extendsType", ast.NodeValue(ext)),
		ast.F("trueType", ast.NodeValue(trueType)),
		ast.F("falseType", ast.NodeValue(falseType)),
	)
}

// atFunctionType reports whether a function type such as (a: T) => R or
// <T>(x: T) => T starts here.
func (p *Parser) atFunctionType() bool {
	if p.at(token.Lt) {
		return true
	}
	if !p.at(token.LParen) {
		return false
	}
	after, ok := p.skipBalanced()
	return ok && after.Kind == token.FatArrow
}

func (p *Parser) parseFunctionType(start uint32, abstract bool) ast.Node {
	kind := ast.KindTSFunctionType
	if p.eat(token.KwNew) {
		kind = ast.KindTSConstructorType
	}
	typeParams := p.parseTypeParamsOpt()
	params := p.parseParams()
	p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in function type")
	ret := p.parseReturnType()
	fields := []ast.Field{
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("params", ast.NodeList(params)),
		ast.F("returnType", ast.NodeValue(ret)),
	}
	if kind == ast.KindTSConstructorType {
		fields = append(fields, ast.F("abstract", ast.Bool(abstract)))
	}
	return p.node(kind, start, fields...)
}

func (p *Parser) parseUnionType() ast.Node {
	return p.parseTypeList(token.Pipe, ast.KindTSUnionType, p.parseIntersectionType)
}

func (p *Parser) parseIntersectionType() ast.Node {
	return p.parseTypeList(token.Amp, ast.KindTSIntersectionType, p.parseTypeOperator)
}

// parseTypeList parses sep-separated operands. A leading sep is allowed.
func (p *Parser) parseTypeList(sep token.Kind, kind string, operand func() ast.Node) ast.Node {
	start := p.pos()
	leading := p.eat(sep)
	types := []ast.Node{operand()}
	for p.eat(sep) {
		types = append(types, operand())
	}
	if len(types) == 1 && !leading {
		return types[0]
	}
	return p.node(kind, start, ast.F("types", ast.NodeList(types)))
}

func (p *Parser) parseTypeOperator() ast.Node {
	start := p.pos()
	tok := p.peek()
	if tok.Kind == token.Ident {
		switch tok.Text {
		case "keyof", "unique", "readonly":
			if next := p.peek2(); next.Kind != token.Dot && next.Kind != token.Comma &&
				next.Kind != token.Gt && next.Kind != token.RParen && next.Kind != token.Semicolon {
				p.advance()
				arg := p.parseTypeOperator()
				return p.node(ast.KindTSTypeOperator, start,
					ast.F("operator", ast.Str(tok.Text)),
					ast.F("typeAnnotation", ast.NodeValue(arg)),
				)
			}
		case "infer":
			if p.peek2().Kind == token.Ident {
				p.advance()
				name := p.ident(false)
				var constraint ast.Node
				if p.at(token.KwExtends) {
					if c, ok := speculate(p, func() (ast.Node, bool) {
						p.advance()
						c := p.parseTypeWith(false)
						return c, !p.at(token.Question)
					}); ok {
						constraint = c
					}
				}
				param := p.node(ast.KindTSTypeParameter, start,
					ast.F("name", ast.NodeValue(name)),
					ast.F("constraint", ast.NodeValue(constraint)),
					ast.F("default", ast.Absent()),
					ast.F("modifiers", ast.List()),
				)
				return p.node(ast.KindTSInferType, start, ast.F("typeParameter", ast.NodeValue(param)))
			}
		}
	}
	return p.parsePostfixType()
}

func (p *Parser) parsePostfixType() ast.Node {
	start := p.pos()
	typ := p.parsePrimaryType()
	for p.at(token.LBracket) && !p.peek().NewlineBefore {
		open := p.advance()
		if p.eat(token.RBracket) {
			typ = p.node(ast.KindTSArrayType, start, ast.F("elementType", ast.NodeValue(typ)))
			continue
		}
		index := p.parseType()
		p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span)
		typ = p.node(ast.KindTSIndexedAccessType, start,
			ast.F("objectType", ast.NodeValue(typ)),
			ast.F("indexType", ast.NodeValue(index)),
		)
	}
	return typ
}

func (p *Parser) parsePrimaryType() ast.Node {
	tok := p.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident:
		if keywordTypes[tok.Text] && p.peek2().Kind != token.Dot {
			p.advance()
			return ast.NewKeywordType(tok.Text, tok.Span)
		}
		return p.parseTypeReference()
	case token.KwVoid, token.KwNull:
		p.advance()
		return ast.NewKeywordType(tok.Text, tok.Span)
	case token.KwThis:
		p.advance()
		return ast.NewOpaque(ast.KindTSThisType, tok.Span)
	case token.KwTypeof:
		return p.parseTypeQuery()
	case token.KwImport:
		return p.parseImportType()
	case token.StringLit, token.NumberLit, token.BigIntLit, token.KwTrue, token.KwFalse:
		lit := p.parsePrimary()
		return p.node(ast.KindTSLiteralType, start, ast.F("literal", ast.NodeValue(lit)))
	case token.Minus:
		if next := p.peek2(); next.Kind == token.NumberLit || next.Kind == token.BigIntLit {
			lit := p.parseUnary()
			return p.node(ast.KindTSLiteralType, start, ast.F("literal", ast.NodeValue(lit)))
		}
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplateType()
	case token.LBrace:
		if p.atMappedType() {
			return p.parseMappedType()
		}
		members := p.parseTypeMembers()
		return p.node(ast.KindTSTypeLiteral, start, ast.F("members", ast.NodeList(members)))
	case token.LBracket:
		return p.parseTupleType()
	case token.LParen:
		open := p.advance()
		inner := p.parseType()
		p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
		return p.node(ast.KindTSParenthesizedType, start, ast.F("typeAnnotation", ast.NodeValue(inner)))
	case token.KwConst:
		// as const
		p.advance()
		return ast.NewTypeReference("const", tok.Span)
	}
	if tok.IsKeyword() {
		return p.parseTypeReference()
	}
	p.err(diag.SynExpectType, tok.Span, "expected type, got "+describe(tok))
	if tok.Kind != token.EOF && tok.Kind != token.RBrace && tok.Kind != token.RParen &&
		tok.Kind != token.Semicolon && tok.Kind != token.Gt {
		p.advance()
	}
	return ast.NewKeywordType("any", p.span(start, start))
}

// parseEntityName parses A or A.B.C as Identifier / TSQualifiedName.
func (p *Parser) parseEntityName(allowKeyword bool) ast.Node {
	start := p.pos()
	var name ast.Node = p.ident(allowKeyword)
	for p.at(token.Dot) {
		p.advance()
		right := p.ident(true)
		name = p.node(ast.KindTSQualifiedName, start,
			ast.F("left", ast.NodeValue(name)),
			ast.F("right", ast.NodeValue(right)),
		)
	}
	return name
}

func (p *Parser) parseTypeReference() ast.Node {
	start := p.pos()
	name := p.parseEntityName(true)
	var args []ast.Node
	if p.at(token.Lt) && !p.peek().NewlineBefore {
		args = p.parseTypeArguments()
	}
	return p.node(ast.KindTSTypeReference, start,
		ast.F("typeName", ast.NodeValue(name)),
		ast.F("typeArguments", ast.NodeList(args)),
	)
}

func (p *Parser) parseTypeQuery() ast.Node {
	start := p.pos()
	p.advance()
	var expr ast.Node
	if p.at(token.KwImport) {
		expr = p.parseImportType()
	} else {
		expr = p.parseEntityName(true)
	}
	var args []ast.Node
	if p.at(token.Lt) && !p.peek().NewlineBefore {
		args = p.parseTypeArguments()
	}
	return p.node(ast.KindTSTypeQuery, start,
		ast.F("exprName", ast.NodeValue(expr)),
		ast.F("typeArguments", ast.NodeList(args)),
	)
}

// parseImportType parses import("mod").Name<T>.
func (p *Parser) parseImportType() ast.Node {
	start := p.pos()
	p.advance()
	open, _ := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after import")
	var arg ast.Node
	if tok := p.peek(); tok.Kind == token.StringLit {
		p.advance()
		arg = p.stringLiteral(tok)
	} else {
		p.err(diag.SynUnexpectedToken, tok.Span, "expected module string, got "+describe(tok))
	}
	p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	var qualifier ast.Node
	if p.eat(token.Dot) {
		qualifier = p.parseEntityName(true)
	}
	var args []ast.Node
	if p.at(token.Lt) {
		args = p.parseTypeArguments()
	}
	return p.node(ast.KindTSImportType, start,
		ast.F("argument", ast.NodeValue(arg)),
		ast.F("qualifier", ast.NodeValue(qualifier)),
		ast.F("typeArguments", ast.NodeList(args)),
	)
}

func (p *Parser) parseTemplateType() ast.Node {
	start := p.pos()
	tok := p.advance()
	quasis := []ast.Node{p.templateElement(tok)}
	var types []ast.Node
	if tok.Kind == token.TemplateHead {
		for {
			types = append(types, p.parseType())
			if !p.at(token.RBrace) {
				p.err(diag.LexUnterminatedTemplate, p.peek().Span, "expected '}' to close template type")
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
	return p.node(ast.KindTSTemplateLiteralType, start,
		ast.F("quasis", ast.NodeList(quasis)),
		ast.F("types", ast.NodeList(types)),
	)
}

func (p *Parser) parseTupleType() ast.Node {
	start := p.pos()
	open := p.advance()
	var elems []ast.Node
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseTupleElement())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span)
	return p.node(ast.KindTSTupleType, start, ast.F("elementTypes", ast.NodeList(elems)))
}

func (p *Parser) parseTupleElement() ast.Node {
	start := p.pos()
	rest := p.eat(token.DotDotDot)

	var elem ast.Node
	tok := p.peek()
	next := p.peek2()
	named := tok.IsIdentName() && (next.Kind == token.Colon ||
		(next.Kind == token.Question && p.peekN(2).Kind == token.Colon))
	if named {
		label := p.ident(true)
		optional := p.eat(token.Question)
		p.advance() // ':'
		typ := p.parseType()
		elem = p.node(ast.KindTSNamedTupleMember, start,
			ast.F("label", ast.NodeValue(label)),
			ast.F("elementType", ast.NodeValue(typ)),
			ast.F("optional", ast.Bool(optional)),
		)
	} else {
		elem = p.parseType()
		if p.eat(token.Question) {
			elem = p.node(ast.KindTSOptionalType, start, ast.F("typeAnnotation", ast.NodeValue(elem)))
		}
	}
	if rest {
		elem = p.node(ast.KindTSRestType, start, ast.F("typeAnnotation", ast.NodeValue(elem)))
	}
	return elem
}

// atMappedType reports whether '{' opens a mapped type such as
// { readonly [K in keyof T]?: T[K] }.
func (p *Parser) atMappedType() bool {
	i := 1
	t := p.peekN(i)
	if t.Kind == token.Plus || t.Kind == token.Minus {
		i++
		t = p.peekN(i)
	}
	if t.Kind == token.Ident && t.Text == "readonly" {
		i++
		t = p.peekN(i)
	}
	return t.Kind == token.LBracket && p.peekN(i+1).IsIdentName() && p.peekN(i+2).Kind == token.KwIn
}

func (p *Parser) parseMappedType() ast.Node {
	start := p.pos()
	open := p.advance()
	readonly := ""
	if p.at(token.Plus) || p.at(token.Minus) {
		readonly = p.advance().Text
	}
	if p.eatWord("readonly") {
		readonly += "readonly"
	}
	p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '['")
	paramStart := p.pos()
	name := p.ident(true)
	p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'")
	constraint := p.parseType()
	param := p.node(ast.KindTSTypeParameter, paramStart,
		ast.F("name", ast.NodeValue(name)),
		ast.F("constraint", ast.NodeValue(constraint)),
		ast.F("default", ast.Absent()),
		ast.F("modifiers", ast.List()),
	)
	var nameType ast.Node
	if p.eatWord("as") {
		nameType = p.parseType()
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	optional := ""
	if p.at(token.Plus) || p.at(token.Minus) {
		optional = p.advance().Text
		p.expect(token.Question, diag.SynUnexpectedToken, "expected '?'")
		optional += "?"
	} else if p.eat(token.Question) {
		optional = "?"
	}
	typ := p.parseTypeAnnotationOpt()
	p.eat(token.Semicolon)
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return p.node(ast.KindTSMappedType, start,
		ast.F("readonly", ast.Str(readonly)),
		ast.F("typeParameter", ast.NodeValue(param)),
		ast.F("nameType", ast.NodeValue(nameType)),
		ast.F("optional", ast.Str(optional)),
		ast.F("typeAnnotation", ast.NodeValue(typ)),
	)
}

// parseTypeMembers parses '{' members '}' of a type literal or interface.
func (p *Parser) parseTypeMembers() []ast.Node {
	open := p.advance()
	var members []ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos()
		members = append(members, p.parseTypeMember())
		if !p.eat(token.Semicolon) && !p.eat(token.Comma) && !p.at(token.RBrace) && !p.peek().NewlineBefore {
			p.unexpected(diag.SynExpectSemicolon, "expected ';' between type members")
		}
		if p.pos() == before {
			p.advance()
		}
	}
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return members
}

func (p *Parser) parseTypeMember() ast.Node {
	start := p.pos()
	if p.at(token.LParen) || p.at(token.Lt) {
		typeParams := p.parseTypeParamsOpt()
		params := p.parseParams()
		ret := p.parseReturnTypeOpt()
		return p.node(ast.KindTSCallSignature, start,
			ast.F("typeParameters", ast.NodeList(typeParams)),
			ast.F("params", ast.NodeList(params)),
			ast.F("returnType", ast.NodeValue(ret)),
		)
	}
	if p.at(token.KwNew) && (p.peek2().Kind == token.LParen || p.peek2().Kind == token.Lt) {
		p.advance()
		typeParams := p.parseTypeParamsOpt()
		params := p.parseParams()
		ret := p.parseReturnTypeOpt()
		return p.node(ast.KindTSConstructSignature, start,
			ast.F("typeParameters", ast.NodeList(typeParams)),
			ast.F("params", ast.NodeList(params)),
			ast.F("returnType", ast.NodeValue(ret)),
		)
	}

	var modifiers []ast.Value
	if p.atWord("readonly") && p.modifierApplies() {
		modifiers = append(modifiers, ast.Str(p.advance().Text))
	}
	if p.atIndexSignature() {
		return p.parseIndexSignature(start, modifiers)
	}

	kind := "method"
	if (p.atWord("get") || p.atWord("set")) && p.modifierApplies() {
		kind = p.advance().Text
	}
	key, computed := p.parsePropertyKey()
	optional := p.eat(token.Question)
	if p.at(token.LParen) || p.at(token.Lt) {
		typeParams := p.parseTypeParamsOpt()
		params := p.parseParams()
		ret := p.parseReturnTypeOpt()
		return p.node(ast.KindTSMethodSignature, start,
			ast.F("key", ast.NodeValue(key)),
			ast.F("computed", ast.Bool(computed)),
			ast.F("optional", ast.Bool(optional)),
			ast.F("kind", ast.Str(kind)),
			ast.F("typeParameters", ast.NodeList(typeParams)),
			ast.F("params", ast.NodeList(params)),
			ast.F("returnType", ast.NodeValue(ret)),
		)
	}
	typ := p.parseTypeAnnotationOpt()
	return p.node(ast.KindTSPropertySignature, start,
		ast.F("modifiers", ast.List(modifiers...)),
		ast.F("key", ast.NodeValue(key)),
		ast.F("computed", ast.Bool(computed)),
		ast.F("optional", ast.Bool(optional)),
		ast.F("typeAnnotation", ast.NodeValue(typ)),
	)
}

// atIndexSignature reports whether '[' opens [key: T].
func (p *Parser) atIndexSignature() bool {
	return p.at(token.LBracket) && p.peek2().IsIdentName() && p.peekN(2).Kind == token.Colon
}

func (p *Parser) parseIndexSignature(start uint32, modifiers []ast.Value) ast.Node {
	open := p.advance()
	var params []ast.Node
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		paramStart := p.pos()
		name := p.ident(true)
		typ := p.parseTypeAnnotationOpt()
		annotate(name, false, typ)
		name.Span = p.spanFrom(paramStart)
		params = append(params, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span)
	typ := p.parseTypeAnnotationOpt()
	return p.node(ast.KindTSIndexSignature, start,
		ast.F("modifiers", ast.List(modifiers...)),
		ast.F("parameters", ast.NodeList(params)),
		ast.F("typeAnnotation", ast.NodeValue(typ)),
	)
}

// parseTypeParamsOpt parses <T extends U = D, ...> when present.
func (p *Parser) parseTypeParamsOpt() []ast.Node {
	if !p.at(token.Lt) {
		return nil
	}
	open := p.advance()
	var params []ast.Node
	for !p.at(token.Gt) && !p.at(token.EOF) {
		start := p.pos()
		var modifiers []ast.Value
		for {
			tok := p.peek()
			next := p.peek2()
			isMod := tok.Kind == token.KwConst || tok.Kind == token.KwIn || (tok.Kind == token.Ident && tok.Text == "out")
			if !isMod || next.Kind != token.Ident {
				break
			}
			modifiers = append(modifiers, ast.Str(p.advance().Text))
		}
		name := p.ident(false)
		var constraint, def ast.Node
		if p.eat(token.KwExtends) {
			constraint = p.parseType()
		}
		if p.eat(token.Assign) {
			def = p.parseType()
		}
		params = append(params, p.node(ast.KindTSTypeParameter, start,
			ast.F("name", ast.NodeValue(name)),
			ast.F("constraint", ast.NodeValue(constraint)),
			ast.F("default", ast.NodeValue(def)),
			ast.F("modifiers", ast.List(modifiers...)),
		))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.Gt, diag.SynUnexpectedToken, open.Span)
	return params
}

// parseTypeArguments parses '<' types '>'.
func (p *Parser) parseTypeArguments() []ast.Node {
	open := p.advance()
	var args []ast.Node
	for !p.at(token.Gt) && !p.at(token.EOF) {
		args = append(args, p.parseType())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.Gt, diag.SynUnexpectedToken, open.Span)
	return args
}
