package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// parseFunctionDeclaration parses [async] function [*] name(...) {...}.
// The name may be omitted for export default; the body may be omitted for
// overload signatures and ambient declarations.
func (p *Parser) parseFunctionDeclaration(start uint32, anonymous bool) ast.Node {
	async := p.eatWord("async")
	p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'")
	generator := p.eat(token.Star)
	var id ast.Node
	if !anonymous || p.at(token.Ident) {
		id = p.ident(false)
	}
	typeParams := p.parseTypeParamsOpt()
	params := withFlags(p, async, generator, p.parseParams)
	returnType := p.parseReturnTypeOpt()
	var body ast.Node
	if p.at(token.LBrace) {
		body = withFlags(p, async, generator, p.parseFunctionBody)
	} else {
		p.consumeSemicolon()
	}
	return p.node(ast.KindFunctionDeclaration, start,
		ast.F("id", ast.NodeValue(id)),
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("params", ast.NodeList(params)),
		ast.F("returnType", ast.NodeValue(returnType)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("async", ast.Bool(async)),
		ast.F("generator", ast.Bool(generator)),
		ast.F("declare", ast.Bool(false)),
	)
}

func (p *Parser) parseDecorators() []ast.Node {
	var out []ast.Node
	for p.at(token.At) {
		start := p.pos()
		p.advance()
		exprStart := p.pos()
		var expr ast.Node
		if p.at(token.LParen) {
			expr = p.parseParenthesized()
		} else {
			expr = p.ident(true)
			for p.eat(token.Dot) {
				expr = p.member(exprStart, expr, p.ident(true), false, false)
			}
		}
		if p.at(token.LParen) {
			expr = p.call(exprStart, expr, nil, false)
		}
		out = append(out, p.node(ast.KindDecorator, start, ast.F("expression", ast.NodeValue(expr))))
	}
	return out
}

// parseDecorated parses the class or export that follows decorators.
func (p *Parser) parseDecorated(start uint32, decorators []ast.Node) ast.Node {
	switch {
	case p.at(token.KwClass):
		return p.parseClass(start, false, decorators, false)
	case p.atWord("abstract") && p.peek2().Kind == token.KwClass:
		p.advance()
		return p.parseClass(start, false, decorators, true)
	case p.at(token.KwExport):
		exp := p.parseExport()
		if o, ok := ast.AsOpaque(exp); ok {
			if decl, ok := ast.AsOpaque(o.Node("declaration")); ok && ast.Is(decl, ast.KindClassDeclaration) {
				decl.Set("decorators", ast.NodeList(append(decorators, decl.Nodes("decorators")...)))
			}
			o.Span = p.spanFrom(start)
		}
		return exp
	}
	p.unexpected(diag.SynUnexpectedToken, "expected class after decorators")
	return p.node(ast.KindEmptyStatement, start)
}

// parseClass parses a class declaration or expression after its decorators
// and 'abstract'.
func (p *Parser) parseClass(start uint32, isExpr bool, decorators []ast.Node, abstract bool) ast.Node {
	p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'")
	var id ast.Node
	if p.at(token.Ident) && !p.atWord("implements") {
		id = p.ident(false)
	}
	typeParams := p.parseTypeParamsOpt()

	var superClass ast.Node
	var superTypeArgs []ast.Node
	if p.eat(token.KwExtends) {
		superStart := p.pos()
		superClass = p.parseCallTail(superStart, p.parsePrimary(), false)
		if p.at(token.Lt) {
			superTypeArgs = p.parseTypeArguments()
		}
	}
	var implements []ast.Node
	if p.eatWord("implements") {
		for {
			implements = append(implements, p.parseHeritage())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	body := p.parseClassBody()

	kind := ast.KindClassDeclaration
	if isExpr {
		kind = ast.KindClassExpression
	}
	return p.node(kind, start,
		ast.F("decorators", ast.NodeList(decorators)),
		ast.F("abstract", ast.Bool(abstract)),
		ast.F("id", ast.NodeValue(id)),
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("superClass", ast.NodeValue(superClass)),
		ast.F("superTypeArguments", ast.NodeList(superTypeArgs)),
		ast.F("implements", ast.NodeList(implements)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("declare", ast.Bool(false)),
	)
}

// parseHeritage parses Name<T> in implements and interface extends lists.
func (p *Parser) parseHeritage() ast.Node {
	start := p.pos()
	expr := p.parseEntityName(false)
	var args []ast.Node
	if p.at(token.Lt) {
		args = p.parseTypeArguments()
	}
	return p.node(ast.KindTSInterfaceHeritage, start,
		ast.F("expression", ast.NodeValue(expr)),
		ast.F("typeArguments", ast.NodeList(args)),
	)
}

func (p *Parser) parseClassBody() ast.Node {
	start := p.pos()
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body")
	if !ok {
		return p.node(ast.KindClassBody, start, ast.F("body", ast.List()))
	}
	var members []ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.pos()
		members = append(members, p.parseClassMember())
		if p.pos() == before {
			p.unexpected(diag.SynUnexpectedToken, "expected class member")
		}
	}
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return p.node(ast.KindClassBody, start, ast.F("body", ast.NodeList(members)))
}

func (p *Parser) parseClassMember() ast.Node {
	start := p.pos()
	if p.atWord("static") && p.peek2().Kind == token.LBrace {
		p.advance()
		body := withFlags(p, false, false, p.parseBlock)
		return p.node(ast.KindStaticBlock, start, ast.F("body", ast.NodeValue(body)))
	}

	decorators := p.parseDecorators()
	var modifiers []ast.Value
	for {
		tok := p.peek()
		if tok.Kind != token.Ident || !classModifiers[tok.Text] || !p.modifierApplies() {
			break
		}
		modifiers = append(modifiers, ast.Str(p.advance().Text))
	}

	if p.atIndexSignature() {
		sig := p.parseIndexSignature(start, modifiers)
		p.consumeSemicolon()
		return sig
	}

	async, generator := false, false
	kind := "method"
	if p.atWord("async") && p.modifierApplies() && !p.peek2().NewlineBefore {
		p.advance()
		async = true
	}
	if p.eat(token.Star) {
		generator = true
	}
	if !async && !generator && (p.atWord("get") || p.atWord("set")) && p.modifierApplies() {
		kind = p.advance().Text
	}

	keyTok := p.peek()
	key, computed := p.parsePropertyKey()
	if kind == "method" && !computed && keyTok.Text == "constructor" {
		kind = "constructor"
	}
	optional := p.eat(token.Question)
	definite := !optional && p.eat(token.Bang)

	if p.at(token.LParen) || p.at(token.Lt) {
		fn := p.parseMethodFunction(start, async, generator)
		if fn.Node("body") == nil {
			p.consumeSemicolon()
		}
		return p.node(ast.KindMethodDefinition, start,
			ast.F("decorators", ast.NodeList(decorators)),
			ast.F("modifiers", ast.List(modifiers...)),
			ast.F("kind", ast.Str(kind)),
			ast.F("key", ast.NodeValue(key)),
			ast.F("computed", ast.Bool(computed)),
			ast.F("optional", ast.Bool(optional)),
			ast.F("value", ast.NodeValue(fn)),
		)
	}

	typ := p.parseTypeAnnotationOpt()
	var value ast.Node
	if p.eat(token.Assign) {
		value = withFlags(p, false, false, p.parseAssign)
	}
	p.consumeSemicolon()
	return p.node(ast.KindPropertyDefinition, start,
		ast.F("decorators", ast.NodeList(decorators)),
		ast.F("modifiers", ast.List(modifiers...)),
		ast.F("key", ast.NodeValue(key)),
		ast.F("computed", ast.Bool(computed)),
		ast.F("optional", ast.Bool(optional)),
		ast.F("definite", ast.Bool(definite)),
		ast.F("typeAnnotation", ast.NodeValue(typ)),
		ast.F("value", ast.NodeValue(value)),
	)
}
