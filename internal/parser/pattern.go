package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// parseBindingTarget parses an identifier, object pattern or array pattern.
func (p *Parser) parseBindingTarget() ast.Node {
	switch {
	case p.at(token.LBrace):
		return p.parseObjectPattern()
	case p.at(token.LBracket):
		return p.parseArrayPattern()
	case p.at(token.KwThis):
		tok := p.advance()
		return ast.NewIdentifier("this", tok.Span)
	}
	return p.ident(false)
}

// parseBindingElement parses a target with an optional default.
func (p *Parser) parseBindingElement() ast.Node {
	start := p.pos()
	target := p.parseBindingTarget()
	if !p.at(token.Assign) {
		return target
	}
	p.advance()
	def := allowIn(p, p.parseAssign)
	return p.node(ast.KindAssignmentPattern, start,
		ast.F("left", ast.NodeValue(target)),
		ast.F("right", ast.NodeValue(def)),
	)
}

func (p *Parser) parseRestElement() ast.Node {
	start := p.pos()
	p.advance()
	arg := p.parseBindingTarget()
	return p.node(ast.KindRestElement, start, ast.F("argument", ast.NodeValue(arg)))
}

func (p *Parser) parseObjectPattern() ast.Node {
	start := p.pos()
	open := p.advance()
	var props []ast.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			props = append(props, p.parseRestElement())
		} else {
			props = append(props, p.parsePatternProperty())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	return p.node(ast.KindObjectPattern, start, ast.F("properties", ast.NodeList(props)))
}

func (p *Parser) parsePatternProperty() ast.Node {
	start := p.pos()
	key, computed := p.parsePropertyKey()
	var value ast.Node
	shorthand := false
	if p.eat(token.Colon) {
		value = p.parseBindingElement()
	} else {
		shorthand = true
		value = key
		if p.eat(token.Assign) {
			def := allowIn(p, p.parseAssign)
			value = p.node(ast.KindAssignmentPattern, start,
				ast.F("left", ast.NodeValue(key)),
				ast.F("right", ast.NodeValue(def)),
			)
		}
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

func (p *Parser) parseArrayPattern() ast.Node {
	start := p.pos()
	open := p.advance()
	var elems []ast.Value
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			elems = append(elems, ast.Absent())
			continue
		}
		if p.at(token.DotDotDot) {
			elems = append(elems, ast.NodeValue(p.parseRestElement()))
		} else {
			elems = append(elems, ast.NodeValue(p.parseBindingElement()))
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span)
	return p.node(ast.KindArrayPattern, start, ast.F("elements", ast.List(elems...)))
}

// parseParams parses '(' parameters ')'.
func (p *Parser) parseParams() []ast.Node {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return nil
	}
	var params []ast.Node
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
	return params
}

// parseParam parses one parameter: decorators, parameter-property
// modifiers, the binding, '?', a type annotation and a default.
func (p *Parser) parseParam() ast.Node {
	start := p.pos()
	decorators := p.parseDecorators()

	var modifiers []ast.Value
	for p.peek().Kind == token.Ident && paramModifiers[p.peek().Text] && p.modifierApplies() {
		modifiers = append(modifiers, ast.Str(p.advance().Text))
	}

	var param ast.Node
	if p.at(token.DotDotDot) {
		param = p.parseRestElement()
	} else {
		param = p.parseBindingTarget()
	}
	optional := p.eat(token.Question)
	typ := p.parseTypeAnnotationOpt()
	annotate(param, optional, typ)

	if p.eat(token.Assign) {
		def := allowIn(p, p.parseAssign)
		param = p.node(ast.KindAssignmentPattern, start,
			ast.F("left", ast.NodeValue(param)),
			ast.F("right", ast.NodeValue(def)),
		)
	}
	if len(decorators) > 0 {
		param.(*ast.Opaque).Set("decorators", ast.NodeList(decorators))
	}
	if len(modifiers) == 0 {
		return param
	}
	return p.node(ast.KindTSParameterProperty, start,
		ast.F("modifiers", ast.List(modifiers...)),
		ast.F("parameter", ast.NodeValue(param)),
	)
}

// annotate records '?' and ': T' on a binding.
func annotate(binding ast.Node, optional bool, typ ast.Node) {
	o, ok := ast.AsOpaque(binding)
	if !ok {
		return
	}
	if optional {
		o.Set("optional", ast.Bool(true))
	}
	if typ != nil {
		o.Set("typeAnnotation", ast.NodeValue(typ))
	}
}

// toAssignTarget converts an array or object literal on the left of '=' into
// the matching pattern. Other expressions are returned unchanged.
func (p *Parser) toAssignTarget(n ast.Node) ast.Node {
	o, ok := ast.AsOpaque(n)
	if !ok {
		return n
	}
	switch o.Type {
	case ast.KindArrayExpression:
		elems := make([]ast.Value, len(o.List("elements")))
		for i, v := range o.List("elements") {
			if el := v.Node(); el != nil {
				elems[i] = ast.NodeValue(p.toAssignTarget(el))
			}
		}
		return ast.NewOpaque(ast.KindArrayPattern, o.Span, ast.F("elements", ast.List(elems...)))
	case ast.KindObjectExpression:
		props := o.Nodes("properties")
		out := make([]ast.Node, len(props))
		for i, prop := range props {
			out[i] = p.toAssignTarget(prop)
		}
		return ast.NewOpaque(ast.KindObjectPattern, o.Span, ast.F("properties", ast.NodeList(out)))
	case ast.KindProperty:
		if o.Bool("method") || o.Text("kind") != "init" {
			p.err(diag.SynInvalidAssignment, o.Span, "methods are not valid assignment targets")
			return o
		}
		fields := make([]ast.Field, len(o.Fields))
		copy(fields, o.Fields)
		prop := ast.NewOpaque(ast.KindProperty, o.Span, fields...)
		if !o.Bool("shorthand") {
			prop.Set("value", ast.NodeValue(p.toAssignTarget(o.Node("value"))))
		}
		return prop
	case ast.KindSpreadElement:
		return ast.NewOpaque(ast.KindRestElement, o.Span,
			ast.F("argument", ast.NodeValue(p.toAssignTarget(o.Node("argument")))))
	case ast.KindAssignmentExpression:
		if o.Text("operator") == "=" {
			return ast.NewOpaque(ast.KindAssignmentPattern, o.Span,
				ast.F("left", o.Get("left")),
				ast.F("right", o.Get("right")),
			)
		}
	}
	return n
}
