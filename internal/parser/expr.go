package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// parseExpression parses a comma-separated expression list.
func (p *Parser) parseExpression() ast.Node {
	start := p.pos()
	first := p.parseAssign()
	if !p.at(token.Comma) {
		return first
	}
	list := []ast.Node{first}
	for p.eat(token.Comma) {
		list = append(list, p.parseAssign())
	}
	return p.node(ast.KindSequenceExpression, start, ast.F("expressions", ast.NodeList(list)))
}

// parseAssign parses an assignment expression, including arrow functions
// and yield.
func (p *Parser) parseAssign() ast.Node {
	if arrow, ok := p.tryArrow(); ok {
		return arrow
	}
	if p.inGenerator && p.atWord("yield") {
		return p.parseYield()
	}

	start := p.pos()
	left := p.parseConditional()
	if p.at(token.Gt) {
		p.lx.RescanGreater()
	}
	op := p.peek()
	if !op.IsAssignOp() {
		return left
	}
	p.advance()
	if op.Kind == token.Assign {
		left = p.toAssignTarget(left)
	}
	right := p.parseAssign()
	return p.node(ast.KindAssignmentExpression, start,
		ast.F("operator", ast.Str(op.Text)),
		ast.F("left", ast.NodeValue(left)),
		ast.F("right", ast.NodeValue(right)),
	)
}

func (p *Parser) parseYield() ast.Node {
	start := p.pos()
	p.advance()
	delegate := false
	if !p.peek().NewlineBefore && p.at(token.Star) {
		p.advance()
		delegate = true
	}
	var arg ast.Node
	if delegate || p.startsOperand() {
		arg = p.parseAssign()
	}
	return p.node(ast.KindYieldExpression, start,
		ast.F("argument", ast.NodeValue(arg)),
		ast.F("delegate", ast.Bool(delegate)),
	)
}

// startsOperand reports whether an optional operand (yield, return) follows
// on the same line.
func (p *Parser) startsOperand() bool {
	tok := p.peek()
	if tok.NewlineBefore {
		return false
	}
	switch tok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.EOF, token.TemplateMiddle, token.TemplateTail:
		return false
	}
	return !tok.IsAssignOp() || tok.Kind == token.SlashAssign
}

func (p *Parser) parseConditional() ast.Node {
	start := p.pos()
	test := p.parseBinary(precNone)
	if !p.at(token.Question) {
		return test
	}
	p.advance()
	consequent := allowIn(p, p.parseAssign)
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression")
	alternate := p.parseAssign()
	return p.node(ast.KindConditionalExpression, start,
		ast.F("test", ast.NodeValue(test)),
		ast.F("consequent", ast.NodeValue(consequent)),
		ast.F("alternate", ast.NodeValue(alternate)),
	)
}

// parseBinary is precedence climbing over binaryPrec. 'as' and 'satisfies'
// bind at relational level.
func (p *Parser) parseBinary(minPrec int) ast.Node {
	start := p.pos()
	left := p.parseUnary()
	for {
		tok := p.peek()
		if tok.Kind == token.Gt {
			tok = p.lx.RescanGreater()
		}
		if tok.Kind == token.Ident && !tok.NewlineBefore && (tok.Text == "as" || tok.Text == "satisfies") {
			if precRelational <= minPrec {
				return left
			}
			p.advance()
			kind := ast.KindTSAsExpression
			if tok.Text == "satisfies" {
				kind = ast.KindTSSatisfiesExpression
			}
			typ := p.parseType()
			left = p.node(kind, start,
				ast.F("expression", ast.NodeValue(left)),
				ast.F("typeAnnotation", ast.NodeValue(typ)),
			)
			continue
		}

		prec := p.binaryPrecedence(tok)
		if prec == precNone || prec <= minPrec {
			return left
		}
		p.advance()
		next := prec
		if tok.Kind == token.StarStar {
			// right-associative
			next = prec - 1
		}
		right := p.parseBinary(next)
		kind := ast.KindBinaryExpression
		if isLogicalOp(tok.Kind) {
			kind = ast.KindLogicalExpression
		}
		left = p.node(kind, start,
			ast.F("operator", ast.Str(tok.Text)),
			ast.F("left", ast.NodeValue(left)),
			ast.F("right", ast.NodeValue(right)),
		)
	}
}

func (p *Parser) parseUnary() ast.Node {
	start := p.pos()
	tok := p.peek()
	switch {
	case isUnaryOp(tok.Kind):
		p.advance()
		arg := p.parseUnary()
		return p.node(ast.KindUnaryExpression, start,
			ast.F("operator", ast.Str(tok.Text)),
			ast.F("argument", ast.NodeValue(arg)),
		)
	case tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus:
		p.advance()
		arg := p.parseUnary()
		return p.node(ast.KindUpdateExpression, start,
			ast.F("operator", ast.Str(tok.Text)),
			ast.F("prefix", ast.Bool(true)),
			ast.F("argument", ast.NodeValue(arg)),
		)
	case tok.Kind == token.Ident && tok.Text == "await" && p.inAsync && p.awaitHasOperand():
		p.advance()
		arg := p.parseUnary()
		return p.node(ast.KindAwaitExpression, start, ast.F("argument", ast.NodeValue(arg)))
	}
	return p.parsePostfix()
}

// awaitHasOperand tells 'await x' from an identifier named await.
func (p *Parser) awaitHasOperand() bool {
	next := p.peek2()
	switch next.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.EOF, token.Dot, token.QuestionDot, token.FatArrow:
		return false
	}
	return !next.IsAssignOp()
}

func (p *Parser) parsePostfix() ast.Node {
	start := p.pos()
	expr := p.parseLeftHandSide()
	tok := p.peek()
	if (tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus) && !tok.NewlineBefore {
		p.advance()
		return p.node(ast.KindUpdateExpression, start,
			ast.F("operator", ast.Str(tok.Text)),
			ast.F("prefix", ast.Bool(false)),
			ast.F("argument", ast.NodeValue(expr)),
		)
	}
	return expr
}

func (p *Parser) parseLeftHandSide() ast.Node {
	start := p.pos()
	var expr ast.Node
	if p.at(token.KwNew) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallTail(start, expr, false)
}

func (p *Parser) parseNew() ast.Node {
	start := p.pos()
	newTok := p.advance()
	if p.at(token.Dot) {
		p.advance()
		prop := p.ident(true)
		return p.node(ast.KindMetaProperty, start,
			ast.F("meta", ast.NodeValue(ast.NewIdentifier("new", newTok.Span))),
			ast.F("property", ast.NodeValue(prop)),
		)
	}
	calleeStart := p.pos()
	var callee ast.Node
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseCallTail(calleeStart, callee, true)

	var typeArgs []ast.Node
	if p.at(token.Lt) {
		if args, ok := speculate(p, p.tryTypeArguments); ok {
			typeArgs = args
		}
	}
	var args []ast.Node
	if p.at(token.LParen) {
		args = p.parseArguments()
	}
	return p.node(ast.KindNewExpression, start,
		ast.F("callee", ast.NodeValue(callee)),
		ast.F("typeArguments", ast.NodeList(typeArgs)),
		ast.F("arguments", ast.NodeList(args)),
	)
}

// parseCallTail parses member accesses, calls, tagged templates and non-null
// assertions after expr. With noCall set it stops at the first call, which
// is how 'new' finds its callee.
func (p *Parser) parseCallTail(start uint32, expr ast.Node, noCall bool) ast.Node {
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			expr = p.member(start, expr, p.memberName(), false, false)
		case token.QuestionDot:
			if noCall {
				return expr
			}
			p.advance()
			switch {
			case p.at(token.LParen):
				expr = p.call(start, expr, nil, true)
			case p.at(token.LBracket):
				p.advance()
				prop := allowIn(p, p.parseExpression)
				p.expectClose(token.RBracket, diag.SynUnclosedBracket, tok.Span)
				expr = p.member(start, expr, prop, true, true)
			case p.at(token.Lt):
				targs, ok := speculate(p, p.tryTypeArguments)
				if !ok || !p.at(token.LParen) {
					p.unexpected(diag.SynUnexpectedToken, "expected call after '?.<'")
					return expr
				}
				expr = p.call(start, expr, targs, true)
			default:
				expr = p.member(start, expr, p.memberName(), false, true)
			}
		case token.LBracket:
			p.advance()
			prop := allowIn(p, p.parseExpression)
			p.expectClose(token.RBracket, diag.SynUnclosedBracket, tok.Span)
			expr = p.member(start, expr, prop, true, false)
		case token.LParen:
			if noCall {
				return expr
			}
			expr = p.call(start, expr, nil, false)
		case token.NoSubstTemplate, token.TemplateHead:
			quasi := p.parseTemplate()
			expr = p.node(ast.KindTaggedTemplateExpression, start,
				ast.F("tag", ast.NodeValue(expr)),
				ast.F("typeArguments", ast.List()),
				ast.F("quasi", ast.NodeValue(quasi)),
			)
		case token.Bang:
			if tok.NewlineBefore {
				return expr
			}
			p.advance()
			expr = p.node(ast.KindTSNonNullExpression, start, ast.F("expression", ast.NodeValue(expr)))
		case token.Lt:
			targs, ok := speculate(p, func() ([]ast.Node, bool) {
				args, ok := p.tryTypeArguments()
				if !ok {
					return nil, false
				}
				next := p.peek()
				switch next.Kind {
				case token.LParen:
					return args, !noCall
				case token.NoSubstTemplate, token.TemplateHead:
					return args, true
				}
				return nil, false
			})
			if !ok {
				return expr
			}
			if p.at(token.LParen) {
				expr = p.call(start, expr, targs, false)
				continue
			}
			quasi := p.parseTemplate()
			expr = p.node(ast.KindTaggedTemplateExpression, start,
				ast.F("tag", ast.NodeValue(expr)),
				ast.F("typeArguments", ast.NodeList(targs)),
				ast.F("quasi", ast.NodeValue(quasi)),
			)
		default:
			return expr
		}
	}
}

func (p *Parser) memberName() ast.Node {
	tok := p.peek()
	if tok.Kind == token.PrivateName {
		p.advance()
		return ast.NewOpaque(ast.KindPrivateIdentifier, tok.Span, ast.F("name", ast.Str(tok.Text)))
	}
	return p.ident(true)
}

func (p *Parser) member(start uint32, object, property ast.Node, computed, optional bool) ast.Node {
	return p.node(ast.KindMemberExpression, start,
		ast.F("object", ast.NodeValue(object)),
		ast.F("property", ast.NodeValue(property)),
		ast.F("computed", ast.Bool(computed)),
		ast.F("optional", ast.Bool(optional)),
	)
}

func (p *Parser) call(start uint32, callee ast.Node, typeArgs []ast.Node, optional bool) ast.Node {
	args := p.parseArguments()
	return p.node(ast.KindCallExpression, start,
		ast.F("callee", ast.NodeValue(callee)),
		ast.F("typeArguments", ast.NodeList(typeArgs)),
		ast.F("arguments", ast.NodeList(args)),
		ast.F("optional", ast.Bool(optional)),
	)
}

// parseArguments parses '(' args ')'.
func (p *Parser) parseArguments() []ast.Node {
	open, _ := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	return allowIn(p, func() []ast.Node {
		var args []ast.Node
		for !p.at(token.RParen) && !p.at(token.EOF) {
			args = append(args, p.parseSpreadOrAssign())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span)
		return args
	})
}

func (p *Parser) parseSpreadOrAssign() ast.Node {
	if !p.at(token.DotDotDot) {
		return p.parseAssign()
	}
	start := p.pos()
	p.advance()
	arg := p.parseAssign()
	return p.node(ast.KindSpreadElement, start, ast.F("argument", ast.NodeValue(arg)))
}

// tryTypeArguments parses '<' types '>' for speculation.
func (p *Parser) tryTypeArguments() ([]ast.Node, bool) {
	if !p.at(token.Lt) {
		return nil, false
	}
	args := p.parseTypeArguments()
	return args, true
}
