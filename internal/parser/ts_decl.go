package parser

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

func (p *Parser) parseTypeAlias(start uint32) ast.Node {
	p.advance() // type
	id := p.ident(false)
	typeParams := p.parseTypeParamsOpt()
	p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias")
	typ := p.parseType()
	p.consumeSemicolon()
	return p.node(ast.KindTSTypeAliasDeclaration, start,
		ast.F("id", ast.NodeValue(id)),
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("typeAnnotation", ast.NodeValue(typ)),
		ast.F("declare", ast.Bool(false)),
	)
}

func (p *Parser) parseInterface(start uint32) ast.Node {
	p.advance() // interface
	id := p.ident(false)
	typeParams := p.parseTypeParamsOpt()
	var extends []ast.Node
	if p.eat(token.KwExtends) {
		for {
			extends = append(extends, p.parseHeritage())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	bodyStart := p.pos()
	var members []ast.Node
	if p.at(token.LBrace) {
		members = p.parseTypeMembers()
	} else {
		p.unexpected(diag.SynUnexpectedToken, "expected '{' to start interface body")
	}
	body := p.node(ast.KindTSInterfaceBody, bodyStart, ast.F("body", ast.NodeList(members)))
	return p.node(ast.KindTSInterfaceDeclaration, start,
		ast.F("id", ast.NodeValue(id)),
		ast.F("typeParameters", ast.NodeList(typeParams)),
		ast.F("extends", ast.NodeList(extends)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("declare", ast.Bool(false)),
	)
}

// parseEnum parses enum E { A, B = 1 }. The 'const' of a const enum was
// already consumed.
func (p *Parser) parseEnum(start uint32, isConst bool) ast.Node {
	p.expect(token.KwEnum, diag.SynUnexpectedToken, "expected 'enum'")
	id := p.ident(false)
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start enum body")
	var members []ast.Node
	if ok {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			memberStart := p.pos()
			var name ast.Node
			if tok := p.peek(); tok.Kind == token.StringLit {
				p.advance()
				name = p.stringLiteral(tok)
			} else {
				name = p.ident(true)
			}
			var init ast.Node
			if p.eat(token.Assign) {
				init = allowIn(p, p.parseAssign)
			}
			members = append(members, p.node(ast.KindTSEnumMember, memberStart,
				ast.F("id", ast.NodeValue(name)),
				ast.F("initializer", ast.NodeValue(init)),
			))
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	}
	return p.node(ast.KindTSEnumDeclaration, start,
		ast.F("id", ast.NodeValue(id)),
		ast.F("members", ast.NodeList(members)),
		ast.F("const", ast.Bool(isConst)),
		ast.F("declare", ast.Bool(false)),
	)
}

// parseModuleDeclaration parses namespace A.B {...}, module "m" {...} and
// global {...}. Ambient module declarations may omit the body.
func (p *Parser) parseModuleDeclaration(start uint32) ast.Node {
	kw := p.advance().Text
	var id ast.Node
	switch {
	case kw == "global":
		id = ast.NewIdentifier("global", p.lastSpan)
	case p.at(token.StringLit):
		tok := p.advance()
		id = p.stringLiteral(tok)
	default:
		id = p.parseEntityName(false)
	}
	var body ast.Node
	if p.at(token.LBrace) {
		blockStart := p.pos()
		open := p.advance()
		stmts := withFlags(p, false, false, func() []ast.Node {
			return p.parseStatementList(func() bool { return p.at(token.RBrace) }, true)
		})
		p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
		body = p.node(ast.KindTSModuleBlock, blockStart, ast.F("body", ast.NodeList(stmts)))
	} else {
		p.consumeSemicolon()
	}
	return p.node(ast.KindTSModuleDeclaration, start,
		ast.F("kind", ast.Str(kw)),
		ast.F("id", ast.NodeValue(id)),
		ast.F("body", ast.NodeValue(body)),
		ast.F("declare", ast.Bool(false)),
	)
}
