package parser

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/lexer"
	"tsxlower/internal/source"
	"tsxlower/internal/token"
)

// Markup parsing drives the lexer modes by hand. The invariant is that a
// mode switch happens right after advance, before anything peeks at the
// next token, so the next token is scanned under the new rules.

// parseMarkup parses an element or fragment whose '<' was consumed and whose
// tag tokens are now scanned in tag mode. ret is the mode restored after
// the final '>'.
func (p *Parser) parseMarkup(start uint32, ret lexer.Mode) ast.Node {
	if p.at(token.Gt) {
		p.advance()
		p.lx.SetMode(lexer.ModeChild)
		children, closeAt := p.parseMarkupChildren(start, nil)
		p.closeMarkup(start, nil, closeAt, ret)
		return &ast.Fragment{Children: children, Span: p.spanFrom(start)}
	}

	name := p.parseMarkupName()
	el := &ast.Element{Name: name}
	el.Attrs = p.parseMarkupAttrs()

	switch {
	case p.at(token.Slash):
		p.advance()
		if p.at(token.Gt) {
			p.advance()
		} else {
			p.err(diag.SynUnexpectedToken, p.peek().Span, "expected '>' after '/', got "+describe(p.peek()))
		}
		p.lx.SetMode(ret)
		el.SelfClosing = true
	case p.at(token.Gt):
		p.advance()
		p.lx.SetMode(lexer.ModeChild)
		var closeAt int64
		el.Children, closeAt = p.parseMarkupChildren(start, name)
		p.closeMarkup(start, name, closeAt, ret)
	default:
		tok := p.peek()
		p.report(diag.SynMarkupUnclosed, diag.SevError, tok.Span,
			"expected '>' or '/>' to end the tag, got "+describe(tok),
			[]diag.Note{{Span: p.span(start, start+1), Msg: "tag starts here"}})
		p.lx.SetMode(ret)
	}
	el.Span = p.spanFrom(start)
	return el
}

// skipAdjacentMarkup reports and drops sibling elements that follow a
// top-level element with no enclosing parent, as in <a/><b/>.
func (p *Parser) skipAdjacentMarkup(first ast.Node) {
	for p.at(token.Lt) {
		next := p.peek2()
		if next.Kind != token.Ident && next.Kind != token.Gt {
			return
		}
		start := p.advance().Span.Start
		p.lx.SetMode(lexer.ModeTag)
		sib := p.parseMarkup(start, lexer.ModeNormal)
		p.report(diag.SynMarkupAdjacent, diag.SevError, sib.Pos(),
			"adjacent markup elements must be wrapped in an enclosing tag",
			[]diag.Note{{Span: first.Pos(), Msg: "first element is here"}})
	}
}

// parseMarkupName parses ident, ns:ident or a.b.c in tag mode.
func (p *Parser) parseMarkupName() ast.Node {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynMarkupExpectTagName, tok.Span, "expected tag name, got "+describe(tok))
		return &ast.Ident{Span: p.span(tok.Span.Start, tok.Span.Start)}
	}
	p.advance()
	first := &ast.Ident{Name: tok.Text, Span: tok.Span}
	switch {
	case p.at(token.Colon):
		p.advance()
		local := p.markupIdent()
		return &ast.NamespacedName{Namespace: first, Name: local, Span: first.Span.Cover(local.Span)}
	case p.at(token.Dot):
		var name ast.Node = first
		for p.eat(token.Dot) {
			prop := p.markupIdent()
			name = &ast.MemberTagName{Object: name, Property: prop, Span: first.Span.Cover(prop.Span)}
		}
		return name
	}
	return first
}

func (p *Parser) markupIdent() *ast.Ident {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynMarkupExpectTagName, tok.Span, "expected name, got "+describe(tok))
		return &ast.Ident{Span: p.span(tok.Span.Start, tok.Span.Start)}
	}
	p.advance()
	return &ast.Ident{Name: tok.Text, Span: tok.Span}
}

func (p *Parser) parseMarkupAttrs() []ast.Node {
	var attrs []ast.Node
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Slash, token.Gt, token.EOF:
			return attrs
		case token.LBrace:
			attrs = append(attrs, p.parseSpreadAttr())
		case token.Ident:
			attrs = append(attrs, p.parseMarkupAttr())
		default:
			p.unexpected(diag.SynMarkupBadAttribute, "expected attribute")
		}
	}
}

func (p *Parser) parseSpreadAttr() ast.Node {
	start := p.pos()
	open := p.advance()
	p.lx.SetMode(lexer.ModeNormal)
	if _, ok := p.expect(token.DotDotDot, diag.SynMarkupBadAttribute, "expected '...' in attribute position"); !ok {
		p.skipToContainerEnd(lexer.ModeTag)
		return &ast.SpreadAttr{Span: p.spanFrom(start)}
	}
	expr := allowIn(p, p.parseAssign)
	p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
	p.lx.SetMode(lexer.ModeTag)
	return &ast.SpreadAttr{Expr: expr, Span: p.spanFrom(start)}
}

func (p *Parser) parseMarkupAttr() ast.Node {
	start := p.pos()
	tok := p.advance()
	var name ast.Node = &ast.Ident{Name: tok.Text, Span: tok.Span}
	if p.at(token.Colon) {
		p.advance()
		local := p.markupIdent()
		ns := name.(*ast.Ident)
		name = &ast.NamespacedName{Namespace: ns, Name: local, Span: ns.Span.Cover(local.Span)}
	}
	attr := &ast.Attr{Name: name}
	if !p.eat(token.Assign) {
		attr.Span = p.spanFrom(start)
		return attr
	}

	val := p.peek()
	switch val.Kind {
	case token.StringLit:
		p.advance()
		body := val.Text[1 : len(val.Text)-1]
		attr.Value = ast.NewStringLiteral(decodeEntities(body), val.Span)
	case token.LBrace:
		open := p.advance()
		p.lx.SetMode(lexer.ModeNormal)
		if p.at(token.RBrace) {
			p.err(diag.SynMarkupEmptyAttrValue, p.span(open.Span.Start, p.peek().Span.End),
				"attribute value must be a non-empty expression")
			p.advance()
			p.lx.SetMode(lexer.ModeTag)
			break
		}
		expr := allowIn(p, p.parseAssign)
		p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
		p.lx.SetMode(lexer.ModeTag)
		attr.Value = &ast.ExprContainer{Expr: expr, Span: p.spanFrom(open.Span.Start)}
	case token.Lt:
		ltStart := p.advance().Span.Start
		attr.Value = p.parseMarkup(ltStart, lexer.ModeTag)
	default:
		p.err(diag.SynMarkupBadAttribute, val.Span, "expected attribute value, got "+describe(val))
	}
	attr.Span = p.spanFrom(start)
	return attr
}

// parseMarkupChildren parses children up to and including '</'. The lexer
// is in child mode on entry and in tag mode on return. closeAt is the
// offset of the closing '<', or -1 at end of file.
func (p *Parser) parseMarkupChildren(start uint32, open ast.Node) (children []ast.Node, closeAt int64) {
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.JSXText:
			p.advance()
			children = append(children, &ast.Text{Value: decodeEntities(tok.Text), Span: tok.Span})
		case token.LBrace:
			children = append(children, p.parseChildContainer())
		case token.Lt:
			p.advance()
			p.lx.SetMode(lexer.ModeTag)
			if p.eat(token.Slash) {
				return children, int64(tok.Span.Start)
			}
			children = append(children, p.parseMarkup(tok.Span.Start, lexer.ModeChild))
		case token.EOF:
			// reported at the opener; the EOF token has no width
			what, opener := "fragment", p.span(start, start+1)
			if open != nil {
				what = fmt.Sprintf("<%s>", markupName(open))
				opener.End = open.Pos().End
			}
			p.report(diag.SynMarkupUnclosed, diag.SevError, opener,
				"unclosed "+what,
				[]diag.Note{{Span: tok.Span, Msg: "input ends here"}})
			p.lx.SetMode(lexer.ModeTag)
			return children, -1
		default:
			p.unexpected(diag.SynUnexpectedToken, "expected markup child")
		}
	}
}

// parseChildContainer parses {expr}, {...expr} or {} in child position.
func (p *Parser) parseChildContainer() ast.Node {
	start := p.pos()
	open := p.advance()
	p.lx.SetMode(lexer.ModeNormal)
	defer p.lx.SetMode(lexer.ModeChild)

	if p.at(token.RBrace) {
		p.advance()
		return &ast.ExprContainer{Span: p.spanFrom(start)}
	}
	if p.eat(token.DotDotDot) {
		expr := allowIn(p, p.parseAssign)
		p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span)
		return &ast.SpreadChild{Expr: expr, Span: p.spanFrom(start)}
	}
	expr := allowIn(p, p.parseExpression)
	if !p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span) {
		p.skipToContainerEnd(lexer.ModeChild)
	}
	return &ast.ExprContainer{Expr: expr, Span: p.spanFrom(start)}
}

// skipToContainerEnd drops tokens up to the '}' that closes a broken
// container and leaves the lexer in mode.
func (p *Parser) skipToContainerEnd(mode lexer.Mode) {
	depth := 0
	for !p.at(token.EOF) {
		tok := p.advance()
		if tok.Kind == token.LBrace {
			depth++
		}
		if tok.Kind == token.RBrace {
			if depth == 0 {
				break
			}
			depth--
		}
	}
	p.lx.SetMode(mode)
}

// closeMarkup parses the rest of a closing tag after '</' and checks that it
// matches open (nil for a fragment).
func (p *Parser) closeMarkup(start uint32, open ast.Node, closeAt int64, ret lexer.Mode) {
	if closeAt < 0 {
		p.lx.SetMode(ret)
		return
	}
	closeStart := uint32(closeAt)
	var closeName ast.Node
	if !p.at(token.Gt) && !p.at(token.EOF) {
		closeName = p.parseMarkupName()
	}
	if p.at(token.Gt) {
		p.advance()
	} else {
		p.err(diag.SynUnexpectedToken, p.peek().Span, "expected '>' to end closing tag, got "+describe(p.peek()))
	}
	p.lx.SetMode(ret)

	want, got := "", ""
	if open != nil {
		want = markupName(open)
	}
	if closeName != nil {
		got = markupName(closeName)
	}
	if norm.NFC.String(want) == norm.NFC.String(got) {
		return
	}
	openDesc := "<>"
	if open != nil {
		openDesc = "<" + want + ">"
	}
	p.report(diag.SynMarkupTagMismatch, diag.SevError, p.span(closeStart, p.lastSpan.End),
		fmt.Sprintf("expected corresponding closing tag for %s, got </%s>", openDesc, got),
		[]diag.Note{{Span: p.openTagSpan(start, open), Msg: "opening tag is here"}})
}

func (p *Parser) openTagSpan(start uint32, open ast.Node) source.Span {
	if open == nil {
		return p.span(start, start+2)
	}
	return p.span(start, open.Pos().End)
}

// markupName renders a tag name as written: a, a.b.c or ns:a.
func markupName(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.MemberTagName:
		return markupName(n.Object) + "." + n.Property.Name
	case *ast.NamespacedName:
		return n.Namespace.Name + ":" + n.Name.Name
	}
	return ""
}
