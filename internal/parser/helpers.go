package parser

import (
	"fmt"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/source"
	"tsxlower/internal/token"
)

// advance consumes the current token. It never scans the token after it,
// so callers may switch lexer modes right after.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatWord(word string) bool {
	if p.atWord(word) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or reports code at the current token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.peek()
	p.err(code, tok.Span, fmt.Sprintf("%s, got %s", msg, describe(tok)))
	return tok, false
}

// expectClose is expect for a closing delimiter, with a note at the opener.
func (p *Parser) expectClose(k token.Kind, code diag.Code, open source.Span) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	tok := p.peek()
	p.report(code, diag.SevError, tok.Span,
		fmt.Sprintf("expected '%s', got %s", k, describe(tok)),
		[]diag.Note{{Span: open, Msg: "opened here"}})
	return false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.JSXText:
		return "text"
	}
	if tok.Text == "" {
		return tok.Kind.String()
	}
	return fmt.Sprintf("'%s'", tok.Text)
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg, nil)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if p.guessing > 0 {
		if sev == diag.SevError {
			p.guessFailed = true
		}
		return
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}

// unexpected reports the current token and consumes it so loops make progress.
func (p *Parser) unexpected(code diag.Code, what string) {
	tok := p.peek()
	p.err(code, tok.Span, fmt.Sprintf("%s, got %s", what, describe(tok)))
	if tok.Kind != token.EOF {
		p.advance()
	}
}

// consumeSemicolon applies automatic semicolon insertion.
func (p *Parser) consumeSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	tok := p.peek()
	if tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore {
		return
	}
	p.err(diag.SynExpectSemicolon, tok.Span, fmt.Sprintf("expected ';', got %s", describe(tok)))
}

// canInsertSemicolon reports whether a statement may end before the current token.
func (p *Parser) canInsertSemicolon() bool {
	tok := p.peek()
	return tok.Kind == token.Semicolon || tok.Kind == token.RBrace ||
		tok.Kind == token.EOF || tok.NewlineBefore
}

func (p *Parser) pos() uint32 {
	return p.peek().Span.Start
}

// node builds an opaque node spanning from start to the last consumed token.
func (p *Parser) node(kind string, start uint32, fields ...ast.Field) *ast.Opaque {
	end := p.lastSpan.End
	if end < start {
		end = start
	}
	return ast.NewOpaque(kind, p.span(start, end), fields...)
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.lastSpan.End
	if end < start {
		end = start
	}
	return p.span(start, end)
}

// ident consumes an identifier name and builds an Identifier node. Keywords
// are accepted when allowKeyword is set (property names, labels after '.').
func (p *Parser) ident(allowKeyword bool) *ast.Opaque {
	tok := p.peek()
	if tok.Kind == token.Ident || (allowKeyword && tok.IsIdentName()) {
		p.advance()
		return ast.NewIdentifier(tok.Text, tok.Span)
	}
	p.err(diag.SynExpectIdentifier, tok.Span, fmt.Sprintf("expected identifier, got %s", describe(tok)))
	return ast.NewIdentifier("", p.span(tok.Span.Start, tok.Span.Start))
}

// atDeclWord reports whether the current token is a contextual keyword that
// starts a declaration: the word followed, on the same line, by a name.
func (p *Parser) atDeclWord(word string) bool {
	if !p.atWord(word) {
		return false
	}
	next := p.peek2()
	return !next.NewlineBefore && (next.Kind == token.Ident || next.Kind == token.StringLit)
}

// withFlags runs fn with the function-context flags set and restores them.
func withFlags[T any](p *Parser, async, generator bool, fn func() T) T {
	oldAsync, oldGen, oldIn := p.inAsync, p.inGenerator, p.noIn
	p.inAsync, p.inGenerator, p.noIn = async, generator, false
	defer func() {
		p.inAsync, p.inGenerator, p.noIn = oldAsync, oldGen, oldIn
	}()
	return fn()
}

// allowIn runs fn with the 'in' operator enabled.
func allowIn[T any](p *Parser, fn func() T) T {
	old := p.noIn
	p.noIn = false
	defer func() { p.noIn = old }()
	return fn()
}

// skipBalanced advances past the group opened by the current token and
// returns the token after it. Template substitutions are followed. The
// lexer is left where it was. ok is false when the group never closes.
func (p *Parser) skipBalanced() (after token.Token, ok bool) {
	st := p.lx.Save()
	p.lx.Mute()
	defer func() {
		p.lx.Unmute()
		p.lx.Restore(st)
	}()

	var stack []token.Kind
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return tok, false
		case token.LParen:
			stack = append(stack, token.RParen)
		case token.LBracket:
			stack = append(stack, token.RBracket)
		case token.LBrace:
			stack = append(stack, token.RBrace)
		case token.TemplateHead:
			stack = append(stack, token.TemplateTail)
		case token.RParen, token.RBracket:
			if len(stack) == 0 || stack[len(stack)-1] != tok.Kind {
				return tok, false
			}
			stack = stack[:len(stack)-1]
		case token.RBrace:
			if len(stack) == 0 {
				return tok, false
			}
			if stack[len(stack)-1] == token.TemplateTail {
				tok = p.lx.RescanTemplateContinuation()
				if tok.Kind == token.TemplateTail {
					stack = stack[:len(stack)-1]
				}
				break
			}
			if stack[len(stack)-1] != token.RBrace {
				return tok, false
			}
			stack = stack[:len(stack)-1]
		}
		p.lx.Next()
		if len(stack) == 0 {
			return p.lx.Peek(), true
		}
	}
}
