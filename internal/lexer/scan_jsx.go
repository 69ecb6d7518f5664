package lexer

import (
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// scanTagToken scans one token inside a markup tag. Names may contain '-'
// and are never keywords; strings run to the matching quote with no escapes.
func (lx *Lexer) scanTagToken() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	switch {
	case ch == '"' || ch == '\'':
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.cursor.Bump() == ch {
				return lx.emit(token.StringLit, start)
			}
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated attribute string")
		return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + string(ch)}
	case ch == '>':
		lx.cursor.Bump()
		return lx.emit(token.Gt, start)
	case ch == '/':
		lx.cursor.Bump()
		return lx.emit(token.Slash, start)
	case ch == '=':
		lx.cursor.Bump()
		return lx.emit(token.Assign, start)
	}
	if lx.scanIdentBody() {
		for {
			if lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
				continue
			}
			if r, sz := lx.peekRune(); sz > 0 && isIdentContinueRune(r) {
				lx.advance(sz)
				continue
			}
			break
		}
		return lx.emit(token.Ident, start)
	}
	return lx.scanOperatorOrPunct()
}

// scanChild scans markup children: '{', '<' or a run of raw text.
func (lx *Lexer) scanChild() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '{':
		lx.cursor.Bump()
		return lx.emit(token.LBrace, start)
	case '<':
		lx.cursor.Bump()
		return lx.emit(token.Lt, start)
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '{' || b == '<' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.JSXText, start)
}
