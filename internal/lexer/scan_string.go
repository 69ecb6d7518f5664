package lexer

import (
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// scanString scans '...' or "...". Escapes are skipped, not decoded; the
// parser decodes the value from Token.Text.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
			}
			lx.bumpRune()
			continue
		case '\n', '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + string(quote)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + string(quote)}
}

// scanTemplate scans a template chunk starting at the opening '`' (head) or
// at the '}' closing a substitution (continuation).
func (lx *Lexer) scanTemplate(start Mark, head bool) token.Token {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			if head {
				return lx.emit(token.NoSubstTemplate, start)
			}
			return lx.emit(token.TemplateTail, start)
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.Off += 2
			if head {
				return lx.emit(token.TemplateHead, start)
			}
			return lx.emit(token.TemplateMiddle, start)
		case b == '\\':
			lx.cursor.Bump()
			lx.bumpRune()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	kind := token.TemplateTail
	if head {
		kind = token.NoSubstTemplate
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp) + "`"}
}

// scanRegex scans /body/flags starting at '/'.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	inClass := false
	for {
		if lx.cursor.EOF() {
			return lx.badRegex(start)
		}
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			return lx.badRegex(start)
		}
		lx.cursor.Bump()
		switch b {
		case '\\':
			if c := lx.cursor.Peek(); c == '\n' || c == '\r' || lx.cursor.EOF() {
				return lx.badRegex(start)
			}
			lx.bumpRune()
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				for isIdentContinueByte(lx.cursor.Peek()) {
					lx.cursor.Bump()
				}
				return lx.emit(token.RegexLit, start)
			}
		}
	}
}

func (lx *Lexer) badRegex(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regular expression literal")
	return token.Token{Kind: token.RegexLit, Span: sp, Text: lx.text(sp) + "/"}
}
