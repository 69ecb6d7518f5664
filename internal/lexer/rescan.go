package lexer

import (
	"tsxlower/internal/token"
)

// The rescan helpers reinterpret the pending lookahead token. The result
// replaces it and is returned by the next Peek or Next.

// RescanRegex turns a pending '/' or '/=' in operand position into a regular
// expression literal.
func (lx *Lexer) RescanRegex() token.Token {
	return lx.rescan(lx.scanRegex)
}

// RescanTemplateContinuation turns the pending '}' that closes a template
// substitution into a TemplateMiddle or TemplateTail token.
func (lx *Lexer) RescanTemplateContinuation() token.Token {
	return lx.rescan(func() token.Token {
		return lx.scanTemplate(lx.cursor.Mark(), false)
	})
}

// RescanGreater extends a pending '>' into the longest operator starting
// with it (>=, >>, >>=, >>>, >>>=).
func (lx *Lexer) RescanGreater() token.Token {
	if lx.Peek().Kind != token.Gt {
		return lx.Peek()
	}
	return lx.rescan(lx.scanGreater)
}

func (lx *Lexer) rescan(scan func() token.Token) token.Token {
	tok := lx.Peek()
	lx.rewind(tok.Span.Start)
	t := scan()
	t.NewlineBefore = tok.NewlineBefore
	lx.look = &t
	lx.lookFrom = tok.Span.Start
	return t
}
