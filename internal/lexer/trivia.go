package lexer

import (
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// skipTrivia consumes whitespace and comments before a token. Comments are
// appended to lx.comments. It reports whether a line terminator was crossed,
// including one inside a block comment.
func (lx *Lexer) skipTrivia() bool {
	newline := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case ' ', '\t', '\v', '\f':
			lx.cursor.Bump()
			continue
		case '\n', '\r':
			lx.cursor.Bump()
			newline = true
			continue
		case '/':
			b1 := lx.cursor.PeekAt(1)
			if b1 == '/' {
				lx.scanLineComment()
				continue
			}
			if b1 == '*' {
				if lx.scanBlockComment() {
					newline = true
				}
				continue
			}
			return newline
		}
		if b >= utf8RuneSelf {
			r, sz := lx.peekRune()
			if isLineTerminatorRune(r) {
				lx.advance(sz)
				newline = true
				continue
			}
			if isSpaceRune(r) {
				lx.advance(sz)
				continue
			}
		}
		return newline
	}
	return newline
}

func (lx *Lexer) scanLineComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		if b >= utf8RuneSelf {
			if r, _ := lx.peekRune(); isLineTerminatorRune(r) {
				break
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.comments = append(lx.comments, token.Trivia{
		Kind: token.TriviaLineComment,
		Span: sp,
		Text: string(lx.file.Content[bodyStart:sp.End]),
	})
}

// scanBlockComment scans /* ... */ and reports whether the body spans lines.
func (lx *Lexer) scanBlockComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	bodyStart := lx.cursor.Off
	multiline := false
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("*/") {
			bodyEnd := lx.cursor.Off
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.comments = append(lx.comments, token.Trivia{
				Kind: token.TriviaBlockComment,
				Span: sp,
				Text: string(lx.file.Content[bodyStart:bodyEnd]),
			})
			return multiline
		}
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			multiline = true
		} else if b >= utf8RuneSelf {
			if r, sz := lx.peekRune(); isLineTerminatorRune(r) {
				multiline = true
				lx.advance(sz)
				continue
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	lx.comments = append(lx.comments, token.Trivia{
		Kind: token.TriviaBlockComment,
		Span: sp,
		Text: string(lx.file.Content[bodyStart:sp.End]),
	})
	return multiline
}

// skipHashbang consumes a leading "#!" line. It is kept apart from the
// comment list and re-emitted verbatim by the printer.
func (lx *Lexer) skipHashbang() {
	if !lx.cursor.HasPrefix("#!") {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.hashbang = lx.text(lx.cursor.SpanFrom(start))
}

func isLineTerminatorRune(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func isSpaceRune(r rune) bool {
	switch r {
	case '\u00a0', '\ufeff', '\u1680', '\u202f', '\u205f', '\u3000':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
