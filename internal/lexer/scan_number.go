package lexer

import (
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

// scanNumber scans 123, 1_000, 1.5, .5, 1e-3, 0x1F, 0o17, 0b101 and the
// BigInt forms with an n suffix. Malformed forms are reported and the token
// is still produced so parsing can continue.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Off += 2
			if !lx.scanDigits(isHex) {
				return lx.badNumber(start, "expected hexadecimal digit")
			}
			return lx.finishInteger(start)
		case 'o', 'O':
			lx.cursor.Off += 2
			if !lx.scanDigits(func(b byte) bool { return b >= '0' && b <= '7' }) {
				return lx.badNumber(start, "expected octal digit")
			}
			return lx.finishInteger(start)
		case 'b', 'B':
			lx.cursor.Off += 2
			if !lx.scanDigits(func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.badNumber(start, "expected binary digit")
			}
			return lx.finishInteger(start)
		}
	}

	if lx.cursor.Peek() != '.' {
		lx.scanDigits(isDec)
		if lx.cursor.Peek() == 'n' {
			lx.cursor.Bump()
			kind = token.BigIntLit
			return lx.checkNumberEnd(start, kind)
		}
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !lx.scanDigits(isDec) {
			return lx.badNumber(start, "expected exponent digits")
		}
	}
	return lx.checkNumberEnd(start, kind)
}

func (lx *Lexer) finishInteger(start Mark) token.Token {
	kind := token.NumberLit
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		kind = token.BigIntLit
	}
	return lx.checkNumberEnd(start, kind)
}

// checkNumberEnd rejects an identifier glued to a number, such as 3in.
func (lx *Lexer) checkNumberEnd(start Mark, kind token.Kind) token.Token {
	if r, sz := lx.peekRune(); sz > 0 && isIdentStartRune(r) {
		lx.scanIdentBody()
		return lx.badNumber(start, "identifier starts immediately after numeric literal")
	}
	return lx.emit(kind, start)
}

// scanDigits consumes digits accepted by ok, with '_' separators between
// them, and reports whether at least one digit was read.
func (lx *Lexer) scanDigits(ok func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		if ok(b) {
			lx.cursor.Bump()
			seen = true
			continue
		}
		if b == '_' && seen && ok(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		return seen
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
