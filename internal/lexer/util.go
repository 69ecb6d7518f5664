package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	lx.advance(size)
}

func (lx *Lexer) advance(n int) {
	step, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("lexer: bad advance %d: %w", n, err))
	}
	lx.cursor.skip(step)
}

// accept consumes op if the input continues with it.
func (lx *Lexer) accept(op string) bool {
	if !lx.cursor.HasPrefix(op) {
		return false
	}
	lx.advance(len(op))
	return true
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	switch {
	case isDec(b):
		return true
	default:
		b |= 0x20
		return 'a' <= b && b <= 'f'
	}
}

// isNumberAfterDot handles ".5".
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1))
}

func isIdentStartByte(b byte) bool {
	if b == '_' || b == '$' {
		return true
	}
	b |= 0x20
	return 'a' <= b && b <= 'z'
}

func isIdentContinueByte(b byte) bool { return isDec(b) || isIdentStartByte(b) }

// Identifier ranges follow ID_Start and ID_Continue; bytes below 0x80
// take the ASCII path.
var (
	idStart    = []*unicode.RangeTable{unicode.L, unicode.Nl, unicode.Other_ID_Start}
	idContinue = []*unicode.RangeTable{unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc}
)

func isIdentStartRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return unicode.IsOneOf(idStart, r)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	const zwnj, zwj = '\u200c', '\u200d'
	return r == zwnj || r == zwj || isIdentStartRune(r) || unicode.IsOneOf(idContinue, r)
}

// IsIdentifierName reports whether s is a valid identifier name.
// Reserved words count.
func IsIdentifierName(s string) bool {
	first := true
	for _, r := range s {
		valid := isIdentContinueRune(r)
		if first {
			valid, first = isIdentStartRune(r), false
		}
		if r == utf8.RuneError || !valid {
			return false
		}
	}
	return !first
}
