package lexer

import (
	"tsxlower/internal/diag"
	"tsxlower/internal/token"
)

type operator struct {
	text string
	kind token.Kind
}

// multiByteOps is searched in order, so longer operators precede their
// prefixes. No entry starts with '>': see scanGreater.
var multiByteOps = []operator{
	{"...", token.DotDotDot},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"**=", token.StarStarAssign},
	{"<<=", token.ShlAssign},
	{"&&=", token.AndAndAssign},
	{"||=", token.OrOrAssign},
	{"??=", token.QuestionQuestionAssign},
	{"=>", token.FatArrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{"<<", token.Shl},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"**", token.StarStar},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var greaterOps = []operator{
	{">>>=", token.UShrAssign},
	{">>>", token.UShr},
	{">>=", token.ShrAssign},
	{">>", token.Shr},
	{">=", token.GtEq},
	{">", token.Gt},
}

var singleByteOps = [utf8RuneSelf]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '=': token.Assign, '!': token.Bang, '~': token.Tilde,
	'<': token.Lt, '>': token.Gt, '&': token.Amp, '|': token.Pipe,
	'^': token.Caret, '?': token.Question, ':': token.Colon, ';': token.Semicolon,
	',': token.Comma, '.': token.Dot, '@': token.At,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) acceptFirst(ops []operator) (token.Kind, bool) {
	for _, op := range ops {
		if lx.accept(op.text) {
			return op.kind, true
		}
	}
	return token.Invalid, false
}

// scanOperatorOrPunct takes the longest operator at the cursor. A lone
// '>' is produced even before '>' or '='; the parser calls RescanGreater
// where shift and comparison operators may appear, which lets
// Array<Array<T>> close both type argument lists.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	if kind, ok := lx.acceptFirst(multiByteOps); ok {
		return lx.emit(kind, start)
	}
	// "a?.5:b" is a conditional, not optional chaining
	if lx.cursor.HasPrefix("?.") && !isDec(lx.cursor.PeekAt(2)) {
		lx.advance(2)
		return lx.emit(token.QuestionDot, start)
	}
	if b := lx.cursor.Peek(); b < utf8RuneSelf && singleByteOps[b] != token.Invalid {
		lx.cursor.Bump()
		return lx.emit(singleByteOps[b], start)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoteText(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

// scanGreater scans the longest of > >= >> >>= >>> >>>= at the cursor.
func (lx *Lexer) scanGreater() token.Token {
	start := lx.cursor.Mark()
	kind, _ := lx.acceptFirst(greaterOps)
	return lx.emit(kind, start)
}
