package parser

import "tsxlower/internal/token"

// Binary operator precedences; higher binds tighter.
const (
	precNone = iota
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

var binaryPrec = map[token.Kind]int{
	token.QuestionQuestion: precNullish,
	token.OrOr:             precOr,
	token.AndAnd:           precAnd,
	token.Pipe:             precBitOr,
	token.Caret:            precBitXor,
	token.Amp:              precBitAnd,
	token.EqEq:             precEquality,
	token.BangEq:           precEquality,
	token.EqEqEq:           precEquality,
	token.BangEqEq:         precEquality,
	token.Lt:               precRelational,
	token.Gt:               precRelational,
	token.LtEq:             precRelational,
	token.GtEq:             precRelational,
	token.KwInstanceof:     precRelational,
	token.KwIn:             precRelational,
	token.Shl:              precShift,
	token.Shr:              precShift,
	token.UShr:             precShift,
	token.Plus:             precAdditive,
	token.Minus:            precAdditive,
	token.Star:             precMultiplicative,
	token.Slash:            precMultiplicative,
	token.Percent:          precMultiplicative,
	token.StarStar:         precExponent,
}

// binaryPrecedence returns the precedence of tok as a binary operator, or
// precNone. 'in' is excluded inside for-statement heads.
func (p *Parser) binaryPrecedence(tok token.Token) int {
	if tok.Kind == token.KwIn && p.noIn {
		return precNone
	}
	return binaryPrec[tok.Kind]
}

func isLogicalOp(k token.Kind) bool {
	return k == token.OrOr || k == token.AndAnd || k == token.QuestionQuestion
}

func isUnaryOp(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Bang, token.Tilde,
		token.KwTypeof, token.KwVoid, token.KwDelete:
		return true
	}
	return false
}

// keywordTypes are the predefined type names printed as TSKeywordType.
var keywordTypes = map[string]bool{
	"any":       true,
	"unknown":   true,
	"number":    true,
	"string":    true,
	"boolean":   true,
	"bigint":    true,
	"symbol":    true,
	"object":    true,
	"never":     true,
	"undefined": true,
	"intrinsic": true,
}

// classModifiers may precede a class member name.
var classModifiers = map[string]bool{
	"static":    true,
	"abstract":  true,
	"public":    true,
	"private":   true,
	"protected": true,
	"readonly":  true,
	"override":  true,
	"declare":   true,
	"accessor":  true,
}

// paramModifiers turn a constructor parameter into a parameter property.
var paramModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"readonly":  true,
	"override":  true,
}
