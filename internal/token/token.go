package token

import (
	"tsxlower/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// NewlineBefore is set when a line terminator (possibly inside a comment)
	// separates this token from the previous one.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a numeric, string, regex or template literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, RegexLit, NoSubstTemplate, TemplateHead:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind > keywordBeg && t.Kind < keywordEnd
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentName reports whether the token may be used as a property name,
// which includes every reserved word.
func (t Token) IsIdentName() bool {
	return t.Kind == Ident || t.IsKeyword()
}

// IsAssignOp reports whether the token is '=' or a compound assignment.
func (t Token) IsAssignOp() bool {
	return t.Kind > assignBeg && t.Kind < assignEnd
}
