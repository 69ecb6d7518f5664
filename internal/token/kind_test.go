package token_test

import (
	"testing"

	"tsxlower/internal/source"
	"tsxlower/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NumberLit, token.BigIntLit, token.StringLit,
		token.RegexLit, token.NoSubstTemplate, token.TemplateHead,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen, token.JSXText}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	for _, word := range []string{"class", "const", "function", "instanceof", "typeof", "null"} {
		k, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("%q should be a keyword", word)
		}
		if !tok(k).IsKeyword() || !tok(k).IsIdentName() {
			t.Fatalf("%q: IsKeyword/IsIdentName false", word)
		}
		if k.String() != word {
			t.Fatalf("String() = %q, want %q", k.String(), word)
		}
	}
	for _, word := range []string{"type", "interface", "as", "async", "of", "Class"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must stay an identifier", word)
		}
	}
}

func TestIsAssignOp(t *testing.T) {
	for _, k := range []token.Kind{token.Assign, token.PlusAssign, token.QuestionQuestionAssign, token.UShrAssign} {
		if !tok(k).IsAssignOp() {
			t.Fatalf("%v should be an assignment operator", k)
		}
	}
	for _, k := range []token.Kind{token.EqEq, token.FatArrow, token.GtEq} {
		if tok(k).IsAssignOp() {
			t.Fatalf("%v must NOT be an assignment operator", k)
		}
	}
}
