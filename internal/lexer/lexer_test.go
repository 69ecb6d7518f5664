package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"tsxlower/internal/diag"
	"tsxlower/internal/lexer"
	"tsxlower/internal/source"
	"tsxlower/internal/token"
)

// testReporter collects diagnostics produced by the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) Codes() []diag.Code {
	codes := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tsx", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ncodes: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.Codes())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("%q: expected kind %v, got %v", input, expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("%q: expected text %q, got %q", input, expectedText, tok.Text)
	}
	if reporter.HasErrors() {
		t.Errorf("%q: unexpected diagnostics %v", input, reporter.Codes())
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("%q: trailing token %v", input, next.Kind)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_bar", token.Ident},
		{"$el", token.Ident},
		{"a1_b2", token.Ident},
		{"привет", token.Ident},
		{"日本語", token.Ident},
		{"class", token.KwClass},
		{"Class", token.Ident},
		{"type", token.Ident},
		{"#secret", token.PrivateName},
	}
	for _, tt := range tests {
		expectSingleToken(t, tt.input, tt.kind, tt.input)
	}
}

func TestNumbers(t *testing.T) {
	for _, input := range []string{"0", "42", "1_000", "3.14", ".5", "1e10", "2.5E-3", "0xFF", "0o17", "0b1010"} {
		expectSingleToken(t, input, token.NumberLit, input)
	}
	for _, input := range []string{"10n", "0x1Fn"} {
		expectSingleToken(t, input, token.BigIntLit, input)
	}
}

func TestNumbers_Invalid(t *testing.T) {
	for _, input := range []string{"1e", "0x", "3in"} {
		lx, reporter := makeTestLexer(input)
		collectAllTokens(lx)
		if len(reporter.diagnostics) == 0 || reporter.diagnostics[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber, got %v", input, reporter.Codes())
		}
	}
}

func TestStrings(t *testing.T) {
	for _, input := range []string{`"hi"`, `'hi'`, `"a\"b"`, `'it\'s'`, `"\u{1F600}"`, `""`} {
		expectSingleToken(t, input, token.StringLit, input)
	}

	lx, reporter := makeTestLexer("\"abc\nx")
	collectAllTokens(lx)
	if len(reporter.diagnostics) == 0 || reporter.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", reporter.Codes())
	}
}

func TestOperators_Greedy(t *testing.T) {
	expectTokens(t, "a === b !== c ?? d ?. e ** f", []token.Kind{
		token.Ident, token.EqEqEq, token.Ident, token.BangEqEq, token.Ident,
		token.QuestionQuestion, token.Ident, token.QuestionDot, token.Ident,
		token.StarStar, token.Ident,
	})
	expectTokens(t, "x ??= y &&= z ||= w **= 2 <<= 1", []token.Kind{
		token.Ident, token.QuestionQuestionAssign, token.Ident, token.AndAndAssign,
		token.Ident, token.OrOrAssign, token.Ident, token.StarStarAssign, token.NumberLit,
		token.ShlAssign, token.NumberLit,
	})
	expectTokens(t, "(...args) => {}", []token.Kind{
		token.LParen, token.DotDotDot, token.Ident, token.RParen, token.FatArrow,
		token.LBrace, token.RBrace,
	})
	// a?.5:1 is a conditional, not optional chaining
	expectTokens(t, "a?.5:1", []token.Kind{
		token.Ident, token.Question, token.NumberLit, token.Colon, token.NumberLit,
	})
}

func TestGreaterIsAlwaysSingle(t *testing.T) {
	expectTokens(t, "a >> b", []token.Kind{token.Ident, token.Gt, token.Gt, token.Ident})

	lx, _ := makeTestLexer("a >>>= b")
	lx.Next()
	if gt := lx.Peek(); gt.Kind != token.Gt {
		t.Fatalf("expected Gt, got %v", gt.Kind)
	}
	op := lx.RescanGreater()
	if op.Kind != token.UShrAssign || op.Text != ">>>=" {
		t.Fatalf("RescanGreater = %v %q", op.Kind, op.Text)
	}
	if lx.Next() != op {
		t.Fatal("rescanned token must replace the lookahead")
	}
	if next := lx.Next(); next.Kind != token.Ident || next.Text != "b" {
		t.Fatalf("after rescan: %v %q", next.Kind, next.Text)
	}
}

func TestRescanRegex(t *testing.T) {
	lx, reporter := makeTestLexer("x = /[/]+\\/a/gi.test(s)")
	lx.Next()
	lx.Next()
	if slash := lx.Peek(); slash.Kind != token.Slash {
		t.Fatalf("expected Slash, got %v", slash.Kind)
	}
	re := lx.RescanRegex()
	if re.Kind != token.RegexLit || re.Text != "/[/]+\\/a/gi" {
		t.Fatalf("RescanRegex = %v %q", re.Kind, re.Text)
	}
	lx.Next()
	if next := lx.Next(); next.Kind != token.Dot {
		t.Fatalf("after regex: %v", next.Kind)
	}
	if reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics %v", reporter.Codes())
	}
}

func TestTemplates(t *testing.T) {
	expectSingleToken(t, "`plain`", token.NoSubstTemplate, "`plain`")

	lx, reporter := makeTestLexer("`a${b}c${d}e`")
	head := lx.Next()
	if head.Kind != token.TemplateHead || head.Text != "`a${" {
		t.Fatalf("head = %v %q", head.Kind, head.Text)
	}
	lx.Next() // b
	lx.Peek()
	mid := lx.RescanTemplateContinuation()
	lx.Next()
	if mid.Kind != token.TemplateMiddle || mid.Text != "}c${" {
		t.Fatalf("middle = %v %q", mid.Kind, mid.Text)
	}
	lx.Next() // d
	lx.Peek()
	tail := lx.RescanTemplateContinuation()
	lx.Next()
	if tail.Kind != token.TemplateTail || tail.Text != "}e`" {
		t.Fatalf("tail = %v %q", tail.Kind, tail.Text)
	}
	if lx.Next().Kind != token.EOF || reporter.HasErrors() {
		t.Fatal("expected clean EOF")
	}
}

func TestComments(t *testing.T) {
	lx, _ := makeTestLexer("// one\na /* two\n */ b // three")
	tokens := collectAllTokens(lx)
	if len(tokens) != 3 {
		t.Fatalf("tokens = %s", tokensToString(tokens))
	}
	if !tokens[0].NewlineBefore || !tokens[1].NewlineBefore {
		t.Fatal("NewlineBefore must be set across line and multi-line block comments")
	}
	comments := lx.Comments()
	want := []struct {
		kind token.TriviaKind
		text string
	}{
		{token.TriviaLineComment, " one"},
		{token.TriviaBlockComment, " two\n "},
		{token.TriviaLineComment, " three"},
	}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments", len(comments))
	}
	for i, c := range comments {
		if c.Kind != want[i].kind || c.Text != want[i].text {
			t.Errorf("comment %d = %v %q", i, c.Kind, c.Text)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("a /* open")
	collectAllTokens(lx)
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("codes = %v", reporter.Codes())
	}
	if len(lx.Comments()) != 1 {
		t.Fatal("unterminated comment must still be recorded")
	}
}

func TestHashbang(t *testing.T) {
	lx, _ := makeTestLexer("#!/usr/bin/env node\nx")
	tokens := collectAllTokens(lx)
	if len(tokens) != 2 || tokens[0].Text != "x" {
		t.Fatalf("tokens = %s", tokensToString(tokens))
	}
	if lx.Hashbang() != "#!/usr/bin/env node" || len(lx.Comments()) != 0 {
		t.Fatalf("hashbang = %q, comments = %d", lx.Hashbang(), len(lx.Comments()))
	}
}

func TestPeekAndSetMode(t *testing.T) {
	// <div>  hello {x}</div> scanned the way the parser drives it
	lx, _ := makeTestLexer("<div>  hello {x}</div>")
	if lx.Next().Kind != token.Lt {
		t.Fatal("expected <")
	}
	lx.SetMode(lexer.ModeTag)
	if tok := lx.Next(); tok.Kind != token.Ident || tok.Text != "div" {
		t.Fatalf("tag name = %v %q", tok.Kind, tok.Text)
	}
	if lx.Peek().Kind != token.Gt {
		t.Fatal("expected > lookahead")
	}
	lx.Next()
	// the lookahead scanned past '>' in tag mode; switching must rescan
	_ = lx.Peek()
	lx.SetMode(lexer.ModeChild)
	text := lx.Next()
	if text.Kind != token.JSXText || text.Text != "  hello " {
		t.Fatalf("child text = %v %q", text.Kind, text.Text)
	}
	if lx.Next().Kind != token.LBrace {
		t.Fatal("expected {")
	}
	lx.SetMode(lexer.ModeNormal)
	if lx.Next().Text != "x" || lx.Next().Kind != token.RBrace {
		t.Fatal("expected x }")
	}
	lx.SetMode(lexer.ModeChild)
	if lx.Next().Kind != token.Lt {
		t.Fatal("expected < in child mode")
	}
	lx.SetMode(lexer.ModeTag)
	for _, want := range []token.Kind{token.Slash, token.Ident, token.Gt, token.EOF} {
		if got := lx.Next().Kind; got != want {
			t.Fatalf("closing tag: got %v, want %v", got, want)
		}
	}
}

func TestTagModeNames(t *testing.T) {
	lx, _ := makeTestLexer(`data-id="a\b" class`)
	lx.SetMode(lexer.ModeTag)
	for _, want := range []struct {
		kind token.Kind
		text string
	}{
		{token.Ident, "data-id"},
		{token.Assign, "="},
		{token.StringLit, `"a\b"`},
		{token.Ident, "class"},
	} {
		tok := lx.Next()
		if tok.Kind != want.kind || tok.Text != want.text {
			t.Fatalf("got %v %q, want %v %q", tok.Kind, tok.Text, want.kind, want.text)
		}
	}
}

func TestSaveRestore(t *testing.T) {
	lx, _ := makeTestLexer("(a /* c */, b) => 1")
	lx.Next()
	st := lx.Save()
	for lx.Next().Kind != token.FatArrow {
	}
	if len(lx.Comments()) != 1 {
		t.Fatal("expected one comment after scanning ahead")
	}
	lx.Restore(st)
	if len(lx.Comments()) != 0 {
		t.Fatal("Restore must forget comments scanned after the snapshot")
	}
	if tok := lx.Next(); tok.Text != "a" {
		t.Fatalf("after restore: %q", tok.Text)
	}
	lx.Next()
	if len(lx.Comments()) != 1 {
		t.Fatal("comment must be recorded again once rescanned")
	}
}

func TestIsIdentifierName(t *testing.T) {
	tests := map[string]bool{
		"div":        true,
		"_X":         true,
		"$x":         true,
		"x1":         true,
		"my-element": false,
		"1x":         false,
		"":           false,
	}
	for in, want := range tests {
		if got := lexer.IsIdentifierName(in); got != want {
			t.Errorf("IsIdentifierName(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, reporter := makeTestLexer("a ¤ b")
	tokens := collectAllTokens(lx)
	if len(tokens) != 4 || tokens[1].Kind != token.Invalid {
		t.Fatalf("tokens = %s", tokensToString(tokens))
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("codes = %v", reporter.Codes())
	}
}

func TestMuteCountsErrors(t *testing.T) {
	lx, reporter := makeTestLexer("'open")
	lx.Mute()
	lx.Next()
	lx.Unmute()
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("muted lexer reported %v", reporter.Codes())
	}
	if lx.MutedErrors() != 1 {
		t.Fatalf("MutedErrors = %d, want 1", lx.MutedErrors())
	}
}
