package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
)

func TestMarkupShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"element with text and container", `<div className="a">hi {name}</div>`,
			`(Element div [className="a"] ["hi " {name}])`},
		{"self closing member tag", `<Foo.Bar x={1} {...rest} disabled />`,
			`(Element Foo.Bar [x={1} {...rest} disabled] [])`},
		{"fragment", `<><a/></>`, `(Fragment [(Element a [] [])])`},
		{"namespaced", `<svg:rect xlink:href="#a"></svg:rect>`, `(Element svg:rect [xlink:href="#a"] [])`},
		{"element attribute value", `<A icon=<B/> />`, `(Element A [icon=(Element B [] [])] [])`},
		{"spread child", `<a>{...xs}</a>`, `(Element a [] [{...xs}])`},
		{"empty container", `<a>{}</a>`, `(Element a [] [{}])`},
		{"comment only container", `<a>{/* note */}</a>`, `(Element a [] [{}])`},
		{"apostrophe in text", `<p>don't</p>`, `(Element p [] ["don't"])`},
		{"nested", `<ul>{items.map(i => <li key={i}>{i}</li>)}</ul>`,
			`(Element ul [] [{(CallExpression (MemberExpression items map) [] [(ArrowFunctionExpression [] [i] (Element li [key={i}] [{i}]))])}])`},
		{"dashed names", `<my-el data-id="x" />`, `(Element my-el [data-id="x"] [])`},
		{"generic element", `<T>x</T>`, `(Element T [] ["x"])`},
		{"nested braces in container", `<a>{({ b: 1 }).b}</a>`,
			`(Element a [] [{(MemberExpression (ParenthesizedExpression (ObjectExpression [(Property b 1)])) b)}])`},
		{"template in attribute", "<a href={`/x/${id}`} />", `(Element a [href={(TemplateLiteral ["/x/" ""] [id])}] [])`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, exprShape(t, tt.input)); diff != "" {
				t.Errorf("shape mismatch for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestMarkupInExpressionPositions(t *testing.T) {
	inputs := []string{
		"const f = () => cond ? <a/> : <b/>;",
		"return_(<div>\n  text\n</div>);",
		"x = [<a/>, <b/>];",
		"render(<A>{a < b ? 1 : 2}</A>, root);",
		"const s = `${<a/>}`;",
		"const el = <div>{/* c */}{x}</div>;\nlet y = 1 / 2;",
		"function F() { return <><A/>{' '}<B/></> }",
	}
	for _, input := range inputs {
		parseClean(t, input)
	}
}

func TestCharacterReferencesDecoded(t *testing.T) {
	el := mustElement(t, `<p title="&quot;q&quot; &amp;">&lt;&amp;&#65;&#x42;&nbsp;&bogus;</p>`)
	if got := el.Children[0].(*ast.Text).Value; got != "<&AB\u00a0&bogus;" {
		t.Errorf("text = %q", got)
	}
	attr := el.Attrs[0].(*ast.Attr)
	if got := attr.Value.(*ast.Opaque).Text("value"); got != `"q" &` {
		t.Errorf("attribute = %q", got)
	}
}

func TestAttributeStringKeepsEscapesLiteral(t *testing.T) {
	el := mustElement(t, `<a title="a\nb" />`)
	if got := el.Attrs[0].(*ast.Attr).Value.(*ast.Opaque).Text("value"); got != `a\nb` {
		t.Errorf("attribute = %q, want backslash kept", got)
	}
}

func TestMarkupSpans(t *testing.T) {
	el := mustElement(t, `<a>x</a>`)
	if el.Span.Start != 0 || el.Span.End != 8 {
		t.Errorf("element span = %d..%d, want 0..8", el.Span.Start, el.Span.End)
	}
	text := el.Children[0].(*ast.Text)
	if text.Span.Start != 3 || text.Span.End != 4 {
		t.Errorf("text span = %d..%d, want 3..4", text.Span.Start, text.Span.End)
	}
}

func TestMarkupDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  diag.Code
	}{
		{"mismatched closing tag", "x = <a></b>;", diag.SynMarkupTagMismatch},
		{"fragment closed by element", "x = <></a>;", diag.SynMarkupTagMismatch},
		{"member tag mismatch", "x = <A.B></A.C>;", diag.SynMarkupTagMismatch},
		{"unclosed element", "x = <a>text", diag.SynMarkupUnclosed},
		{"empty attribute value", "x = <a b={} />;", diag.SynMarkupEmptyAttrValue},
		{"adjacent elements", "x = <a/><b/>;", diag.SynMarkupAdjacent},
		{"bad attribute", "x = <a 1 />;", diag.SynMarkupBadAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, codes := parseWithCodes(t, tt.input)
			if !hasCode(codes, tt.want) {
				t.Fatalf("expected %s, got %v", tt.want.ID(), codes)
			}
		})
	}
}

func TestTagMismatchNotesOpeningTag(t *testing.T) {
	res := parseString(t, "x = <a>t</b>;")
	var found bool
	for _, d := range res.Bag.Items() {
		if d.Code != diag.SynMarkupTagMismatch {
			continue
		}
		found = true
		if d.Primary.Start != 8 {
			t.Errorf("primary starts at %d, want 8", d.Primary.Start)
		}
		if len(d.Notes) != 1 || d.Notes[0].Span.Start != 4 || d.Notes[0].Span.End != 6 {
			t.Errorf("notes = %+v, want opening tag 4..6", d.Notes)
		}
	}
	if !found {
		t.Fatalf("no mismatch reported: %s", diagnosticsSummary(res.Bag))
	}
}

func TestClosingTagComparedAfterNormalization(t *testing.T) {
	// e + combining acute against the precomposed form
	parseClean(t, "x = <cafe\u0301></caf\u00e9>;")
}

func TestCommentInContainerIsRecorded(t *testing.T) {
	f := parseClean(t, "<a>{/* keep */}</a>")
	if len(f.Comments) != 1 || f.Comments[0].Text != " keep " {
		t.Fatalf("comments = %+v", f.Comments)
	}
}

func mustElement(t *testing.T, input string) *ast.Element {
	t.Helper()
	stmts := body(parseClean(t, input))
	expr := stmts[0].(*ast.Opaque).Node("expression")
	el, ok := expr.(*ast.Element)
	if !ok {
		t.Fatalf("expected element, got %s", shape(expr))
	}
	return el
}

func TestUnclosedMarkupPointsAtOpener(t *testing.T) {
	tests := []struct {
		input      string
		start, end uint32
	}{
		{"const x = <div>;\n", 10, 14},
		{"x = <>text", 4, 5},
		{"x = <A.B>", 4, 8},
	}
	for _, tt := range tests {
		res := parseString(t, tt.input)
		var found bool
		for _, d := range res.Bag.Items() {
			if d.Code != diag.SynMarkupUnclosed {
				continue
			}
			found = true
			if d.Primary.Start != tt.start || d.Primary.End != tt.end {
				t.Errorf("%q: primary = %d-%d, want %d-%d", tt.input, d.Primary.Start, d.Primary.End, tt.start, tt.end)
			}
			if len(d.Notes) != 1 || int(d.Notes[0].Span.Start) != len(tt.input) {
				t.Errorf("%q: notes = %+v", tt.input, d.Notes)
			}
		}
		if !found {
			t.Errorf("%q: no %s in %s", tt.input, diag.SynMarkupUnclosed.ID(), diagnosticsSummary(res.Bag))
		}
	}
}
