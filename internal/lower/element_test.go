package lower

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
)

func TestLowerElements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"attributes and spread with text",
			`<div id="x" {...rest}>Hi {name}</div>;`,
			`React.createElement("div", {id: "x", ...rest} as never, "Hi ", name)`},
		{"fragment around component",
			"<>\n\n  <A/>\n\n</>;",
			`React.createElement(React.Fragment, null, React.createElement(A, null))`},
		{"spreads keep their position",
			`<a x={1} {...s} y={2} {...t} />;`,
			`React.createElement("a", {x: 1, ...s, y: 2, ...t} as never)`},
		{"valueless and dashed keys",
			`<input disabled data-id="x" aria-label={l} />;`,
			`React.createElement("input", {disabled: true, "data-id": "x", "aria-label": l} as never)`},
		{"no attributes is null", `<br />;`, `React.createElement("br", null)`},
		{"member tag", `<ui.Button onClick={go} />;`,
			`React.createElement(ui.Button, {onClick: go} as never)`},
		{"this member tag", `<this.Comp />;`, `React.createElement(this.Comp, null)`},
		{"element attribute value", `<A icon=<B/> />;`,
			`React.createElement(A, {icon: React.createElement(B, null)} as never)`},
		{"fragment attribute value", `<A icon=<>x</> />;`,
			`React.createElement(A, {icon: React.createElement(React.Fragment, null, "x")} as never)`},
		{"spread child", `<a>{...xs}</a>;`, `React.createElement("a", null, ...xs)`},
		{"empty containers dropped and text merged", `<a>x{/* c */}y{}</a>;`,
			`React.createElement("a", null, "xy")`},
		{"text at element boundaries", "<p>\n  Hello,\n  {name}!\n</p>;",
			`React.createElement("p", null, "Hello,", name, "!")`},
		{"nested markup in container",
			`<ul>{items.map(i => <li key={i}>{i}</li>)}</ul>;`,
			`React.createElement("ul", null, items.map((i) => React.createElement("li", {key: i} as never, i)))`},
		{"markup inside conditional", `<a>{ok ? <b/> : null}</a>;`,
			`React.createElement("a", null, (ok ? React.createElement("b", null) : null))`},
		{"attribute string escapes are literal", `<a title="x\ny" />;`,
			`React.createElement("a", {title: "x\\ny"} as never)`},
		{"entities decoded", `<p>&lt;ok&gt;</p>;`, `React.createElement("p", null, "<ok>")`},
		{"whitespace between siblings removed", "<ul>\n  <li/>\n  <li/>\n</ul>;",
			`React.createElement("ul", null, React.createElement("li", null), React.createElement("li", null))`},
		{"inline space between containers kept", `<p>{a} {b}</p>;`,
			`React.createElement("p", null, a, " ", b)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, lowerExpr(t, tt.input, DefaultOptions())); diff != "" {
				t.Errorf("lowering %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLowerOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input string
		want  string
	}{
		{"cast disabled", Options{Factory: "React.createElement", Fragment: "React.Fragment"},
			`<a x={1} />;`, `React.createElement("a", {x: 1})`},
		{"custom factory and fragment", Options{Factory: "h", Fragment: "Fragment", CastProps: true, CastType: "any"},
			`<><a x={1} /></>;`, `h(Fragment, null, h("a", {x: 1} as any))`},
		{"cast to named type", Options{CastProps: true, CastType: "JSX.Props"},
			`<a x={1} />;`, `React.createElement("a", {x: 1} as JSX.Props)`},
		{"zero options fall back", Options{CastProps: true},
			`<A/>;`, `React.createElement(A, null)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lowerExpr(t, tt.input, tt.opts); got != tt.want {
				t.Errorf("got %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestCastTypeNodeKind(t *testing.T) {
	out, err := NewWalker(DefaultOptions()).Rewrite(firstExpr(t, parse(t, `<a x={1} />;`)))
	if err != nil {
		t.Fatal(err)
	}
	props := out.(*ast.Opaque).Nodes("arguments")[1].(*ast.Opaque)
	if props.Type != ast.KindCastMarker {
		t.Fatalf("props kind = %s", props.Type)
	}
	typ := props.Node("typeAnnotation").(*ast.Opaque)
	if typ.Type != ast.KindTSKeywordType || typ.Text("keyword") != "never" {
		t.Errorf("cast type = %s %q", typ.Type, typ.Text("keyword"))
	}
}

func TestCallArity(t *testing.T) {
	inputs := []string{
		`<a/>;`,
		`<a>x</a>;`,
		`<a>x{y}z</a>;`,
		"<a>\n  <b/>\n  text\n  {c}\n  {}\n</a>;",
		`<a {...p}>{...xs}{/* c */}</a>;`,
	}
	for _, in := range inputs {
		el, ok := firstExpr(t, parse(t, in)).(*ast.Element)
		if !ok {
			t.Fatalf("%q did not parse as an element", in)
		}
		want := 2
		for _, c := range MergeText(el.Children) {
			if txt, ok := c.(*ast.Text); ok {
				if _, keep := Normalize(txt.Value); !keep {
					continue
				}
			}
			want++
		}
		out, err := NewWalker(DefaultOptions()).Rewrite(el)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(out.(*ast.Opaque).List("arguments")); got != want {
			t.Errorf("%q: %d arguments, want %d", in, got, want)
		}
	}
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		code  diag.Code
	}{
		{"namespaced tag", `<svg:rect />;`, diag.ErrUnsupportedTagKind, diag.LowUnsupportedTagKind},
		{"namespaced attribute", `<a xlink:href="#x" />;`, diag.ErrUnsupportedAttributeKind, diag.LowUnsupportedAttributeKind},
		{"nested failure surfaces", `<a>{[<b:c/>]}</a>;`, diag.ErrUnsupportedTagKind, diag.LowUnsupportedTagKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWalker(DefaultOptions()).Rewrite(firstExpr(t, parse(t, tt.input)))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var de *diag.Error
			if !errors.As(err, &de) || de.Diagnostic.Code != tt.code {
				t.Fatalf("err = %v, want diagnostic %s", err, tt.code.ID())
			}
		})
	}
}
