package lower

import (
	"errors"
	"testing"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
)

func ident(name string) *ast.Ident {
	return &ast.Ident{Name: name, Span: spanAt(0, uint32(len(name)))}
}

func member(parts ...string) ast.Node {
	var cur ast.Node = ident(parts[0])
	for _, p := range parts[1:] {
		cur = &ast.MemberTagName{Object: cur, Property: ident(p)}
	}
	return cur
}

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name     string
		tag      ast.Node
		wantKind TagKind
		want     string
	}{
		{"upper component", ident("Div"), TagValue, "Div"},
		{"underscore component", ident("_X"), TagValue, "_X"},
		{"dollar component", ident("$x"), TagValue, "$x"},
		{"lower intrinsic", ident("div"), TagString, `"div"`},
		{"lower with digit", ident("x1"), TagString, `"x1"`},
		{"custom element", ident("my-element"), TagString, `"my-element"`},
		{"dashed upper stays intrinsic", ident("My-Element"), TagString, `"My-Element"`},
		{"non ascii upper", ident("Ärger"), TagValue, "Ärger"},
		{"member", member("a", "b"), TagValue, "a.b"},
		{"member chain", member("ui", "Form", "Field"), TagValue, "ui.Form.Field"},
		{"this member", member("this", "Comp"), TagValue, "this.Comp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ResolveTag(tt.tag)
			if err != nil {
				t.Fatalf("ResolveTag: %v", err)
			}
			if ref.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", ref.Kind, tt.wantKind)
			}
			if got := js(ref.Expr); got != tt.want {
				t.Errorf("expr = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveTagBuildsNestedMembers(t *testing.T) {
	ref, err := ResolveTag(member("a", "b", "c"))
	if err != nil {
		t.Fatal(err)
	}
	outer, ok := ast.AsOpaque(ref.Expr)
	if !ok || outer.Type != ast.KindMemberExpression {
		t.Fatalf("expected member expression, got %s", ref.Expr.Kind())
	}
	if !ast.Is(outer.Node("object"), ast.KindMemberExpression) {
		t.Errorf("object of outer member is %s", outer.Node("object").Kind())
	}
	if js(outer.Node("property")) != "c" {
		t.Errorf("outer property = %s", js(outer.Node("property")))
	}
}

func TestResolveTagRejects(t *testing.T) {
	tests := []struct {
		name string
		tag  ast.Node
	}{
		{"namespaced", &ast.NamespacedName{Namespace: ident("svg"), Name: ident("rect")}},
		{"dashed member segment", member("a", "b-c")},
		{"dashed member root", member("a-b", "c")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTag(tt.tag)
			if !errors.Is(err, diag.ErrUnsupportedTagKind) {
				t.Fatalf("err = %v, want %v", err, diag.ErrUnsupportedTagKind)
			}
		})
	}
}
