package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseString(t *testing.T, input string) Result {
	t.Helper()
	fs := source.NewFileSet()
	return ParseSource(context.Background(), fs, "test.tsx", []byte(input), 100)
}

// parseClean parses input and fails the test on any diagnostic.
func parseClean(t *testing.T, input string) *ast.File {
	t.Helper()
	res := parseString(t, input)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(res.Bag))
	}
	return res.File
}

// parseWithCodes parses input and returns the diagnostic codes it produced.
func parseWithCodes(t *testing.T, input string) (*ast.File, []diag.Code) {
	t.Helper()
	res := parseString(t, input)
	var codes []diag.Code
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	return res.File, codes
}

func hasCode(codes []diag.Code, want diag.Code) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func body(f *ast.File) []ast.Node {
	return f.Program.Nodes("body")
}

// stmtShape renders the single statement of input.
func stmtShape(t *testing.T, input string) string {
	t.Helper()
	stmts := body(parseClean(t, input))
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement for %q, got %d", input, len(stmts))
	}
	return shape(stmts[0])
}

// exprShape renders the expression of the single expression statement of input.
func exprShape(t *testing.T, input string) string {
	t.Helper()
	stmts := body(parseClean(t, input))
	if len(stmts) != 1 || !ast.Is(stmts[0], ast.KindExpressionStatement) {
		t.Fatalf("expected one expression statement for %q, got %d statements", input, len(stmts))
	}
	return shape(stmts[0].(*ast.Opaque).Node("expression"))
}

// shape renders a tree compactly: leaves by their spelling, other opaque
// nodes as (Kind [operator] children...) with text and bool fields left out.
func shape(n ast.Node) string {
	switch x := n.(type) {
	case nil:
		return "_"
	case *ast.Opaque:
		switch x.Type {
		case ast.KindIdentifier:
			s := x.Text("name")
			if x.Bool("optional") {
				s += "?"
			}
			if typ := x.Node("typeAnnotation"); typ != nil {
				s += ":" + shape(typ)
			}
			return s
		case ast.KindPrivateIdentifier:
			return x.Text("name")
		case ast.KindStringLiteral:
			return strconv.Quote(x.Text("value"))
		case ast.KindNumericLiteral, ast.KindBigIntLiteral, ast.KindRegExpLiteral:
			return x.Text("raw")
		case ast.KindBooleanLiteral:
			return strconv.FormatBool(x.Bool("value"))
		case ast.KindNullLiteral:
			return "null"
		case ast.KindThisExpression:
			return "this"
		case ast.KindTSKeywordType:
			return x.Text("keyword")
		case ast.KindTemplateElement:
			return strconv.Quote(x.Text("raw"))
		}
		var b strings.Builder
		b.WriteString("(" + x.Type)
		if op := x.Text("operator"); op != "" {
			b.WriteString(" " + op)
		}
		for _, f := range x.Fields {
			switch f.Value.Kind() {
			case ast.ValueNode:
				b.WriteString(" " + shape(f.Value.Node()))
			case ast.ValueList:
				items := make([]string, 0, len(f.Value.List()))
				for _, v := range f.Value.List() {
					if v.Kind() == ast.ValueNode || v.IsAbsent() {
						items = append(items, shape(v.Node()))
					}
				}
				b.WriteString(" [" + strings.Join(items, " ") + "]")
			}
		}
		b.WriteString(")")
		return b.String()
	case *ast.Element:
		return fmt.Sprintf("(Element %s [%s] [%s])", markupName(x.Name), shapes(x.Attrs), shapes(x.Children))
	case *ast.Fragment:
		return fmt.Sprintf("(Fragment [%s])", shapes(x.Children))
	case *ast.Text:
		return strconv.Quote(x.Value)
	case *ast.ExprContainer:
		if x.Expr == nil {
			return "{}"
		}
		return "{" + shape(x.Expr) + "}"
	case *ast.SpreadAttr:
		return "{..." + shape(x.Expr) + "}"
	case *ast.SpreadChild:
		return "{..." + shape(x.Expr) + "}"
	case *ast.Attr:
		if x.Value == nil {
			return markupName(x.Name)
		}
		return markupName(x.Name) + "=" + shape(x.Value)
	}
	return "<" + n.Kind() + ">"
}

func shapes(nodes []ast.Node) string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = shape(n)
	}
	return strings.Join(out, " ")
}
