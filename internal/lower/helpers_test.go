package lower

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"tsxlower/internal/ast"
	"tsxlower/internal/parser"
	"tsxlower/internal/source"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	res := parser.ParseSource(context.Background(), source.NewFileSet(), "test.tsx", []byte(src), 100)
	if res.Bag.Len() != 0 {
		var msgs []string
		for _, d := range res.Bag.Items() {
			msgs = append(msgs, d.Code.ID()+" "+d.Message)
		}
		t.Fatalf("parse %q: %s", src, strings.Join(msgs, "; "))
	}
	return res.File
}

func spanAt(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

// firstExpr returns the expression of the first expression statement.
func firstExpr(t *testing.T, f *ast.File) ast.Node {
	t.Helper()
	body := f.Program.Nodes("body")
	if len(body) == 0 {
		t.Fatal("empty program")
	}
	stmt, ok := ast.AsOpaque(body[0])
	if !ok || stmt.Type != ast.KindExpressionStatement {
		t.Fatalf("first statement is %s", body[0].Kind())
	}
	return stmt.Node("expression")
}

// lowerExpr parses src, lowers the first expression statement with opts and
// renders the result.
func lowerExpr(t *testing.T, src string, opts Options) string {
	t.Helper()
	out, err := NewWalker(opts).Rewrite(firstExpr(t, parse(t, src)))
	if err != nil {
		t.Fatalf("lower %q: %v", src, err)
	}
	return js(out)
}

// js renders the node kinds lowering produces in a compact JS-like form.
func js(n ast.Node) string {
	o, ok := ast.AsOpaque(n)
	if !ok {
		if n == nil {
			return "_"
		}
		return "<" + n.Kind() + ">"
	}
	switch o.Type {
	case ast.KindIdentifier:
		return o.Text("name")
	case ast.KindThisExpression:
		return "this"
	case ast.KindStringLiteral:
		return strconv.Quote(o.Text("value"))
	case ast.KindNumericLiteral:
		return o.Text("raw")
	case ast.KindNullLiteral:
		return "null"
	case ast.KindBooleanLiteral:
		return strconv.FormatBool(o.Bool("value"))
	case ast.KindMemberExpression:
		if o.Bool("computed") {
			return js(o.Node("object")) + "[" + js(o.Node("property")) + "]"
		}
		return js(o.Node("object")) + "." + js(o.Node("property"))
	case ast.KindCallExpression:
		return js(o.Node("callee")) + "(" + jsList(o.Nodes("arguments")) + ")"
	case ast.KindObjectExpression:
		return "{" + jsList(o.Nodes("properties")) + "}"
	case ast.KindProperty:
		return js(o.Node("key")) + ": " + js(o.Node("value"))
	case ast.KindSpreadElement:
		return "..." + js(o.Node("argument"))
	case ast.KindCastMarker:
		return js(o.Node("expression")) + " as " + js(o.Node("typeAnnotation"))
	case ast.KindTSKeywordType:
		return o.Text("keyword")
	case ast.KindTSTypeReference:
		return js(o.Node("typeName"))
	case ast.KindTSQualifiedName:
		return js(o.Node("left")) + "." + js(o.Node("right"))
	case ast.KindBinaryExpression, ast.KindLogicalExpression:
		return "(" + js(o.Node("left")) + " " + o.Text("operator") + " " + js(o.Node("right")) + ")"
	case ast.KindConditionalExpression:
		return "(" + js(o.Node("test")) + " ? " + js(o.Node("consequent")) + " : " + js(o.Node("alternate")) + ")"
	case ast.KindArrowFunctionExpression:
		return "(" + jsList(o.Nodes("params")) + ") => " + js(o.Node("body"))
	case ast.KindParenthesizedExpression:
		return "(" + js(o.Node("expression")) + ")"
	}
	return "<" + o.Type + ">"
}

func jsList(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = js(n)
	}
	return strings.Join(parts, ", ")
}
