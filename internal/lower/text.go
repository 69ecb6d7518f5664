package lower

import (
	"strings"

	"tsxlower/internal/ast"
)

// Normalize collapses the formatting whitespace of a text run.
//
// Text without a line break is returned unchanged. Otherwise every line is
// trimmed of spaces and tabs, blank lines are dropped and the rest are
// joined with a single space. The second result is false when nothing is
// left.
func Normalize(raw string) (string, bool) {
	if !strings.ContainsAny(raw, "\r\n") {
		return raw, raw != ""
	}
	lines := strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' })
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Trim(line, " \t"); line != "" {
			kept = append(kept, line)
		}
	}
	out := strings.Join(kept, " ")
	return out, out != ""
}

// MergeText drops empty containers and concatenates adjacent text runs.
// The input slice is not modified.
func MergeText(children []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(children))
	for _, c := range children {
		switch x := c.(type) {
		case *ast.ExprContainer:
			if x.Expr == nil {
				continue
			}
		case *ast.Text:
			if n := len(out); n > 0 {
				if prev, ok := out[n-1].(*ast.Text); ok {
					out[n-1] = &ast.Text{Value: prev.Value + x.Value, Span: prev.Span.Cover(x.Span)}
					continue
				}
			}
		}
		out = append(out, c)
	}
	return out
}
