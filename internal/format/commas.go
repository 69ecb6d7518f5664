package format

import "tsxlower/internal/ast"

// commaList emits nodes separated by ", ". A sequence expression in a list
// slot is parenthesized so that its commas do not split the list.
func (e *Emitter) commaList(nodes []ast.Node) {
	for i, n := range nodes {
		if i > 0 {
			e.Write(", ")
		}
		e.listItem(n)
	}
}

func (e *Emitter) listItem(n ast.Node) {
	if ast.Is(n, ast.KindSequenceExpression) {
		e.Write("(")
		e.Node(n)
		e.Write(")")
		return
	}
	e.Node(n)
}

// holeList emits array elements; absent items are holes. A trailing hole
// needs its own comma.
func (e *Emitter) holeList(items []ast.Value) {
	for i, v := range items {
		if i > 0 {
			e.Write(", ")
		}
		if n := v.Node(); n != nil {
			e.listItem(n)
		}
	}
	if len(items) > 0 && items[len(items)-1].Node() == nil {
		e.Write(",")
	}
}

// typeArgs emits <A, B> when args is non-empty.
func (e *Emitter) typeArgs(args []ast.Node) {
	if len(args) == 0 {
		return
	}
	e.Write("<")
	e.commaList(args)
	e.Write(">")
}

// textList emits the text scalars of a list, each followed by a space.
// Modifier lists (public, static, readonly, ...) use it.
func (e *Emitter) textList(items []ast.Value) {
	for _, v := range items {
		if s := v.Text(); s != "" {
			e.Write(s)
			e.Write(" ")
		}
	}
}
