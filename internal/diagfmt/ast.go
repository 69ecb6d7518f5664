package diagfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"tsxlower/internal/ast"
	"tsxlower/internal/source"
)

// ASTOpts configures FormatASTJSON.
type ASTOpts struct {
	// Positions adds line and column to every node next to the byte offsets.
	Positions bool
	// Comments includes the comment list.
	Comments bool
	PathMode  PathMode
}

// FormatASTJSON writes f as indented JSON. Opaque nodes keep their field
// order; markup nodes use their struct field names in lower camel case.
func FormatASTJSON(w io.Writer, f *ast.File, fs *source.FileSet, opts ASTOpts) error {
	if f == nil {
		return fmt.Errorf("diagfmt: nil file")
	}
	enc := &astEncoder{fs: fs, positions: opts.Positions}
	enc.open()
	enc.key("path")
	enc.str(enc.path(f, opts.PathMode))
	if f.Hashbang != "" {
		enc.key("hashbang")
		enc.str(f.Hashbang)
	}
	if opts.Comments {
		enc.key("comments")
		enc.buf.WriteByte('[')
		for i, c := range f.Comments {
			if i > 0 {
				enc.buf.WriteByte(',')
			}
			enc.open()
			enc.key("kind")
			enc.str(c.Kind.String())
			enc.key("text")
			enc.str(c.Text)
			enc.span(c.Span)
			enc.close()
		}
		enc.buf.WriteByte(']')
	}
	enc.key("program")
	if f.Program != nil {
		enc.node(f.Program)
	} else {
		enc.buf.WriteString("null")
	}
	enc.close()

	var out bytes.Buffer
	if err := json.Indent(&out, enc.buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

type astEncoder struct {
	buf       bytes.Buffer
	fs        *source.FileSet
	positions bool
	// first is true right after '{', so the next key needs no comma
	first bool
}

func (e *astEncoder) path(f *ast.File, mode PathMode) string {
	if e.fs == nil {
		return f.Path
	}
	id, ok := e.fs.GetLatest(f.Path)
	if !ok {
		return f.Path
	}
	return displayPath(e.fs, id, mode)
}

func (e *astEncoder) open() {
	e.buf.WriteByte('{')
	e.first = true
}

func (e *astEncoder) close() {
	e.buf.WriteByte('}')
	e.first = false
}

func (e *astEncoder) key(k string) {
	if !e.first {
		e.buf.WriteByte(',')
	}
	e.first = false
	e.str(k)
	e.buf.WriteByte(':')
}

func (e *astEncoder) str(s string) {
	data, _ := json.Marshal(s)
	e.buf.Write(data)
}

func (e *astEncoder) span(sp source.Span) {
	e.key("start")
	fmt.Fprint(&e.buf, sp.Start)
	e.key("end")
	fmt.Fprint(&e.buf, sp.End)
	if e.positions && e.fs != nil {
		start, end := e.fs.Resolve(sp)
		e.key("loc")
		fmt.Fprintf(&e.buf, `{"start":{"line":%d,"col":%d},"end":{"line":%d,"col":%d}}`,
			start.Line, start.Col, end.Line, end.Col)
	}
}

func (e *astEncoder) nodes(list []ast.Node) {
	e.buf.WriteByte('[')
	for i, n := range list {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.node(n)
	}
	e.buf.WriteByte(']')
}

func (e *astEncoder) field(name string, n ast.Node) {
	e.key(name)
	e.node(n)
}

func (e *astEncoder) node(n ast.Node) {
	if n == nil {
		e.buf.WriteString("null")
		return
	}
	e.open()
	e.key("type")
	e.str(n.Kind())
	e.span(n.Pos())
	switch x := n.(type) {
	case *ast.Opaque:
		for _, f := range x.Fields {
			e.key(f.Name)
			e.value(f.Value)
		}
	case *ast.Element:
		e.field("name", x.Name)
		e.key("attributes")
		e.nodes(x.Attrs)
		e.key("children")
		e.nodes(x.Children)
		e.key("selfClosing")
		fmt.Fprint(&e.buf, x.SelfClosing)
	case *ast.Fragment:
		e.key("children")
		e.nodes(x.Children)
	case *ast.ExprContainer:
		e.field("expression", x.Expr)
	case *ast.Text:
		e.key("value")
		e.str(x.Value)
	case *ast.Ident:
		e.key("name")
		e.str(x.Name)
	case *ast.MemberTagName:
		e.field("object", x.Object)
		e.field("property", identNode(x.Property))
	case *ast.NamespacedName:
		e.field("namespace", identNode(x.Namespace))
		e.field("name", identNode(x.Name))
	case *ast.Attr:
		e.field("name", x.Name)
		e.field("value", x.Value)
	case *ast.SpreadAttr:
		e.field("argument", x.Expr)
	case *ast.SpreadChild:
		e.field("argument", x.Expr)
	}
	e.close()
}

// identNode keeps a nil *Ident from becoming a non-nil interface.
func identNode(id *ast.Ident) ast.Node {
	if id == nil {
		return nil
	}
	return id
}

func (e *astEncoder) value(v ast.Value) {
	switch v.Kind() {
	case ast.ValueNode:
		e.node(v.Node())
	case ast.ValueList:
		e.buf.WriteByte('[')
		for i, item := range v.List() {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.value(item)
		}
		e.buf.WriteByte(']')
	case ast.ValueText:
		e.str(v.Text())
	case ast.ValueBool:
		fmt.Fprint(&e.buf, v.Bool())
	default:
		e.buf.WriteString("null")
	}
}
