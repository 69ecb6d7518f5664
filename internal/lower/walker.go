package lower

import (
	"fmt"

	"tsxlower/internal/ast"
	"tsxlower/internal/trace"
)

// Stats counts the markup nodes a Walker replaced.
type Stats struct {
	Elements   int
	Fragments  int
	Containers int
}

// Walker rewrites a tree, lowering every markup node it meets.
// A Walker is not safe for concurrent use; create one per file.
type Walker struct {
	opts  Options
	stats Stats

	tracer trace.Tracer
	parent uint64
}

// NewWalker creates a walker. Zero-valued paths in opts fall back to the
// defaults.
func NewWalker(opts Options) *Walker {
	def := DefaultOptions()
	if opts.Factory == "" {
		opts.Factory = def.Factory
	}
	if opts.Fragment == "" {
		opts.Fragment = def.Fragment
	}
	if opts.CastType == "" {
		opts.CastType = def.CastType
	}
	return &Walker{opts: opts}
}

// Stats returns the counters accumulated so far.
func (w *Walker) Stats() Stats { return w.stats }

// slot is a pending rewrite: src is rewritten and stored into dst.
type slot struct {
	src ast.Node
	dst *ast.Value
}

// Rewrite returns a copy of n with every markup node lowered.
//
// Opaque nodes are rebuilt with the same kind and field order; node and list
// fields are rewritten, text and bool fields are copied. The traversal keeps
// its own work stack, so depth is bounded by memory rather than by the
// goroutine stack. Markup nodes go to the element lowering, which re-enters
// Rewrite for embedded expressions.
func (w *Walker) Rewrite(n ast.Node) (ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	var result ast.Value
	stack := []slot{{src: n, dst: &result}}
	var pending []slot
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		o, ok := s.src.(*ast.Opaque)
		if !ok {
			lowered, err := w.lowerMarkup(s.src)
			if err != nil {
				return nil, err
			}
			*s.dst = ast.NodeValue(lowered)
			continue
		}

		out := &ast.Opaque{Type: o.Type, Span: o.Span}
		if o.Fields != nil {
			out.Fields = make([]ast.Field, len(o.Fields))
		}
		pending = pending[:0]
		for i, f := range o.Fields {
			out.Fields[i].Name = f.Name
			pending = copyValue(f.Value, &out.Fields[i].Value, pending)
		}
		*s.dst = ast.NodeValue(out)
		// reversed so that source order is also processing order
		for i := len(pending) - 1; i >= 0; i-- {
			stack = append(stack, pending[i])
		}
	}
	return result.Node(), nil
}

// copyValue stores a copy of v into dst, deferring node rewrites to the
// returned slots. List values get fresh backing arrays.
func copyValue(v ast.Value, dst *ast.Value, pending []slot) []slot {
	switch v.Kind() {
	case ast.ValueNode:
		pending = append(pending, slot{src: v.Node(), dst: dst})
	case ast.ValueList:
		src := v.List()
		items := make([]ast.Value, len(src))
		for i, item := range src {
			pending = copyValue(item, &items[i], pending)
		}
		*dst = ast.List(items...)
	default:
		*dst = v
	}
	return pending
}

func (w *Walker) lowerMarkup(n ast.Node) (ast.Node, error) {
	if w.tracer != nil {
		trace.Point(w.tracer, trace.ScopeNode, n.Kind(), n.Pos().String(), w.parent)
	}
	switch x := n.(type) {
	case *ast.Element:
		return w.lowerElement(x)
	case *ast.Fragment:
		return w.lowerFragment(x)
	case *ast.ExprContainer:
		return w.lowerContainer(x)
	}
	return nil, fmt.Errorf("markup node %s outside an element at %s", n.Kind(), n.Pos())
}
