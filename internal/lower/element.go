package lower

import (
	"fmt"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/lexer"
	"tsxlower/internal/source"
)

// lowerElement emits factory(tag, props, ...children).
func (w *Walker) lowerElement(el *ast.Element) (ast.Node, error) {
	ref, err := ResolveTag(el.Name)
	if err != nil {
		return nil, err
	}
	props, err := w.lowerProps(el)
	if err != nil {
		return nil, err
	}
	children, err := w.lowerChildren(el.Children)
	if err != nil {
		return nil, err
	}
	w.stats.Elements++
	return w.factoryCall(ref.Expr, props, children, el.Span), nil
}

// lowerFragment emits factory(fragment, null, ...children).
func (w *Walker) lowerFragment(fr *ast.Fragment) (ast.Node, error) {
	children, err := w.lowerChildren(fr.Children)
	if err != nil {
		return nil, err
	}
	w.stats.Fragments++
	tag := ast.NewMemberPath(w.opts.Fragment, fr.Span)
	return w.factoryCall(tag, ast.NewNullLiteral(fr.Span), children, fr.Span), nil
}

// lowerContainer unwraps {expr} to the rewritten expression.
func (w *Walker) lowerContainer(c *ast.ExprContainer) (ast.Node, error) {
	if c.Expr == nil {
		return nil, diag.NewError(diag.LowUnsupportedAttributeKind, c.Span,
			"empty expression container has no value").AsError()
	}
	w.stats.Containers++
	return w.Rewrite(c.Expr)
}

func (w *Walker) factoryCall(tag, props ast.Node, children []ast.Node, span source.Span) ast.Node {
	args := make([]ast.Node, 0, 2+len(children))
	args = append(args, tag, props)
	args = append(args, children...)
	return ast.NewCall(ast.NewMemberPath(w.opts.Factory, span), args, span)
}

// lowerProps builds the props argument. Attributes keep their source order,
// spreads included, since later keys override earlier ones.
func (w *Walker) lowerProps(el *ast.Element) (ast.Node, error) {
	if len(el.Attrs) == 0 {
		return ast.NewNullLiteral(el.Span), nil
	}
	props := make([]ast.Node, 0, len(el.Attrs))
	span := el.Attrs[0].Pos()
	for _, a := range el.Attrs {
		span = span.Cover(a.Pos())
		switch x := a.(type) {
		case *ast.Attr:
			p, err := w.lowerAttr(x)
			if err != nil {
				return nil, err
			}
			props = append(props, p)
		case *ast.SpreadAttr:
			arg, err := w.Rewrite(x.Expr)
			if err != nil {
				return nil, err
			}
			props = append(props, ast.NewSpreadElement(arg, x.Span))
		default:
			return nil, diag.NewError(diag.LowUnsupportedAttributeKind, a.Pos(),
				fmt.Sprintf("unsupported attribute kind %s", a.Kind())).AsError()
		}
	}
	obj := ast.NewObject(props, span)
	if !w.opts.CastProps {
		return obj, nil
	}
	return ast.NewCastMarker(obj, w.opts.castType(span), span), nil
}

func (w *Walker) lowerAttr(a *ast.Attr) (ast.Node, error) {
	name, ok := a.Name.(*ast.Ident)
	if !ok {
		return nil, diag.NewError(diag.LowUnsupportedAttributeKind, a.Name.Pos(),
			fmt.Sprintf("attribute name kind %s is not supported", a.Name.Kind())).AsError()
	}
	var key ast.Node
	if lexer.IsIdentifierName(name.Name) {
		key = ast.NewIdentifier(name.Name, name.Span)
	} else {
		key = ast.NewStringLiteral(name.Name, name.Span)
	}

	var value ast.Node
	var err error
	switch v := a.Value.(type) {
	case nil:
		value = ast.NewBooleanLiteral(true, a.Span)
	case *ast.ExprContainer:
		value, err = w.lowerContainer(v)
	case *ast.Element:
		value, err = w.lowerElement(v)
	case *ast.Fragment:
		value, err = w.lowerFragment(v)
	default:
		value, err = w.Rewrite(v)
	}
	if err != nil {
		return nil, err
	}
	return ast.NewProperty(key, value, a.Span), nil
}

// lowerChildren merges text runs, drops blank text and empty containers and
// lowers what remains in order.
func (w *Walker) lowerChildren(children []ast.Node) ([]ast.Node, error) {
	merged := MergeText(children)
	out := make([]ast.Node, 0, len(merged))
	for _, c := range merged {
		switch x := c.(type) {
		case *ast.Text:
			if s, ok := Normalize(x.Value); ok {
				out = append(out, ast.NewStringLiteral(s, x.Span))
			}
		case *ast.SpreadChild:
			arg, err := w.Rewrite(x.Expr)
			if err != nil {
				return nil, err
			}
			out = append(out, ast.NewSpreadElement(arg, x.Span))
		default:
			n, err := w.Rewrite(c)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}
