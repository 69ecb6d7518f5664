package lower

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/lexer"
)

// TagKind tells how a tag is passed to the factory.
type TagKind uint8

const (
	// TagValue is a component: the tag is a value reference.
	TagValue TagKind = iota
	// TagString is an intrinsic element: the tag is a string literal.
	TagString
)

func (k TagKind) String() string {
	if k == TagString {
		return "string"
	}
	return "value"
}

// TagRef is a resolved tag. Expr is an Identifier, ThisExpression or
// MemberExpression for TagValue and a StringLiteral for TagString.
type TagRef struct {
	Kind TagKind
	Expr ast.Node
}

// ResolveTag classifies a tag name.
//
// A single identifier names a component when its first rune is unchanged by
// upper-casing (Div, _X, $x) and an intrinsic element otherwise (div, x1).
// Names that are not host identifiers, such as my-element, are intrinsic.
// Member chains are always components; a leading this becomes a
// ThisExpression. Namespaced names are rejected.
func ResolveTag(name ast.Node) (TagRef, error) {
	switch n := name.(type) {
	case *ast.Ident:
		if isComponentName(n.Name) {
			return TagRef{Kind: TagValue, Expr: ast.NewIdentifier(n.Name, n.Span)}, nil
		}
		return TagRef{Kind: TagString, Expr: ast.NewStringLiteral(n.Name, n.Span)}, nil
	case *ast.MemberTagName:
		expr, err := memberChain(n)
		if err != nil {
			return TagRef{}, err
		}
		return TagRef{Kind: TagValue, Expr: expr}, nil
	case *ast.NamespacedName:
		return TagRef{}, diag.NewError(diag.LowUnsupportedTagKind, n.Span,
			fmt.Sprintf("namespaced tag name %s:%s is not supported", n.Namespace.Name, n.Name.Name)).AsError()
	}
	return TagRef{}, diag.NewError(diag.LowUnsupportedTagKind, name.Pos(),
		fmt.Sprintf("unsupported tag name kind %s", name.Kind())).AsError()
}

func isComponentName(name string) bool {
	if !lexer.IsIdentifierName(name) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.ToUpper(r) == r
}

// memberChain walks down the object side iteratively and builds the member
// expressions back up from the innermost segment.
func memberChain(n *ast.MemberTagName) (ast.Node, error) {
	var segs []*ast.MemberTagName
	var cur ast.Node = n
	for {
		m, ok := cur.(*ast.MemberTagName)
		if !ok {
			break
		}
		segs = append(segs, m)
		cur = m.Object
	}
	root, ok := cur.(*ast.Ident)
	if !ok {
		return nil, diag.NewError(diag.LowUnsupportedTagKind, cur.Pos(),
			fmt.Sprintf("unsupported member tag object %s", cur.Kind())).AsError()
	}
	var expr ast.Node
	switch {
	case root.Name == "this":
		expr = ast.NewThis(root.Span)
	case lexer.IsIdentifierName(root.Name):
		expr = ast.NewIdentifier(root.Name, root.Span)
	default:
		return nil, badSegment(root)
	}
	for i := len(segs) - 1; i >= 0; i-- {
		prop := segs[i].Property
		if !lexer.IsIdentifierName(prop.Name) {
			return nil, badSegment(prop)
		}
		expr = ast.NewMember(expr, ast.NewIdentifier(prop.Name, prop.Span), segs[i].Span)
	}
	return expr, nil
}

func badSegment(id *ast.Ident) error {
	return diag.NewError(diag.LowUnsupportedTagKind, id.Span,
		fmt.Sprintf("member tag segment %q is not an identifier", id.Name)).AsError()
}
