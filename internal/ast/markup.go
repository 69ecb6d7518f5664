package ast

import "tsxlower/internal/source"

// Markup kind labels.
const (
	KindElement        = "Element"
	KindFragment       = "Fragment"
	KindExprContainer  = "ExprContainer"
	KindText           = "Text"
	KindAttr           = "Attr"
	KindSpreadAttr     = "SpreadAttr"
	KindSpreadChild    = "SpreadChild"
	KindIdent          = "Ident"
	KindMemberTagName  = "MemberTagName"
	KindNamespacedName = "NamespacedName"
)

// Element is <Name attrs...>children</Name> or <Name attrs... />.
type Element struct {
	Name        Node   // *Ident, *MemberTagName or *NamespacedName
	Attrs       []Node // *Attr or *SpreadAttr, in source order
	Children    []Node // *Text, *ExprContainer, *SpreadChild, *Element, *Fragment
	SelfClosing bool
	Span        source.Span
}

// Fragment is <>children</>.
type Fragment struct {
	Children []Node
	Span     source.Span
}

// ExprContainer is {expr}. Expr is nil for {} and comment-only containers.
type ExprContainer struct {
	Expr Node
	Span source.Span
}

// Text is a run of literal child text with character references decoded.
type Text struct {
	Value string
	Span  source.Span
}

// Ident is a markup name segment. Unlike host identifiers it may contain '-'.
type Ident struct {
	Name string
	Span source.Span
}

// MemberTagName is Object.Property in tag position, e.g. <Foo.Bar>.
type MemberTagName struct {
	Object   Node // *Ident or *MemberTagName
	Property *Ident
	Span     source.Span
}

// NamespacedName is ns:name.
type NamespacedName struct {
	Namespace *Ident
	Name      *Ident
	Span      source.Span
}

// Attr is name, name="text", name={expr} or name=<el/>.
// Value is nil for a valueless attribute; otherwise a StringLiteral opaque
// node, an *ExprContainer, an *Element or a *Fragment.
type Attr struct {
	Name  Node // *Ident or *NamespacedName
	Value Node
	Span  source.Span
}

// SpreadAttr is {...expr} in attribute position.
type SpreadAttr struct {
	Expr Node
	Span source.Span
}

// SpreadChild is {...expr} in child position.
type SpreadChild struct {
	Expr Node
	Span source.Span
}

func (*Element) Kind() string        { return KindElement }
func (*Fragment) Kind() string       { return KindFragment }
func (*ExprContainer) Kind() string  { return KindExprContainer }
func (*Text) Kind() string           { return KindText }
func (*Ident) Kind() string          { return KindIdent }
func (*MemberTagName) Kind() string  { return KindMemberTagName }
func (*NamespacedName) Kind() string { return KindNamespacedName }
func (*Attr) Kind() string           { return KindAttr }
func (*SpreadAttr) Kind() string     { return KindSpreadAttr }
func (*SpreadChild) Kind() string    { return KindSpreadChild }

func (n *Element) Pos() source.Span        { return n.Span }
func (n *Fragment) Pos() source.Span       { return n.Span }
func (n *ExprContainer) Pos() source.Span  { return n.Span }
func (n *Text) Pos() source.Span           { return n.Span }
func (n *Ident) Pos() source.Span          { return n.Span }
func (n *MemberTagName) Pos() source.Span  { return n.Span }
func (n *NamespacedName) Pos() source.Span { return n.Span }
func (n *Attr) Pos() source.Span           { return n.Span }
func (n *SpreadAttr) Pos() source.Span     { return n.Span }
func (n *SpreadChild) Pos() source.Span    { return n.Span }

var markupKinds = map[string]bool{
	KindElement:        true,
	KindFragment:       true,
	KindExprContainer:  true,
	KindText:           true,
	KindAttr:           true,
	KindSpreadAttr:     true,
	KindSpreadChild:    true,
	KindIdent:          true,
	KindMemberTagName:  true,
	KindNamespacedName: true,
}

// IsMarkupKind reports whether kind labels a markup node.
func IsMarkupKind(kind string) bool {
	return markupKinds[kind]
}

// IsMarkup reports whether n is a markup node.
func IsMarkup(n Node) bool {
	return n != nil && IsMarkupKind(n.Kind())
}

// MarkupKinds lists every markup kind label.
func MarkupKinds() []string {
	return []string{
		KindElement, KindFragment, KindExprContainer, KindText, KindAttr,
		KindSpreadAttr, KindSpreadChild, KindIdent, KindMemberTagName, KindNamespacedName,
	}
}
