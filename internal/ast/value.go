package ast

// ValueKind tags the content of a Value.
type ValueKind uint8

const (
	ValueAbsent ValueKind = iota
	ValueNode
	ValueList
	ValueText
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueNode:
		return "node"
	case ValueList:
		return "list"
	case ValueText:
		return "text"
	case ValueBool:
		return "bool"
	}
	return "unknown"
}

// Value is the content of a Field. The zero Value is absent.
type Value struct {
	kind ValueKind
	node Node
	list []Value
	text string
	flag bool
}

// Absent returns the empty value.
func Absent() Value { return Value{} }

// NodeValue wraps n. A nil node yields an absent value.
func NodeValue(n Node) Value {
	if n == nil || isNilNode(n) {
		return Value{}
	}
	return Value{kind: ValueNode, node: n}
}

// List wraps a sequence of values. A nil slice is still a (empty) list.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ValueList, list: items}
}

// NodeList wraps a sequence of nodes.
func NodeList[T Node](nodes []T) Value {
	items := make([]Value, len(nodes))
	for i, n := range nodes {
		items[i] = NodeValue(n)
	}
	return Value{kind: ValueList, list: items}
}

// Str wraps a text scalar.
func Str(s string) Value { return Value{kind: ValueText, text: s} }

// Bool wraps a bool scalar.
func Bool(b bool) Value { return Value{kind: ValueBool, flag: b} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsAbsent() bool  { return v.kind == ValueAbsent }

// Node returns the wrapped node, or nil.
func (v Value) Node() Node {
	if v.kind != ValueNode {
		return nil
	}
	return v.node
}

// List returns the wrapped items, or nil.
func (v Value) List() []Value {
	if v.kind != ValueList {
		return nil
	}
	return v.list
}

// Text returns the wrapped text, or "".
func (v Value) Text() string {
	if v.kind != ValueText {
		return ""
	}
	return v.text
}

// Bool returns the wrapped flag, or false.
func (v Value) Bool() bool {
	return v.kind == ValueBool && v.flag
}

func isNilNode(n Node) bool {
	switch x := n.(type) {
	case *Opaque:
		return x == nil
	case *Element:
		return x == nil
	case *Fragment:
		return x == nil
	case *ExprContainer:
		return x == nil
	case *Text:
		return x == nil
	case *Ident:
		return x == nil
	case *MemberTagName:
		return x == nil
	case *NamespacedName:
		return x == nil
	case *Attr:
		return x == nil
	case *SpreadAttr:
		return x == nil
	case *SpreadChild:
		return x == nil
	}
	return false
}
