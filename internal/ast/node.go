package ast

import (
	"tsxlower/internal/source"
)

// Node is any tree node. Kind returns the node's kind label.
type Node interface {
	Kind() string
	Pos() source.Span
}

// Opaque is a node the lowering pass does not interpret.
type Opaque struct {
	Type   string
	Span   source.Span
	Fields []Field
}

// Field is one named slot of an Opaque node. Order is significant.
type Field struct {
	Name  string
	Value Value
}

func (o *Opaque) Kind() string     { return o.Type }
func (o *Opaque) Pos() source.Span { return o.Span }

// NewOpaque builds an opaque node.
func NewOpaque(kind string, span source.Span, fields ...Field) *Opaque {
	return &Opaque{Type: kind, Span: span, Fields: fields}
}

// F is shorthand for a Field literal.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Get returns the value of the named field, or an absent value.
func (o *Opaque) Get(name string) Value {
	if o == nil {
		return Value{}
	}
	for i := range o.Fields {
		if o.Fields[i].Name == name {
			return o.Fields[i].Value
		}
	}
	return Value{}
}

// Node returns the named field as a node, or nil.
func (o *Opaque) Node(name string) Node { return o.Get(name).Node() }

// Text returns the named text field, or "".
func (o *Opaque) Text(name string) string { return o.Get(name).Text() }

// Bool returns the named bool field, or false.
func (o *Opaque) Bool(name string) bool { return o.Get(name).Bool() }

// List returns the named list field, or nil.
func (o *Opaque) List(name string) []Value { return o.Get(name).List() }

// Nodes returns the non-absent nodes of the named list field.
func (o *Opaque) Nodes(name string) []Node {
	list := o.List(name)
	out := make([]Node, 0, len(list))
	for _, v := range list {
		if n := v.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Set replaces the named field or appends it.
func (o *Opaque) Set(name string, v Value) {
	for i := range o.Fields {
		if o.Fields[i].Name == name {
			o.Fields[i].Value = v
			return
		}
	}
	o.Fields = append(o.Fields, Field{Name: name, Value: v})
}

// Is reports whether n is an opaque node of the given kind.
func Is(n Node, kind string) bool {
	o, ok := n.(*Opaque)
	return ok && o.Type == kind
}

// AsOpaque returns n as *Opaque when it is one.
func AsOpaque(n Node) (*Opaque, bool) {
	o, ok := n.(*Opaque)
	return o, ok
}
