package ast

import (
	"strings"

	"tsxlower/internal/source"
)

// Constructors for the opaque nodes the lowering pass synthesizes. Spans
// point at the markup the node replaces.

func NewIdentifier(name string, span source.Span) *Opaque {
	return NewOpaque(KindIdentifier, span, F("name", Str(name)))
}

func NewThis(span source.Span) *Opaque {
	return NewOpaque(KindThisExpression, span)
}

// NewStringLiteral builds a string literal with no source spelling; the
// printer quotes Value.
func NewStringLiteral(value string, span source.Span) *Opaque {
	return NewOpaque(KindStringLiteral, span, F("value", Str(value)))
}

func NewBooleanLiteral(v bool, span source.Span) *Opaque {
	return NewOpaque(KindBooleanLiteral, span, F("value", Bool(v)))
}

func NewNullLiteral(span source.Span) *Opaque {
	return NewOpaque(KindNullLiteral, span)
}

// NewMember builds object.property (non-computed).
func NewMember(object, property Node, span source.Span) *Opaque {
	return NewOpaque(KindMemberExpression, span,
		F("object", NodeValue(object)),
		F("property", NodeValue(property)),
		F("computed", Bool(false)),
		F("optional", Bool(false)),
	)
}

// NewMemberPath builds a.b.c from a dotted path. A leading "this" becomes a
// ThisExpression.
func NewMemberPath(path string, span source.Span) Node {
	parts := strings.Split(path, ".")
	var cur Node
	if parts[0] == "this" {
		cur = NewThis(span)
	} else {
		cur = NewIdentifier(parts[0], span)
	}
	for _, p := range parts[1:] {
		cur = NewMember(cur, NewIdentifier(p, span), span)
	}
	return cur
}

func NewCall(callee Node, args []Node, span source.Span) *Opaque {
	return NewOpaque(KindCallExpression, span,
		F("callee", NodeValue(callee)),
		F("typeArguments", List()),
		F("arguments", NodeList(args)),
		F("optional", Bool(false)),
	)
}

func NewSpreadElement(arg Node, span source.Span) *Opaque {
	return NewOpaque(KindSpreadElement, span, F("argument", NodeValue(arg)))
}

// NewProperty builds key: value.
func NewProperty(key, value Node, span source.Span) *Opaque {
	return NewOpaque(KindProperty, span,
		F("key", NodeValue(key)),
		F("value", NodeValue(value)),
		F("computed", Bool(false)),
		F("shorthand", Bool(false)),
		F("kind", Str("init")),
		F("method", Bool(false)),
	)
}

func NewObject(props []Node, span source.Span) *Opaque {
	return NewOpaque(KindObjectExpression, span, F("properties", NodeList(props)))
}

func NewKeywordType(keyword string, span source.Span) *Opaque {
	return NewOpaque(KindTSKeywordType, span, F("keyword", Str(keyword)))
}

// NewTypeReference builds a type reference from a dotted path such as
// React.ReactElement.
func NewTypeReference(path string, span source.Span) *Opaque {
	parts := strings.Split(path, ".")
	var name Node = NewIdentifier(parts[0], span)
	for _, p := range parts[1:] {
		name = NewOpaque(KindTSQualifiedName, span,
			F("left", NodeValue(name)),
			F("right", NodeValue(NewIdentifier(p, span))),
		)
	}
	return NewOpaque(KindTSTypeReference, span,
		F("typeName", NodeValue(name)),
		F("typeArguments", List()),
	)
}

func NewCastMarker(expr, typ Node, span source.Span) *Opaque {
	return NewOpaque(KindCastMarker, span,
		F("expression", NodeValue(expr)),
		F("typeAnnotation", NodeValue(typ)),
	)
}
