// Package ast holds the syntax tree shared by the parser, the lowering pass
// and the printer.
//
// The tree has two layers. Markup nodes (Element, Fragment, ExprContainer,
// Text, Attr, SpreadAttr, SpreadChild and the tag name kinds) are closed Go
// types that the lowering pass interprets. Every other construct is an
// *Opaque: a kind label plus an ordered list of named fields whose values
// are absent, a node, a list of values, a text scalar or a bool scalar.
// Passes that do not care about a construct can copy it field by field
// without knowing its shape.
//
// Kind labels follow ESTree naming (CallExpression, MemberExpression, ...)
// with TS-prefixed kinds for type syntax.
package ast
