// Package lower rewrites markup nodes into plain call expressions.
//
// The pass walks the tree produced by the parser and replaces every
// Element and Fragment with factory(tag, props, ...children), where
// factory defaults to React.createElement. Opaque nodes are copied field by
// field without interpreting their kind, so the pass does not need to know
// the full host grammar. The input tree is never modified.
//
// Pipeline position:
//
//	parser -> lower -> format
package lower
