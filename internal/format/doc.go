// Package format prints a syntax tree back to TypeScript source.
//
// A Printer owns a rule table keyed by node kind. New refuses to build a
// table that misses a kind the parser or the lowering pass can produce, so
// an unprintable tree is caught at construction rather than halfway through
// a batch. Markup kinds have no rules: a tree that still contains markup
// fails with an unknown node kind error.
//
// Comments are not attached to nodes. The printer walks the file's comment
// list alongside the statements and emits each comment before the first
// statement or member that starts after it, or at the end of the enclosing
// block.
package format
