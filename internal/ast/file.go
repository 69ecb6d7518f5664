package ast

import "tsxlower/internal/source"

// CommentKind distinguishes // from /* */ comments.
type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
)

func (k CommentKind) String() string {
	if k == CommentBlock {
		return "Block"
	}
	return "Line"
}

// Comment is a source comment. Text excludes the delimiters.
type Comment struct {
	Kind CommentKind
	Text string
	Span source.Span
}

// File is a parsed or lowered compilation unit.
type File struct {
	Path     string
	Hashbang string
	Program  *Opaque // kind Program, field body
	Comments []Comment
}
