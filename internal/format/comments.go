package format

import (
	"tsxlower/internal/ast"
	"tsxlower/internal/source"
)

// pendingBefore reports whether a comment not yet emitted starts before off.
func (e *Emitter) pendingBefore(off uint32) bool {
	return e.next < len(e.comments) && e.comments[e.next].Span.Start < off
}

// flushBefore emits, each on its own line, every pending comment that
// starts before off.
func (e *Emitter) flushBefore(off uint32) {
	for e.pendingBefore(off) {
		e.emitComment(e.comments[e.next])
		e.next++
	}
}

func (e *Emitter) emitComment(c ast.Comment) {
	if !e.writer.AtLineStart() {
		e.writer.Newline()
	}
	if c.Kind == ast.CommentBlock {
		e.writer.WriteString("/*" + c.Text + "*/")
	} else {
		e.writer.WriteString("//" + c.Text)
	}
	e.writer.Newline()
}

// statements emits one item per line. Comments that start before end and
// were not claimed by an item go after the last one.
func (e *Emitter) statements(items []ast.Node, end uint32) {
	e.lines(items, end, "")
}

// lines is statements with term written after every item.
func (e *Emitter) lines(items []ast.Node, end uint32, term string) {
	for _, s := range items {
		e.flushBefore(s.Pos().Start)
		e.Node(s)
		e.Write(term)
		e.writer.Newline()
	}
	e.flushBefore(end)
}

// block emits { items } with the items indented.
func (e *Emitter) block(items []ast.Node, span source.Span) {
	e.memberBlock(items, span, "")
}

// memberBlock is block with term after every item: ";" for interface
// members, "," for enum members.
func (e *Emitter) memberBlock(items []ast.Node, span source.Span, term string) {
	if len(items) == 0 && !e.pendingBefore(span.End) {
		e.Write("{}")
		return
	}
	e.Write("{")
	e.writer.Newline()
	e.writer.IndentPush()
	e.lines(items, span.End, term)
	e.writer.IndentPop()
	e.Write("}")
}
