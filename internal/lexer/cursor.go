package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"tsxlower/internal/source"
)

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Rest is the unread input.
func (c *Cursor) Rest() []byte { return c.File.Content[min(c.Off, c.end):c.end] }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

func (c *Cursor) PeekAt(n uint32) byte {
	if i := c.Off + n; i < c.end {
		return c.File.Content[i]
	}
	return 0
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Rest()
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if c.Off < c.end {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Off < c.end && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark is a saved offset.
type Mark uint32

func (c *Cursor) Mark() Mark    { return Mark(c.Off) }
func (c *Cursor) Reset(m Mark)  { c.Off = uint32(m) }
func (c *Cursor) skip(n uint32) { c.Off = min(c.Off+n, c.end) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
