package source

import "fmt"

// Span is the half-open byte range [Start, End) of one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }

func (s Span) Len() uint32 { return s.End - s.Start }

// String renders "file:start-end" for debugging.
func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

// Cover returns the smallest span holding s and other. A span of another
// file leaves s unchanged.
func (s Span) Cover(other Span) Span {
	if other.File == s.File {
		s.Start = min(s.Start, other.Start)
		s.End = max(s.End, other.End)
	}
	return s
}

// Contains reports whether byte off is inside s.
func (s Span) Contains(off uint32) bool { return s.Start <= off && off < s.End }
