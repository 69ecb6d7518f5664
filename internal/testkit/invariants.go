package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tsxlower/internal/ast"
	"tsxlower/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every top-level statement span is non-empty and within file content bounds
// 2) statement spans point at sf and appear in source order
// 3) every comment span is within file content bounds
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || f.Program == nil || sf == nil {
		return fmt.Errorf("nil file or program")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, stmt := range f.Program.Nodes("body") {
		sp := stmt.Pos()
		if sp.End <= sp.Start {
			return fmt.Errorf("empty span for statement %d (%s): %v", i, stmt.Kind(), sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("statement span end beyond content: %d > %d", sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("statement %d (%s) starts at %d before previous end %d", i, stmt.Kind(), sp.Start, prevEnd)
		}
		prevEnd = sp.End
	}
	for i, c := range f.Comments {
		if c.Span.End > lenContent || c.Span.End < c.Span.Start {
			return fmt.Errorf("comment %d span %v outside content", i, c.Span)
		}
	}
	return nil
}

// CheckNoMarkup fails when any markup node is reachable from root.
func CheckNoMarkup(root ast.Node) error {
	var found ast.Node
	ast.Inspect(root, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if ast.IsMarkup(n) {
			found = n
			return false
		}
		return true
	})
	if found != nil {
		return fmt.Errorf("markup node %s survived at %v", found.Kind(), found.Pos())
	}
	return nil
}

// CheckCommentsShared fails unless out carries the very comment slice of in.
func CheckCommentsShared(in, out *ast.File) error {
	if len(in.Comments) != len(out.Comments) {
		return fmt.Errorf("comment count changed: %d -> %d", len(in.Comments), len(out.Comments))
	}
	if len(in.Comments) > 0 && &in.Comments[0] != &out.Comments[0] {
		return fmt.Errorf("comment slice was copied")
	}
	return nil
}
