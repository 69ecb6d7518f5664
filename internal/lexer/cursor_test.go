package lexer

import (
	"testing"

	"tsxlower/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tsx", []byte(content))
	return fs.Get(id)
}

func TestSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	for i, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek at %d = %q, want %q", i, got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump at %d = %q, want %q", i, got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("Peek/Bump past EOF must return 0")
	}
}

func TestMarkAndReset(t *testing.T) {
	file := createFile("hello")
	cursor := NewCursor(file)
	cursor.Bump()
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 1 || sp.End != 3 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'e' {
		t.Fatalf("Reset: Peek = %q", cursor.Peek())
	}
	if !cursor.Eat('e') || cursor.Eat('x') {
		t.Fatal("Eat mismatch")
	}
	if !cursor.HasPrefix("llo") || cursor.HasPrefix("llox") {
		t.Fatal("HasPrefix mismatch")
	}
	if string(cursor.Rest()) != "llo" {
		t.Fatalf("Rest = %q", cursor.Rest())
	}
	if cursor.PeekAt(10) != 0 {
		t.Fatal("PeekAt past end must return 0")
	}
}
