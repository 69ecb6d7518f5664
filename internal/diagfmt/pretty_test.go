package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.tsx", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.tsx:1:9"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.tsx:1:9"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.tsx:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrettyBag(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const a = <div></span>;\n")
	fileID := fs.AddVirtual("a.tsx", content)

	d := diag.NewError(diag.SynMarkupTagMismatch, source.Span{File: fileID, Start: 15, End: 22}, "expected </div>")
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "a.tsx:1:16: ERROR SYN2100: expected </div>" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "1 | const a = <div></span>;" {
		t.Fatalf("source line = %q", lines[1])
	}
	if lines[2] != "  |                ^~~~~~~" {
		t.Fatalf("underline = %q", lines[2])
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("<p>日本</x>\n")
	fileID := fs.AddVirtual("w.tsx", content)
	// "<p>日本" is 3 + 6 bytes but 3 + 4 columns wide
	d := diag.NewError(diag.SynMarkupTagMismatch, source.Span{File: fileID, Start: 9, End: 13}, "mismatch")
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got, want := lines[2], "  |        ^~~~"; got != want {
		t.Fatalf("underline = %q, want %q", got, want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.tsx", []byte("<a>\n</b>\n"))
	d := diag.NewError(diag.SynMarkupTagMismatch, source.Span{File: fileID, Start: 4, End: 8}, "mismatch").
		WithNote(source.Span{File: fileID, Start: 0, End: 3}, "opened here")
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note: n.tsx:1:1: opened here") {
		t.Fatalf("expected note, got:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.tsx", []byte("x\ny\n"))
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: 2, End: 3}, "expected expression"),
	}
	var buf bytes.Buffer
	if err := JSON(&buf, diags, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	got := out.Diagnostics[0]
	if out.Count != 1 || got.Code != "SYN2004" || got.File != "j.tsx" || got.Span == nil || got.Span.StartLine != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if got.Title != "Expected expression" {
		t.Fatalf("title = %q", got.Title)
	}
}
