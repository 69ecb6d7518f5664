package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"tsxlower/internal/diag"
	"tsxlower/internal/format"
	"tsxlower/internal/lower"
	"tsxlower/internal/parser"
	"tsxlower/internal/source"
	"tsxlower/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Inputs that stress markup error recovery
	f.Add([]byte("x = <a"))
	f.Add([]byte("x = <a b={"))
	f.Add([]byte("x = <a>{</a>"))
	f.Add([]byte("x = <a></b"))
	f.Add([]byte("x = <><><><>"))
	f.Add([]byte("x = <a>}</a>;"))
	f.Add([]byte("x = <a b=\"unterminated />;"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clip(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			_ = parser.ParseSource(ctx, fs, "fuzz.tsx", input, 128)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzLowerPipeline checks that every input the parser accepts lowers to a
// markup-free tree the printer can render.
func FuzzLowerPipeline(f *testing.F) {
	addCorpusSeeds(f)
	printer, err := format.New(format.Options{})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clip(input)

		fs := source.NewFileSet()
		res := parser.ParseSource(context.Background(), fs, "fuzz.tsx", input, 128)
		if res.Bag.HasErrors() || res.File == nil {
			return
		}
		if err := testkit.CheckSpanInvariants(res.File, fs.Get(0)); err != nil {
			t.Fatalf("parsed tree: %v", err)
		}
		out, _, err := lower.File(res.File, lower.DefaultOptions())
		if err != nil {
			if errors.Is(err, diag.ErrUnsupportedTagKind) || errors.Is(err, diag.ErrUnsupportedAttributeKind) {
				return
			}
			t.Fatalf("lower: %v", err)
		}
		if err := testkit.CheckNoMarkup(out.Program); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckCommentsShared(res.File, out); err != nil {
			t.Fatal(err)
		}
		if _, err := printer.Print(out); err != nil {
			t.Fatalf("print: %v", err)
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
