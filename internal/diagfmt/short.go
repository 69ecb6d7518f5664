package diagfmt

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

type shortLine struct {
	path      string
	line, col uint32
	sev       string
	code      string
	msg       string
}

// Short writes one line per diagnostic,
//
//	path:line:col: severity CODE message
//
// sorted by location so the output is stable across runs. The location
// shrinks to "path: " or disappears when a diagnostic has no span.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts ShortOpts) error {
	return writeShort(w, diags, fs, "", opts)
}

func writeShort(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, fallback string, opts ShortOpts) error {
	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, shortOf(d.Code, d.Primary, strings.ToLower(d.Severity.String()), d.Message, fs, fallback, opts))
		if !opts.IncludeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortOf(d.Code, n.Span, "note", n.Msg, fs, fallback, opts))
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
		)
	})
	for _, l := range lines {
		var err error
		switch {
		case l.line > 0:
			_, err = fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n", l.path, l.line, l.col, l.sev, l.code, l.msg)
		case l.path != "":
			_, err = fmt.Fprintf(w, "%s: %s %s %s\n", l.path, l.sev, l.code, l.msg)
		default:
			_, err = fmt.Fprintf(w, "%s %s %s\n", l.sev, l.code, l.msg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func shortOf(code diag.Code, span source.Span, sev, msg string, fs *source.FileSet, fallback string, opts ShortOpts) shortLine {
	l := shortLine{path: fallback, sev: sev, code: code.ID(), msg: oneLine(msg)}
	if located(code, span, fs) {
		start, _ := fs.Resolve(span)
		l.path = displayPath(fs, span.File, opts.PathMode)
		l.line, l.col = start.Line, start.Col
	}
	return l
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
