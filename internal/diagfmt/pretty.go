package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, loc *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		loc:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.loc} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans. For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline of the primary span and,
// when enabled, the notes in the same shape. Diagnostics without a span
// drop the location. Callers sort beforehand.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &diags[i], fs, "", opts, p)
	}
}

// prettyOne renders d. fallback labels diagnostics that have no span.
func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, fallback string, opts PrettyOpts, p palette) {
	primary := located(d.Code, d.Primary, fs)
	loc := fallback
	var start, end source.LineCol
	if primary {
		loc, start, end = locate(fs, d.Primary, opts.PathMode)
	}
	if loc != "" {
		fmt.Fprintf(w, "%s: ", p.loc.Sprint(loc))
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.severity(d.Severity).Sprint(d.Code.ID()),
		d.Message,
	)
	if primary && start.Line > 0 {
		renderSnippet(w, fs.Get(d.Primary.File), start, end, opts.Context, p)
	}
	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		if !primary || !fs.Has(note.Span.File) {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), note.Msg)
			continue
		}
		nloc, nstart, nend := locate(fs, note.Span, opts.PathMode)
		fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), nloc, note.Msg)
		if nstart.Line > 0 {
			renderSnippet(w, fs.Get(note.Span.File), nstart, nend, 0, p)
		}
	}
}

// PrettyBag is Pretty over a bag's items.
func PrettyBag(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	Pretty(w, bag.Items(), fs, opts)
}

func locate(fs *source.FileSet, span source.Span, mode PathMode) (string, source.LineCol, source.LineCol) {
	start, end := fs.Resolve(span)
	path := displayPath(fs, span.File, mode)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), start, end
}

func renderSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int8, p palette) {
	first := start.Line
	last := start.Line
	if context > 0 {
		ctx := uint32(context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
		if maxLine := uint32(f.LineCount()); last > maxLine {
			last = maxLine
		}
	}
	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.GetLine(ln))
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		raw := f.GetLine(ln)
		from := clampCol(start.Col, raw)
		to := len(raw)
		if end.Line == start.Line {
			to = clampCol(end.Col, raw)
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := runewidth.StringWidth(expandTabs(raw[from:max(to, from)]))
		underline := "^"
		if width > 1 {
			underline += strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			p.caret.Sprint(underline),
		)
	}
}

func clampCol(col uint32, line string) int {
	if col == 0 {
		return 0
	}
	off := int(col - 1)
	if off > len(line) {
		return len(line)
	}
	return off
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
