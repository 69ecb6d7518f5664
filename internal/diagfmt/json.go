package diagfmt

import (
	"encoding/json"
	"io"

	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

// SpanJSON is a byte range, with 1-based lines and columns when positions
// are requested.
type SpanJSON struct {
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message string    `json:"message"`
	File    string    `json:"file,omitempty"`
	Span    *SpanJSON `json:"span,omitempty"`
}

// DiagnosticJSON omits Span for diagnostics that have no source location;
// File then names the input they belong to, if known.
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	File     string     `json:"file,omitempty"`
	Span     *SpanJSON  `json:"span,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
}

// JSON writes diags as one indented document.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	return writeJSON(w, buildJSON(diags, fs, "", opts))
}

// BuildDiagnosticsOutput is the document JSON writes.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	return buildJSON(diags, fs, "", opts)
}

func writeJSON(w io.Writer, doc DiagnosticsOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// buildJSON converts diags; fallback is the file of unlocated diagnostics.
func buildJSON(diags []diag.Diagnostic, fs *source.FileSet, fallback string, opts JSONOpts) DiagnosticsOutput {
	keep := diags
	if opts.Max > 0 && len(keep) > opts.Max {
		keep = keep[:opts.Max]
	}
	doc := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(keep)),
		Omitted:     len(diags) - len(keep),
	}
	for _, d := range keep {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			File:     fallback,
		}
		if located(d.Code, d.Primary, fs) {
			dj.File, dj.Span = spanJSON(fs, d.Primary, opts)
		}
		// timing payloads live in the notes
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				nj := NoteJSON{Message: n.Msg}
				if located(d.Code, n.Span, fs) {
					nj.File, nj.Span = spanJSON(fs, n.Span, opts)
				}
				dj.Notes = append(dj.Notes, nj)
			}
		}
		doc.Diagnostics = append(doc.Diagnostics, dj)
	}
	doc.Count = len(doc.Diagnostics)
	return doc
}

func spanJSON(fs *source.FileSet, span source.Span, opts JSONOpts) (string, *SpanJSON) {
	sj := &SpanJSON{Start: span.Start, End: span.End}
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		sj.StartLine, sj.StartCol = start.Line, start.Col
		sj.EndLine, sj.EndCol = end.Line, end.Col
	}
	return displayPath(fs, span.File, opts.PathMode), sj
}
