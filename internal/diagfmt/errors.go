package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

// Report renders err in opts.Format. Pretty output never fails; the
// other formats return the write error.
func Report(w io.Writer, err error, fs *source.FileSet, opts Opts) error {
	if err == nil {
		return nil
	}
	switch opts.Format {
	case FormatJSON:
		diags, file := flatten(err, fs, opts.JSON.PathMode)
		return writeJSON(w, buildJSON(diags, fs, file, opts.JSON))
	case FormatShort:
		diags, file := flatten(err, fs, opts.Short.PathMode)
		return writeShort(w, diags, fs, file, opts.Short)
	default:
		Error(w, err, fs, opts.Pretty)
		return nil
	}
}

// flatten turns err into diagnostics plus the path that labels the
// unlocated ones. Errors without diagnostics become a single UnknownCode
// diagnostic carrying the error text.
func flatten(err error, fs *source.FileSet, mode PathMode) ([]diag.Diagnostic, string) {
	var fe *diag.FileError
	if errors.As(err, &fe) {
		path := filePath(fe.Path, fs, mode)
		if len(fe.Diagnostics) == 0 {
			return []diag.Diagnostic{diag.NewError(diag.UnknownCode, source.Span{}, fmt.Sprint(fe.Err))}, path
		}
		diags := fe.Diagnostics
		if fe.Err != nil {
			diags = append(diags[:len(diags):len(diags)], diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diags[0].Code,
				Message:  "cause: " + fe.Err.Error(),
			})
		}
		return diags, path
	}
	var de *diag.Error
	if errors.As(err, &de) {
		return []diag.Diagnostic{de.Diagnostic}, wrapLabel(err, de)
	}
	return []diag.Diagnostic{diag.NewError(diag.UnknownCode, source.Span{}, err.Error())}, ""
}

// Error renders err for humans. A *diag.FileError prints every diagnostic;
// span-less ones are labelled with the file path and followed by the cause.
// Other errors print as a single "error:" line.
func Error(w io.Writer, err error, fs *source.FileSet, opts PrettyOpts) {
	if err == nil {
		return
	}
	p := newPalette(opts.Color)

	var fe *diag.FileError
	if errors.As(err, &fe) {
		fileError(w, fe, fs, opts, p)
		return
	}
	var de *diag.Error
	if errors.As(err, &de) {
		prettyOne(w, &de.Diagnostic, fs, wrapLabel(err, de), opts, p)
		return
	}
	fmt.Fprintf(w, "%s %v\n", p.err.Sprint("error:"), err)
}

// wrapLabel recovers the context a wrapping fmt.Errorf put in front of de,
// such as the path of a configuration file.
func wrapLabel(err error, de *diag.Error) string {
	label := strings.TrimSuffix(err.Error(), de.Error())
	return strings.TrimSuffix(label, ": ")
}

func filePath(path string, fs *source.FileSet, mode PathMode) string {
	if fs != nil {
		if id, ok := fs.GetLatest(path); ok {
			return displayPath(fs, id, mode)
		}
	}
	return path
}

func fileError(w io.Writer, fe *diag.FileError, fs *source.FileSet, opts PrettyOpts, p palette) {
	path := filePath(fe.Path, fs, opts.PathMode)
	if len(fe.Diagnostics) == 0 {
		fmt.Fprintf(w, "%s: %s %v\n", p.loc.Sprint(path), p.err.Sprint("error:"), fe.Err)
		return
	}
	for i := range fe.Diagnostics {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &fe.Diagnostics[i], fs, path, opts, p)
	}
	if fe.Err != nil {
		fmt.Fprintf(w, "  %s %v\n", p.note.Sprint("cause:"), fe.Err)
	}
}
