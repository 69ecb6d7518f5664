package main

import (
	"io"

	"tsxlower/internal/diag"
	"tsxlower/internal/diagfmt"
	"tsxlower/internal/driver"
	"tsxlower/internal/observ"
)

// printTimings reports per-file stage timings followed by the batch, whose
// stages sum the files and whose total is the wall-clock run time.
func printTimings(out io.Writer, result *driver.Result, opts diagfmt.PrettyOpts) {
	if out == nil || result == nil {
		return
	}
	diags := make([]diag.Diagnostic, 0, len(result.Files)+1)
	reports := make([]observ.Report, 0, len(result.Files))
	for _, f := range result.Files {
		diags = append(diags, driver.TimingDiagnostic("file", f.Input, f.Timing))
		reports = append(reports, f.Timing)
	}
	batch := observ.Sum(reports...)
	batch.TotalMS = observ.Millis(result.Elapsed)
	diags = append(diags, driver.TimingDiagnostic("batch", "", batch))
	opts.ShowNotes = false
	diagfmt.Pretty(out, diags, result.FileSet, opts)
}
