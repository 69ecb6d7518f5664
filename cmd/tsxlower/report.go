package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsxlower/internal/diag"
	"tsxlower/internal/diagfmt"
	"tsxlower/internal/source"
)

// reportOptions resolves --diagnostics-format, --path-mode and --color for
// diagnostics written to stderr.
func reportOptions(cmd *cobra.Command) (diagfmt.Opts, error) {
	flags := cmd.Root().PersistentFlags()
	formatStr, err := flags.GetString("diagnostics-format")
	if err != nil {
		return diagfmt.Opts{}, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return diagfmt.Opts{}, err
	}
	pathStr, err := flags.GetString("path-mode")
	if err != nil {
		return diagfmt.Opts{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, err := diagfmt.ParsePathMode(pathStr)
	if err != nil {
		return diagfmt.Opts{}, err
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return diagfmt.Opts{}, err
	}
	return diagfmt.Opts{
		Format: format,
		Pretty: diagfmt.PrettyOpts{Color: color, Context: 2, PathMode: mode, ShowNotes: true},
		JSON:   diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: mode},
		Short:  diagfmt.ShortOpts{PathMode: mode, IncludeNotes: true},
	}, nil
}

// report prints err and returns errReported so main stays silent.
func report(cmd *cobra.Command, opts diagfmt.Opts, err error, fs *source.FileSet) error {
	if werr := diagfmt.Report(cmd.ErrOrStderr(), err, fs, opts); werr != nil {
		return fmt.Errorf("write diagnostics: %w", werr)
	}
	return errReported
}

// warn prints non-fatal diagnostics in the selected format.
func warn(cmd *cobra.Command, opts diagfmt.Opts, diags ...diag.Diagnostic) error {
	w, fs := cmd.ErrOrStderr(), source.NewFileSet()
	var err error
	switch opts.Format {
	case diagfmt.FormatJSON:
		err = diagfmt.JSON(w, diags, fs, opts.JSON)
	case diagfmt.FormatShort:
		err = diagfmt.Short(w, diags, fs, opts.Short)
	default:
		diagfmt.Pretty(w, diags, fs, opts.Pretty)
	}
	if err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return nil
}
