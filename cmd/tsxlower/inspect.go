package main

import (
	"github.com/spf13/cobra"

	"tsxlower/internal/ast"
	"tsxlower/internal/diagfmt"
	"tsxlower/internal/driver"
	"tsxlower/internal/source"
)

func newASTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [flags] <file>",
		Short: "Print the syntax tree of a file as JSON",
		Long: `ast parses one file and prints its tree as JSON. With --lowered the tree
is printed after markup has been replaced by factory calls.`,
		Args: cobra.ExactArgs(1),
		RunE: runAST,
	}
	cmd.Flags().Bool("lowered", false, "print the tree after lowering")
	cmd.Flags().Bool("positions", false, "add line and column to every node")
	cmd.Flags().Bool("comments", false, "include comments")
	return cmd
}

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "Lower one file and write the result to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrint,
	}
}

func runAST(cmd *cobra.Command, args []string) error {
	lowered, _ := cmd.Flags().GetBool("lowered")
	positions, _ := cmd.Flags().GetBool("positions")
	comments, _ := cmd.Flags().GetBool("comments")

	return withFile(cmd, args[0], func(d *driver.Driver, fs *source.FileSet, id source.FileID) error {
		var f *ast.File
		var err error
		if lowered {
			f, _, err = d.Lower(cmd.Context(), fs, id)
		} else {
			f, err = d.Parse(cmd.Context(), fs, id)
		}
		if err != nil {
			return err
		}
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), f, fs, diagfmt.ASTOpts{
			Positions: positions,
			Comments:  comments,
			PathMode:  diagfmt.PathModeRelative,
		})
	})
}

func runPrint(cmd *cobra.Command, args []string) error {
	return withFile(cmd, args[0], func(d *driver.Driver, fs *source.FileSet, id source.FileID) error {
		out, err := d.Transform(cmd.Context(), fs, id)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out.Text)
		return err
	})
}

// withFile loads path, builds a driver and runs fn. Diagnostics from fn are
// rendered against the loaded file.
func withFile(cmd *cobra.Command, path string, fn func(*driver.Driver, *source.FileSet, source.FileID) error) error {
	cleanup, err := setupDiagnostics(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ropts, err := reportOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	d, err := driver.New(opts)
	if err != nil {
		return err
	}
	fs := source.NewFileSet()
	id, err := driver.Load(fs, path)
	if err == nil {
		err = fn(d, fs, id)
	}
	if err != nil {
		return report(cmd, ropts, err, fs)
	}
	return nil
}
