package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tsxlower/internal/diagfmt"
	"tsxlower/internal/version"
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("failure reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tsxlower [flags] <pattern>",
		Short: "Lower TSX markup to React.createElement calls",
		Long: `tsxlower rewrites every file the glob pattern matches, replacing markup
with factory calls, and writes the result next to the input.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runTransform,
	}

	// global flags
	root.PersistentFlags().String("config", "", "path to tsxlower.toml (default: nearest above the working directory)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("diagnostics-format", "pretty", "diagnostics output (pretty|json|short)")
	root.PersistentFlags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Uint("max-diagnostics", 64, "maximum number of syntax errors collected per file")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson|chrome)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	root.PersistentFlags().Duration("trace-heartbeat", 0*time.Second, "heartbeat interval (0 disables)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.Flags().Int("jobs", 0, "max parallel workers (0 = config or GOMAXPROCS)")
	root.Flags().String("ui", "off", "progress UI (auto|on|off)")
	root.Flags().Bool("clear-cache", false, "empty the transform cache before running")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newASTCmd())
	root.AddCommand(newPrintCmd())
	return root
}

// main executes the root command. Diagnostics are printed where they
// arise; anything else is printed here. Any failure exits with status 1.
func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			diagfmt.Error(os.Stderr, err, nil, diagfmt.PrettyOpts{Color: isTerminal(os.Stderr)})
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for w.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, errors.New("invalid --color value " + colorFlag + " (expected auto|on|off)")
	}
}
