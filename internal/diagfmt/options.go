package diagfmt

import (
	"fmt"
	"strings"

	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

// Format is the rendering used by Report.
type Format uint8

const (
	FormatPretty Format = iota // header, source snippet and notes
	FormatJSON                 // one document with every diagnostic
	FormatShort                // one line per diagnostic, sorted
)

var formatNames = [...]string{"pretty", "json", "short"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "format?"
}

func ParseFormat(s string) (Format, error) {
	if i := lookupName(formatNames[:], s); i >= 0 {
		return Format(i), nil
	}
	return FormatPretty, fmt.Errorf("unknown diagnostics format %q (want %s)", s, strings.Join(formatNames[:], "|"))
}

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // as loaded; long absolute paths shrink to the base name
	PathModeAbsolute                 // resolved against the working directory
	PathModeRelative                 // against the file set's base directory
	PathModeBasename                 // file name only
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "auto"
}

func ParsePathMode(s string) (PathMode, error) {
	if i := lookupName(pathModeNames[:], s); i >= 0 {
		return PathMode(i), nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q (want %s)", s, strings.Join(pathModeNames[:], "|"))
}

func lookupName(names []string, s string) int {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return i
		}
	}
	return -1
}

type PrettyOpts struct {
	Color     bool
	Context   int8 // source lines shown above and below the primary line
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool // line and column next to byte offsets
	IncludeNotes     bool
	PathMode         PathMode
	Max              int // 0 is unlimited; the rest is counted in "omitted"
}

type ShortOpts struct {
	PathMode     PathMode
	IncludeNotes bool
}

// Opts bundles the settings of every format for Report.
type Opts struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
	Short  ShortOpts
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	return fs.Get(id).FormatPath(mode.String(), fs.BaseDir())
}

// located reports whether span of a diagnostic with code can be shown in fs.
func located(code diag.Code, span source.Span, fs *source.FileSet) bool {
	return code.Located() && fs != nil && fs.Has(span.File)
}
