// Package source owns the text of every input file and maps byte offsets
// to lines and columns.
package source

import (
	"os"
	"path/filepath"
	"slices"
)

// FileID indexes a File within its FileSet.
type FileID uint32

type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory, not read from disk
	FileHadBOM                               // a UTF-8 byte order mark was stripped
	FileNormalizedCRLF                       // \r\n pairs were rewritten to \n
)

// File is one loaded input. Content is immutable once added.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags

	// starts holds the byte offset of every line; starts[0] is 0.
	starts []uint32
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// LineCount is the number of lines, counting a final line without a newline.
func (f *File) LineCount() int { return len(f.starts) }

// Position converts a byte offset of f into a line and column.
func (f *File) Position(off uint32) LineCol {
	// index of the last line starting at or before off
	i, found := slices.BinarySearch(f.starts, off)
	if !found {
		i--
	}
	return LineCol{Line: offset(i) + 1, Col: off - f.starts[i] + 1}
}

// GetLine returns line n (1-based) without its newline, or "" when n is
// out of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.starts) {
		return ""
	}
	start := f.starts[n-1]
	end := uint32(len(f.Content))
	if int(n) < len(f.starts) {
		end = f.starts[n] - 1
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path for display. mode is "absolute", "relative"
// (to baseDir, or the working directory when empty), "basename" or
// "auto", which keeps short or relative paths and shortens long absolute
// ones to their base name.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if rel, ok := relativeTo(f.Path, baseDir); ok {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

func relativeTo(path, base string) (string, bool) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		base = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
