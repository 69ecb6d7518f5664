package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every failure surfaced by the pipeline matches exactly one of
// these through errors.Is.
var (
	ErrSyntax                   = errors.New("syntax error")
	ErrUnsupportedTagKind       = errors.New("unsupported tag kind")
	ErrUnsupportedAttributeKind = errors.New("unsupported attribute kind")
	ErrUnknownNodeKind          = errors.New("unknown node kind")
	ErrIO                       = errors.New("i/o error")
	ErrConfig                   = errors.New("invalid configuration")
)

// Sentinel maps a code to its error class.
func (c Code) Sentinel() error {
	switch {
	case c == LowUnsupportedTagKind:
		return ErrUnsupportedTagKind
	case c == LowUnsupportedAttributeKind:
		return ErrUnsupportedAttributeKind
	case c == PrnUnknownNodeKind:
		return ErrUnknownNodeKind
	case c >= 1000 && c < 3000:
		return ErrSyntax
	case c >= 5000 && c < 6000:
		return ErrIO
	case c >= 6000 && c < 7000:
		return ErrConfig
	}
	return nil
}

// FileError is the failure of one input file. Diagnostics holds every finding
// that led to the failure; the first error diagnostic selects the class.
type FileError struct {
	Path        string
	Diagnostics []Diagnostic
	Err         error
}

// NewFileError builds a FileError from a single diagnostic.
func NewFileError(path string, d Diagnostic) *FileError {
	return &FileError{Path: path, Diagnostics: []Diagnostic{d}}
}

// FromBag builds a FileError from the error diagnostics in bag. It returns
// nil when bag has no errors. When the bag overflowed, the last diagnostic
// gets a note with the number left out.
func FromBag(path string, bag *Bag) *FileError {
	if bag == nil || !bag.HasErrors() {
		return nil
	}
	items := bag.Errors()
	if n := bag.Dropped(); n > 0 {
		last := len(items) - 1
		items[last] = items[last].WithNote(items[last].Primary, fmt.Sprintf("%d more diagnostics not shown", n))
	}
	return &FileError{Path: path, Diagnostics: items}
}

func (e *FileError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if len(e.Diagnostics) > 0 {
		d := e.Diagnostics[0]
		fmt.Fprintf(&b, ": %s: %s", d.Code.ID(), d.Message)
		if n := len(e.Diagnostics) - 1; n > 0 {
			fmt.Fprintf(&b, " (and %d more)", n)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes the error class and any underlying cause.
func (e *FileError) Unwrap() []error {
	out := make([]error, 0, 2)
	if len(e.Diagnostics) > 0 {
		if s := e.Diagnostics[0].Code.Sentinel(); s != nil {
			out = append(out, s)
		}
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Code returns the code of the first diagnostic.
func (e *FileError) Code() Code {
	if len(e.Diagnostics) == 0 {
		return UnknownCode
	}
	return e.Diagnostics[0].Code
}

// Error carries a single diagnostic as a Go error. Phases that stop on the
// first failure (lowering, printing) return it; the driver lifts it into a
// FileError.
type Error struct {
	Diagnostic Diagnostic
}

// AsError wraps d into an *Error.
func (d Diagnostic) AsError() error {
	return &Error{Diagnostic: d}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Diagnostic.Code.ID(), e.Diagnostic.Message)
}

func (e *Error) Unwrap() error {
	return e.Diagnostic.Code.Sentinel()
}
