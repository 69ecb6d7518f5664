package format

import "bytes"

// Writer is the printer's output buffer. Indentation is inserted lazily,
// by the first write on each line, so blank lines carry no trailing spaces.
type Writer struct {
	out     bytes.Buffer
	unit    string
	depth   int
	pending bool // next write begins a line and needs indentation
}

func NewWriter(indent string, sizeHint int) *Writer {
	w := &Writer{unit: indent, pending: true}
	w.out.Grow(sizeHint)
	return w
}

// Bytes returns the output so far; it aliases the internal buffer.
func (w *Writer) Bytes() []byte { return w.out.Bytes() }

func (w *Writer) indent() {
	if w.pending {
		w.pending = false
		for range w.depth {
			w.out.WriteString(w.unit)
		}
	}
}

// WriteString writes s; a trailing newline makes the next write indent.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.indent()
	w.out.WriteString(s)
	w.pending = s[len(s)-1] == '\n'
}

// WriteRaw writes s without indenting after any newline it ends with,
// which keeps template literal text intact.
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	w.indent()
	w.out.WriteString(s)
}

// WriteByte never fails; it returns an error to satisfy io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.indent()
	w.out.WriteByte(b)
	w.pending = b == '\n'
	return nil
}

// Newline ends the current line unless it is already empty.
func (w *Writer) Newline() {
	if n := w.out.Len(); n > 0 && w.out.Bytes()[n-1] != '\n' {
		w.out.WriteByte('\n')
	}
	w.pending = true
}

func (w *Writer) AtLineStart() bool { return w.pending }

func (w *Writer) IndentPush() { w.depth++ }

func (w *Writer) IndentPop() { w.depth = max(w.depth-1, 0) }
