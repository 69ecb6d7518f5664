package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

type Format uint8

const (
	FormatAuto   Format = iota // chosen from the output file name
	FormatText                 // indented, one line per event
	FormatNDJSON               // one JSON object per line
	FormatChrome               // chrome://tracing and Perfetto
)

var formatNames = [...]string{"auto", "text", "ndjson", "chrome"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "format?"
}

// ParseFormat accepts auto, text, ndjson and chrome; empty means auto.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatAuto, nil
	}
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return FormatAuto, fmt.Errorf("unknown trace format %q (want %s)", s, strings.Join(formatNames[:], "|"))
}

// formatForPath maps *.ndjson to NDJSON, *.json to Chrome and anything
// else, stderr included, to text.
func formatForPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".ndjson"):
		return FormatNDJSON
	case strings.HasSuffix(path, ".json"):
		return FormatChrome
	default:
		return FormatText
	}
}

// encoder writes a sequence of events as one document.
type encoder struct {
	w      io.Writer
	format Format
	n      int
	buf    []byte
}

func newEncoder(w io.Writer, format Format) *encoder {
	if format == FormatAuto {
		format = FormatText
	}
	return &encoder{w: w, format: format}
}

func (e *encoder) write(ev *Event) error {
	b := e.buf[:0]
	switch e.format {
	case FormatNDJSON:
		b = appendNDJSON(b, ev)
	case FormatChrome:
		if e.n == 0 {
			b = append(b, "{\"traceEvents\":[\n"...)
		} else {
			b = append(b, ",\n"...)
		}
		b = appendChrome(b, ev)
	default:
		b = appendText(b, ev)
	}
	e.buf = b
	e.n++
	_, err := e.w.Write(b)
	return err
}

func (e *encoder) flush() error {
	if f, ok := e.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// finish closes the Chrome envelope, opening it first when nothing was written.
func (e *encoder) finish() error {
	if e.format == FormatChrome {
		tail := "\n]}\n"
		if e.n == 0 {
			tail = "{\"traceEvents\":[" + tail
		}
		if _, err := io.WriteString(e.w, tail); err != nil {
			return err
		}
		e.n = -1
	}
	return e.flush()
}

var textMarks = [...]byte{KindSpanBegin: '>', KindSpanEnd: '<', KindPoint: '.', KindHeartbeat: '~'}

// appendText renders "15:04:05.000000 <indent>> name [detail] k=v".
func appendText(b []byte, ev *Event) []byte {
	b = ev.Time.AppendFormat(b, "15:04:05.000000")
	b = append(b, ' ')
	for s := ScopeDriver; s < ev.Scope; s++ {
		b = append(b, "  "...)
	}
	mark := byte('?')
	if int(ev.Kind) < len(textMarks) && textMarks[ev.Kind] != 0 {
		mark = textMarks[ev.Kind]
	}
	b = append(b, mark, ' ')
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(b, " ["...)
		b = append(b, ev.Detail...)
		b = append(b, ']')
	}
	for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		b = append(b, ' ')
		b = append(b, k...)
		b = append(b, '=')
		b = append(b, ev.Extra[k]...)
	}
	return append(b, '\n')
}

type ndjsonEvent struct {
	Time   string            `json:"time"`
	Seq    uint64            `json:"seq"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span,omitempty"`
	Parent uint64            `json:"parent,omitempty"`
	Lane   uint64            `json:"lane,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(b []byte, ev *Event) []byte {
	data, err := json.Marshal(ndjsonEvent{
		Time:   ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.SpanID,
		Parent: ev.ParentID,
		Lane:   ev.Lane,
		Name:   ev.Name,
		Detail: ev.Detail,
		Extra:  ev.Extra,
	})
	if err != nil {
		return b
	}
	b = append(b, data...)
	return append(b, '\n')
}

type chromeEvent struct {
	Name  string            `json:"name"`
	Cat   string            `json:"cat"`
	Phase string            `json:"ph"`
	TS    int64             `json:"ts"`
	PID   int               `json:"pid"`
	TID   uint64            `json:"tid"`
	Scope string            `json:"s,omitempty"`
	Args  map[string]string `json:"args,omitempty"`
}

func appendChrome(b []byte, ev *Event) []byte {
	ce := chromeEvent{
		Name: ev.Name,
		Cat:  ev.Scope.String(),
		TS:   ev.Time.UnixMicro(),
		PID:  1,
		TID:  ev.Lane,
	}
	switch ev.Kind {
	case KindSpanBegin:
		ce.Phase = "B"
	case KindSpanEnd:
		ce.Phase = "E"
	case KindHeartbeat:
		ce.Phase, ce.Scope = "i", "g"
	default:
		ce.Phase, ce.Scope = "i", "t"
	}
	ce.Args = make(map[string]string, len(ev.Extra)+2)
	maps.Copy(ce.Args, ev.Extra)
	if ev.Detail != "" {
		ce.Args["detail"] = ev.Detail
	}
	ce.Args["seq"] = strconv.FormatUint(ev.Seq, 10)
	data, err := json.Marshal(ce)
	if err != nil {
		return b
	}
	return append(b, data...)
}
