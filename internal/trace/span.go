package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	seqs    atomic.Uint64
	spanIDs atomic.Uint64
)

func nextSeq() uint64 { return seqs.Add(1) }

// lane returns the id of the calling goroutine, read from the
// "goroutine N [status]:" line runtime.Stack starts with.
func lane() uint64 {
	var buf [40]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Span is an open interval. The zero Span and a nil *Span are inert.
type Span struct {
	t     Tracer
	begin Event
	extra map[string]string
}

// Begin opens a span under parent (0 for a root) when t records scope.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{t: t, begin: Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   spanIDs.Add(1),
		ParentID: parent,
		Lane:     lane(),
		Name:     name,
	}}
	ev := s.begin
	t.Emit(&ev)
	return s
}

// WithExtra attaches key=value to the closing event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.t == nil {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

// End closes the span with an optional detail and returns its length.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.t == nil {
		return 0
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Seq = nextSeq()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.t.Emit(&ev)
	s.t = nil
	return ev.Time.Sub(s.begin.Time)
}

// ID is the span id to pass as parent, or 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil || s.t == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point records an instant under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Lane:     lane(),
		Name:     name,
		Detail:   detail,
	})
}
