package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// StorageMode picks where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // last RingSize events, written on Close
	ModeBoth                          // stream and ring together
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "mode?"
}

func ParseMode(s string) (StorageMode, error) {
	for i, name := range modeNames {
		if name != "" && strings.EqualFold(s, name) {
			return StorageMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown trace mode %q (want stream|ring|both)", s)
}

type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto derives it from OutputPath
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "-" or empty is stderr
	RingSize   int
}

const defaultRingSize = 4096

// New builds the tracer described by cfg. At LevelOff it returns Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}
	if cfg.Mode > ModeBoth {
		return nil, fmt.Errorf("unknown trace mode %d", cfg.Mode)
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}
	out, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeStream:
		return NewStreamTracer(out, cfg.Level, format), nil
	case ModeRing:
		ring := NewRingTracer(cfg.RingSize, cfg.Level)
		ring.dumpTo(out, format)
		return ring, nil
	default:
		// the ring only keeps events in memory here; the stream owns out
		return NewMultiTracer(cfg.Level, NewStreamTracer(out, cfg.Level, format), NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// closeOutput closes w unless it is a standard stream.
func closeOutput(w io.Writer) error {
	if w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// StreamTracer writes each event to w as it arrives.
type StreamTracer struct {
	level Level
	mu    sync.Mutex
	enc   *encoder
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{level: level, enc: newEncoder(w, format)}
}

// Emit writes ev; write errors are dropped so tracing cannot fail a run.
func (t *StreamTracer) Emit(ev *Event) {
	t.mu.Lock()
	_ = t.enc.write(ev) //nolint:errcheck
	t.mu.Unlock()
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.flush()
}

// Close terminates the output document and closes w if it is a file.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.enc.finish(); err != nil {
		return err
	}
	return closeOutput(t.enc.w)
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

// RingTracer keeps the most recent events in memory.
type RingTracer struct {
	level Level

	mu    sync.Mutex
	buf   []Event
	total uint64

	out    io.Writer
	format Format
}

// NewRingTracer keeps up to size events; size <= 0 means 4096.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{level: level, buf: make([]Event, size)}
}

// dumpTo makes Close write the retained events to w.
func (t *RingTracer) dumpTo(w io.Writer, format Format) {
	t.out, t.format = w, format
}

func (t *RingTracer) Emit(ev *Event) {
	t.mu.Lock()
	t.buf[t.total%uint64(len(t.buf))] = *ev
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.buf))
	if t.total <= size {
		return append([]Event(nil), t.buf[:t.total]...)
	}
	start := t.total % size
	out := make([]Event, 0, size)
	out = append(out, t.buf[start:]...)
	return append(out, t.buf[:start]...)
}

// Dump writes the retained events to w as a complete document.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	enc := newEncoder(w, format)
	for _, ev := range t.Snapshot() {
		if err := enc.write(&ev); err != nil {
			return err
		}
	}
	return enc.finish()
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps the ring when New attached an output to it.
func (t *RingTracer) Close() error {
	if t.out == nil {
		return nil
	}
	out := t.out
	t.out = nil
	if err := t.Dump(out, t.format); err != nil {
		return err
	}
	return closeOutput(out)
}

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// MultiTracer forwards every event to each of its tracers.
type MultiTracer struct {
	level   Level
	tracers []Tracer
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{level: level, tracers: tracers}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	return t.each(Tracer.Flush)
}

func (t *MultiTracer) Close() error {
	return t.each(Tracer.Close)
}

// each calls fn on every tracer and returns the first error.
func (t *MultiTracer) each(fn func(Tracer) error) error {
	var first error
	for _, tr := range t.tracers {
		if err := fn(tr); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *MultiTracer) Level() Level { return t.level }

func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
