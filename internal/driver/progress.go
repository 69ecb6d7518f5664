package driver

import "time"

// Stage is a step of the per-file pipeline, in order.
type Stage string

const (
	StageParse Stage = "parse"
	StageLower Stage = "lower"
	StagePrint Stage = "print"
	StageWrite Stage = "write"
)

// Status is where a file stands. StatusWorking is qualified by a Stage;
// the others are final except StatusQueued.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one progress report. File is empty for batch-level events;
// Elapsed is set on final statuses.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events from worker goroutines and must be safe
// for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends every event on Ch, blocking when it is full.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
