package trace

import (
	"fmt"
	"strings"
	"time"
)

// Level selects which scopes are recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError               // heartbeats only, kept for a post-mortem dump
	LevelPhase               // driver and file spans
	LevelDetail              // adds the parse, lower and print passes
	LevelDebug               // adds a point per lowered element
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// ParseLevel accepts the names printed by Level.String in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want %s)", s, strings.Join(levelNames[:], "|"))
}

// finest is the deepest scope each level lets through.
var finest = [...]Scope{LevelPhase: ScopeFile, LevelDetail: ScopePass, LevelDebug: ScopeNode}

// ShouldEmit reports whether events of scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(finest) && scope != 0 && scope <= finest[l]
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one run over a file list
	ScopeFile                    // one input file
	ScopePass                    // parse, lower or print
	ScopeNode                    // one markup element
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopeFile: "file", ScopePass: "pass", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "scope?"
}

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point", KindHeartbeat: "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "kind?"
}

// Event is one record. Seq orders events across goroutines; Lane is the
// emitting goroutine and becomes the thread row in chrome://tracing.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Lane     uint64
	Name     string
	Detail   string
	Extra    map[string]string
}

// Tracer receives events. Implementations must be safe for concurrent Emit.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

type nop struct{}

func (nop) Emit(*Event) {}

func (nop) Flush() error { return nil }

func (nop) Close() error { return nil }

func (nop) Level() Level { return LevelOff }

func (nop) Enabled() bool { return false }

// Nop discards everything.
var Nop Tracer = nop{}
