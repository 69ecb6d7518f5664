// Package observ measures how long each stage of a file transform takes.
package observ

import (
	"slices"
	"time"
)

// Timer records named laps for one file. It is not safe for concurrent use.
type Timer struct {
	laps []lap
}

type lap struct {
	name  string
	note  string
	start time.Time
	dur   time.Duration
}

func NewTimer() *Timer { return &Timer{} }

// Start opens a lap. Calling the returned func closes it with an
// optional note; a lap that is never closed reports zero.
func (t *Timer) Start(name string) (stop func(note string)) {
	i := len(t.laps)
	t.laps = append(t.laps, lap{name: name, start: time.Now()})
	return func(note string) {
		l := &t.laps[i]
		l.dur = time.Since(l.start)
		l.note = note
	}
}

// Record adds a lap measured elsewhere.
func (t *Timer) Record(name string, d time.Duration, note string) {
	t.laps = append(t.laps, lap{name: name, dur: d, note: note})
}

// Stage is one lap in a Report.
type Stage struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable form of a Timer.
type Report struct {
	TotalMS float64 `json:"total_ms"`
	Stages  []Stage `json:"stages,omitempty"`
}

func (t *Timer) Report() Report {
	var r Report
	for _, l := range t.laps {
		r.add(Stage{Name: l.name, DurationMS: Millis(l.dur), Note: l.note})
	}
	return r
}

// With returns r extended by one stage.
func (r Report) With(name string, d time.Duration) Report {
	r.Stages = slices.Clip(r.Stages)
	r.add(Stage{Name: name, DurationMS: Millis(d)})
	return r
}

func (r *Report) add(s Stage) {
	r.Stages = append(r.Stages, s)
	r.TotalMS += s.DurationMS
}

// Sum adds up stages of the same name across reports, keeping the order
// in which names first appear. Notes are dropped.
func Sum(reports ...Report) Report {
	var out Report
	index := map[string]int{}
	for _, r := range reports {
		for _, s := range r.Stages {
			i, ok := index[s.Name]
			if !ok {
				i = len(out.Stages)
				index[s.Name] = i
				out.Stages = append(out.Stages, Stage{Name: s.Name})
			}
			out.Stages[i].DurationMS += s.DurationMS
			out.TotalMS += s.DurationMS
		}
	}
	return out
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
