package observ

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	stop := tm.Start("parse")
	stop("3 nodes")
	tm.Start("lower")
	tm.Record("print", 2*time.Millisecond, "")

	r := tm.Report()
	want := []Stage{{Name: "parse", Note: "3 nodes"}, {Name: "lower"}, {Name: "print", DurationMS: 2}}
	if diff := cmp.Diff(want, r.Stages, cmpopts.IgnoreFields(Stage{}, "DurationMS")); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
	if r.Stages[1].DurationMS != 0 {
		t.Errorf("open lap reported %v ms", r.Stages[1].DurationMS)
	}
	if r.TotalMS < 2 {
		t.Errorf("total = %v, want >= 2", r.TotalMS)
	}
}

func TestReportWithDoesNotAlias(t *testing.T) {
	base := Report{Stages: make([]Stage, 1, 4)}
	a := base.With("write", time.Millisecond)
	b := base.With("cache", time.Millisecond)
	if a.Stages[1].Name != "write" || b.Stages[1].Name != "cache" {
		t.Fatalf("a = %+v, b = %+v", a, b)
	}
	if len(base.Stages) != 1 {
		t.Fatalf("base changed: %+v", base)
	}
}

func TestSum(t *testing.T) {
	got := Sum(
		Report{Stages: []Stage{{Name: "parse", DurationMS: 1}, {Name: "print", DurationMS: 2, Note: "x"}}},
		Report{Stages: []Stage{{Name: "lower", DurationMS: 4}, {Name: "parse", DurationMS: 8}}},
	)
	want := Report{TotalMS: 15, Stages: []Stage{{Name: "parse", DurationMS: 9}, {Name: "print", DurationMS: 2}, {Name: "lower", DurationMS: 4}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sum mismatch (-want +got):\n%s", diff)
	}
}
