package observ

import (
	"strings"
	"testing"
	"time"
)

func TestNilTimerIsNoop(t *testing.T) {
	var timer *Timer
	idx := timer.Begin("parse")
	if idx != -1 {
		t.Fatalf("Begin on nil timer = %d, want -1", idx)
	}
	timer.End(idx, "ignored")
	if got := timer.Report(); got.TotalMS != 0 || len(got.Phases) != 0 {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestReportAndSummary(t *testing.T) {
	timer := NewTimer()
	parse := timer.Begin("parse")
	time.Sleep(time.Millisecond)
	timer.End(parse, "items=3")
	check := timer.Begin("check")
	timer.End(check, "")
	timer.End(42, "out of range")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "items=3" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Fatalf("parse phase has no duration")
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %.3f below phase %.3f", report.TotalMS, report.Phases[0].DurationMS)
	}

	summary := report.Summary("main.ocl")
	for _, want := range []string{"timings: main.ocl", "parse", "// items=3", "check", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
