package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimer_PhasesAndReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("bundle")
	time.Sleep(time.Millisecond)
	timer.End(idx, "ok")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("Phases = %d, want 1", len(report.Phases))
	}
	if report.Phases[0].Name != "bundle" {
		t.Errorf("phase name = %q", report.Phases[0].Name)
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Errorf("DurationMS = %f, want > 0", report.Phases[0].DurationMS)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("TotalMS = %f below phase duration", report.TotalMS)
	}
	if got := report.Phases[0].Share; got != 1.0 {
		t.Errorf("Share of the only phase = %f, want 1", got)
	}
}

func TestTimer_SharesSumToOne(t *testing.T) {
	timer := NewTimer()
	first := timer.Begin("copy")
	time.Sleep(time.Millisecond)
	timer.End(first, "")
	second := timer.Begin("bundle")
	time.Sleep(2 * time.Millisecond)
	timer.End(second, "")

	report := timer.Report()
	var sum float64
	for _, p := range report.Phases {
		sum += p.Share
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("shares sum to %f, want 1", sum)
	}
}

func TestTimer_EndIgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("Report() phases = %d, want 0", len(got.Phases))
	}
}

func TestTimer_SummaryListsPhases(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("snapshot")
	timer.End(idx, "12 files")

	summary := timer.Summary()
	if !strings.Contains(summary, "snapshot") || !strings.Contains(summary, "total") {
		t.Errorf("unexpected summary:\n%s", summary)
	}
	if !strings.Contains(summary, "12 files") {
		t.Errorf("summary missing note:\n%s", summary)
	}
}
