// Package observ carries lightweight instrumentation for the build
// pipeline: a phase timer and its serializable breakdown.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed span of pipeline work.
type Phase struct {
	Name    string
	Start   time.Time
	Elapsed time.Duration
	Note    string
}

// Timer накапливает фазы конвейера по мере их выполнения.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin opens a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase. Out-of-range handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Elapsed = time.Since(p.Start)
	p.Note = note
}

// PhaseTiming is the serializable view of one phase. Share is the
// phase's fraction of the total, in [0, 1].
type PhaseTiming struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Share      float64 `json:"share"`
	Note       string  `json:"note,omitempty"`
}

// Report агрегирует фазы: миллисекунды и доля каждой фазы от общего
// времени сборки.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseTiming `json:"phases"`
}

// Report собирает срез фаз; доли считаются от суммы длительностей.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	var total time.Duration
	for _, phase := range t.phases {
		total += phase.Elapsed
	}
	report := Report{
		TotalMS: durationToMillis(total),
		Phases:  make([]PhaseTiming, len(t.phases)),
	}
	for i, phase := range t.phases {
		timing := PhaseTiming{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Elapsed),
			Note:       phase.Note,
		}
		if total > 0 {
			timing.Share = float64(phase.Elapsed) / float64(total)
		}
		report.Phases[i] = timing
	}
	return report
}

// Summary renders the breakdown for terminal output.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms %5.1f%%", p.Name, p.DurationMS, p.Share*100)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
