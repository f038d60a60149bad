// Package observ measures how long the phases of a run take.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one finished or running phase (resolve, validate, render).
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects phase durations for --timings. Safe for concurrent use:
// with the progress UI the run happens off the main goroutine.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Start opens a phase. The returned func closes it; only the first call counts.
func (t *Timer) Start(name string) (stop func(note string)) {
	start := t.now()
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name})
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			dur := t.now().Sub(start)
			t.mu.Lock()
			t.phases[idx].Dur = dur
			t.phases[idx].Note = note
			t.mu.Unlock()
		})
	}
}

// PhaseReport is a Phase in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Share      float64 `json:"share"` // доля от total, 0..1
	Note       string  `json:"note,omitempty"`
}

// Report is the --timings document.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases recorded so far.
func (t *Timer) Report() Report {
	t.mu.Lock()
	phases := append([]Phase(nil), t.phases...)
	t.mu.Unlock()

	report := Report{Phases: make([]PhaseReport, 0, len(phases))}
	var total time.Duration
	for _, p := range phases {
		total += p.Dur
	}
	for _, p := range phases {
		pr := PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
		if total > 0 {
			pr.Share = float64(p.Dur) / float64(total)
		}
		report.Phases = append(report.Phases, pr)
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %8.2f ms %5.1f%%", p.Name, p.DurationMS, p.Share*100)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %8.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
