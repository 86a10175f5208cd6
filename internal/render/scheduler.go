// Package render implements the frame-rate-limited, dirty-gated,
// signature-deduplicated render scheduler (C6): the layout, color policy,
// windowing, and budget telemetry live alongside the scheduling gate
// itself since all of it reads the same model snapshot each frame.
package render

import (
	"fmt"
	"time"

	"github.com/agent-racer/supervisor-tui/internal/model"
)

const (
	frameInterval = 50 * time.Millisecond
	frameBudgetMs = 16.0
	ewmaAlpha     = 0.15
)

func ewma(current, sample float64) float64 {
	if current <= 0 {
		return sample
	}
	return (1-ewmaAlpha)*current + ewmaAlpha*sample
}

// Scheduler gates render passes on dirty state, elapsed time, and a
// deduplicating state signature.
type Scheduler struct {
	haveLastFrame bool
	lastFrameAt   time.Time
	lastSignature string
	lastFrame     string
}

// LastFrame returns the most recently cached rendered frame, for callers
// that skip redrawing when Evaluate reports false.
func (s *Scheduler) LastFrame() string { return s.lastFrame }

// SetLastFrame caches the frame just drawn.
func (s *Scheduler) SetLastFrame(frame string) { s.lastFrame = frame }

// NewScheduler creates a scheduler that will render on its first
// Evaluate call (no prior frame to rate-limit against).
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Evaluate reports whether a draw should happen at time now. The frame
// gate requires model.Dirty and at least frameInterval elapsed since the
// last frame; the signature gate then skips the draw if Signature is
// unchanged since the last draw. The frame clock advances and Dirty clears
// whenever the frame gate passes, regardless of whether the draw is
// ultimately skipped by the signature gate.
func (s *Scheduler) Evaluate(m *model.Model, now time.Time) bool {
	if !m.Dirty {
		return false
	}
	if s.haveLastFrame && now.Sub(s.lastFrameAt) < frameInterval {
		return false
	}

	sig := Signature(m)
	s.lastFrameAt = now
	s.haveLastFrame = true
	m.Dirty = false

	if sig == s.lastSignature {
		return false
	}
	s.lastSignature = sig
	return true
}

// Signature computes the stable fingerprint used to deduplicate frames:
// run id, job/task/log counts, selected job, job scroll offset, and the
// newest log line. Task and log scroll offsets and job/task status values
// are not part of it, so a change to only those does not produce a draw.
func Signature(m *model.Model) string {
	return fmt.Sprintf("%s|%d|%d|%d|%s|%d|%s",
		m.RunID, m.Jobs.Len(), m.Tasks.Len(), m.Logs.Len(),
		m.SelectedJob, m.JobScroll, m.Logs.Last())
}

// RecordRenderDuration folds a render pass's wall-clock duration into the
// render-time EWMA, and appends a frame-budget warning log line if it
// exceeded the 16ms target.
func (s *Scheduler) RecordRenderDuration(m *model.Model, d time.Duration) {
	ms := float64(d.Microseconds()) / 1000.0
	m.Telemetry.RenderMsEWMA = ewma(m.Telemetry.RenderMsEWMA, ms)
	if ms > frameBudgetMs {
		m.PushLog(fmt.Sprintf("frame budget warning: render=%.2fms budget=16ms", ms))
	}
}
