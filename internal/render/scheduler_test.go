package render

import (
	"testing"
	"time"

	"github.com/agent-racer/supervisor-tui/internal/model"
)

func TestEvaluateSkipsWhenNotDirty(t *testing.T) {
	s := NewScheduler()
	m := model.New()
	m.Dirty = false

	if s.Evaluate(m, time.Now()) {
		t.Error("Evaluate() = true, want false when model is not dirty")
	}
}

func TestEvaluateFirstCallRendersRegardlessOfElapsed(t *testing.T) {
	s := NewScheduler()
	m := model.New()
	m.PushLog("first")

	if !s.Evaluate(m, time.Now()) {
		t.Error("Evaluate() = false, want true on first dirty call")
	}
	if m.Dirty {
		t.Error("Evaluate() should clear Dirty after the frame gate passes")
	}
}

func TestEvaluateRateLimitsToFrameInterval(t *testing.T) {
	s := NewScheduler()
	m := model.New()
	now := time.Now()

	m.PushLog("a")
	s.Evaluate(m, now)

	m.PushLog("b")
	if s.Evaluate(m, now.Add(10*time.Millisecond)) {
		t.Error("Evaluate() = true, want false before frameInterval elapses")
	}
}

func TestEvaluateDeduplicatesUnchangedSignature(t *testing.T) {
	s := NewScheduler()
	m := model.New()
	now := time.Now()

	m.PushLog("a")
	if !s.Evaluate(m, now) {
		t.Fatal("first Evaluate() should render")
	}

	// Dirty set again but no observable state changed.
	m.Dirty = true
	if s.Evaluate(m, now.Add(100*time.Millisecond)) {
		t.Error("Evaluate() = true, want false when signature is unchanged")
	}
}

func TestEvaluateRendersOnSignatureChange(t *testing.T) {
	s := NewScheduler()
	m := model.New()
	now := time.Now()

	m.PushLog("a")
	s.Evaluate(m, now)

	m.PushLog("b")
	if !s.Evaluate(m, now.Add(100*time.Millisecond)) {
		t.Error("Evaluate() = false, want true when the signature changed")
	}
}

func TestRecordRenderDurationWarnsOverBudget(t *testing.T) {
	s := NewScheduler()
	m := model.New()

	s.RecordRenderDuration(m, 20*time.Millisecond)

	if m.Telemetry.RenderMsEWMA <= 0 {
		t.Error("RenderMsEWMA should be updated")
	}
	last := m.Logs.Last()
	if last == "" {
		t.Fatal("expected a frame budget warning log line")
	}
}

func TestRecordRenderDurationNoWarningUnderBudget(t *testing.T) {
	s := NewScheduler()
	m := model.New()

	s.RecordRenderDuration(m, 5*time.Millisecond)

	if m.Logs.Len() != 0 {
		t.Errorf("Logs.Len() = %d, want 0 for a render under budget", m.Logs.Len())
	}
}
