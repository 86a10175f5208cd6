package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agent-racer/supervisor-tui/internal/supervisor"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	return New(Options{
		RunID:         "run-test",
		HelperName:    "does-not-exist-helper-binary",
		SnapshotPath:  dir + "/snapshot.json",
		TelemetryPath: dir + "/telemetry.jsonl",
		ApplogPath:    dir + "/app.log",
		Unicode:       true,
	})
}

func TestInitializingView(t *testing.T) {
	m := newTestModel(t)
	if v := m.View(); !strings.Contains(v, "Initializing") {
		t.Errorf("View() before WindowSizeMsg = %q, want Initializing placeholder", v)
	}
}

func TestWindowSizeTriggersDraw(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	mm := updated.(Model)
	v := mm.View()
	if !strings.Contains(v, "quit") {
		t.Errorf("View() after resize missing controls banner, got %q", v)
	}
}

func TestDisconnectedBeforeEverConnectedIsStartupFailure(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(supervisor.DisconnectedMsg{})
	mm := updated.(Model)
	if mm.StartupErr() == nil {
		t.Error("StartupErr() = nil, want non-nil after disconnect before first connect")
	}
	if cmd == nil {
		t.Error("expected a quit command on startup failure")
	}
}

func TestConnectedThenDisconnectedIsNotStartupFailure(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(supervisor.ConnectedMsg{})
	mm := updated.(Model)

	updated2, _ := mm.Update(supervisor.DisconnectedMsg{})
	mm2 := updated2.(Model)
	if mm2.StartupErr() != nil {
		t.Errorf("StartupErr() = %v, want nil after a successful prior connection", mm2.StartupErr())
	}
}

func TestKeyMsgEnqueuesWithoutPanicking(t *testing.T) {
	m := newTestModel(t)
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	updated, _ := m.Update(key)
	if _, ok := updated.(Model); !ok {
		t.Fatal("Update() did not return an app.Model")
	}
}

func TestTickDispatchesQuitOnQueuedQuit(t *testing.T) {
	m := newTestModel(t)
	now := time.Now()
	m.dsp.Enqueue("q", now)

	updated, cmd := m.Update(tickMsg(now.Add(30 * time.Millisecond)))
	if _, ok := updated.(Model); !ok {
		t.Fatal("Update() did not return an app.Model")
	}
	if cmd == nil {
		t.Error("expected a command after dispatching the queued quit")
	}
}
