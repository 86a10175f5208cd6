package render

import (
	"strings"
	"testing"

	"github.com/agent-racer/supervisor-tui/internal/model"
)

func TestDrawContainsLayoutSections(t *testing.T) {
	m := model.New()
	m.RunID = "run-1"
	m.UpdateJobStatus("job-1", "running")
	m.UpdateTaskStatus("job-1", "task-1", "running", "")
	m.PushLog("hello")

	out := Draw(m, true, true, 120, 40)

	for _, want := range []string{"Jobs", "Tasks", "Logs", "job-1", "task-1", "hello", "run=run-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Draw() output missing %q", want)
		}
	}
}

func TestDrawTaskFilterBySelectedJob(t *testing.T) {
	m := model.New()
	m.UpdateJobStatus("job-1", "running")
	m.UpdateTaskStatus("job-1", "t1", "running", "")
	m.UpdateJobStatus("job-2", "running")
	m.UpdateTaskStatus("job-2", "t2", "running", "")

	m.SelectedJob = "job-1"

	out := Draw(m, true, true, 120, 40)
	if !strings.Contains(out, "t1") {
		t.Error("expected selected job's task to be visible")
	}
	if strings.Contains(out, "t2") {
		t.Error("expected other job's task to be filtered out")
	}
}

func TestDrawNoSelectionShowsAllTasks(t *testing.T) {
	m := model.New()
	m.UpdateTaskStatus("job-1", "t1", "running", "")
	m.UpdateTaskStatus("job-2", "t2", "running", "")
	m.SelectedJob = ""

	out := Draw(m, true, true, 120, 40)
	if !strings.Contains(out, "t1") || !strings.Contains(out, "t2") {
		t.Error("expected all tasks visible when no job is selected")
	}
}

func TestDrawDisconnectedShowsStatus(t *testing.T) {
	m := model.New()
	out := Draw(m, false, true, 120, 40)
	if !strings.Contains(out, "disconnected") {
		t.Error("expected disconnected status in controls banner")
	}
}
