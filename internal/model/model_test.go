package model

import (
	"fmt"
	"testing"
)

func TestUpdateJobStatusSelectsAndMarksDirty(t *testing.T) {
	m := New()
	m.UpdateJobStatus("job-1", "running")

	if m.SelectedJob != "job-1" {
		t.Errorf("SelectedJob = %q, want job-1", m.SelectedJob)
	}
	if !m.Dirty {
		t.Error("expected Dirty after update")
	}
	job, ok := m.Jobs.Get("job-1")
	if !ok || job.Status != "running" {
		t.Errorf("Jobs.Get(job-1) = %+v, %v", job, ok)
	}
}

func TestUpdateTaskStatusComposesMessage(t *testing.T) {
	m := New()
	m.UpdateTaskStatus("job-1", "task-1", "running", "  doing work  ")

	task, ok := m.Tasks.Get(TaskKey("job-1", "task-1"))
	if !ok {
		t.Fatal("expected task to exist")
	}
	if task.Status != "running doing work" {
		t.Errorf("Status = %q, want \"running doing work\"", task.Status)
	}
}

func TestUpdateTaskStatusNoMessage(t *testing.T) {
	m := New()
	m.UpdateTaskStatus("job-1", "task-1", "done", "   ")

	task, _ := m.Tasks.Get(TaskKey("job-1", "task-1"))
	if task.Status != "done" {
		t.Errorf("Status = %q, want \"done\"", task.Status)
	}
}

func TestScrollSaturates(t *testing.T) {
	m := New()
	m.ScrollLogsDown(5)
	if m.LogScroll != 0 {
		t.Errorf("LogScroll = %d, want 0 (saturating subtract)", m.LogScroll)
	}
	m.ScrollLogsUp(3)
	if m.LogScroll != 3 {
		t.Errorf("LogScroll = %d, want 3", m.LogScroll)
	}
	m.ScrollLogsDown(10)
	if m.LogScroll != 0 {
		t.Errorf("LogScroll = %d, want 0", m.LogScroll)
	}
}

func TestSelectedJobSurvivesEviction(t *testing.T) {
	m := New()
	m.UpdateJobStatus("job-1", "running")
	// SelectedJob is never required to still exist in Jobs.
	for i := 0; i < JobLimit+10; i++ {
		m.UpdateJobStatus(fmt.Sprintf("job-%d", i+2), "running")
	}
	_, ok := m.Jobs.Get("job-1")
	if ok {
		t.Fatal("expected job-1 to have been evicted for this test to be meaningful")
	}
	// Every update re-selects, so the selection has moved on to the newest
	// job rather than being left on the evicted one.
	if want := fmt.Sprintf("job-%d", JobLimit+11); m.SelectedJob != want {
		t.Errorf("SelectedJob = %q, want %q", m.SelectedJob, want)
	}
}
