// Package model holds the authoritative UI state: jobs, tasks, logs,
// selection, scroll cursors, and telemetry. It has no knowledge of the
// wire protocol, rendering, or input handling — those layers mutate it
// through the operations below.
package model

import (
	"strings"

	"github.com/agent-racer/supervisor-tui/internal/ring"
)

// Bounded memory limits, per the ring-buffer invariants.
const (
	LogLimit  = 2048
	JobLimit  = 512
	TaskLimit = 2048
)

// Job is the renderer-facing view of a supervisor job.
type Job struct {
	JobID  string
	Status string
}

// Task is the renderer-facing view of a supervisor task. Status holds the
// composed "{status} {message}" display value (or status alone), matching
// the literal update_task_status contract — not a normalized status field.
type Task struct {
	JobID  string
	TaskID string
	Status string
}

// Telemetry holds the EWMAs and counters the render scheduler and
// telemetry emitter read.
type Telemetry struct {
	EventLagMsEWMA  float64
	RenderMsEWMA    float64
	QueueDepthEWMA  float64
	ProcessedEvents uint64
	ChunkReassembled uint64
	DroppedChunks   uint64
}

// Model is the authoritative session state.
type Model struct {
	RunID string

	Logs  *ring.Log
	Jobs  *ring.OrderedMap[string, Job]
	Tasks *ring.OrderedMap[string, Task]

	SelectedJob string

	LogScroll  uint64
	JobScroll  uint64
	TaskScroll uint64

	Telemetry Telemetry

	Dirty bool
}

// New creates an empty model with the spec's ring limits.
func New() *Model {
	return &Model{
		Logs:  ring.NewLog(LogLimit),
		Jobs:  ring.NewOrderedMap[string, Job](JobLimit),
		Tasks: ring.NewOrderedMap[string, Task](TaskLimit),
	}
}

// PushLog appends a log line, evicting the oldest on overflow, and marks
// the model dirty.
func (m *Model) PushLog(s string) {
	m.Logs.Push(s)
	m.Dirty = true
}

// UpdateJobStatus inserts or updates a job's status, selects it, and marks
// the model dirty. First insertion appends to the job order (with FIFO
// eviction on overflow).
func (m *Model) UpdateJobStatus(jobID, status string) {
	m.Jobs.Upsert(jobID, Job{JobID: jobID, Status: status})
	m.SelectedJob = jobID
	m.Dirty = true
}

// TaskKey returns the composite key used to store a task.
func TaskKey(jobID, taskID string) string {
	return jobID + ":" + taskID
}

// UpdateTaskStatus inserts or updates a task. If message is non-empty
// after trimming whitespace, the stored display value is "{status}
// {message}"; otherwise it is status alone. Marks the model dirty.
func (m *Model) UpdateTaskStatus(jobID, taskID, status, message string) {
	display := status
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		display = status + " " + trimmed
	}
	key := TaskKey(jobID, taskID)
	m.Tasks.Upsert(key, Task{JobID: jobID, TaskID: taskID, Status: display})
	m.Dirty = true
}

// ScrollLogsUp/Down, ScrollJobsUp/Down, ScrollTasksUp/Down mutate the
// corresponding scroll cursor with saturating add/subtract, and mark the
// model dirty.

func (m *Model) ScrollLogsUp(n uint64)   { m.LogScroll = satAdd(m.LogScroll, n); m.Dirty = true }
func (m *Model) ScrollLogsDown(n uint64) { m.LogScroll = satSub(m.LogScroll, n); m.Dirty = true }

func (m *Model) ScrollJobsUp(n uint64)   { m.JobScroll = satAdd(m.JobScroll, n); m.Dirty = true }
func (m *Model) ScrollJobsDown(n uint64) { m.JobScroll = satSub(m.JobScroll, n); m.Dirty = true }

func (m *Model) ScrollTasksUp(n uint64)   { m.TaskScroll = satAdd(m.TaskScroll, n); m.Dirty = true }
func (m *Model) ScrollTasksDown(n uint64) { m.TaskScroll = satSub(m.TaskScroll, n); m.Dirty = true }

func satAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
