// Package snapshot persists the cross-session UI-state snapshot: selection
// and scroll cursors, loaded at startup and written at clean exit.
package snapshot

import (
	"encoding/json"
	"os"

	"github.com/agent-racer/supervisor-tui/internal/model"
)

// State is the JSON shape of the snapshot file.
type State struct {
	SelectedJob string `json:"selected_job"`
	JobScroll   uint64 `json:"job_scroll"`
	TaskScroll  uint64 `json:"task_scroll"`
	LogScroll   uint64 `json:"log_scroll"`
}

// Load reads the snapshot at path. A missing file is not an error — it
// returns the zero State, matching "loaded at startup if present".
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Apply restores m's selection and scroll cursors from s.
func Apply(m *model.Model, s State) {
	m.SelectedJob = s.SelectedJob
	m.JobScroll = s.JobScroll
	m.TaskScroll = s.TaskScroll
	m.LogScroll = s.LogScroll
}

// FromModel captures the snapshot-relevant fields of m.
func FromModel(m *model.Model) State {
	return State{
		SelectedJob: m.SelectedJob,
		JobScroll:   m.JobScroll,
		TaskScroll:  m.TaskScroll,
		LogScroll:   m.LogScroll,
	}
}

// Save writes s to path. I/O failures are the caller's to swallow — per
// the spec, snapshot writes are best-effort and never fatal to the UI.
func Save(path string, s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
