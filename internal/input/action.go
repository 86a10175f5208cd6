package input

import (
	"fmt"

	"github.com/agent-racer/supervisor-tui/internal/model"
	"github.com/agent-racer/supervisor-tui/internal/wire"
)

// JobAllocator hands out the next job id ("job-{counter}"), incrementing
// its internal counter on each call.
type JobAllocator struct {
	counter int
}

// Next returns the next job id.
func (a *JobAllocator) Next() string {
	a.counter++
	return fmt.Sprintf("job-%d", a.counter)
}

// Act applies one dispatched command: scroll commands mutate m directly;
// RunJob and CancelSelected return an outbound supervisor request; Quit
// returns a shutdown request and reports quit=true.
func Act(cmd Command, m *model.Model, jobs *JobAllocator) (req *wire.Request, quit bool) {
	switch cmd {
	case CmdQuit:
		r := wire.Shutdown("user_exit")
		return &r, true

	case CmdRunJob:
		id := jobs.Next()
		r := wire.JobRun(id, "Search Help", []string{"search", "--help"})
		return &r, false

	case CmdCancelSelected:
		if m.SelectedJob == "" {
			return nil, false
		}
		r := wire.JobCancel(m.SelectedJob, "user_cancel")
		return &r, false

	case CmdLogsUp:
		m.ScrollLogsUp(1)
	case CmdLogsDown:
		m.ScrollLogsDown(1)
	case CmdJobsUp:
		m.ScrollJobsUp(1)
	case CmdJobsDown:
		m.ScrollJobsDown(1)
	case CmdTasksUp:
		m.ScrollTasksUp(1)
	case CmdTasksDown:
		m.ScrollTasksDown(1)
	}
	return nil, false
}
