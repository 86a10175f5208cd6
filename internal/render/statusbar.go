package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/agent-racer/supervisor-tui/internal/theme"
)

// controlsBanner renders the connection/run-identity/keybinding strip,
// adapted from the teacher's status bar: an unbordered block of
// ControlsHeight rows showing connection state, run id, and the active key
// bindings.
func controlsBanner(connected bool, runID string, unicode bool, width int) string {
	dot, sep := "●", " · "
	if !unicode {
		dot, sep = "*", " | "
	}

	var connStr string
	if connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render(dot + " connected")
	} else {
		disconnectedDot := "○"
		if !unicode {
			disconnectedDot = "-"
		}
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render(disconnectedDot + " disconnected")
	}

	keys := fmt.Sprintf("q quit%sr run job%sc cancel%sj/k logs%sn/m jobs%su/i tasks", sep, sep, sep, sep, sep)

	content := " " + connStr + sep + "run=" + runID + sep + keys

	if width < 40 {
		width = 40
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(ControlsHeight).
		Render(content)
}
