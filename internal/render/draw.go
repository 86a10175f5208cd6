package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agent-racer/supervisor-tui/internal/model"
	"github.com/agent-racer/supervisor-tui/internal/theme"
)

// ControlsHeight, MetricsHeight are the fixed row heights the spec's
// three-row layout assigns to the controls banner and runtime metrics
// line; the remainder of the terminal height goes to the main area.
const (
	ControlsHeight = 3
	MetricsHeight  = 3

	jobsWidthPct  = 0.28
	tasksWidthPct = 0.28
	// logs take the remainder, ~0.44
)

// colorEnabled reports whether styling should be applied. NO_COLOR
// disables all styling per the spec's color policy.
func colorEnabled() bool {
	return os.Getenv("NO_COLOR") == ""
}

// Draw renders the full frame for a terminal of the given size. unicode
// selects between a Unicode or ASCII controls banner glyph, per the
// unicode-toggle environment variable.
func Draw(m *model.Model, connected bool, unicode bool, width, height int) string {
	controls := controlsBanner(connected, m.RunID, unicode, width)
	metrics := drawMetrics(m, width)

	mainHeight := height - ControlsHeight - MetricsHeight
	if mainHeight < 0 {
		mainHeight = 0
	}

	jobsWidth := int(float64(width) * jobsWidthPct)
	tasksWidth := int(float64(width) * tasksWidthPct)
	logsWidth := width - jobsWidth - tasksWidth

	jobs := drawJobs(m, jobsWidth, mainHeight)
	tasks := drawTasks(m, tasksWidth, mainHeight)
	logs := drawLogs(m, logsWidth, mainHeight)

	main := lipgloss.JoinHorizontal(lipgloss.Top, jobs, tasks, logs)

	return lipgloss.JoinVertical(lipgloss.Left, controls, metrics, main)
}

func drawMetrics(m *model.Model, width int) string {
	line := fmt.Sprintf(
		" run=%s  event_lag=%.2fms  render=%.2fms  queue_depth=%.2f  processed=%d  reassembled=%d  dropped=%d",
		m.RunID,
		m.Telemetry.EventLagMsEWMA,
		m.Telemetry.RenderMsEWMA,
		m.Telemetry.QueueDepthEWMA,
		m.Telemetry.ProcessedEvents,
		m.Telemetry.ChunkReassembled,
		m.Telemetry.DroppedChunks,
	)
	style := theme.StyleDimmed
	if !colorEnabled() {
		style = lipgloss.NewStyle()
	}
	return style.Width(width).Height(MetricsHeight).Render(line)
}

// visibleRows returns the paginable row count for a bordered pane of the
// given height: height minus 2 for borders, per the windowing rule.
func visibleRows(height int) int {
	n := height - 2
	if n < 0 {
		return 0
	}
	return n
}

func styledLine(text, status string) string {
	if !colorEnabled() {
		return text
	}
	return lipgloss.NewStyle().Foreground(theme.StatusColor(status)).Render(text)
}

func drawJobs(m *model.Model, width, height int) string {
	rows := visibleRows(height)
	order := m.Jobs.Order()

	start := 0
	if offset := int(m.JobScroll); offset < len(order) {
		start = offset
	} else if len(order) > 0 {
		start = len(order) - 1
	}

	var b strings.Builder
	b.WriteString("Jobs\n")
	for i := start; i < len(order) && i-start < rows; i++ {
		job, ok := m.Jobs.Get(order[i])
		if !ok {
			continue
		}
		marker := "  "
		if job.JobID == m.SelectedJob {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %s", marker, job.JobID, job.Status)
		b.WriteString(styledLine(line, job.Status))
		b.WriteString("\n")
	}

	return borderStyle().Width(width - 2).Height(height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func drawTasks(m *model.Model, width, height int) string {
	rows := visibleRows(height)

	var filtered []model.Task
	for _, key := range m.Tasks.Order() {
		task, ok := m.Tasks.Get(key)
		if !ok {
			continue
		}
		if m.SelectedJob != "" && !strings.HasPrefix(key, m.SelectedJob+":") {
			continue
		}
		filtered = append(filtered, task)
	}

	start := 0
	if offset := int(m.TaskScroll); offset < len(filtered) {
		start = offset
	} else if len(filtered) > 0 {
		start = len(filtered) - 1
	}

	var b strings.Builder
	b.WriteString("Tasks\n")
	for i := start; i < len(filtered) && i-start < rows; i++ {
		task := filtered[i]
		line := fmt.Sprintf("  %s  %s", task.TaskID, task.Status)
		b.WriteString(styledLine(line, task.Status))
		b.WriteString("\n")
	}

	return borderStyle().Width(width - 2).Height(height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func drawLogs(m *model.Model, width, height int) string {
	rows := visibleRows(height)
	items := m.Logs.Items()

	// Logs are a tail window: scroll offset is counted from the newest
	// entry backward.
	end := len(items) - int(m.LogScroll)
	if end > len(items) {
		end = len(items)
	}
	if end < 0 {
		end = 0
	}
	start := end - rows
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	b.WriteString("Logs\n")
	for i := start; i < end; i++ {
		b.WriteString(items[i])
		b.WriteString("\n")
	}

	return borderStyle().Width(width - 2).Height(height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func borderStyle() lipgloss.Style {
	if !colorEnabled() {
		return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())
	}
	return theme.StyleBorder
}
