// Package theme provides the Lip Gloss color palette and reusable styles
// for the supervisor TUI. It is a leaf package with no internal imports,
// to avoid import cycles.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status colors, matched by substring against a job/task status string.
var (
	ColorDone      = lipgloss.Color("#16a34a")
	ColorFailed    = lipgloss.Color("#dc2626")
	ColorCancelled = lipgloss.Color("#d97706")
	ColorRunning   = lipgloss.Color("#2563eb")
	ColorDefault   = lipgloss.Color("#9ca3af")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// StatusColor returns the Lip Gloss color for a job/task status string,
// matched by substring: done→green, failed→red, cancelled→yellow,
// running→blue, else gray. When colorEnabled is false (NO_COLOR set),
// callers should skip Foreground entirely rather than calling this.
func StatusColor(status string) lipgloss.Color {
	switch {
	case strings.Contains(status, "done"):
		return ColorDone
	case strings.Contains(status, "failed"):
		return ColorFailed
	case strings.Contains(status, "cancelled"):
		return ColorCancelled
	case strings.Contains(status, "running"):
		return ColorRunning
	default:
		return ColorDefault
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)
)
