package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agent-racer/supervisor-tui/internal/app"
)

// Environment variables recognized at startup (CLI flags take precedence).
const (
	envNoColor      = "NO_COLOR"
	envUnicode      = "RACER_TUI_UNICODE"
	envMouse        = "RACER_TUI_MOUSE"
	envAltScreen    = "RACER_TUI_ALT_SCREEN"
	envRunID        = "RACER_TUI_RUN_ID"
	envTelemetryDir = "RACER_TUI_TELEMETRY_DIR"
	envSnapshotPath = "RACER_TUI_SNAPSHOT_PATH"
)

func main() {
	helper := flag.String("supervisor", "racer-supervisor", "Name of the supervisor helper binary")
	runIDFlag := flag.String("run-id", "", "Override the generated run id")
	telemetryDirFlag := flag.String("telemetry-dir", "", "Directory for the telemetry journal")
	snapshotPathFlag := flag.String("snapshot-path", "", "Path for the cross-session UI-state snapshot")
	flag.Parse()

	runID := firstNonEmpty(*runIDFlag, os.Getenv(envRunID), generateRunID())
	telemetryDir := firstNonEmpty(*telemetryDirFlag, os.Getenv(envTelemetryDir), defaultTelemetryDir())
	snapshotPath := firstNonEmpty(*snapshotPathFlag, os.Getenv(envSnapshotPath), defaultSnapshotPath())

	if err := os.MkdirAll(telemetryDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "supervisor-tui: creating telemetry dir: %v\n", err)
		os.Exit(1)
	}
	if dir := filepath.Dir(snapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "supervisor-tui: creating snapshot dir: %v\n", err)
			os.Exit(1)
		}
	}

	opts := app.Options{
		RunID:         runID,
		HelperName:    *helper,
		SnapshotPath:  snapshotPath,
		TelemetryPath: filepath.Join(telemetryDir, runID+".jsonl"),
		ApplogPath:    filepath.Join(telemetryDir, runID+".app.log"),
		Unicode:       os.Getenv(envUnicode) != "0",
	}

	m := app.New(opts)

	guard := newTerminalGuard(os.Getenv(envAltScreen) != "0", isTruthy(os.Getenv(envMouse)))
	defer guard.Restore()

	final, err := guard.program(m).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "supervisor-tui: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(app.Model); ok {
		if startupErr := fm.StartupErr(); startupErr != nil {
			fmt.Fprintf(os.Stderr, "supervisor-tui: %v\n", startupErr)
			os.Exit(1)
		}
	}
}

// terminalGuard wraps the Bubble Tea program options and makes terminal
// teardown an explicit, named step rather than relying only on
// tea.Program.Run's own restoration — so every exit path (including a
// panic during Run) still unwinds back through Restore via defer.
type terminalGuard struct {
	opts []tea.ProgramOption
	p    *tea.Program
}

func newTerminalGuard(altScreen, mouse bool) *terminalGuard {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return &terminalGuard{opts: opts}
}

func (g *terminalGuard) program(m tea.Model) *tea.Program {
	g.p = tea.NewProgram(m, g.opts...)
	return g.p
}

// Restore releases the terminal back to its pre-program state. Run already
// does this on normal return; calling it again here is a no-op in that
// case, but it's the one line standing between a crash mid-Run and a
// terminal left in raw/alt-screen mode.
func (g *terminalGuard) Restore() {
	if g.p != nil {
		g.p.ReleaseTerminal()
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func generateRunID() string {
	return fmt.Sprintf("run-%d", time.Now().UnixNano())
}

func defaultTelemetryDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".racer-tui"
	}
	return filepath.Join(dir, "racer-tui")
}

func defaultSnapshotPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".racer-tui-snapshot.json"
	}
	return filepath.Join(dir, "racer-tui", "snapshot.json")
}
