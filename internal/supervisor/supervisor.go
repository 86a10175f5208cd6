// Package supervisor owns the spawned supervisor child process: stdin
// (written only from the main thread) and stdout (read only by one reader
// goroutine, realized here as a re-armed Bubble Tea command — mirroring
// the teacher's WSClient connect/read-loop pattern over a child process
// instead of a WebSocket).
package supervisor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agent-racer/supervisor-tui/internal/applog"
	"github.com/agent-racer/supervisor-tui/internal/wire"
)

const killGrace = 2 * time.Second

// Supervisor spawns and speaks the stdio protocol with the supervisor
// child process.
type Supervisor struct {
	helperName string
	log        *applog.Logger

	writeMu sync.Mutex
	stdin   io.WriteCloser

	cmd     *exec.Cmd
	stdout  io.ReadCloser
	scanner *bufio.Scanner
}

// New creates a supervisor client for the named helper binary (e.g.
// "racer-supervisor"). Nothing is spawned until Spawn is called.
func New(helperName string, logger *applog.Logger) *Supervisor {
	return &Supervisor{helperName: helperName, log: logger}
}

// ConnectedMsg is sent once the child process has started.
type ConnectedMsg struct{}

// EventMsg carries one decoded line from the supervisor's stdout.
type EventMsg struct{ Raw json.RawMessage }

// DisconnectedMsg is sent when the read loop ends (EOF or process exit).
type DisconnectedMsg struct{ Err error }

// Spawn starts the supervisor child process: it first tries a helper
// binary adjacent to the running executable, falling back to a
// same-named helper on PATH.
func (s *Supervisor) Spawn(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		path := s.resolveHelperPath()

		cmd := exec.CommandContext(ctx, path)
		cmd.Stderr = os.Stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return DisconnectedMsg{Err: fmt.Errorf("stdin pipe: %w", err)}
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return DisconnectedMsg{Err: fmt.Errorf("stdout pipe: %w", err)}
		}
		if err := cmd.Start(); err != nil {
			return DisconnectedMsg{Err: fmt.Errorf("spawn %s: %w", path, err)}
		}

		s.writeMu.Lock()
		s.stdin = stdin
		s.cmd = cmd
		s.stdout = stdout
		s.writeMu.Unlock()

		s.log.Printf("spawned supervisor: %s (pid %d)", path, cmd.Process.Pid)
		return ConnectedMsg{}
	}
}

// resolveHelperPath tries a sibling of the running executable first, then
// falls back to a named helper on PATH.
func (s *Supervisor) resolveHelperPath() string {
	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), s.helperName)
		if _, err := os.Stat(sibling); err == nil {
			return sibling
		}
	}
	if found, err := exec.LookPath(s.helperName); err == nil {
		return found
	}
	return s.helperName
}

// ReadLoop returns a command that blocks reading one NDJSON line from the
// supervisor's stdout and returns it as an EventMsg. The caller re-issues
// ReadLoop after each EventMsg to keep draining — Bubble Tea's own
// command/message queue realizes the single-producer/single-consumer
// channel the spec calls for; no separate channel type is needed.
func (s *Supervisor) ReadLoop() tea.Cmd {
	return func() tea.Msg {
		s.writeMu.Lock()
		stdout := s.stdout
		if stdout != nil && s.scanner == nil {
			// One scanner for the whole session, so lines it has already
			// buffered are returned by the next ReadLoop, not discarded.
			s.scanner = bufio.NewScanner(stdout)
			s.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		}
		scanner := s.scanner
		s.writeMu.Unlock()
		if stdout == nil {
			return DisconnectedMsg{Err: fmt.Errorf("not connected")}
		}

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			if !json.Valid(line) {
				// Protocol parse failures are silently dropped at the
				// reader; keep scanning rather than tearing down.
				continue
			}
			raw := make(json.RawMessage, len(line))
			copy(raw, line)
			return EventMsg{Raw: raw}
		}
		return DisconnectedMsg{Err: scanner.Err()}
	}
}

// Send JSON-encodes and writes one line to the supervisor's stdin.
// Failures are swallowed by the caller per the spec's best-effort I/O
// policy; Send itself still returns the error so callers can log it.
func (s *Supervisor) Send(req wire.Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		s.log.Printf("encode %s: %v", req.Op, err)
		return err
	}
	data = append(data, '\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.stdin == nil {
		return fmt.Errorf("not connected")
	}
	if _, err := s.stdin.Write(data); err != nil {
		s.log.Printf("write %s: %v", req.Op, err)
		return err
	}
	return nil
}

// Shutdown sends a shutdown request, closes stdin, and forcibly kills the
// process if it hasn't exited within the grace period.
func (s *Supervisor) Shutdown(reason string) {
	_ = s.Send(wire.Shutdown(reason))

	s.writeMu.Lock()
	stdin := s.stdin
	cmd := s.cmd
	s.stdin = nil
	s.writeMu.Unlock()

	if stdin != nil {
		stdin.Close()
	}
	if cmd == nil || cmd.Process == nil {
		return
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
	case <-time.After(killGrace):
		cmd.Process.Kill()
		<-done
	}
}
