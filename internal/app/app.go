// Package app wires the root Bubble Tea model: it owns the model snapshot,
// the supervisor client, and the per-tick scheduling of input dispatch,
// flow-credit flush, telemetry emission, and rendering.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agent-racer/supervisor-tui/internal/applog"
	"github.com/agent-racer/supervisor-tui/internal/chunk"
	"github.com/agent-racer/supervisor-tui/internal/flowcredit"
	"github.com/agent-racer/supervisor-tui/internal/input"
	"github.com/agent-racer/supervisor-tui/internal/model"
	"github.com/agent-racer/supervisor-tui/internal/protocol"
	"github.com/agent-racer/supervisor-tui/internal/render"
	"github.com/agent-racer/supervisor-tui/internal/snapshot"
	"github.com/agent-racer/supervisor-tui/internal/supervisor"
	"github.com/agent-racer/supervisor-tui/internal/telemetry"
	"github.com/agent-racer/supervisor-tui/internal/wire"
)

// ClientName/ClientVersion identify this build in the hello handshake.
const (
	ClientName    = "supervisor-tui"
	ClientVersion = "1"

	pollIntervalMs    = 20.0
	tickInterval      = 20 * time.Millisecond
	telemetryInterval = 1000 * time.Millisecond
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Options configures a Model at startup.
type Options struct {
	RunID         string
	HelperName    string
	SnapshotPath  string
	TelemetryPath string
	ApplogPath    string
	Unicode       bool
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	state  *model.Model
	sup    *supervisor.Supervisor
	reasm  *chunk.Reassembler
	dsp    *input.Dispatcher
	jobs   input.JobAllocator
	keys   KeyMap
	sched  *render.Scheduler
	credit *flowcredit.Controller
	telem  *telemetry.Emitter
	log    *applog.Logger

	snapshotPath  string
	connected     bool
	unicode       bool
	everConnected bool
	startupErr    error
	lastTelemetry time.Time

	width, height int
}

// StartupErr reports a startup failure (the supervisor never connected
// even once before exit), for main to translate into a non-zero exit code.
func (m Model) StartupErr() error { return m.startupErr }

// New constructs the root model. Nothing is connected until Init runs.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	st := model.New()
	st.RunID = opts.RunID

	snap, _ := snapshot.Load(opts.SnapshotPath)
	snapshot.Apply(st, snap)

	now := time.Now()

	return Model{
		ctx:          ctx,
		cancel:       cancel,
		state:        st,
		sup:          supervisor.New(opts.HelperName, applog.Open(opts.ApplogPath)),
		reasm:        chunk.New(),
		dsp:          input.NewDispatcher(),
		keys:         DefaultKeyMap(),
		sched:        render.NewScheduler(),
		credit:       flowcredit.NewController(now),
		telem:        telemetry.Open(opts.TelemetryPath),
		log:          applog.Open(opts.ApplogPath),
		snapshotPath: opts.SnapshotPath,
		unicode:      opts.Unicode,
	}
}

// Init spawns the supervisor child process and starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sup.Spawn(m.ctx), tick())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.state.Dirty = true
		return m, nil

	case tea.KeyMsg:
		if token, ok := m.keys.TokenForKey(msg); ok {
			m.dsp.Enqueue(token, time.Now())
		}
		return m, nil

	case supervisor.ConnectedMsg:
		m.connected = true
		m.everConnected = true
		m.state.Dirty = true
		hello := wire.Hello(ClientName, ClientVersion)
		prime := wire.FlowCredit(flowcredit.InitialCredits)
		return m, tea.Batch(
			sendCmd(m.sup, hello),
			sendCmd(m.sup, prime),
			m.sup.ReadLoop(),
		)

	case supervisor.DisconnectedMsg:
		m.connected = false
		m.state.Dirty = true
		if !m.everConnected {
			m.startupErr = msg.Err
			if m.startupErr == nil {
				m.startupErr = fmt.Errorf("supervisor exited before connecting")
			}
			return m, tea.Quit
		}
		if msg.Err != nil {
			m.state.PushLog("supervisor disconnected: " + msg.Err.Error())
		} else {
			m.state.PushLog("supervisor disconnected")
		}
		return m, nil

	case supervisor.EventMsg:
		// queueDepth is passed as 0 here, not the dispatcher's actual
		// backlog: the literal (if surprising) upstream contract this
		// applier was given, preserved rather than "corrected".
		n := protocol.Apply(m.state, m.reasm, msg.Raw, 0, pollIntervalMs)
		if n > 0 {
			m.credit.Accrue(n)
		}
		return m, m.sup.ReadLoop()

	case tickMsg:
		return m.onTick()
	}

	return m, nil
}

// onTick drains at most one dispatched input command, flushes flow
// credits, emits telemetry once per telemetryInterval, and re-arms the
// tick.
func (m Model) onTick() (tea.Model, tea.Cmd) {
	now := time.Now()
	var cmds []tea.Cmd

	if ev, ok := m.dsp.Dispatch(now); ok {
		req, quit := input.Act(ev.Command, m.state, &m.jobs)
		if req != nil {
			cmds = append(cmds, sendCmd(m.sup, *req))
		}
		if quit {
			return m, m.quit()
		}
	}

	if req, ok := m.credit.Flush(now); ok {
		cmds = append(cmds, sendCmd(m.sup, req))
	}

	if now.Sub(m.lastTelemetry) >= telemetryInterval {
		_ = m.telem.Emit(m.state, now.UnixMilli())
		m.lastTelemetry = now
	}

	cmds = append(cmds, tick())
	return m, tea.Batch(cmds...)
}

// quit persists the snapshot, shuts down the supervisor, and exits.
func (m Model) quit() tea.Cmd {
	_ = snapshot.Save(m.snapshotPath, snapshot.FromModel(m.state))
	m.sup.Shutdown("user_exit")
	m.cancel()
	_ = m.telem.Close()
	_ = m.log.Close()
	return tea.Quit
}

func sendCmd(s *supervisor.Supervisor, req wire.Request) tea.Cmd {
	return func() tea.Msg {
		_ = s.Send(req)
		return nil
	}
}

// View renders the full frame, subject to the render scheduler's frame and
// signature gates; a gated-out call returns the last drawn frame unchanged.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if !m.sched.Evaluate(m.state, time.Now()) {
		return m.sched.LastFrame()
	}
	start := time.Now()
	frame := render.Draw(m.state, m.connected, m.unicode, m.width, m.height)
	m.sched.RecordRenderDuration(m.state, time.Since(start))
	m.sched.SetLastFrame(frame)
	return frame
}
