// Package input implements the key-to-command debouncer and dispatcher
// (C5): translating raw key tokens into supervisor-bound commands, with
// debounce-window coalescing and a fixed dispatch rate limit.
package input

import "time"

// Command is a closed set of user-initiated actions.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdRunJob
	CmdCancelSelected
	CmdLogsUp
	CmdLogsDown
	CmdJobsUp
	CmdJobsDown
	CmdTasksUp
	CmdTasksDown
)

const (
	debounceWindow  = 40 * time.Millisecond
	dispatchInterval = 25 * time.Millisecond
)

// keyCommands is the case-sensitive key token → command mapping.
var keyCommands = map[string]Command{
	"q": CmdQuit,
	"r": CmdRunJob,
	"c": CmdCancelSelected,
	"j": CmdLogsUp,
	"k": CmdLogsDown,
	"n": CmdJobsUp,
	"m": CmdJobsDown,
	"u": CmdTasksUp,
	"i": CmdTasksDown,
}

// CommandForKey returns the command bound to a key token, or (CmdNone,
// false) for unmapped keys.
func CommandForKey(token string) (Command, bool) {
	cmd, ok := keyCommands[token]
	return cmd, ok
}

// Event is a queued input command with its assigned sequence number.
type Event struct {
	Seq     uint64
	Command Command
}

// Dispatcher debounces and rate-limits the flow of input commands.
type Dispatcher struct {
	seq            uint64
	queue          []Event
	lastToken      string
	haveLastInput  bool
	lastInputAt    time.Time
	haveLastDispatch bool
	lastDispatchAt time.Time
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Enqueue attempts to enqueue the key token at time now. It returns false
// (dropped, not enqueued) if the token is unmapped, or if it equals the
// last-enqueued token and less than the debounce window has elapsed since
// the last input. Otherwise it assigns a fresh monotonic sequence number
// and appends to the queue.
func (d *Dispatcher) Enqueue(token string, now time.Time) bool {
	cmd, ok := CommandForKey(token)
	if !ok {
		return false
	}
	if d.haveLastInput && token == d.lastToken && now.Sub(d.lastInputAt) < debounceWindow {
		return false
	}
	d.lastToken = token
	d.lastInputAt = now
	d.haveLastInput = true

	d.seq++
	d.queue = append(d.queue, Event{Seq: d.seq, Command: cmd})
	return true
}

// Dispatch pops and returns at most one queued command, provided the queue
// is non-empty and at least the dispatch interval has elapsed since the
// previous dispatch.
func (d *Dispatcher) Dispatch(now time.Time) (Event, bool) {
	if len(d.queue) == 0 {
		return Event{}, false
	}
	if d.haveLastDispatch && now.Sub(d.lastDispatchAt) < dispatchInterval {
		return Event{}, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	d.lastDispatchAt = now
	d.haveLastDispatch = true
	return ev, true
}

// QueueLen reports the number of commands currently queued.
func (d *Dispatcher) QueueLen() int {
	return len(d.queue)
}
