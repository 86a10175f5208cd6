package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agent-racer/supervisor-tui/internal/input"
)

// KeyMap binds each input.Command to its key token via bubbles/key, so
// the binding table (and its generated help text) stays declarative the
// way the teacher's KeyMap does, even though dispatch itself runs on the
// plain token through internal/input's debounce/rate-limit gate.
type KeyMap struct {
	bindings map[input.Command]key.Binding
	order    []input.Command
}

// DefaultKeyMap returns the key bindings for every recognized command.
func DefaultKeyMap() KeyMap {
	bind := func(token, help string) key.Binding {
		return key.NewBinding(key.WithKeys(token), key.WithHelp(token, help))
	}
	km := KeyMap{bindings: make(map[input.Command]key.Binding)}
	add := func(cmd input.Command, token, help string) {
		km.bindings[cmd] = bind(token, help)
		km.order = append(km.order, cmd)
	}
	add(input.CmdQuit, "q", "quit")
	add(input.CmdRunJob, "r", "run job")
	add(input.CmdCancelSelected, "c", "cancel selected job")
	add(input.CmdLogsUp, "j", "scroll logs up")
	add(input.CmdLogsDown, "k", "scroll logs down")
	add(input.CmdJobsUp, "n", "scroll jobs up")
	add(input.CmdJobsDown, "m", "scroll jobs down")
	add(input.CmdTasksUp, "u", "scroll tasks up")
	add(input.CmdTasksDown, "i", "scroll tasks down")
	return km
}

// TokenForKey matches a raw key event against the bound commands via
// key.Matches and returns the canonical token internal/input expects, or
// ("", false) if the key isn't bound to anything.
func (km KeyMap) TokenForKey(msg tea.KeyMsg) (string, bool) {
	for _, cmd := range km.order {
		if key.Matches(msg, km.bindings[cmd]) {
			return msg.String(), true
		}
	}
	return "", false
}
