package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reaction-x/internal/board"
)

// PanelKeyMap defines the key bindings of the front panel.
// Button bindings come from the device configuration.
type PanelKeyMap struct {
	Ready  key.Binding
	React1 key.Binding
	React2 key.Binding
	Reset  key.Binding
	Shot   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PanelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Ready, k.React1, k.React2, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PanelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Ready, k.Reset},
		{k.React1, k.React2},
		{k.Shot, k.Help, k.Quit},
	}
}

// NewPanelKeyMap builds the key map from button -> key name bindings.
// Key names use the configuration spelling ("space" for the space bar).
func NewPanelKeyMap(bindings map[board.Button][]string) PanelKeyMap {
	button := func(b board.Button, desc string) key.Binding {
		names := bindings[b]
		keys := make([]string, len(names))
		for i, n := range names {
			keys[i] = teaKey(n)
		}
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(names, "/"), desc),
		)
	}

	return PanelKeyMap{
		Ready:  button(board.ButtonReady, "ready"),
		React1: button(board.ButtonReact1, "react"),
		React2: button(board.ButtonReact2, "react"),
		Reset:  button(board.ButtonReset, "reset"),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Button translates a key message to the button it presses.
func (k PanelKeyMap) Button(msg tea.KeyMsg) (board.Button, bool) {
	switch {
	case key.Matches(msg, k.Ready):
		return board.ButtonReady, true
	case key.Matches(msg, k.React1):
		return board.ButtonReact1, true
	case key.Matches(msg, k.React2):
		return board.ButtonReact2, true
	case key.Matches(msg, k.Reset):
		return board.ButtonReset, true
	}
	return 0, false
}

// teaKey converts a configured key name to Bubble Tea's spelling.
func teaKey(name string) string {
	switch name {
	case "space":
		return " "
	default:
		return name
	}
}
