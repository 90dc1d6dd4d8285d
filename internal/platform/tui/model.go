package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reaction-x/internal/board"
	"github.com/vovakirdan/reaction-x/internal/config"
	"github.com/vovakirdan/reaction-x/internal/core"
	"github.com/vovakirdan/reaction-x/internal/reaction"
)

// PanelOptions configures a front panel.
type PanelOptions struct {
	Device   config.DeviceConfig
	Runtime  core.RuntimeConfig
	Recorder reaction.RoundRecorder // Optional round journal
	Logger   *log.Logger            // Defaults to a discarding logger
	Clock    board.Clock            // Defaults to the system clock
	Title    string                 // Shown above the panel, e.g. the SSH user
}

// Model is the Bubble Tea model for one simulated device.
type Model struct {
	ctrl     *reaction.Controller
	buttons  *board.Buttons
	strip    *board.Strip
	display  *board.Display
	device   config.DeviceConfig
	config   core.RuntimeConfig
	keys     PanelKeyMap
	help     help.Model
	hold     time.Duration
	title    string
	status   string // Last screenshot result
	width    int
	height   int
	err      error
	quitting bool
}

// NewModel builds the simulated board and a controller for it, and shows
// the boot screen.
func NewModel(opts PanelOptions) (Model, error) {
	if opts.Clock == nil {
		opts.Clock = board.NewSystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.PollInterval <= 0 {
		opts.Runtime.PollInterval = reaction.PollInterval
	}

	bindings, err := opts.Device.Simulator.KeyBindings()
	if err != nil {
		return Model{}, err
	}

	cfg := opts.Device.Board
	buttons := board.NewButtons(opts.Clock)
	strip := board.NewStrip(cfg.LEDCount, cfg.Brightness, opts.Clock)
	display := board.NewDisplay(cfg.Display.Columns(), opts.Clock)

	ctrl := reaction.New(
		reaction.Device{Input: buttons, Lights: strip, Display: display},
		reaction.Options{
			Clock:    opts.Clock,
			Random:   rand.New(rand.NewSource(opts.Runtime.Seed)),
			Logger:   opts.Logger,
			Recorder: opts.Recorder,
		},
	)
	if err := ctrl.Start(); err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		ctrl:    ctrl,
		buttons: buttons,
		strip:   strip,
		display: display,
		device:  opts.Device,
		config:  opts.Runtime,
		keys:    NewPanelKeyMap(bindings),
		help:    h,
		hold:    opts.Device.Simulator.Hold(),
		title:   opts.Title,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Shot):
		if path, err := m.saveScreenshot(); err == nil {
			m.status = "saved " + path
		} else {
			m.status = "screenshot failed: " + err.Error()
		}
		return m, nil
	}

	if btn, ok := m.keys.Button(msg); ok {
		m.buttons.Tap(btn, m.hold)
	}
	return m, nil
}

// handleTick runs one controller iteration. A hardware fault ends the
// program; the error is kept for Err.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.err != nil {
		return m, nil
	}
	if err := m.ctrl.Step(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate())
}

// saveScreenshot writes the display text to ~/.reactionx/screenshots.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".reactionx", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("display_%s.txt", timestamp))
	return path, os.WriteFile(path, []byte(m.display.Screen().String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderPanel(m)
}

// Err returns the hardware fault that stopped the panel, if any.
func (m Model) Err() error {
	return m.err
}

// Snapshot exposes the controller state.
func (m Model) Snapshot() reaction.Snapshot {
	return m.ctrl.Snapshot()
}

// Run starts the Bubble Tea program with a front panel for opts.
func Run(opts PanelOptions) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
