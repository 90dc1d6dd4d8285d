// Package config provides YAML-based device configuration loading for
// the controller front panels.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/reaction-x/internal/board"
)

// DeviceConfig contains all configuration for one device.
type DeviceConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// BoardConfig describes the wiring. It is fixed at build time on real hardware.
type BoardConfig struct {
	Pins       PinConfig     `yaml:"pins"`
	LEDCount   int           `yaml:"led_count"`
	Brightness float64       `yaml:"brightness"` // 0.0 to 1.0
	Display    DisplayConfig `yaml:"display"`
}

// PinConfig maps logical buttons and the strip data line to pin labels.
type PinConfig struct {
	Ready  string `yaml:"ready"`
	React1 string `yaml:"react1"`
	React2 string `yaml:"react2"`
	Reset  string `yaml:"reset"`
	LEDs   string `yaml:"leds"`
}

// DisplayConfig describes the monochrome panel.
type DisplayConfig struct {
	Width      int `yaml:"width"`       // Pixels
	Height     int `yaml:"height"`      // Pixels
	Address    int `yaml:"address"`     // I2C address
	GlyphWidth int `yaml:"glyph_width"` // Pixels per character
}

// SimulatorConfig defines how the terminal panel emulates the buttons.
type SimulatorConfig struct {
	HoldMs int                 `yaml:"hold_ms"`
	Keys   map[string][]string `yaml:"keys"` // Button name -> key names
}

// StorageConfig defines where the round journal lives.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines logging defaults.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Pin returns the pin label wired to b.
func (p PinConfig) Pin(b board.Button) string {
	switch b {
	case board.ButtonReady:
		return p.Ready
	case board.ButtonReact1:
		return p.React1
	case board.ButtonReact2:
		return p.React2
	case board.ButtonReset:
		return p.Reset
	default:
		return ""
	}
}

// Columns returns how many characters fit on one display line.
func (d DisplayConfig) Columns() int {
	if d.GlyphWidth <= 0 {
		return 0
	}
	return d.Width / d.GlyphWidth
}

// Hold returns the simulated press duration.
func (s SimulatorConfig) Hold() time.Duration {
	return time.Duration(s.HoldMs) * time.Millisecond
}

// KeyBindings resolves the key table into buttons.
func (s SimulatorConfig) KeyBindings() (map[board.Button][]string, error) {
	out := make(map[board.Button][]string, len(s.Keys))
	for name, keys := range s.Keys {
		b, err := board.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("config: simulator keys: %w", err)
		}
		out[b] = keys
	}
	return out, nil
}

// maxHold keeps one simulated press from spanning the 200ms debounce and
// counting twice.
const maxHold = 200 * time.Millisecond

// reservedKeys are handled by the panel itself.
var reservedKeys = map[string]bool{"q": true, "ctrl+c": true, "?": true, "ctrl+s": true}

// Validate checks that the configuration describes a usable device.
func (c DeviceConfig) Validate() error {
	if c.Board.LEDCount <= 0 {
		return fmt.Errorf("config: led_count must be positive, got %d", c.Board.LEDCount)
	}
	if c.Board.Brightness < 0 || c.Board.Brightness > 1 {
		return fmt.Errorf("config: brightness must be within [0, 1], got %g", c.Board.Brightness)
	}
	if c.Board.Display.Columns() < 1 || c.Board.Display.Height < 16 {
		return fmt.Errorf("config: display %dx%d with glyph width %d cannot show two lines",
			c.Board.Display.Width, c.Board.Display.Height, c.Board.Display.GlyphWidth)
	}
	if c.Simulator.Hold() <= 0 || c.Simulator.Hold() >= maxHold {
		return fmt.Errorf("config: hold_ms must be within (0, %d), got %d", maxHold.Milliseconds(), c.Simulator.HoldMs)
	}

	bindings, err := c.Simulator.KeyBindings()
	if err != nil {
		return err
	}
	seen := make(map[string]board.Button)
	for _, b := range board.AllButtons {
		if len(bindings[b]) == 0 {
			return fmt.Errorf("config: no key bound to the %s button", b)
		}
		for _, k := range bindings[b] {
			if reservedKeys[k] {
				return fmt.Errorf("config: key %q is reserved by the panel", k)
			}
			if other, dup := seen[k]; dup {
				return fmt.Errorf("config: key %q bound to both %s and %s", k, other, b)
			}
			seen[k] = b
		}
	}
	return nil
}
