package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/reaction-x/internal/board"
)

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	var fromYAML DeviceConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	want := DefaultDeviceConfig()
	if fromYAML.Board != want.Board {
		t.Errorf("board = %+v, expected %+v", fromYAML.Board, want.Board)
	}
	if fromYAML.Simulator.HoldMs != want.Simulator.HoldMs {
		t.Errorf("hold_ms = %d, expected %d", fromYAML.Simulator.HoldMs, want.Simulator.HoldMs)
	}
	if len(fromYAML.Simulator.Keys) != len(want.Simulator.Keys) {
		t.Errorf("keys = %v, expected %v", fromYAML.Simulator.Keys, want.Simulator.Keys)
	}
	if fromYAML.Storage != want.Storage || fromYAML.Log != want.Log {
		t.Errorf("storage/log = %+v %+v", fromYAML.Storage, fromYAML.Log)
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.yaml")
	data := "board:\n  led_count: 16\n  brightness: 0.5\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.LEDCount != 16 || cfg.Board.Brightness != 0.5 {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, expected debug", cfg.Log.Level)
	}
	// Untouched keys keep their defaults
	if cfg.Board.Display.Address != 0x3C || cfg.Board.Pins.Ready != "D1" {
		t.Errorf("defaults lost: %+v", cfg.Board)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("board: [unclosed"), 0o600)
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("board:\n  led_count: 0\n"), 0o600)
	if _, err := Load(invalid); err == nil {
		t.Error("Load() should fail validation for led_count 0")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DeviceConfig)
		errSub string
	}{
		{"defaults", func(*DeviceConfig) {}, ""},
		{"no leds", func(c *DeviceConfig) { c.Board.LEDCount = 0 }, "led_count"},
		{"too bright", func(c *DeviceConfig) { c.Board.Brightness = 1.5 }, "brightness"},
		{"tiny display", func(c *DeviceConfig) { c.Board.Display.Height = 8 }, "two lines"},
		{"no glyph width", func(c *DeviceConfig) { c.Board.Display.GlyphWidth = 0 }, "two lines"},
		{"hold spans debounce", func(c *DeviceConfig) { c.Simulator.HoldMs = 200 }, "hold_ms"},
		{"zero hold", func(c *DeviceConfig) { c.Simulator.HoldMs = 0 }, "hold_ms"},
		{"unknown button", func(c *DeviceConfig) { c.Simulator.Keys["start"] = []string{"s"} }, "unknown button"},
		{"unbound button", func(c *DeviceConfig) { delete(c.Simulator.Keys, "reset") }, "reset"},
		{"shared key", func(c *DeviceConfig) { c.Simulator.Keys["reset"] = []string{"z"} }, "bound to both"},
		{"reserved key", func(c *DeviceConfig) { c.Simulator.Keys["reset"] = []string{"q"} }, "reserved"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDeviceConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errSub == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.errSub)
			}
		})
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := DefaultDeviceConfig()

	if cols := cfg.Board.Display.Columns(); cols != 21 {
		t.Errorf("Columns() = %d, expected 21", cols)
	}
	if cfg.Simulator.Hold() != 120*time.Millisecond {
		t.Errorf("Hold() = %v", cfg.Simulator.Hold())
	}
	if cfg.Board.Pins.Pin(board.ButtonReact2) != "D3" {
		t.Errorf("Pin(react2) = %q", cfg.Board.Pins.Pin(board.ButtonReact2))
	}

	bindings, err := cfg.Simulator.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings() failed: %v", err)
	}
	if len(bindings[board.ButtonReady]) != 2 || bindings[board.ButtonReady][0] != "space" {
		t.Errorf("ready keys = %v", bindings[board.ButtonReady])
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultDeviceConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "led_count: 8") {
		t.Errorf("Marshal() output missing led_count:\n%s", data)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.reactionx/rounds.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".reactionx", "rounds.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}
