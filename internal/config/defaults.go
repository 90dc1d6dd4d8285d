package config

import (
	_ "embed"
)

//go:embed defaults/device.yaml
var defaultDeviceYAML []byte

// DefaultDeviceConfig returns the built-in configuration matching the
// reference board.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Board: BoardConfig{
			Pins: PinConfig{
				Ready:  "D1",
				React1: "D2",
				React2: "D3",
				Reset:  "D4",
				LEDs:   "D0",
			},
			LEDCount:   8,
			Brightness: 0.3,
			Display: DisplayConfig{
				Width:      128,
				Height:     32,
				Address:    0x3C,
				GlyphWidth: 6,
			},
		},
		Simulator: SimulatorConfig{
			HoldMs: 120,
			Keys: map[string][]string{
				"ready":  {"space", "up"},
				"react1": {"z", "left"},
				"react2": {"m", "right"},
				"reset":  {"r"},
			},
		},
		Storage: StorageConfig{
			Path: "~/.reactionx/rounds.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDeviceYAML
}
