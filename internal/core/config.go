package core

import "time"

// RuntimeConfig contains the settings a front panel hands to the controller.
type RuntimeConfig struct {
	PollInterval time.Duration // Delay between loop iterations
	Seed         int64         // RNG seed for the go delay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		PollInterval: 10 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// TickRate returns the number of loop iterations per second.
func (c RuntimeConfig) TickRate() int {
	if c.PollInterval <= 0 {
		return 100
	}
	return int(time.Second / c.PollInterval)
}
