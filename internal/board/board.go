// Package board defines the narrow interfaces the controller uses to reach
// the hardware, plus an in-memory board that implements them for tests,
// script replays and the terminal front panel.
package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/reaction-x/internal/core"
)

// Button identifies one of the four physical buttons.
type Button int

const (
	ButtonReady  Button = iota // Top button, starts a round
	ButtonReact1               // Bottom-left reaction button
	ButtonReact2               // Bottom-right reaction button
	ButtonReset                // Returns to the home screen from a result
)

// AllButtons lists every button in sampling order.
var AllButtons = []Button{ButtonReady, ButtonReact1, ButtonReact2, ButtonReset}

// String returns the config name of the button.
func (b Button) String() string {
	switch b {
	case ButtonReady:
		return "ready"
	case ButtonReact1:
		return "react1"
	case ButtonReact2:
		return "react2"
	case ButtonReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseButton maps a config name back to a Button.
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ready":
		return ButtonReady, nil
	case "react1":
		return ButtonReact1, nil
	case "react2":
		return ButtonReact2, nil
	case "reset":
		return ButtonReset, nil
	}
	return 0, fmt.Errorf("board: unknown button %q", name)
}

// InputSource reads raw button levels. The buttons are wired with pull-ups,
// so true (high) means released.
type InputSource interface {
	Level(b Button) (bool, error)
}

// LightOutput drives the LED strip. Every pixel gets the same color and
// the change is latched before SetAll returns.
type LightOutput interface {
	SetAll(c core.Color) error
}

// TextDisplay replaces the whole display content with two lines.
type TextDisplay interface {
	ShowText(line1, line2 string) error
}

// Clock is a monotonic time source. Now is measured from an arbitrary
// fixed origin (boot for the device).
type Clock interface {
	Now() time.Duration
	Sleep(d time.Duration)
}

// Random yields uniformly distributed values in [0, 1).
// *math/rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Pressed reports whether a button is held down. Buttons are active low.
func Pressed(src InputSource, b Button) (bool, error) {
	level, err := src.Level(b)
	if err != nil {
		return false, fmt.Errorf("board: read %s button: %w", b, err)
	}
	return !level, nil
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a clock whose origin is the moment of the call.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the monotonic time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// Sleep blocks the calling goroutine.
func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
