package reaction

import "time"

// GameState is the phase of the game loop. The zero value is StateHome.
type GameState int

const (
	StateHome    GameState = iota // Attract screen, blinking white
	StateWaiting                  // Red, waiting for the randomized go time
	StateTiming                   // Green, counting milliseconds
	StateResult                   // Showing the last score and the best
)

// String returns a human-readable name for the state.
func (s GameState) String() string {
	switch s {
	case StateHome:
		return "Home"
	case StateWaiting:
		return "Waiting"
	case StateTiming:
		return "Timing"
	case StateResult:
		return "Result"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four states.
func (s GameState) Valid() bool {
	return s >= StateHome && s <= StateResult
}

// followUp is what happens when a cooldown expires.
type followUp int

const (
	followNone followUp = iota // Stay in the current state
	followHome                 // Return to the attract screen
	followArm                  // Start a new round
)

// cooldown models a blocking pause: until the deadline passes the loop
// neither samples buttons nor touches the outputs.
type cooldown struct {
	active bool
	until  time.Duration
	then   followUp
}
