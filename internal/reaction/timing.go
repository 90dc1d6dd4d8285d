package reaction

import (
	"time"

	"github.com/vovakirdan/reaction-x/internal/board"
)

// Loop timing. Fixed by the game rules, independent of the board.
const (
	PollInterval  = 10 * time.Millisecond  // End-of-iteration pause
	DebounceDelay = 200 * time.Millisecond // Pause after ready/reset presses
	EarlyPenalty  = 2 * time.Second        // Hold after a false start
	ScoreHold     = 300 * time.Millisecond // Pause after a reaction press
	BlinkInterval = 500 * time.Millisecond // Idle light toggle period
	MinGoDelay    = 3 * time.Second        // Shortest wait before green
	MaxGoDelay    = 7 * time.Second        // Go delay is strictly below this
)

// goDelay draws the wait before the go signal, uniform in [MinGoDelay, MaxGoDelay).
func goDelay(rng board.Random) time.Duration {
	span := float64(MaxGoDelay - MinGoDelay)
	d := MinGoDelay + time.Duration(rng.Float64()*span)
	// float rounding can land on the open upper bound
	if d >= MaxGoDelay {
		d = MaxGoDelay - 1
	}
	return d
}

// elapsedMillis truncates a duration to whole milliseconds.
func elapsedMillis(d time.Duration) int {
	return int(d / time.Millisecond)
}

// blink tracks the idle light pattern on the home screen.
type blink struct {
	started bool
	on      bool
	last    time.Duration
}

// due reports whether the idle lights should toggle at now: at least
// BlinkInterval since the previous toggle.
func (b *blink) due(now time.Duration) bool {
	return !b.started || now-b.last >= BlinkInterval
}

// toggle flips the lights and remembers when.
func (b *blink) toggle(now time.Duration) bool {
	b.started = true
	b.last = now
	b.on = !b.on
	return b.on
}
