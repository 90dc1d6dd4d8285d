package reaction

import "strconv"

// HighScore is the best (lowest) reaction time seen since power-up.
// The zero value has no score.
type HighScore struct {
	ms  int
	set bool
}

// Best returns the best time in milliseconds and whether one exists.
func (h HighScore) Best() (int, bool) {
	return h.ms, h.set
}

// Record offers a new reaction time. The score only moves down.
// Returns true if ms became the new best.
func (h *HighScore) Record(ms int) bool {
	if h.set && ms >= h.ms {
		return false
	}
	h.ms = ms
	h.set = true
	return true
}

// String renders the score the way the display shows it, "--" when unset.
func (h HighScore) String() string {
	if !h.set {
		return "--"
	}
	return strconv.Itoa(h.ms) + "ms"
}
