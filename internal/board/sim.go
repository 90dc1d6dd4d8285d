package board

import (
	"sync"
	"time"

	"github.com/vovakirdan/reaction-x/internal/core"
)

// DefaultHistory is how many changes the simulated outputs remember.
const DefaultHistory = 256

// ManualClock is a Clock that only moves when told to. Sleep advances it
// instantly, which lets a whole round run in microseconds.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManualClock returns a clock reading start.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d.
func (c *ManualClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the clock forward. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// pressWindow is a half-open interval [from, until) during which a button is held.
type pressWindow struct {
	from  time.Duration
	until time.Duration
}

// Buttons simulates four pull-up buttons. Presses are scheduled as windows
// on the clock; a button reads low while the clock is inside one of them.
type Buttons struct {
	mu      sync.Mutex
	clock   Clock
	windows map[Button][]pressWindow
	faults  map[Button]error
}

// NewButtons creates a button bank read against clock.
func NewButtons(clock Clock) *Buttons {
	return &Buttons{
		clock:   clock,
		windows: make(map[Button][]pressWindow),
		faults:  make(map[Button]error),
	}
}

// Press holds btn down from at for hold.
func (b *Buttons) Press(btn Button, at, hold time.Duration) {
	if hold <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows[btn] = append(b.windows[btn], pressWindow{from: at, until: at + hold})
}

// Tap holds btn down from now for hold.
func (b *Buttons) Tap(btn Button, hold time.Duration) {
	b.Press(btn, b.clock.Now(), hold)
}

// Release drops every pending press of btn.
func (b *Buttons) Release(btn Button) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.windows, btn)
}

// Fail makes every later read of btn return err. A nil err clears the fault.
func (b *Buttons) Fail(btn Button, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.faults, btn)
		return
	}
	b.faults[btn] = err
}

// Level implements InputSource. Expired windows are pruned on read.
func (b *Buttons) Level(btn Button) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err, ok := b.faults[btn]; ok {
		return false, err
	}

	now := b.clock.Now()
	held := false
	kept := b.windows[btn][:0]
	for _, w := range b.windows[btn] {
		if now >= w.until {
			continue
		}
		if now >= w.from {
			held = true
		}
		kept = append(kept, w)
	}
	b.windows[btn] = kept

	return !held, nil
}

// LightChange is one recorded strip color change.
type LightChange struct {
	At    time.Duration
	Color core.Color
}

// Strip simulates an addressable LED strip with a global brightness.
type Strip struct {
	clock      Clock
	pixels     []core.Color
	brightness float64
	color      core.Color
	writes     int
	history    []LightChange
	keep       int
	fault      error
}

// NewStrip creates a strip of count pixels, all off.
func NewStrip(count int, brightness float64, clock Clock) *Strip {
	if count < 0 {
		count = 0
	}
	return &Strip{
		clock:      clock,
		pixels:     make([]core.Color, count),
		brightness: core.ClampF(brightness, 0, 1),
		keep:       DefaultHistory,
	}
}

// SetAll implements LightOutput.
func (s *Strip) SetAll(c core.Color) error {
	if s.fault != nil {
		return s.fault
	}
	scaled := c.Scale(s.brightness)
	for i := range s.pixels {
		s.pixels[i] = scaled
	}
	s.writes++
	if c != s.color || len(s.history) == 0 {
		s.history = appendBounded(s.history, LightChange{At: s.clock.Now(), Color: c}, s.keep)
	}
	s.color = c
	return nil
}

// Color returns the last requested color, before brightness scaling.
func (s *Strip) Color() core.Color {
	return s.color
}

// Pixels returns a copy of the scaled pixel values.
func (s *Strip) Pixels() []core.Color {
	out := make([]core.Color, len(s.pixels))
	copy(out, s.pixels)
	return out
}

// Len returns the number of pixels.
func (s *Strip) Len() int {
	return len(s.pixels)
}

// Brightness returns the configured brightness.
func (s *Strip) Brightness() float64 {
	return s.brightness
}

// Writes returns how many times SetAll succeeded.
func (s *Strip) Writes() int {
	return s.writes
}

// History returns the recorded color changes, oldest first.
func (s *Strip) History() []LightChange {
	out := make([]LightChange, len(s.history))
	copy(out, s.history)
	return out
}

// KeepHistory sets how many changes are remembered; negative means all.
func (s *Strip) KeepHistory(n int) {
	s.keep = n
}

// Fail makes later writes return err. A nil err clears the fault.
func (s *Strip) Fail(err error) {
	s.fault = err
}

// Frame is one recorded display content.
type Frame struct {
	At    time.Duration
	Line1 string
	Line2 string
}

// Display simulates the two-line text display. Text is laid into a
// character grid so that overlong lines are clipped like on the panel.
type Display struct {
	clock   Clock
	screen  *core.Screen
	line1   string
	line2   string
	writes  int
	history []Frame
	keep    int
	fault   error
}

// NewDisplay creates a display with cols characters per line.
func NewDisplay(cols int, clock Clock) *Display {
	return &Display{
		clock:  clock,
		screen: core.NewScreen(cols, 2),
		keep:   DefaultHistory,
	}
}

// ShowText implements TextDisplay.
func (d *Display) ShowText(line1, line2 string) error {
	if d.fault != nil {
		return d.fault
	}
	d.screen.Clear()
	d.screen.DrawText(0, 0, line1)
	d.screen.DrawText(0, 1, line2)
	d.writes++
	if line1 != d.line1 || line2 != d.line2 || len(d.history) == 0 {
		d.history = appendBounded(d.history, Frame{At: d.clock.Now(), Line1: line1, Line2: line2}, d.keep)
	}
	d.line1, d.line2 = line1, line2
	return nil
}

// Lines returns the text last passed to ShowText.
func (d *Display) Lines() (string, string) {
	return d.line1, d.line2
}

// Screen returns the character grid as the panel would show it.
func (d *Display) Screen() *core.Screen {
	return d.screen
}

// Writes returns how many times ShowText succeeded.
func (d *Display) Writes() int {
	return d.writes
}

// History returns the recorded frames, oldest first.
func (d *Display) History() []Frame {
	out := make([]Frame, len(d.history))
	copy(out, d.history)
	return out
}

// KeepHistory sets how many frames are remembered; negative means all.
func (d *Display) KeepHistory(n int) {
	d.keep = n
}

// Fail makes later writes return err. A nil err clears the fault.
func (d *Display) Fail(err error) {
	d.fault = err
}

// appendBounded appends v and drops the oldest entries beyond keep.
func appendBounded[T any](list []T, v T, keep int) []T {
	list = append(list, v)
	if keep >= 0 && len(list) > keep {
		list = append(list[:0], list[len(list)-keep:]...)
	}
	return list
}

var (
	_ InputSource = (*Buttons)(nil)
	_ LightOutput = (*Strip)(nil)
	_ TextDisplay = (*Display)(nil)
	_ Clock       = (*ManualClock)(nil)
	_ Clock       = (*SystemClock)(nil)
)
