// Package reaction implements the reaction-time game: a four-state machine
// advanced one iteration at a time by a polling loop. It owns all game
// state and reaches the hardware only through the board interfaces.
package reaction

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reaction-x/internal/board"
	"github.com/vovakirdan/reaction-x/internal/core"
)

// Device groups the three hardware collaborators.
type Device struct {
	Input   board.InputSource
	Lights  board.LightOutput
	Display board.TextDisplay
}

// Outcome says how a round ended.
type Outcome int

const (
	OutcomeScored Outcome = iota // A reaction button was pressed after go
	OutcomeEarly                 // A reaction button was pressed before go
)

// String returns the journal name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeScored:
		return "scored"
	case OutcomeEarly:
		return "early"
	default:
		return "unknown"
	}
}

// Round is reported to the RoundRecorder when a round ends.
type Round struct {
	Outcome    Outcome
	ReactionMs int           // Zero for early rounds
	HighScore  HighScore     // Best time after this round
	NewBest    bool          // Whether this round set the best time
	At         time.Duration // Clock reading when the round ended
}

// RoundRecorder receives finished rounds. Failures are logged and do not
// stop the game.
type RoundRecorder interface {
	RecordRound(r Round) error
}

// Options configures a Controller. Zero fields get defaults.
type Options struct {
	Clock    board.Clock   // Defaults to the system monotonic clock
	Random   board.Random  // Defaults to a time-seeded math/rand source
	Logger   *log.Logger   // Defaults to a discarding logger
	Recorder RoundRecorder // Optional
}

// Inputs is one sample of the four buttons, already inverted to "pressed".
type Inputs struct {
	Ready  bool
	React1 bool
	React2 bool
	Reset  bool
}

// AnyReact reports whether either reaction button is down.
func (in Inputs) AnyReact() bool {
	return in.React1 || in.React2
}

// Snapshot is a read-only view of the controller for front panels.
type Snapshot struct {
	State      GameState
	HighScore  HighScore
	ReactionMs int           // Last frozen reaction time
	GoTime     time.Duration // Go time of the current or last round
	Paused     bool          // A cooldown is running
	PauseUntil time.Duration
	Rounds     int // Rounds ended since power-up, early ones included
}

// Controller runs the game. It is not safe for concurrent use; one loop
// owns it.
type Controller struct {
	dev      Device
	clock    board.Clock
	rng      board.Random
	logger   *log.Logger
	recorder RoundRecorder

	state      GameState
	high       HighScore
	goTime     time.Duration
	startTime  time.Duration
	reactionMs int
	blink      blink
	pause      cooldown
	rounds     int
}

// New creates a controller in StateHome with no high score.
func New(dev Device, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = board.NewSystemClock()
	}
	if opts.Random == nil {
		opts.Random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Controller{
		dev:      dev,
		clock:    opts.Clock,
		rng:      opts.Random,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		state:    StateHome,
	}
}

// State returns the current game state.
func (c *Controller) State() GameState {
	return c.state
}

// HighScore returns the best time since power-up.
func (c *Controller) HighScore() HighScore {
	return c.high
}

// Snapshot returns a copy of the observable game state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:      c.state,
		HighScore:  c.high,
		ReactionMs: c.reactionMs,
		GoTime:     c.goTime,
		Paused:     c.pause.active,
		PauseUntil: c.pause.until,
		Rounds:     c.rounds,
	}
}

// Start shows the boot screen: title, empty high score, white lights.
func (c *Controller) Start() error {
	if err := c.show(TitleText, highScoreLine(c.high)); err != nil {
		return err
	}
	return c.lights(core.ColorWhite)
}

// Run shows the boot screen and then loops forever: one Step, then a
// PollInterval sleep. It returns the first hardware error, or the context
// error once ctx is done. Cancellation is checked between iterations only.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}
	c.logger.Info("controller started", "state", c.state)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Step(); err != nil {
			c.logger.Error("hardware fault", "state", c.state, "error", err)
			return err
		}
		c.clock.Sleep(PollInterval)
	}
}

// Step runs one loop iteration. While a cooldown is running nothing is
// sampled or updated. When it expires its follow-up is applied and the
// iteration ends. Otherwise the buttons are sampled and exactly one state
// handler runs.
func (c *Controller) Step() error {
	now := c.clock.Now()

	if c.pause.active {
		if now < c.pause.until {
			return nil
		}
		then := c.pause.then
		c.pause = cooldown{}
		return c.resume(then, now)
	}

	in, err := c.sample()
	if err != nil {
		return err
	}

	switch c.state {
	case StateHome:
		return c.stepHome(now, in)
	case StateWaiting:
		return c.stepWaiting(now, in)
	case StateTiming:
		return c.stepTiming(now, in)
	case StateResult:
		return c.stepResult(now, in)
	}
	return fmt.Errorf("reaction: invalid state %d", int(c.state))
}

func (c *Controller) stepHome(now time.Duration, in Inputs) error {
	if c.blink.due(now) {
		color := core.ColorOff
		if c.blink.toggle(now) {
			color = core.ColorWhite
		}
		if err := c.lights(color); err != nil {
			return err
		}
	}

	if err := c.show(TitleText, highScoreLine(c.high)); err != nil {
		return err
	}

	if in.Ready {
		c.hold(now, DebounceDelay, followArm)
	}
	return nil
}

func (c *Controller) stepWaiting(now time.Duration, in Inputs) error {
	if in.AnyReact() {
		if err := c.show(EarlyText, ""); err != nil {
			return err
		}
		if err := c.lights(core.ColorWhite); err != nil {
			return err
		}
		c.finishRound(Round{Outcome: OutcomeEarly, HighScore: c.high, At: now})
		c.hold(now, EarlyPenalty, followHome)
		return nil
	}

	if now >= c.goTime {
		if err := c.lights(core.ColorGreen); err != nil {
			return err
		}
		c.startTime = now
		c.enter(StateTiming)
	}
	return nil
}

func (c *Controller) stepTiming(now time.Duration, in Inputs) error {
	elapsed := elapsedMillis(now - c.startTime)
	if err := c.show(GoText, elapsedLine(elapsed)); err != nil {
		return err
	}

	if !in.AnyReact() {
		return nil
	}

	c.reactionMs = elapsed
	if err := c.lights(core.ColorWhite); err != nil {
		return err
	}
	newBest := c.high.Record(elapsed)
	c.enter(StateResult)
	c.finishRound(Round{
		Outcome:    OutcomeScored,
		ReactionMs: elapsed,
		HighScore:  c.high,
		NewBest:    newBest,
		At:         now,
	})
	c.hold(now, ScoreHold, followNone)
	return nil
}

func (c *Controller) stepResult(now time.Duration, in Inputs) error {
	if err := c.show(scoreLine(c.reactionMs), bestLine(c.high)); err != nil {
		return err
	}

	// ready overrides reset when both are down
	switch {
	case in.Ready:
		c.hold(now, DebounceDelay, followArm)
	case in.Reset:
		c.hold(now, DebounceDelay, followHome)
	}
	return nil
}

// resume applies the follow-up of an expired cooldown.
func (c *Controller) resume(then followUp, now time.Duration) error {
	switch then {
	case followHome:
		c.enter(StateHome)
	case followArm:
		return c.arm(now)
	}
	return nil
}

// arm starts a round: red lights, get-ready text, a fresh go time.
func (c *Controller) arm(now time.Duration) error {
	if err := c.lights(core.ColorRed); err != nil {
		return err
	}
	if err := c.show(ReadyText, ""); err != nil {
		return err
	}
	c.goTime = now + goDelay(c.rng)
	c.startTime = 0
	c.enter(StateWaiting)
	c.logger.Debug("round armed", "go_in", c.goTime-now)
	return nil
}

// hold starts a cooldown of d from now.
func (c *Controller) hold(now, d time.Duration, then followUp) {
	c.pause = cooldown{active: true, until: now + d, then: then}
}

// enter switches state. Every transition goes through here.
func (c *Controller) enter(next GameState) {
	if next == c.state {
		return
	}
	c.logger.Debug("state change", "from", c.state, "to", next)
	c.state = next
}

func (c *Controller) finishRound(r Round) {
	c.rounds++
	if r.Outcome == OutcomeEarly {
		c.logger.Info("false start")
	} else {
		c.logger.Info("round scored", "ms", r.ReactionMs, "best", r.HighScore, "new_best", r.NewBest)
	}

	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordRound(r); err != nil {
		c.logger.Warn("could not record round", "error", err)
	}
}

// sample reads all four buttons. Any read failure is fatal to the loop.
func (c *Controller) sample() (Inputs, error) {
	var in Inputs
	var err error
	if in.Ready, err = board.Pressed(c.dev.Input, board.ButtonReady); err != nil {
		return in, fmt.Errorf("reaction: %w", err)
	}
	if in.React1, err = board.Pressed(c.dev.Input, board.ButtonReact1); err != nil {
		return in, fmt.Errorf("reaction: %w", err)
	}
	if in.React2, err = board.Pressed(c.dev.Input, board.ButtonReact2); err != nil {
		return in, fmt.Errorf("reaction: %w", err)
	}
	if in.Reset, err = board.Pressed(c.dev.Input, board.ButtonReset); err != nil {
		return in, fmt.Errorf("reaction: %w", err)
	}
	return in, nil
}

func (c *Controller) lights(color core.Color) error {
	if err := c.dev.Lights.SetAll(color); err != nil {
		return fmt.Errorf("reaction: set lights %s: %w", color, err)
	}
	return nil
}

func (c *Controller) show(line1, line2 string) error {
	if err := c.dev.Display.ShowText(line1, line2); err != nil {
		return fmt.Errorf("reaction: show text: %w", err)
	}
	return nil
}
