package replay

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reaction-x/internal/board"
	"github.com/vovakirdan/reaction-x/internal/reaction"
)

// Options describes the simulated board a script runs on.
type Options struct {
	LEDCount    int
	Brightness  float64
	Columns     int
	DefaultHold time.Duration
	Logger      *log.Logger
}

// DefaultOptions matches the stock board.
func DefaultOptions() Options {
	return Options{
		LEDCount:    8,
		Brightness:  0.3,
		Columns:     21,
		DefaultHold: 120 * time.Millisecond,
	}
}

// Result is everything a replay produced.
type Result struct {
	Frames    []board.Frame
	Lights    []board.LightChange
	Rounds    []reaction.Round
	State     reaction.GameState
	HighScore reaction.HighScore
	Steps     int
	Elapsed   time.Duration
}

type collector struct {
	rounds []reaction.Round
}

func (c *collector) RecordRound(r reaction.Round) error {
	c.rounds = append(c.rounds, r)
	return nil
}

// Run plays the script from power-up. The clock starts at zero and every
// press time is measured from there. The same script always gives the same
// result. A hardware error from the simulated board ends the run early and
// is returned with the partial result.
func Run(s *Script, opts Options) (*Result, error) {
	if opts.DefaultHold <= 0 {
		opts.DefaultHold = DefaultOptions().DefaultHold
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	clock := board.NewManualClock(0)
	buttons := board.NewButtons(clock)
	strip := board.NewStrip(opts.LEDCount, opts.Brightness, clock)
	display := board.NewDisplay(opts.Columns, clock)
	strip.KeepHistory(-1)
	display.KeepHistory(-1)

	for _, p := range s.Presses {
		btn, err := board.ParseButton(p.Button)
		if err != nil {
			return nil, err
		}
		hold := p.Hold
		if hold == 0 {
			hold = opts.DefaultHold
		}
		buttons.Press(btn, p.At, hold)
	}

	rec := &collector{}
	ctrl := reaction.New(
		reaction.Device{Input: buttons, Lights: strip, Display: display},
		reaction.Options{
			Clock:    clock,
			Random:   rand.New(rand.NewSource(s.Seed)),
			Logger:   opts.Logger,
			Recorder: rec,
		},
	)

	res := &Result{}
	finish := func() *Result {
		res.Frames = display.History()
		res.Lights = strip.History()
		res.Rounds = rec.rounds
		res.State = ctrl.State()
		res.HighScore = ctrl.HighScore()
		res.Elapsed = clock.Now()
		return res
	}

	if err := ctrl.Start(); err != nil {
		return finish(), err
	}

	end := s.Length(opts.DefaultHold)
	for clock.Now() < end {
		if err := ctrl.Step(); err != nil {
			return finish(), err
		}
		res.Steps++
		clock.Sleep(reaction.PollInterval)
	}

	return finish(), nil
}
