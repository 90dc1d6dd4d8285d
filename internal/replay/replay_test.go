package replay

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/reaction-x/internal/reaction"
)

const scoredScript = `
seed: 42
duration: 10s
presses:
  - {at: 9s, button: react1, hold: 80ms}
  - {at: 1s, button: ready}
`

// expectedStart mirrors the arm at 1.2s followed by the first 10ms tick
// at or after the go time.
func expectedStart(seed int64) time.Duration {
	f := rand.New(rand.NewSource(seed)).Float64()
	goTime := 1200*time.Millisecond + reaction.MinGoDelay +
		time.Duration(f*float64(reaction.MaxGoDelay-reaction.MinGoDelay))
	tick := reaction.PollInterval
	return (goTime + tick - 1) / tick * tick
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(scoredScript))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}
	if s.Seed != 42 || s.Duration != 10*time.Second {
		t.Errorf("seed/duration = %d/%s", s.Seed, s.Duration)
	}
	if len(s.Presses) != 2 {
		t.Fatalf("got %d presses, want 2", len(s.Presses))
	}
	if s.Presses[0].Button != "ready" || s.Presses[0].At != time.Second {
		t.Errorf("presses not sorted: %+v", s.Presses)
	}
	if s.Presses[1].Hold != 80*time.Millisecond {
		t.Errorf("hold = %s, want 80ms", s.Presses[1].Hold)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "presses: [oops"},
		{"unknown button", "presses: [{at: 1s, button: turbo}]"},
		{"negative time", "presses: [{at: -1s, button: ready}]"},
		{"negative hold", "presses: [{at: 1s, button: ready, hold: -5ms}]"},
		{"negative duration", "duration: -1s"},
		{"too long", "duration: 2h"},
		{"press after end", "duration: 2s\npresses: [{at: 3s, button: ready}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	if err := os.WriteFile(path, []byte(scoredScript), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadScript() of a missing file succeeded")
	}
}

func TestScriptLength(t *testing.T) {
	s := &Script{Presses: []Press{
		{At: time.Second, Button: "ready"},
		{At: 5 * time.Second, Button: "react2", Hold: 500 * time.Millisecond},
	}}
	if got, want := s.Length(120*time.Millisecond), 8500*time.Millisecond; got != want {
		t.Errorf("Length() = %s, want %s", got, want)
	}

	s.Duration = 4 * time.Second
	if got := s.Length(0); got != 4*time.Second {
		t.Errorf("Length() with duration = %s, want 4s", got)
	}

	empty := &Script{}
	if got := empty.Length(0); got != tail {
		t.Errorf("empty Length() = %s, want %s", got, tail)
	}
}

func TestRunScoredRound(t *testing.T) {
	s, err := ParseScript([]byte(scoredScript))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	res, err := Run(s, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := int((9*time.Second - expectedStart(42)) / time.Millisecond)
	if len(res.Rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(res.Rounds))
	}
	round := res.Rounds[0]
	if round.Outcome != reaction.OutcomeScored || round.ReactionMs != want || !round.NewBest {
		t.Errorf("round = %+v, want scored %d ms new best", round, want)
	}
	if res.State != reaction.StateResult {
		t.Errorf("final state = %s, want result", res.State)
	}
	if best, ok := res.HighScore.Best(); !ok || best != want {
		t.Errorf("high score = %d, %v, want %d", best, ok, want)
	}
	if res.Elapsed != 10*time.Second {
		t.Errorf("Elapsed = %s, want 10s", res.Elapsed)
	}

	first := res.Frames[0]
	if first.At != 0 || first.Line1 != reaction.TitleText || first.Line2 != "High Score: --" {
		t.Errorf("boot frame = %+v", first)
	}
	last := res.Frames[len(res.Frames)-1]
	if last.Line1 != "Score: "+strconv.Itoa(want)+"ms" {
		t.Errorf("last frame = %+v", last)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	s, err := ParseScript([]byte(scoredScript))
	if err != nil {
		t.Fatal(err)
	}

	a, err := Run(s, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(s, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs of the same script differ")
	}
}

func TestRunEarlyPress(t *testing.T) {
	s, err := ParseScript([]byte(`
duration: 5s
presses:
  - {at: 500ms, button: ready}
  - {at: 2s, button: react2}
`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Run(s, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(res.Rounds) != 1 || res.Rounds[0].Outcome != reaction.OutcomeEarly {
		t.Fatalf("rounds = %+v, want one early round", res.Rounds)
	}
	if res.State != reaction.StateHome {
		t.Errorf("final state = %s, want home", res.State)
	}
	if _, ok := res.HighScore.Best(); ok {
		t.Error("early press set a high score")
	}

	var early bool
	for _, f := range res.Frames {
		if f.Line1 == reaction.EarlyText && f.At == 2*time.Second {
			early = true
		}
	}
	if !early {
		t.Error("no Too Early! frame at 2s")
	}
}

func TestRunEmptyBoard(t *testing.T) {
	s := &Script{Duration: time.Second}
	opts := DefaultOptions()
	opts.Columns = 0
	opts.LEDCount = 0

	res, err := Run(s, opts)
	if err != nil {
		t.Fatalf("Run() on an empty board failed: %v", err)
	}
	if res.Steps != 100 {
		t.Errorf("Steps = %d, want 100", res.Steps)
	}
}

func TestWriteTrace(t *testing.T) {
	s, err := ParseScript([]byte(scoredScript))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(s, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var compact, full bytes.Buffer
	if err := res.WriteTrace(&compact, false); err != nil {
		t.Fatalf("WriteTrace() failed: %v", err)
	}
	if err := res.WriteTrace(&full, true); err != nil {
		t.Fatalf("WriteTrace() failed: %v", err)
	}

	if compact.Len() >= full.Len() {
		t.Error("compact trace is not shorter than the full one")
	}
	out := compact.String()
	for _, want := range []string{"GO! | 0 ms", "lights   green", "(new best)", "Final state: result"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "GO! |") != 2 {
		t.Errorf("compact trace should keep two counter frames:\n%s", out)
	}
}

func TestEventsOrdered(t *testing.T) {
	res := &Result{}
	if got := res.Events(false); len(got) != 0 {
		t.Errorf("Events() on empty result = %v", got)
	}

	s, _ := ParseScript([]byte(scoredScript))
	res, _ = Run(s, DefaultOptions())
	events := res.Events(true)
	for i := 1; i < len(events); i++ {
		if events[i].At < events[i-1].At {
			t.Fatalf("events out of order at %d", i)
		}
	}
}

func TestDemoScript(t *testing.T) {
	s, err := LoadScript(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}

	res, err := Run(s, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(res.Rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(res.Rounds))
	}
	if res.Rounds[0].Outcome != reaction.OutcomeEarly || res.Rounds[1].Outcome != reaction.OutcomeScored {
		t.Errorf("outcomes = %s, %s", res.Rounds[0].Outcome, res.Rounds[1].Outcome)
	}
	if res.State != reaction.StateHome {
		t.Errorf("final state = %s, want home after reset", res.State)
	}
	best, ok := res.HighScore.Best()
	if !ok || best != res.Rounds[1].ReactionMs {
		t.Errorf("high score = %d, %v, want %d", best, ok, res.Rounds[1].ReactionMs)
	}
}
