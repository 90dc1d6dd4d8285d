package replay

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/reaction-x/internal/reaction"
)

// Event is one line of a trace.
type Event struct {
	At   time.Duration
	Kind string // "display" or "lights"
	Text string
}

// Events merges display frames and light changes in time order. Unless
// verbose is set, the running counter shown while timing is reduced to its
// first and last frame.
func (r *Result) Events(verbose bool) []Event {
	var events []Event

	for i, f := range r.Frames {
		if !verbose && isCounter(f.Line1) && i > 0 && i+1 < len(r.Frames) &&
			isCounter(r.Frames[i-1].Line1) && isCounter(r.Frames[i+1].Line1) {
			continue
		}
		events = append(events, Event{At: f.At, Kind: "display", Text: f.Line1 + " | " + f.Line2})
	}
	for _, l := range r.Lights {
		events = append(events, Event{At: l.At, Kind: "lights", Text: l.Color.String()})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At < events[j].At
	})
	return events
}

func isCounter(line1 string) bool {
	return line1 == reaction.GoText
}

// WriteTrace prints the events followed by a summary.
func (r *Result) WriteTrace(w io.Writer, verbose bool) error {
	var b strings.Builder

	for _, e := range r.Events(verbose) {
		fmt.Fprintf(&b, "%9s  %-7s  %s\n", formatAt(e.At), e.Kind, e.Text)
	}

	b.WriteString("\n")
	for i, round := range r.Rounds {
		switch round.Outcome {
		case reaction.OutcomeScored:
			mark := ""
			if round.NewBest {
				mark = " (new best)"
			}
			fmt.Fprintf(&b, "Round %d: %d ms%s\n", i+1, round.ReactionMs, mark)
		default:
			fmt.Fprintf(&b, "Round %d: too early\n", i+1)
		}
	}
	fmt.Fprintf(&b, "Final state: %s\n", r.State)
	fmt.Fprintf(&b, "High score:  %s\n", r.HighScore)
	fmt.Fprintf(&b, "Simulated:   %s in %d steps\n", r.Elapsed, r.Steps)

	_, err := io.WriteString(w, b.String())
	return err
}

func formatAt(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
