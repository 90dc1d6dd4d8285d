// Package replay runs scripted button presses against the simulated board
// with a manual clock, so whole games can be reproduced exactly.
package replay

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/reaction-x/internal/board"
)

// MaxDuration caps how long a script may run in simulated time.
const MaxDuration = 30 * time.Minute

// tail is added after the last press when a script has no duration.
const tail = 3 * time.Second

// Script is a replay file.
//
//	seed: 7
//	duration: 12s
//	presses:
//	  - {at: 1s, button: ready}
//	  - {at: 6.2s, button: react1, hold: 80ms}
type Script struct {
	Seed     int64         `yaml:"seed"`
	Duration time.Duration `yaml:"duration"`
	Presses  []Press       `yaml:"presses"`
}

// Press holds one button down from At for Hold. A zero Hold uses the
// runner's default.
type Press struct {
	At     time.Duration `yaml:"at"`
	Button string        `yaml:"button"`
	Hold   time.Duration `yaml:"hold,omitempty"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a script. Presses are sorted by time.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Presses, func(i, j int) bool {
		return s.Presses[i].At < s.Presses[j].At
	})
	return &s, nil
}

// Validate checks press times, holds and button names.
func (s *Script) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("replay: negative duration %s", s.Duration)
	}
	if s.Duration > MaxDuration {
		return fmt.Errorf("replay: duration %s exceeds %s", s.Duration, MaxDuration)
	}
	for i, p := range s.Presses {
		if _, err := board.ParseButton(p.Button); err != nil {
			return fmt.Errorf("replay: press %d: %w", i+1, err)
		}
		if p.At < 0 {
			return fmt.Errorf("replay: press %d: negative time %s", i+1, p.At)
		}
		if p.Hold < 0 {
			return fmt.Errorf("replay: press %d: negative hold %s", i+1, p.Hold)
		}
		if s.Duration > 0 && p.At >= s.Duration {
			return fmt.Errorf("replay: press %d at %s is after the end (%s)", i+1, p.At, s.Duration)
		}
	}
	return nil
}

// Length returns the simulated run time: Duration, or the end of the last
// press plus a few seconds.
func (s *Script) Length(defaultHold time.Duration) time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	var end time.Duration
	for _, p := range s.Presses {
		hold := p.Hold
		if hold == 0 {
			hold = defaultHold
		}
		if p.At+hold > end {
			end = p.At + hold
		}
	}
	return min(end+tail, MaxDuration)
}

// Marshal encodes the script back to YAML.
func (s *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
