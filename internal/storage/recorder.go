package storage

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/reaction-x/internal/reaction"
)

// Recorder journals the rounds of one play session.
// It implements reaction.RoundRecorder.
type Recorder struct {
	store     *Store
	sessionID string
}

// NewRecorder creates a recorder for a new session with a fresh ID.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store, sessionID: uuid.New().String()}
}

// SessionID returns the ID rounds are filed under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// RecordRound implements reaction.RoundRecorder.
func (r *Recorder) RecordRound(round reaction.Round) error {
	_, err := r.store.SaveRound(r.sessionID, round.Outcome.String(), round.ReactionMs)
	return err
}

// Ensure Recorder implements RoundRecorder
var _ reaction.RoundRecorder = (*Recorder)(nil)
