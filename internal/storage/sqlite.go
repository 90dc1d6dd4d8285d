// Package storage provides SQLite-based persistence for the round journal
// kept by the simulators. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome names stored in the journal.
const (
	OutcomeScored = "scored"
	OutcomeEarly  = "early"
)

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// RoundEntry represents a single journaled round.
type RoundEntry struct {
	ID         string
	SessionID  string
	Outcome    string
	ReactionMs int // Zero for early rounds
	CreatedAt  time.Time
}

// Stats contains aggregated statistics over the journal.
type Stats struct {
	Rounds     int
	Scored     int
	Early      int
	BestMs     int // Zero when nothing was scored
	AvgMs      float64
	Sessions   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reaction_ms INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_fastest ON rounds(outcome, reaction_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round. reactionMs is ignored for early rounds.
// Returns the generated round ID.
func (s *Store) SaveRound(sessionID, outcome string, reactionMs int) (string, error) {
	var ms sql.NullInt64
	switch outcome {
	case OutcomeScored:
		ms = sql.NullInt64{Int64: int64(reactionMs), Valid: true}
	case OutcomeEarly:
	default:
		return "", fmt.Errorf("storage: unknown outcome %q", outcome)
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO rounds (id, session_id, outcome, reaction_ms) VALUES (?, ?, ?, ?)",
		id, sessionID, outcome, ms,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return id, nil
}

// FastestRounds retrieves the N fastest scored rounds across all sessions.
func (s *Store) FastestRounds(limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRounds(
		`SELECT id, session_id, outcome, reaction_ms, created_at
		 FROM rounds
		 WHERE outcome = ?
		 ORDER BY reaction_ms ASC, seq ASC
		 LIMIT ?`,
		OutcomeScored, limit,
	)
}

// RecentRounds retrieves the N most recent rounds, early ones included.
func (s *Store) RecentRounds(limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT id, session_id, outcome, reaction_ms, created_at
		 FROM rounds
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
}

// SessionRounds retrieves the rounds of one session, oldest first.
func (s *Store) SessionRounds(sessionID string) ([]RoundEntry, error) {
	return s.queryRounds(
		`SELECT id, session_id, outcome, reaction_ms, created_at
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY seq ASC`,
		sessionID,
	)
}

// BestTime returns the fastest scored reaction time in the journal.
// The bool is false when nothing was scored yet.
func (s *Store) BestTime() (int, bool, error) {
	var ms sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(reaction_ms) FROM rounds WHERE outcome = ?",
		OutcomeScored,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !ms.Valid {
		return 0, false, nil
	}
	return int(ms.Int64), true, nil
}

// GetStats retrieves aggregated statistics over all rounds.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(reaction_ms), 0),
		        COALESCE(AVG(reaction_ms), 0),
		        COUNT(DISTINCT session_id),
		        MAX(created_at)
		 FROM rounds`,
		OutcomeScored, OutcomeEarly,
	).Scan(&stats.Rounds, &stats.Scored, &stats.Early, &stats.BestMs, &stats.AvgMs, &stats.Sessions, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearRounds deletes the whole journal.
func (s *Store) ClearRounds() error {
	_, err := s.db.Exec("DELETE FROM rounds")
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// RoundByID retrieves a single round. Returns nil if it does not exist.
func (s *Store) RoundByID(id string) (*RoundEntry, error) {
	var e RoundEntry
	var ms sql.NullInt64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, session_id, outcome, reaction_ms, created_at
		 FROM rounds WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.SessionID, &e.Outcome, &ms, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}

	e.ReactionMs = int(ms.Int64)
	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

func (s *Store) queryRounds(query string, args ...any) ([]RoundEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var ms sql.NullInt64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Outcome, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.ReactionMs = int(ms.Int64)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
