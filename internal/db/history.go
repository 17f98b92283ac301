package db

import (
	"fmt"

	"guesswho/internal/rooms"
)

// HistoryStore archives finished games. It satisfies rooms.HistoryArchiver.
type HistoryStore struct {
	db *DB
}

func NewHistoryStore(d *DB) *HistoryStore {
	return &HistoryStore{db: d}
}

func (s *HistoryStore) Archive(rec rooms.GameHistory) error {
	var winner any
	if rec.WinnerID != "" {
		winner = rec.WinnerID
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO game_history (id, room_code, started_at, ended_at, target_person, winner_id, total_guesses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.RoomCode, rec.StartedAt, rec.EndedAt, rec.TargetPerson, winner, rec.TotalGuesses)
	if err != nil {
		return fmt.Errorf("archiving game %s: %w", rec.ID, err)
	}
	return nil
}
