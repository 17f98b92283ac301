package stats

import (
	"database/sql"
	"fmt"

	"guesswho/internal/db"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

// RecentGames returns the latest finished games, newest first.
func (q *Queries) RecentGames(limit int) ([]GameRecap, error) {
	rows, err := q.DB.Query(`
		SELECT id, room_code, started_at, ended_at, target_person, winner_id, total_guesses
		FROM game_history
		ORDER BY ended_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent games: %w", err)
	}
	defer rows.Close()

	recaps := make([]GameRecap, 0, limit)
	for rows.Next() {
		var r GameRecap
		var winner sql.NullString
		if err := rows.Scan(&r.ID, &r.RoomCode, &r.StartedAt, &r.EndedAt, &r.TargetPerson, &winner, &r.TotalGuesses); err != nil {
			return nil, fmt.Errorf("scanning game recap: %w", err)
		}
		r.WinnerID = winner.String
		recaps = append(recaps, r)
	}
	return recaps, rows.Err()
}

// Leaderboard ranks players by the number of games won.
func (q *Queries) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := q.DB.Query(`
		SELECT winner_id, COUNT(*) AS wins
		FROM game_history
		WHERE winner_id IS NOT NULL
		GROUP BY winner_id
		ORDER BY wins DESC, winner_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("building leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Wins); err != nil {
			return nil, fmt.Errorf("scanning leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return Rank(entries), nil
}
