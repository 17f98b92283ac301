package stats

import "time"

type GameRecap struct {
	ID           string    `json:"id"`
	RoomCode     string    `json:"roomId"`
	StartedAt    time.Time `json:"startedAt"`
	EndedAt      time.Time `json:"endedAt"`
	TargetPerson int64     `json:"targetPersonId"`
	WinnerID     string    `json:"winnerId,omitempty"`
	TotalGuesses int       `json:"totalGuesses"`
}

type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Wins     int    `json:"wins"`
	Rank     int    `json:"rank"`
}

// Rank assigns competition ranking (ties share a rank) to entries already
// sorted by wins descending.
func Rank(entries []LeaderboardEntry) []LeaderboardEntry {
	rank := 0
	prevWins := -1
	for i := range entries {
		if entries[i].Wins != prevWins {
			rank = i + 1
			prevWins = entries[i].Wins
		}
		entries[i].Rank = rank
	}
	return entries
}
