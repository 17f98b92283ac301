package rooms

import (
	"time"

	"guesswho/internal/events"
	"guesswho/internal/persons"
	"guesswho/internal/players"
)

// TopicLobby is the broadcast topic carrying ROOM_LIST_UPDATE events to
// clients browsing the room list. Every other topic is a room code.
const TopicLobby = "lobby"

// Phase is a room's position in the game lifecycle. Transitions only move
// forward: WAITING -> PLAYING -> ENDED.
type Phase string

const (
	PhaseWaiting = Phase("WAITING")
	PhasePlaying = Phase("PLAYING")
	PhaseEnded   = Phase("ENDED")
)

// GuessRecord is one entry in a room's ordered guess log.
type GuessRecord struct {
	PlayerID  string    `json:"playerId"`
	PersonID  int64     `json:"personId"`
	Correct   bool      `json:"correct"`
	Timestamp time.Time `json:"timestamp"`
}

// Summary is the point-in-time room listing entry.
type Summary struct {
	Code        string `json:"roomId"`
	HostName    string `json:"hostName"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Phase       Phase  `json:"phase"`
}

// Snapshot is the full immutable view of a room, unicast as the join receipt
// and served for reconnect recovery.
type Snapshot struct {
	Code       string           `json:"roomId"`
	Phase      Phase            `json:"phase"`
	HostID     string           `json:"hostId"`
	MaxPlayers int              `json:"maxPlayers"`
	MaxGuesses int              `json:"maxGuesses"`
	Players    []players.Player `json:"players"`
	WinnerID   string           `json:"winnerId,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// GameHistory is the archive record written through the persistence port
// when a game ends.
type GameHistory struct {
	ID           string
	RoomCode     string
	StartedAt    time.Time
	EndedAt      time.Time
	TargetPerson int64
	WinnerID     string
	TotalGuesses int
}

// Gateway is the injected fan-out capability. Broadcast must preserve the
// order in which room operations completed; Unicast is silently dropped when
// the player has no active subscription.
type Gateway interface {
	Broadcast(topic string, ev events.Event)
	Unicast(playerID string, ev events.Event)
}

// HistoryArchiver is the persistence port for finished games.
type HistoryArchiver interface {
	Archive(rec GameHistory) error
}

// Config carries the process-wide game settings.
type Config struct {
	MaxPlayers int
	MaxGuesses int
}

func DefaultConfig() Config {
	return Config{
		MaxPlayers: 8,
		MaxGuesses: 5,
	}
}

// GuessOutcome is returned to the guessing player's command handler.
type GuessOutcome struct {
	Correct       bool               `json:"correct"`
	Remaining     int                `json:"remaining"`
	GuessedPerson persons.Person     `json:"guessedPerson"`
	Comparison    persons.Comparison `json:"comparison"`
	GameEnded     bool               `json:"gameEnded"`
	WinnerID      string             `json:"winnerId,omitempty"`
}
