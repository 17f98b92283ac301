package rooms

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"guesswho/internal/events"
	"guesswho/internal/persons"
	"guesswho/internal/players"
)

// Session owns all state of one room. Every operation runs as a single
// atomic step under mu; rooms never share locks, so operations on different
// rooms proceed independently.
//
// Events are handed to the gateway after mu is released. notifyMu is
// acquired while mu is still held, which keeps per-room emission in the
// order the operations completed without letting transport I/O block the
// next operation's mutation.
type Session struct {
	code      string
	createdAt time.Time
	cfg       Config
	catalog   persons.Catalog
	gateway   Gateway
	archiver  HistoryArchiver

	mu       sync.Mutex
	notifyMu sync.Mutex

	phase     Phase
	hostID    string
	target    *persons.Person
	ledger    *players.Ledger
	guessLog  []GuessRecord
	winnerID  string
	startedAt time.Time
	closed    bool
}

// outbound is one event waiting to leave the critical section. A set
// playerID means unicast, otherwise broadcast to topic.
type outbound struct {
	topic    string
	playerID string
	ev       events.Event
}

func newSession(code string, cfg Config, catalog persons.Catalog, gateway Gateway, archiver HistoryArchiver) *Session {
	return &Session{
		code:      code,
		createdAt: time.Now(),
		cfg:       cfg,
		catalog:   catalog,
		gateway:   gateway,
		archiver:  archiver,
		phase:     PhaseWaiting,
		ledger:    players.NewLedger(),
	}
}

func (s *Session) Code() string { return s.code }

// flush archives and emits while mu transitions to notifyMu. Callers must
// hold mu; flush releases it.
func (s *Session) flush(rec *GameHistory, out []outbound) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if rec != nil && s.archiver != nil {
		if err := s.archiver.Archive(*rec); err != nil {
			log.Printf("[Rooms] Archiving history for room %s: %v\n", rec.RoomCode, err)
		}
	}
	for _, o := range out {
		if o.playerID != "" {
			s.gateway.Unicast(o.playerID, o.ev)
		} else {
			s.gateway.Broadcast(o.topic, o.ev)
		}
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Code:       s.code,
		Phase:      s.phase,
		HostID:     s.hostID,
		MaxPlayers: s.cfg.MaxPlayers,
		MaxGuesses: s.cfg.MaxGuesses,
		Players:    s.ledger.List(),
		WinnerID:   s.winnerID,
		CreatedAt:  s.createdAt,
	}
}

func (s *Session) summaryLocked() Summary {
	hostName := ""
	if host := s.ledger.Get(s.hostID); host != nil {
		hostName = host.Name
	}
	return Summary{
		Code:        s.code,
		HostName:    hostName,
		PlayerCount: s.ledger.Count(),
		MaxPlayers:  s.cfg.MaxPlayers,
		Phase:       s.phase,
	}
}

// Snapshot returns an immutable view of the room.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Summary returns the room's listing entry.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// Join adds a player to the roster. Idempotent: a player already on the
// roster gets their existing state back (with a fresh join receipt for
// reconnect recovery) and nothing else changes. The first joiner becomes
// host.
func (s *Session) Join(playerID, name string) (players.Player, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return players.Player{}, ErrRoomNotFound
	}

	if p := s.ledger.Get(playerID); p != nil {
		p.Online = true
		view := *p
		out := []outbound{{playerID: playerID, ev: events.New(events.JoinReceipt, s.snapshotLocked())}}
		s.flush(nil, out)
		return view, nil
	}

	if s.phase != PhaseWaiting {
		s.mu.Unlock()
		return players.Player{}, ErrGameAlreadyStarted
	}
	if s.ledger.Count() >= s.cfg.MaxPlayers {
		s.mu.Unlock()
		return players.Player{}, ErrRoomFull
	}

	p, _ := s.ledger.Add(playerID, name)
	out := make([]outbound, 0, 4)
	if s.hostID == "" {
		p.IsHost = true
		s.hostID = playerID
		out = append(out, outbound{playerID: playerID, ev: events.New(events.HostGranted, map[string]string{"roomId": s.code})})
	}
	view := *p

	out = append(out,
		outbound{topic: s.code, ev: events.New(events.PlayerJoined, view)},
		outbound{playerID: playerID, ev: events.New(events.JoinReceipt, s.snapshotLocked())},
	)
	s.flush(nil, out)
	return view, nil
}

// Leave removes a player. A no-op for unknown players. When the departing
// player was host, a uniformly random remaining player is promoted. The
// returned empty flag tells the registry to destroy the room.
func (s *Session) Leave(playerID string) (empty bool) {
	s.mu.Lock()
	if !s.ledger.Remove(playerID) {
		empty = s.closed || s.ledger.Count() == 0
		s.mu.Unlock()
		return empty
	}

	out := []outbound{{topic: s.code, ev: events.New(events.PlayerLeft, map[string]string{"playerId": playerID})}}

	if s.ledger.Count() == 0 {
		s.hostID = ""
		s.flush(nil, out)
		return true
	}

	if playerID == s.hostID {
		ids := s.ledger.IDs()
		next := ids[rand.Intn(len(ids))]
		s.hostID = next
		promoted := s.ledger.Get(next)
		promoted.IsHost = true
		out = append(out,
			outbound{topic: s.code, ev: events.New(events.OwnerTransferred, map[string]string{
				"playerId": next,
				"name":     promoted.Name,
			})},
			outbound{playerID: next, ev: events.New(events.HostGranted, map[string]string{"roomId": s.code})},
		)
	}

	// A departure can leave only exhausted or surrendered players behind.
	if s.phase == PhasePlaying {
		out = s.checkEndLocked(out)
	}

	rec := s.takeHistoryLocked()
	s.flush(rec, out)
	return false
}

// Start moves the room into the PLAYING phase: picks a target person,
// clears the guess log and resets every player's budget. Host only.
func (s *Session) Start(requesterID string) (Snapshot, error) {
	s.mu.Lock()
	if s.phase != PhaseWaiting {
		s.mu.Unlock()
		return Snapshot{}, ErrInvalidPhase
	}
	if requesterID != s.hostID {
		s.mu.Unlock()
		return Snapshot{}, ErrNotHost
	}
	if s.ledger.Count() == 0 {
		s.mu.Unlock()
		return Snapshot{}, ErrPlayerNotFound
	}

	target, err := s.catalog.Random()
	if err != nil {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("picking target person: %w", err)
	}

	s.target = &target
	s.phase = PhasePlaying
	s.startedAt = time.Now()
	s.guessLog = nil
	s.winnerID = ""
	s.ledger.ResetForStart()

	snap := s.snapshotLocked()
	out := []outbound{
		{topic: s.code, ev: events.New(events.GameStarted, snap)},
		{topic: TopicLobby, ev: events.New(events.RoomListUpdate, s.summaryLocked())},
	}
	s.flush(nil, out)
	return snap, nil
}

// Guess applies one guess: spends budget, records the attempt, compares it
// against the target and resolves the end condition. The comparison hint
// goes back to the guesser alone.
func (s *Session) Guess(playerID string, personID int64) (GuessOutcome, error) {
	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return GuessOutcome{}, ErrInvalidPhase
	}
	p := s.ledger.Get(playerID)
	if p == nil {
		s.mu.Unlock()
		return GuessOutcome{}, ErrPlayerNotFound
	}
	if p.Status == players.StatusSurrendered || p.GuessCount >= s.cfg.MaxGuesses {
		s.mu.Unlock()
		return GuessOutcome{}, ErrGuessBudgetExhausted
	}

	guessed, err := s.catalog.Get(personID)
	if err != nil {
		s.mu.Unlock()
		return GuessOutcome{}, fmt.Errorf("looking up person %d: %w", personID, err)
	}

	// The counter increment, log append, comparison and end-check are one
	// atomic unit under mu.
	comp := persons.Compare(*s.target, guessed)
	p.GuessCount++
	s.guessLog = append(s.guessLog, GuessRecord{
		PlayerID:  playerID,
		PersonID:  personID,
		Correct:   comp.Correct,
		Timestamp: time.Now(),
	})

	outcome := GuessOutcome{
		Correct:       comp.Correct,
		Remaining:     s.ledger.Remaining(playerID, s.cfg.MaxGuesses),
		GuessedPerson: guessed,
		Comparison:    comp,
	}

	out := []outbound{
		{topic: s.code, ev: events.New(events.GuessResult, map[string]any{
			"playerId":   playerID,
			"personId":   personID,
			"personName": guessed.Name,
			"correct":    comp.Correct,
			"remaining":  outcome.Remaining,
		})},
		{playerID: playerID, ev: events.New(events.TargetHint, comp)},
	}

	if comp.Correct {
		out = s.endLocked(playerID, out)
	} else {
		out = s.checkEndLocked(out)
	}
	outcome.GameEnded = s.phase == PhaseEnded
	outcome.WinnerID = s.winnerID

	rec := s.takeHistoryLocked()
	s.flush(rec, out)
	return outcome, nil
}

// Surrender marks a player as surrendered and re-checks the end condition.
// Idempotent once surrendered.
func (s *Session) Surrender(playerID string) error {
	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return ErrInvalidPhase
	}
	p := s.ledger.Get(playerID)
	if p == nil {
		s.mu.Unlock()
		return ErrPlayerNotFound
	}
	if p.Status == players.StatusSurrendered {
		s.mu.Unlock()
		return nil
	}

	p.Status = players.StatusSurrendered
	out := []outbound{
		{topic: s.code, ev: events.New(events.SurrenderResult, map[string]string{"playerId": playerID})},
	}
	out = s.checkEndLocked(out)

	rec := s.takeHistoryLocked()
	s.flush(rec, out)
	return nil
}

// Chat relays a message to the whole room. Membership is required; the
// message itself is opaque.
func (s *Session) Chat(playerID, message string) error {
	s.mu.Lock()
	p := s.ledger.Get(playerID)
	if p == nil {
		s.mu.Unlock()
		return ErrPlayerNotFound
	}
	out := []outbound{
		{topic: s.code, ev: events.New(events.ChatMessage, map[string]any{
			"playerId": playerID,
			"name":     p.Name,
			"message":  message,
			"sentAt":   time.Now(),
		})},
	}
	s.flush(nil, out)
	return nil
}

// checkEndLocked resolves the exhaustion rule: the game ends with no winner
// once every non-surrendered player has used the full budget, or everyone
// surrendered.
func (s *Session) checkEndLocked(out []outbound) []outbound {
	if s.phase != PhasePlaying {
		return out
	}
	if s.ledger.AllSurrendered() || s.ledger.AllExhausted(s.cfg.MaxGuesses) {
		return s.endLocked("", out)
	}
	return out
}

// endLocked moves the room to ENDED, records the winner and fixes final
// player statuses. Surrendered players keep their status.
func (s *Session) endLocked(winnerID string, out []outbound) []outbound {
	s.phase = PhaseEnded
	s.winnerID = winnerID
	for _, id := range s.ledger.IDs() {
		p := s.ledger.Get(id)
		switch {
		case id == winnerID:
			p.Status = players.StatusWinner
		case p.Status == players.StatusSurrendered:
			// stays surrendered
		default:
			p.Status = players.StatusLoser
		}
	}

	payload := map[string]any{
		"winnerId": winnerID,
		"target":   *s.target,
	}
	eventType := events.GameEnded
	if winnerID == "" {
		eventType = events.GameForceEnded
		payload["reason"] = "ALL_GUESSES_EXHAUSTED"
		delete(payload, "winnerId")
	}
	return append(out,
		outbound{topic: s.code, ev: events.New(eventType, payload)},
		outbound{topic: TopicLobby, ev: events.New(events.RoomListUpdate, s.summaryLocked())},
	)
}

// takeHistoryLocked builds the archive record once per game, on the
// operation that ended it.
func (s *Session) takeHistoryLocked() *GameHistory {
	if s.phase != PhaseEnded || s.target == nil || s.startedAt.IsZero() {
		return nil
	}
	total := 0
	for _, p := range s.ledger.List() {
		total += p.GuessCount
	}
	rec := &GameHistory{
		ID:           uuid.NewString(),
		RoomCode:     s.code,
		StartedAt:    s.startedAt,
		EndedAt:      time.Now(),
		TargetPerson: s.target.ID,
		WinnerID:     s.winnerID,
		TotalGuesses: total,
	}
	s.startedAt = time.Time{}
	return rec
}

// closeIfEmpty marks the session dead when the roster is empty so a
// concurrent Join cannot revive a room the registry is destroying.
func (s *Session) closeIfEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger.Count() > 0 {
		return false
	}
	s.closed = true
	return true
}
