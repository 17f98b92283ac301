package rooms

import (
	"fmt"
	"log"
	"sync"

	"guesswho/internal/events"
	"guesswho/internal/persons"
)

// Codes are rechecked against live rooms this many times before giving up.
const maxCodeAttempts = 10

// Registry creates, looks up, lists and destroys room sessions. Code
// allocation and removal are linearizable: the check-then-insert runs under
// one lock, and a destroyed room is never returned by Find again.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Session

	cfg      Config
	catalog  persons.Catalog
	gateway  Gateway
	archiver HistoryArchiver
}

func NewRegistry(cfg Config, catalog persons.Catalog, gateway Gateway, archiver HistoryArchiver) *Registry {
	return &Registry{
		rooms:    make(map[string]*Session),
		cfg:      cfg,
		catalog:  catalog,
		gateway:  gateway,
		archiver: archiver,
	}
}

// Create allocates a fresh room with the given player as host.
func (r *Registry) Create(hostID, hostName string) (*Session, error) {
	r.mu.Lock()
	var session *Session
	for range maxCodeAttempts {
		code, err := GenerateCode()
		if err != nil {
			r.mu.Unlock()
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := r.rooms[code]; exists {
			continue
		}
		session = newSession(code, r.cfg, r.catalog, r.gateway, r.archiver)
		r.rooms[code] = session
		break
	}
	r.mu.Unlock()

	if session == nil {
		return nil, ErrCodeSpaceExhausted
	}

	if _, err := session.Join(hostID, hostName); err != nil {
		// Cannot happen on a fresh room; fail loudly if it ever does.
		r.remove(session.code)
		return nil, fmt.Errorf("seating host in new room: %w", err)
	}

	r.gateway.Broadcast(session.code, events.New(events.RoomCreated, session.Summary()))
	r.gateway.Broadcast(TopicLobby, events.New(events.RoomListUpdate, session.Summary()))
	log.Printf("[Rooms] Created room %s (host %s)\n", session.code, hostID)
	return session, nil
}

// Find returns the live session for a code.
func (r *Registry) Find(code string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return session, nil
}

// List returns a point-in-time snapshot of room summaries. An empty phase
// lists every room.
func (r *Registry) List(phase Phase) []Summary {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.rooms))
	for _, s := range r.rooms {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	list := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		summary := s.Summary()
		if phase == "" || summary.Phase == phase {
			list = append(list, summary)
		}
	}
	return list
}

// Leave routes a leave to the addressed room and destroys it when the last
// player is gone.
func (r *Registry) Leave(code, playerID string) error {
	session, err := r.Find(code)
	if err != nil {
		return err
	}
	if session.Leave(playerID) {
		r.remove(code)
	}
	return nil
}

// remove destroys a room if its roster is still empty. The session is
// closed under both locks so a racing Join either lands before removal or
// observes the room as gone.
func (r *Registry) remove(code string) {
	r.mu.Lock()
	session, ok := r.rooms[code]
	if !ok {
		r.mu.Unlock()
		return
	}
	if !session.closeIfEmpty() {
		r.mu.Unlock()
		return
	}
	delete(r.rooms, code)
	r.mu.Unlock()

	r.gateway.Broadcast(TopicLobby, events.New(events.RoomListUpdate, Summary{Code: code, Phase: PhaseEnded}))
	log.Printf("[Rooms] Destroyed empty room %s\n", code)
}
