package players

// Status is a player's state within one game.
type Status string

const (
	StatusReady       = Status("READY")
	StatusPlaying     = Status("PLAYING")
	StatusWinner      = Status("WINNER")
	StatusLoser       = Status("LOSER")
	StatusSurrendered = Status("SURRENDERED")
)

// Player is one roster entry. GuessCount and Status are the durable facts of
// the game; Online is transient connection state.
type Player struct {
	ID         string `json:"playerId"`
	Name       string `json:"displayName"`
	IsHost     bool   `json:"isHost"`
	GuessCount int    `json:"guessCount"`
	Status     Status `json:"status"`
	Online     bool   `json:"online"`
}

// Ledger holds the roster of one room in join order. It carries no lock of
// its own: every mutation goes through the owning room session, which
// serializes all access.
type Ledger struct {
	players map[string]*Player
	order   []string
}

func NewLedger() *Ledger {
	return &Ledger{players: make(map[string]*Player)}
}

// Add inserts a new player, or returns the existing entry untouched.
func (l *Ledger) Add(id, name string) (p *Player, existed bool) {
	if p, ok := l.players[id]; ok {
		return p, true
	}
	p = &Player{ID: id, Name: name, Status: StatusReady, Online: true}
	l.players[id] = p
	l.order = append(l.order, id)
	return p, false
}

func (l *Ledger) Remove(id string) bool {
	if _, ok := l.players[id]; !ok {
		return false
	}
	delete(l.players, id)
	for i, pid := range l.order {
		if pid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

func (l *Ledger) Get(id string) *Player {
	return l.players[id]
}

func (l *Ledger) Count() int {
	return len(l.players)
}

// List returns copies of all players in join order.
func (l *Ledger) List() []Player {
	list := make([]Player, 0, len(l.order))
	for _, id := range l.order {
		list = append(list, *l.players[id])
	}
	return list
}

// IDs returns the roster's player IDs in join order.
func (l *Ledger) IDs() []string {
	ids := make([]string, len(l.order))
	copy(ids, l.order)
	return ids
}

// ResetForStart zeroes every guess count and marks everyone PLAYING.
func (l *Ledger) ResetForStart() {
	for _, p := range l.players {
		p.GuessCount = 0
		p.Status = StatusPlaying
	}
}

// Remaining reports how many guesses a player has left, never below zero.
func (l *Ledger) Remaining(id string, maxGuesses int) int {
	p, ok := l.players[id]
	if !ok {
		return 0
	}
	if r := maxGuesses - p.GuessCount; r > 0 {
		return r
	}
	return 0
}

// AllSurrendered reports whether every rostered player has surrendered.
func (l *Ledger) AllSurrendered() bool {
	if len(l.players) == 0 {
		return false
	}
	for _, p := range l.players {
		if p.Status != StatusSurrendered {
			return false
		}
	}
	return true
}

// AllExhausted reports whether every player has either surrendered or used
// the full guess budget.
func (l *Ledger) AllExhausted(maxGuesses int) bool {
	if len(l.players) == 0 {
		return false
	}
	for _, p := range l.players {
		if p.Status == StatusSurrendered {
			continue
		}
		if p.GuessCount < maxGuesses {
			return false
		}
	}
	return true
}
