package broadcast

import (
	"sync"

	"guesswho/internal/events"
)

const subscriptionBuffer = 32

// Subscription is one client's attachment to a topic. Events arrive on C
// until Unsubscribe closes it.
type Subscription struct {
	Topic    string
	PlayerID string
	C        chan events.Event
}

// Broker fans room events out to topic subscribers and routes private events
// to individual players. Sends never block: a subscriber whose channel is
// full misses the event.
type Broker struct {
	mu      sync.Mutex
	topics  map[string]map[*Subscription]bool
	players map[string]map[*Subscription]bool
}

func NewBroker() *Broker {
	return &Broker{
		topics:  make(map[string]map[*Subscription]bool),
		players: make(map[string]map[*Subscription]bool),
	}
}

func (b *Broker) Subscribe(topic, playerID string) *Subscription {
	sub := &Subscription{
		Topic:    topic,
		PlayerID: playerID,
		C:        make(chan events.Event, subscriptionBuffer),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*Subscription]bool)
	}
	b.topics[topic][sub] = true
	if b.players[playerID] == nil {
		b.players[playerID] = make(map[*Subscription]bool)
	}
	b.players[playerID][sub] = true
	return sub
}

func (b *Broker) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.topics[sub.Topic]
	if !ok || !subs[sub] {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.Topic)
	}
	if ps := b.players[sub.PlayerID]; ps != nil {
		delete(ps, sub)
		if len(ps) == 0 {
			delete(b.players, sub.PlayerID)
		}
	}
	close(sub.C)
}

// Broadcast delivers an event to every current subscriber of a topic.
func (b *Broker) Broadcast(topic string, ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.topics[topic] {
		select {
		case sub.C <- ev:
		default:
			// subscriber is too slow, drop
		}
	}
}

// Unicast delivers a private event to one player. Dropped silently when the
// player holds no active subscription; there is no queueing across
// reconnects.
func (b *Broker) Unicast(playerID string, ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.players[playerID] {
		select {
		case sub.C <- ev:
		default:
		}
	}
}
