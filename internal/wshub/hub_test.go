package wshub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"guesswho/internal/broadcast"
	"guesswho/internal/events"
)

func TestEnqueueMarshalsEvent(t *testing.T) {
	c := NewClient("p1", "Alice", nil)

	c.Enqueue(events.New(events.ChatMessage, map[string]string{"message": "hi"}))

	select {
	case data := <-c.Send:
		var got events.Event
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != events.ChatMessage {
			t.Errorf("type = %q, want CHAT_MESSAGE", got.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no message enqueued")
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	c := &Client{PlayerID: "p1", Send: make(chan []byte, 1)}
	c.Send <- []byte("filler")

	// Must not block.
	c.Enqueue(events.New(events.ChatMessage, nil))

	if data := <-c.Send; string(data) != "filler" {
		t.Fatalf("expected filler, got %s", data)
	}
	select {
	case <-c.Send:
		t.Fatal("overflow message should have been dropped")
	default:
	}
}

func TestForwardPumpsSubscription(t *testing.T) {
	broker := broadcast.NewBroker()
	sub := broker.Subscribe("1234", "p1")
	c := NewClient("p1", "Alice", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Forward(ctx, sub)

	broker.Broadcast("1234", events.New(events.GuessResult, nil))

	select {
	case data := <-c.Send:
		var got events.Event
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if got.Type != events.GuessResult {
			t.Errorf("type = %q, want GUESS_RESULT", got.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}
}

func TestHub_ReconnectDisplacesPreviousClient(t *testing.T) {
	h := NewHub()
	first := NewClient("p1", "Alice", nil)
	second := NewClient("p1", "Alice", nil)

	h.Register(first)
	h.Register(second)

	if _, ok := <-first.Send; ok {
		t.Fatal("first connection's Send should be closed after displacement")
	}
	if h.Get("p1") != second {
		t.Fatal("hub should track the newest connection")
	}

	// Unregistering the stale client must not remove the new one.
	h.Unregister(first)
	if h.Get("p1") != second {
		t.Fatal("stale unregister removed the live connection")
	}

	h.Unregister(second)
	if h.Get("p1") != nil {
		t.Fatal("client still registered after unregister")
	}
	if _, ok := <-second.Send; ok {
		t.Fatal("second connection's Send should be closed")
	}
}
