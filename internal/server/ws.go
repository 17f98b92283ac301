package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"guesswho/internal/broadcast"
	"guesswho/internal/events"
	"guesswho/internal/rooms"
	"guesswho/internal/wshub"
)

// identify resolves a connection's player identity from the handshake query.
// A valid token wins over everything else; otherwise the client-supplied
// playerId is honored (reconnects) and a missing one is minted.
func (s *Server) identify(r *http.Request) (playerID, name string, err error) {
	q := r.URL.Query()
	if token := q.Get("token"); token != "" && s.Auth != nil {
		username, err := s.Auth.Validate(token)
		if err != nil {
			return "", "", err
		}
		return username, username, nil
	}

	playerID = q.Get("playerId")
	if playerID == "" {
		playerID = uuid.NewString()
	}
	name = q.Get("name")
	if name == "" {
		suffix := playerID
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		name = "Guest-" + suffix
	}
	return playerID, name, nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	playerID, name, err := s.identify(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	sock, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer sock.CloseNow()

	ctx := r.Context()
	client := wshub.NewClient(playerID, name, sock)
	s.Hub.Register(client)
	go client.WritePump(ctx)

	lobby := s.Broker.Subscribe(rooms.TopicLobby, playerID)
	go client.Forward(ctx, lobby)

	conn := &connState{srv: s, client: client, ctx: ctx}
	defer conn.shutdown(lobby)

	log.Printf("[WS] %s connected as %q\n", playerID, name)

	for {
		_, data, err := sock.Read(ctx)
		if err != nil {
			log.Printf("[WS] %s disconnected: %v\n", playerID, err)
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			conn.fail(codeValidation, "malformed command frame")
			continue
		}
		conn.dispatch(cmd)
	}
}

// connState is the per-connection command context: which room the socket is
// attached to and the subscription feeding it that room's events. Only the
// read loop touches it.
type connState struct {
	srv    *Server
	client *wshub.Client
	ctx    context.Context

	roomID string
	sub    *broadcast.Subscription
}

func (c *connState) dispatch(cmd Command) {
	switch cmd.Action {
	case ActionCreateRoom:
		c.createRoom()
	case ActionJoinRoom:
		c.joinRoom(cmd.RoomID)
	case ActionLeaveRoom:
		c.leaveRoom()
	case ActionStart:
		c.start()
	case ActionGuess:
		c.guess(cmd.PersonID)
	case ActionSurrender:
		c.surrender()
	case ActionChat:
		c.chat(cmd.Message)
	case ActionListRooms:
		c.listRooms()
	default:
		c.fail(codeValidation, "unknown action: "+cmd.Action)
	}
}

func (c *connState) createRoom() {
	if c.roomID != "" {
		c.fail(codeValidation, "already in room "+c.roomID)
		return
	}
	session, err := c.srv.Rooms.Create(c.client.PlayerID, c.client.Name)
	if err != nil {
		c.failErr(err)
		return
	}
	c.enterRoom(session.Code())
}

func (c *connState) joinRoom(roomID string) {
	if roomID == "" {
		c.fail(codeValidation, "roomId is required")
		return
	}
	if c.roomID != "" && c.roomID != roomID {
		c.fail(codeValidation, "already in room "+c.roomID)
		return
	}
	session, err := c.srv.Rooms.Find(roomID)
	if err != nil {
		c.failErr(err)
		return
	}

	// Subscribe before joining so the roster events of the join itself are
	// not missed.
	if c.roomID == "" {
		c.enterRoom(roomID)
	}
	if _, err := session.Join(c.client.PlayerID, c.client.Name); err != nil {
		c.exitRoom()
		c.failErr(err)
	}
}

func (c *connState) leaveRoom() {
	if c.roomID == "" {
		c.fail(codeValidation, "not in a room")
		return
	}
	roomID := c.roomID
	c.exitRoom()
	if err := c.srv.Rooms.Leave(roomID, c.client.PlayerID); err != nil {
		c.failErr(err)
	}
}

func (c *connState) start() {
	session, ok := c.currentRoom()
	if !ok {
		return
	}
	if _, err := session.Start(c.client.PlayerID); err != nil {
		c.failErr(err)
	}
}

func (c *connState) guess(personID int64) {
	if personID <= 0 {
		c.fail(codeValidation, "personId is required")
		return
	}
	session, ok := c.currentRoom()
	if !ok {
		return
	}
	if _, err := session.Guess(c.client.PlayerID, personID); err != nil {
		c.failErr(err)
	}
}

func (c *connState) surrender() {
	session, ok := c.currentRoom()
	if !ok {
		return
	}
	if err := session.Surrender(c.client.PlayerID); err != nil {
		c.failErr(err)
	}
}

func (c *connState) chat(message string) {
	if message == "" {
		c.fail(codeValidation, "message is required")
		return
	}
	session, ok := c.currentRoom()
	if !ok {
		return
	}
	if err := session.Chat(c.client.PlayerID, message); err != nil {
		c.failErr(err)
	}
}

func (c *connState) listRooms() {
	summaries := c.srv.Rooms.List(rooms.PhaseWaiting)
	c.client.Enqueue(events.New(events.RoomListUpdate, summaries))
}

func (c *connState) currentRoom() (*rooms.Session, bool) {
	if c.roomID == "" {
		c.fail(codeValidation, "not in a room")
		return nil, false
	}
	session, err := c.srv.Rooms.Find(c.roomID)
	if err != nil {
		c.exitRoom()
		c.failErr(err)
		return nil, false
	}
	return session, true
}

func (c *connState) enterRoom(roomID string) {
	c.roomID = roomID
	c.sub = c.srv.Broker.Subscribe(roomID, c.client.PlayerID)
	go c.client.Forward(c.ctx, c.sub)
}

func (c *connState) exitRoom() {
	if c.sub != nil {
		c.srv.Broker.Unsubscribe(c.sub)
		c.sub = nil
	}
	c.roomID = ""
}

// shutdown runs when the read loop exits. The player leaves their room
// unless a newer connection has taken over the identity (reconnect).
func (c *connState) shutdown(lobby *broadcast.Subscription) {
	displaced := c.srv.Hub.Get(c.client.PlayerID) != c.client
	roomID := c.roomID
	c.exitRoom()
	c.srv.Broker.Unsubscribe(lobby)
	c.srv.Hub.Unregister(c.client)

	if !displaced && roomID != "" {
		if err := c.srv.Rooms.Leave(roomID, c.client.PlayerID); err != nil {
			log.Printf("[WS] Leave on disconnect for %s: %v\n", c.client.PlayerID, err)
		}
	}
}

func (c *connState) failErr(err error) {
	c.fail(errorCode(err), err.Error())
}

func (c *connState) fail(code, msg string) {
	c.client.Enqueue(events.New(events.Error, events.ErrorPayload{Code: code, Message: msg}))
}
