package events

// Room-topic event types.
const (
	RoomCreated      = "ROOM_CREATED"
	PlayerJoined     = "PLAYER_JOINED"
	PlayerLeft       = "PLAYER_LEFT"
	OwnerTransferred = "OWNER_TRANSFERRED"
	GameStarted      = "GAME_STARTED"
	GuessResult      = "GUESS_RESULT"
	GameEnded        = "GAME_ENDED"
	GameForceEnded   = "GAME_FORCE_ENDED"
	SurrenderResult  = "SURRENDER_RESULT"
	ChatMessage      = "CHAT_MESSAGE"
)

// Lobby-topic event types.
const (
	RoomListUpdate = "ROOM_LIST_UPDATE"
)

// Private (unicast) event types.
const (
	JoinReceipt = "JOIN_RECEIPT"
	HostGranted = "HOST_GRANTED"
	TargetHint  = "TARGET_HINT"
	Error       = "ERROR"
)

// Event is the wire shape for everything published to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

func New(eventType string, payload any) Event {
	return Event{Type: eventType, Payload: payload}
}

// ErrorPayload is unicast to the player whose command was rejected.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
