package server

import (
	"errors"

	"guesswho/internal/persons"
	"guesswho/internal/rooms"
)

// Actions a client may put in a command frame.
const (
	ActionCreateRoom = "createRoom"
	ActionJoinRoom   = "joinRoom"
	ActionLeaveRoom  = "leaveRoom"
	ActionStart      = "start"
	ActionGuess      = "guess"
	ActionSurrender  = "surrender"
	ActionChat       = "chat"
	ActionListRooms  = "listRooms"
)

// Command is one inbound WebSocket frame. Fields beyond action are
// action-specific; unused ones are ignored.
type Command struct {
	Action   string `json:"action"`
	RoomID   string `json:"roomId,omitempty"`
	PersonID int64  `json:"personId,omitempty"`
	Message  string `json:"message,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Machine-readable rejection codes carried in ERROR event payloads.
const (
	codeValidation      = "VALIDATION_ERROR"
	codeInvalidPhase    = "INVALID_PHASE"
	codeNotHost         = "NOT_HOST"
	codeNotFound        = "RESOURCE_NOT_FOUND"
	codeRoomFull        = "ROOM_FULL"
	codeBudgetExhausted = "GUESS_BUDGET_EXHAUSTED"
	codeCodesExhausted  = "CODE_SPACE_EXHAUSTED"
	codeInternal        = "INTERNAL_ERROR"
)

// errorCode maps a rejected operation's error to its wire code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound),
		errors.Is(err, rooms.ErrPlayerNotFound),
		errors.Is(err, persons.ErrNotFound):
		return codeNotFound
	case errors.Is(err, rooms.ErrInvalidPhase),
		errors.Is(err, rooms.ErrGameAlreadyStarted):
		return codeInvalidPhase
	case errors.Is(err, rooms.ErrNotHost):
		return codeNotHost
	case errors.Is(err, rooms.ErrRoomFull):
		return codeRoomFull
	case errors.Is(err, rooms.ErrGuessBudgetExhausted):
		return codeBudgetExhausted
	case errors.Is(err, rooms.ErrCodeSpaceExhausted):
		return codeCodesExhausted
	default:
		return codeInternal
	}
}
