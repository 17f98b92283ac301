package rooms

import "errors"

var (
	// ErrRoomNotFound covers unknown room codes and rooms already destroyed.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull is returned by join once the roster reached maxPlayers.
	ErrRoomFull = errors.New("room is full")

	// ErrGameAlreadyStarted is returned by join outside the WAITING phase.
	ErrGameAlreadyStarted = errors.New("game already started")

	// ErrInvalidPhase covers operations attempted in the wrong game phase.
	ErrInvalidPhase = errors.New("operation not valid in current phase")

	// ErrNotHost is returned when a non-host attempts a host-only operation.
	ErrNotHost = errors.New("only the host can start the game")

	// ErrPlayerNotFound is returned for players not on the room's roster.
	ErrPlayerNotFound = errors.New("player not in room")

	// ErrGuessBudgetExhausted is returned when a player has no guesses left,
	// including after surrendering.
	ErrGuessBudgetExhausted = errors.New("no guesses remaining")

	// ErrCodeSpaceExhausted is returned when no free room code was found
	// after the bounded number of attempts. Retryable by the caller.
	ErrCodeSpaceExhausted = errors.New("no free room code available")
)
