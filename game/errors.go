package game

import (
	"fmt"

	"github.com/google/uuid"
)

// RoomNotFoundError reports a lookup miss by room ID or join code.
type RoomNotFoundError struct {
	Ref string
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("game room not found: %s", e.Ref)
}

// PlayerNotFoundError reports a player lookup miss within a room.
type PlayerNotFoundError struct {
	PlayerID uuid.UUID
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player not found: %s", e.PlayerID)
}

// StateError reports an action that is invalid for the room's current phase
// or the caller's role. The reason is safe to relay to clients.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return e.Reason
}

func stateErrorf(format string, args ...any) *StateError {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}
