package domain

import "errors"

// Command errors surfaced as a private event to the originating connection.
// They are never broadcast to the room.
var (
	ErrRoomNotFound = errors.New("Room does not exist")
	ErrRoomFull     = errors.New("Room is full")
	ErrNotYourTurn  = errors.New("Not your turn")
)
