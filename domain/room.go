package domain

import (
	"time"

	"github.com/google/uuid"
)

type RoomState string

const (
	RoomStateWaiting    RoomState = "WAITING"
	RoomStateInProgress RoomState = "IN_PROGRESS"
)

// NoTurn is the turn index of a room whose game has not started.
const NoTurn = -1

// Room capacity bounds. Requested sizes outside this range are clamped, not
// rejected.
const (
	RoomMinPlayers = 2
	RoomMaxPlayers = 5
)

// Player is a roster entry. ID is the connection identifier of the player's
// live socket; it is not stable across reconnects.
type Player struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	IsHost bool      `json:"isHost"`
}

// Room is a capacity-bounded group of players sharing one game session.
// Players keeps join order; turn rotation and host fallback both depend on it.
type Room struct {
	Code        string
	Players     []*Player
	MaxPlayers  int
	CurrentTurn int
	State       RoomState
	CreatedAt   time.Time
}

// PlayerIndex returns the position of the given connection in the roster,
// or -1 if it is not a member.
func (r *Room) PlayerIndex(connID uuid.UUID) int {
	for i, p := range r.Players {
		if p.ID == connID {
			return i
		}
	}
	return -1
}

// Player returns the roster entry for the given connection, or nil.
func (r *Room) Player(connID uuid.UUID) *Player {
	if i := r.PlayerIndex(connID); i >= 0 {
		return r.Players[i]
	}
	return nil
}

func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

// ConnIDs returns the connection ids of every current member, in join order.
func (r *Room) ConnIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}
