package coordinator

import (
	"bingo-service/domain"

	"github.com/google/uuid"
)

// Directive is a broadcast instruction produced by a command: deliver Event
// with Payload to every connection in To. The coordinator never touches the
// transport itself; the hub executes directives after the command returns.
type Directive struct {
	Event   string
	Payload interface{}
	To      []uuid.UUID
	// Room is the code of the room the directive concerns; set for
	// room-scoped broadcasts so mirrors can route them.
	Room      string
	Broadcast bool
}

func toConn(connID uuid.UUID, event string, payload interface{}) Directive {
	return Directive{
		Event:   event,
		Payload: payload,
		To:      []uuid.UUID{connID},
	}
}

func toRoom(room *domain.Room, event string, payload interface{}) Directive {
	return Directive{
		Event:     event,
		Payload:   payload,
		To:        room.ConnIDs(),
		Room:      room.Code,
		Broadcast: true,
	}
}
