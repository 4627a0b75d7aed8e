package coordinator

import (
	"math/rand"
	"strings"

	"bingo-service/domain"

	"github.com/google/uuid"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry owns every active room, keyed by room code. It is not safe for
// concurrent use on its own; the coordinator serializes all access behind its
// command mutex.
type Registry struct {
	rooms   map[string]*domain.Room
	codeLen int
	rng     *rand.Rand
}

func NewRegistry(codeLen int, rng *rand.Rand) *Registry {
	if codeLen <= 0 {
		codeLen = 6
	}
	return &Registry{
		rooms:   make(map[string]*domain.Room),
		codeLen: codeLen,
		rng:     rng,
	}
}

// NewCode generates a short human-shareable room code, retrying until it does
// not collide with any active room. Codes of deleted rooms may be reissued.
func (r *Registry) NewCode() string {
	var sb strings.Builder
	for {
		sb.Reset()
		for i := 0; i < r.codeLen; i++ {
			sb.WriteByte(codeCharset[r.rng.Intn(len(codeCharset))])
		}
		code := sb.String()
		if _, taken := r.rooms[code]; !taken {
			return code
		}
	}
}

func (r *Registry) Get(code string) *domain.Room {
	return r.rooms[code]
}

func (r *Registry) Add(room *domain.Room) {
	r.rooms[room.Code] = room
}

func (r *Registry) Delete(code string) {
	delete(r.rooms, code)
}

func (r *Registry) Len() int {
	return len(r.rooms)
}

// FindByConn scans every active room for a player owned by the given
// connection. Returns the room and the player's roster index, or (nil, -1).
func (r *Registry) FindByConn(connID uuid.UUID) (*domain.Room, int) {
	for _, room := range r.rooms {
		if i := room.PlayerIndex(connID); i >= 0 {
			return room, i
		}
	}
	return nil, -1
}

// Each calls fn for every active room.
func (r *Registry) Each(fn func(*domain.Room)) {
	for _, room := range r.rooms {
		fn(room)
	}
}
