// Package coordinator is the single authority over room state. Every inbound
// event maps to one command method; commands mutate the registry and return
// the broadcasts the transport must deliver. One mutex serializes all
// commands, so no two commands for any room ever interleave.
package coordinator

import (
	"sync"
	"time"

	"bingo-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
}

func NewCoordinator(registry *Registry) *Coordinator {
	return &Coordinator{registry: registry}
}

// CreateRoom opens a fresh room with the issuing connection as sole player and
// host. The requested size is clamped into [RoomMinPlayers, RoomMaxPlayers].
func (c *Coordinator) CreateRoom(connID uuid.UUID, playerName string, maxPlayers int) []Directive {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A connection belongs to at most one room; leaving the old one first
	// keeps that invariant if a client re-creates without disconnecting.
	out := c.detachLocked(connID)

	room := &domain.Room{
		Code: c.registry.NewCode(),
		Players: []*domain.Player{
			{ID: connID, Name: playerName, IsHost: true},
		},
		MaxPlayers:  clampMaxPlayers(maxPlayers),
		CurrentTurn: domain.NoTurn,
		State:       domain.RoomStateWaiting,
		CreatedAt:   time.Now(),
	}
	c.registry.Add(room)

	zap.L().Info("Room created",
		zap.String("room", room.Code),
		zap.String("conn", connID.String()),
		zap.Int("maxPlayers", room.MaxPlayers))

	out = append(out,
		toConn(connID, domain.EventRoomCreated, domain.RoomCreatedPayload{RoomCode: room.Code}),
		toRoom(room, domain.EventPlayersList, rosterPayload(room)),
	)
	return out
}

// JoinRoom appends the connection to an existing room. A join that fills the
// room to capacity starts the game immediately, with no host confirmation.
func (c *Coordinator) JoinRoom(connID uuid.UUID, playerName, roomCode string) []Directive {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.registry.Get(roomCode)
	if room == nil {
		return []Directive{toConn(connID, domain.EventJoinedRoom, domain.JoinedRoomPayload{
			Success: false,
			Message: domain.ErrRoomNotFound.Error(),
		})}
	}
	if room.IsFull() {
		return []Directive{toConn(connID, domain.EventJoinedRoom, domain.JoinedRoomPayload{
			Success: false,
			Message: domain.ErrRoomFull.Error(),
		})}
	}

	out := c.detachLocked(connID)

	// Detaching can empty and delete the target room itself (a sole member
	// re-joining their own code), so the lookup cannot be trusted across
	// the detach.
	room = c.registry.Get(roomCode)
	if room == nil {
		return append(out, toConn(connID, domain.EventJoinedRoom, domain.JoinedRoomPayload{
			Success: false,
			Message: domain.ErrRoomNotFound.Error(),
		}))
	}

	player := &domain.Player{ID: connID, Name: playerName, IsHost: false}
	room.Players = append(room.Players, player)

	zap.L().Info("Player joined",
		zap.String("room", room.Code),
		zap.String("conn", connID.String()),
		zap.Int("players", len(room.Players)))

	out = append(out,
		toConn(connID, domain.EventJoinedRoom, domain.JoinedRoomPayload{Success: true}),
		toRoom(room, domain.EventPlayersList, rosterPayload(room)),
		toRoom(room, domain.EventPlayerJoined, domain.PlayerJoinedPayload{Player: player}),
	)

	if room.IsFull() {
		out = append(out, c.startLocked(room)...)
	}
	return out
}

// StartGame moves the room into play and hands the first turn to the player
// who created it. Unknown room codes are ignored. The server deliberately does
// not verify the caller is the host; restricting the control is left to the
// client.
func (c *Coordinator) StartGame(roomCode string) []Directive {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.registry.Get(roomCode)
	if room == nil {
		return nil
	}
	return c.startLocked(room)
}

func (c *Coordinator) startLocked(room *domain.Room) []Directive {
	room.CurrentTurn = 0
	room.State = domain.RoomStateInProgress
	first := room.Players[0]

	zap.L().Info("Game started", zap.String("room", room.Code))

	return []Directive{
		toRoom(room, domain.EventGameStarted, struct{}{}),
		toRoom(room, domain.EventTurnUpdate, turnPayload(first)),
	}
}

// SelectNumber relays a number call and rotates the turn. Only the turn gate
// is enforced here; number legality stays on the client.
func (c *Coordinator) SelectNumber(connID uuid.UUID, roomCode string, number int) []Directive {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.registry.Get(roomCode)
	if room == nil {
		return nil
	}
	idx := room.PlayerIndex(connID)
	if idx < 0 {
		return nil
	}
	if idx != room.CurrentTurn {
		return []Directive{toConn(connID, domain.EventError, domain.ErrorPayload{
			Message: domain.ErrNotYourTurn.Error(),
		})}
	}

	player := room.Players[idx]
	out := []Directive{
		toRoom(room, domain.EventNumberSelected, domain.NumberSelectedPayload{
			Number: number,
			Player: player.Name,
		}),
	}

	room.CurrentTurn = (room.CurrentTurn + 1) % len(room.Players)
	next := room.Players[room.CurrentTurn]
	out = append(out, toRoom(room, domain.EventTurnUpdate, turnPayload(next)))
	return out
}

// CallBingo relays a win claim to the whole room. No verification happens
// server-side; the claim is advisory and clients adjudicate what they show.
func (c *Coordinator) CallBingo(connID uuid.UUID, roomCode string) []Directive {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.registry.Get(roomCode)
	if room == nil {
		return nil
	}
	player := room.Player(connID)
	if player == nil {
		return nil
	}

	zap.L().Info("Bingo called",
		zap.String("room", room.Code),
		zap.String("player", player.Name))

	return []Directive{
		toRoom(room, domain.EventBingoCall, domain.BingoCallPayload{Player: player.Name}),
	}
}

// Disconnect removes the connection's player from whichever room holds it,
// repairing host and turn assignments for the players left behind.
func (c *Coordinator) Disconnect(connID uuid.UUID) []Directive {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detachLocked(connID)
}

func (c *Coordinator) detachLocked(connID uuid.UUID) []Directive {
	room, idx := c.registry.FindByConn(connID)
	if room == nil {
		return nil
	}

	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)

	if len(room.Players) == 0 {
		c.registry.Delete(room.Code)
		zap.L().Info("Room deleted", zap.String("room", room.Code))
		return nil
	}

	hasHost := false
	for _, p := range room.Players {
		if p.IsHost {
			hasHost = true
			break
		}
	}
	if !hasHost {
		room.Players[0].IsHost = true
	}

	var out []Directive

	// Turn repair is a plain modulo wrap over the shortened roster. When the
	// departing player held the current turn this can land on a different
	// player than a skip-to-next rule would; that wrap is the authoritative
	// policy, not a bug to fix here.
	if room.State == domain.RoomStateInProgress && room.CurrentTurn >= idx {
		room.CurrentTurn = room.CurrentTurn % len(room.Players)
		out = append(out, toRoom(room, domain.EventTurnUpdate, turnPayload(room.Players[room.CurrentTurn])))
	}

	out = append(out, toRoom(room, domain.EventPlayersList, rosterPayload(room)))

	zap.L().Info("Player left",
		zap.String("room", room.Code),
		zap.String("conn", connID.String()),
		zap.Int("players", len(room.Players)))

	return out
}

// RoomSummary is a read-only view of one active room for the HTTP listing.
type RoomSummary struct {
	Code       string           `json:"code"`
	Players    int              `json:"players"`
	MaxPlayers int              `json:"maxPlayers"`
	State      domain.RoomState `json:"state"`
}

// Rooms snapshots every active room.
func (c *Coordinator) Rooms() []RoomSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]RoomSummary, 0, c.registry.Len())
	c.registry.Each(func(room *domain.Room) {
		out = append(out, RoomSummary{
			Code:       room.Code,
			Players:    len(room.Players),
			MaxPlayers: room.MaxPlayers,
			State:      room.State,
		})
	})
	return out
}

func clampMaxPlayers(n int) int {
	if n < domain.RoomMinPlayers {
		return domain.RoomMinPlayers
	}
	if n > domain.RoomMaxPlayers {
		return domain.RoomMaxPlayers
	}
	return n
}

func rosterPayload(room *domain.Room) domain.PlayersListPayload {
	// Snapshot the roster; the live slice keeps mutating after the command
	// returns, while the hub marshals directives outside the command mutex.
	players := make([]*domain.Player, len(room.Players))
	copy(players, room.Players)
	return domain.PlayersListPayload{
		Players:    players,
		MaxPlayers: room.MaxPlayers,
	}
}

func turnPayload(p *domain.Player) domain.TurnUpdatePayload {
	return domain.TurnUpdatePayload{
		PlayerID:   p.ID.String(),
		PlayerName: p.Name,
	}
}
