package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bingo-service/domain"
	"bingo-service/internal/coordinator"

	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Mirror receives a copy of every room-scoped broadcast, fire-and-forget.
// It is never consulted for game state.
type Mirror interface {
	Publish(ctx context.Context, roomCode, event string, payload interface{})
}

// Hub owns the live websocket connections. It decodes inbound envelopes,
// hands each command to the coordinator, and delivers the directives the
// coordinator returns. Sends are fire-and-forget: a client whose send channel
// is full has the message dropped.
type Hub struct {
	clients    map[uuid.UUID]*domain.Client
	coord      *coordinator.Coordinator
	mirror     Mirror
	register   chan *domain.Client
	unregister chan *domain.Client

	ctx   context.Context
	mutex sync.RWMutex
}

func NewHub(coord *coordinator.Coordinator, mirror Mirror) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*domain.Client),
		coord:      coord,
		mirror:     mirror,
		register:   make(chan *domain.Client),
		unregister: make(chan *domain.Client),
		ctx:        context.Background(),
	}
}

func (h *Hub) Run(ctx context.Context) {
	h.ctx = ctx
	go func() {
		for {
			select {
			case client := <-h.register:
				h.registerClient(client)
				go h.readPump(client)
				go h.writePump(client)
			case client := <-h.unregister:
				h.unregisterClient(client)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (h *Hub) RegisterClient(client *domain.Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *domain.Client) {
	h.unregister <- client
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *domain.Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if client.Done == nil {
		client.Done = make(chan struct{})
	}
	h.clients[client.ID] = client

	zap.L().Info("Client connected",
		zap.String("conn", client.ID.String()),
		zap.Int("clients", len(h.clients)))
}

// unregisterClient is idempotent; both pumps push the client here on exit.
// The first pass through also runs the disconnect command so the client's
// room sees the departure.
func (h *Hub) unregisterClient(client *domain.Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, client.ID)
	close(client.Done)
	h.closeSendChannel(client)
	h.mutex.Unlock()

	zap.L().Info("Client disconnected", zap.String("conn", client.ID.String()))

	h.deliver(h.coord.Disconnect(client.ID))
}

func (h *Hub) closeSendChannel(client *domain.Client) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("Recovered closing send channel",
				zap.String("conn", client.ID.String()),
				zap.Any("panic", r))
		}
	}()
	close(client.Send)
}

// release hands the client back to the run loop for unregistration. It must
// not block when the run loop is gone (hub context cancelled) or the client
// has already been unregistered by the other pump.
func (h *Hub) release(client *domain.Client) {
	select {
	case h.unregister <- client:
	case <-client.Done:
	case <-h.ctx.Done():
	}
}

// readPump reads envelopes off the socket and dispatches them. A read error
// of any kind ends the connection and triggers the disconnect command.
func (h *Hub) readPump(client *domain.Client) {
	defer func() {
		h.release(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Debug("Client closed connection", zap.String("conn", client.ID.String()))
			} else {
				zap.L().Debug("Client read error",
					zap.String("conn", client.ID.String()), zap.Error(err))
			}
			break
		}

		h.deliver(h.dispatch(client, payload))
	}
}

// dispatch decodes one inbound envelope and runs the matching coordinator
// command. Malformed input degrades to a no-op; nothing a client sends can
// take the process down.
func (h *Hub) dispatch(client *domain.Client, payload []byte) []coordinator.Directive {
	var env struct {
		Type    string          `json:"type"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		zap.L().Debug("Failed to unmarshal envelope",
			zap.String("conn", client.ID.String()), zap.Error(err))
		return nil
	}

	switch env.Type {
	case domain.EventCreateRoom:
		var req domain.CreateRoomPayload
		if err := json.Unmarshal(env.Content, &req); err != nil {
			return nil
		}
		maxPlayers := domain.RoomMaxPlayers
		if req.MaxPlayers != nil {
			maxPlayers = *req.MaxPlayers
		}
		return h.coord.CreateRoom(client.ID, req.PlayerName, maxPlayers)

	case domain.EventJoinRoom:
		var req domain.JoinRoomPayload
		if err := json.Unmarshal(env.Content, &req); err != nil {
			return nil
		}
		return h.coord.JoinRoom(client.ID, req.PlayerName, req.RoomCode)

	case domain.EventStartGame:
		var req domain.StartGamePayload
		if err := json.Unmarshal(env.Content, &req); err != nil {
			return nil
		}
		return h.coord.StartGame(req.RoomCode)

	case domain.EventSelectNumber:
		var req domain.SelectNumberPayload
		if err := json.Unmarshal(env.Content, &req); err != nil {
			return nil
		}
		return h.coord.SelectNumber(client.ID, req.RoomCode, req.Number)

	case domain.EventCallBingo:
		var req domain.CallBingoPayload
		if err := json.Unmarshal(env.Content, &req); err != nil {
			return nil
		}
		return h.coord.CallBingo(client.ID, req.RoomCode)

	default:
		zap.L().Debug("Unknown event type",
			zap.String("conn", client.ID.String()), zap.String("type", env.Type))
		return nil
	}
}

// deliver fans each directive out to its target connections and mirrors
// room-scoped broadcasts. Delivery is not awaited or confirmed.
func (h *Hub) deliver(directives []coordinator.Directive) {
	for _, d := range directives {
		msg, err := json.Marshal(domain.Envelope{Type: d.Event, Content: d.Payload})
		if err != nil {
			zap.L().Error("Failed to marshal directive",
				zap.String("event", d.Event), zap.Error(err))
			continue
		}

		h.mutex.RLock()
		for _, id := range d.To {
			client, ok := h.clients[id]
			if !ok {
				continue
			}
			select {
			case client.Send <- msg:
			default:
				zap.L().Warn("Send channel full, dropping message",
					zap.String("conn", id.String()), zap.String("event", d.Event))
			}
		}
		h.mutex.RUnlock()

		if d.Broadcast && h.mirror != nil {
			h.mirror.Publish(h.ctx, d.Room, d.Event, d.Payload)
		}
	}
}

// writePump drains the client's send channel onto the socket and keeps the
// connection alive with pings.
func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
		h.release(client)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Debug("WebSocket write error",
					zap.String("conn", client.ID.String()), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				client.WriteLock.Unlock()
				return
			}
			client.WriteLock.Unlock()

		case <-client.Done:
			return
		}
	}
}
