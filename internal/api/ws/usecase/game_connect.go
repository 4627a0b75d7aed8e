package wsUsecase

import (
	"context"

	"bingo-service/domain"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type gameConnectUseCase struct {
	hub Hub
}

func NewGameConnectUseCase(hub Hub) GameConnectUseCase {
	return &gameConnectUseCase{hub: hub}
}

// Execute wraps the raw socket in a client, hands it to the hub, and parks
// until the hub is done with it. The fiber websocket handler must not return
// while the connection is in use.
func (u *gameConnectUseCase) Execute(c *websocket.Conn, ctx context.Context) {
	client := &domain.Client{
		ID:   uuid.New(),
		Conn: c,
		Send: make(chan []byte, 256),
		Done: make(chan struct{}),
	}

	u.hub.RegisterClient(client)

	select {
	case <-client.Done:
	case <-ctx.Done():
		u.hub.UnregisterClient(client)
	}
}
