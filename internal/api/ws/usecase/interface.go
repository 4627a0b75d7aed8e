package wsUsecase

import (
	"context"

	"bingo-service/domain"

	"github.com/gofiber/contrib/websocket"
)

type GameConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context)
}

type Hub interface {
	RegisterClient(client *domain.Client)
	UnregisterClient(client *domain.Client)
}
