package wsHandler

import (
	"context"

	wsUsecase "bingo-service/internal/api/ws/usecase"

	"github.com/gofiber/contrib/websocket"
)

// GameConnectHandler upgrades the connection that carries the whole game
// session. No identity is required to connect; the connection id assigned by
// the usecase is the player's identity for the life of the socket.
type GameConnectHandler struct {
	usecase wsUsecase.GameConnectUseCase
}

type GameConnectRequest struct {
}

func NewGameConnectHandler(usecase wsUsecase.GameConnectUseCase) *GameConnectHandler {
	return &GameConnectHandler{usecase: usecase}
}

func (h *GameConnectHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *GameConnectRequest) {
	h.usecase.Execute(c, ctx)
}
