package initializer

import (
	"context"

	gameHub "bingo-service/internal/api/ws/hub"
	"bingo-service/internal/coordinator"
)

func InitWebsocket(ctx context.Context, coord *coordinator.Coordinator, mirror gameHub.Mirror) *gameHub.Hub {
	hub := gameHub.NewHub(coord, mirror)
	hub.Run(ctx)
	return hub
}
