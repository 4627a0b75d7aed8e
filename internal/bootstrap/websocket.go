package bootstrap

import (
	gameHub "bingo-service/internal/api/ws/hub"
	"bingo-service/internal/coordinator"
	"bingo-service/internal/initializer"

	"context"
)

func InitWebsocket(ctx context.Context, coord *coordinator.Coordinator, mirror gameHub.Mirror) *gameHub.Hub {
	return initializer.InitWebsocket(ctx, coord, mirror)
}
