package httpUsecase

import (
	"context"

	"bingo-service/internal/coordinator"
)

type ListRoomsUseCase interface {
	Execute(ctx context.Context) ([]coordinator.RoomSummary, error)
}
