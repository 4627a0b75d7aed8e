package httpUsecase

import (
	"context"

	"bingo-service/internal/coordinator"
)

type listRoomsUseCase struct {
	coord *coordinator.Coordinator
}

func NewListRoomsUseCase(coord *coordinator.Coordinator) ListRoomsUseCase {
	return &listRoomsUseCase{coord: coord}
}

func (u *listRoomsUseCase) Execute(ctx context.Context) ([]coordinator.RoomSummary, error) {
	return u.coord.Rooms(), nil
}
