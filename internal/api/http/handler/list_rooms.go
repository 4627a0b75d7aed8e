package handler

import (
	"context"

	httpUsecase "bingo-service/internal/api/http/usecase"
	"bingo-service/internal/coordinator"

	"github.com/gofiber/fiber/v2"
)

type ListRoomsHandler struct {
	usecase httpUsecase.ListRoomsUseCase
}

type ListRoomsRequest struct {
}

type ListRoomsResponse struct {
	Rooms []coordinator.RoomSummary `json:"rooms"`
}

func NewListRoomsHandler(usecase httpUsecase.ListRoomsUseCase) *ListRoomsHandler {
	return &ListRoomsHandler{usecase: usecase}
}

func (h *ListRoomsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *ListRoomsRequest) (*ListRoomsResponse, error) {
	rooms, err := h.usecase.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return &ListRoomsResponse{Rooms: rooms}, nil
}
