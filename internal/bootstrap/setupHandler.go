package bootstrap

import (
	httpHandler "bingo-service/internal/api/http/handler"
	httpUsecase "bingo-service/internal/api/http/usecase"
	wsHandler "bingo-service/internal/api/ws/handler"
	wsUsecase "bingo-service/internal/api/ws/usecase"
	"bingo-service/internal/coordinator"
)

func SetupHTTPHandlers(coord *coordinator.Coordinator) map[string]interface{} {
	listRoomsUseCase := httpUsecase.NewListRoomsUseCase(coord)
	listRoomsHandler := httpHandler.NewListRoomsHandler(listRoomsUseCase)

	return map[string]interface{}{
		"list-rooms": listRoomsHandler,
	}
}

func SetupWSHandlers(hub wsUsecase.Hub) map[string]interface{} {
	gameConnectUseCase := wsUsecase.NewGameConnectUseCase(hub)
	gameConnectHandler := wsHandler.NewGameConnectHandler(gameConnectUseCase)

	return map[string]interface{}{
		"game-connect": gameConnectHandler,
	}
}
