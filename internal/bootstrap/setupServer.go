package bootstrap

import (
	"time"

	"bingo-service/config"
	httpHandler "bingo-service/internal/api/http/handler"
	wsHandler "bingo-service/internal/api/ws/handler"
	"bingo-service/internal/handler"
	"bingo-service/internal/server"

	"github.com/gofiber/fiber/v2"
)

func SetupServer(config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {

	serverConfig := server.Config{
		Port:           config.Server.Port,
		AllowedOrigins: config.Server.AllowedOrigins,
		IdleTimeout:    5 * time.Second,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
	}

	app := server.NewFiberApp(serverConfig)

	listRoomsHandler := httpHandlers["list-rooms"].(*httpHandler.ListRoomsHandler)
	app.Get("/rooms", handler.HandleWithFiber[httpHandler.ListRoomsRequest, httpHandler.ListRoomsResponse](listRoomsHandler))

	gameConnectHandler := wsHandlers["game-connect"].(*wsHandler.GameConnectHandler)
	app.Get("/ws", handler.HandleWithFiberWS[wsHandler.GameConnectRequest](gameConnectHandler))

	return app
}
