package bootstrap

import (
	"context"
	"math/rand"
	"time"

	"bingo-service/config"
	"bingo-service/infra/redis"
	gameHub "bingo-service/internal/api/ws/hub"
	"bingo-service/internal/coordinator"
	"bingo-service/pkg/graceful"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	config     config.Config
	coord      *coordinator.Coordinator
	hub        *gameHub.Hub
	publisher  *redis.EventPublisher
	fiberApp   *fiber.App
	appContext context.Context
	cancel     context.CancelFunc
}

func NewApp(config config.Config) *App {
	app := &App{
		config: config,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	ctx, cancel := context.WithCancel(context.Background())
	a.appContext, a.cancel = ctx, cancel

	registry := coordinator.NewRegistry(
		a.config.Room.CodeLength,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	a.coord = coordinator.NewCoordinator(registry)

	a.publisher = InitEventPublisher(a.config)

	var mirror gameHub.Mirror
	if a.publisher != nil {
		mirror = a.publisher
	}
	a.hub = InitWebsocket(ctx, a.coord, mirror)

	httpHandlers := SetupHTTPHandlers(a.coord)
	wsHandlers := SetupWSHandlers(a.hub)
	a.fiberApp = SetupServer(a.config, httpHandlers, wsHandlers)
}

func (a *App) Start() {
	go func() {
		port := a.config.Server.Port
		if err := a.fiberApp.Listen(":" + port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	defer func() {
		a.cancel()
		if a.publisher != nil {
			if err := a.publisher.Close(); err != nil {
				zap.L().Error("Failed to close event mirror", zap.Error(err))
			}
		}
	}()

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, a.appContext)
}
