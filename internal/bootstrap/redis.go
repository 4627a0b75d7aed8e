package bootstrap

import (
	"bingo-service/config"
	"bingo-service/infra/redis"
	"bingo-service/internal/initializer"
)

func InitEventPublisher(config config.Config) *redis.EventPublisher {
	return initializer.InitEventPublisher(config)
}
