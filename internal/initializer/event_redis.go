package initializer

import (
	"fmt"

	"bingo-service/config"
	"bingo-service/infra/redis"

	"go.uber.org/zap"
)

// InitEventPublisher connects the optional broadcast mirror. Returns nil when
// no Redis host is configured or the connection fails; the game runs the same
// either way.
func InitEventPublisher(appConfig config.Config) *redis.EventPublisher {
	if appConfig.EventRedis.Host == "" {
		return nil
	}

	address := fmt.Sprintf("%s:%s", appConfig.EventRedis.Host, appConfig.EventRedis.Port)
	publisher, err := redis.NewEventPublisher(address, appConfig.EventRedis.Password, appConfig.EventRedis.DB)
	if err != nil {
		zap.L().Warn("Event mirror disabled", zap.String("addr", address), zap.Error(err))
		return nil
	}

	zap.L().Info("Event mirror connected", zap.String("addr", address))
	return publisher
}
