package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	EventRedis EventRedisConfig `mapstructure:"eventredis"`
	Room       RoomConfig       `mapstructure:"room"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Host           string `mapstructure:"host"`
	AllowedOrigins string `mapstructure:"allowedorigins"`
}

// EventRedisConfig points at the optional pub/sub mirror of room broadcasts.
// An empty host disables the mirror entirely.
type EventRedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RoomConfig struct {
	CodeLength int `mapstructure:"codelength"`
}

func Read() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/")

	// Defaults
	viper.SetDefault("app.name", "bingo-service")
	viper.SetDefault("server.port", "3001")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.allowedorigins", "*")

	viper.SetDefault("eventredis.port", "6379")
	viper.SetDefault("eventredis.db", 0)

	viper.SetDefault("room.codelength", 6)

	// ENV overrides with prefix BINGO_ and dot-to-underscore replacement
	viper.SetEnvPrefix("BINGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}
