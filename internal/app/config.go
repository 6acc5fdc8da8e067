package app

import (
	"time"

	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/utils"
)

type Config struct {
	Mode string
	Port string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	CORSOrigin string

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
}

func loadConfig(log *logger.Logger) *Config {
	return &Config{
		Mode: utils.GetEnv("APP_MODE", "dev", log),
		Port: utils.GetEnv("PORT", "8080", log),

		JWTSecret:  utils.GetEnv("JWT_SECRET", "dev-secret-change-me", log),
		AccessTTL:  time.Duration(utils.GetEnvAsInt("JWT_ACCESS_TTL_MINUTES", 30, log)) * time.Minute,
		RefreshTTL: time.Duration(utils.GetEnvAsInt("JWT_REFRESH_TTL_HOURS", 24*7, log)) * time.Hour,

		CORSOrigin: utils.GetEnv("CORS_ORIGIN", "*", log),

		RedisEnabled:  utils.GetEnv("REDIS_ENABLED", "false", log) == "true",
		RedisAddr:     utils.GetEnv("REDIS_ADDR", "localhost:6379", log),
		RedisPassword: utils.GetEnv("REDIS_PASSWORD", "", log),
		RedisDB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		RedisTTL:      time.Duration(utils.GetEnvAsInt("REDIS_TTL_SECONDS", 300, log)) * time.Second,
	}
}
