package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/db"
	"github.com/UPTUZOVER/iiv-talim/internal/middleware"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/platform/rediscache"
	"github.com/UPTUZOVER/iiv-talim/internal/utils"
)

type App struct {
	Config *Config
	Log    *logger.Logger
	DB     *db.Service
	Cache  *rediscache.Cache

	Repos      *Repos
	Services   *Services
	Handlers   *Handlers
	Middleware *middleware.Middleware
	Router     *gin.Engine
}

func New() (*App, error) {
	mode := utils.GetEnv("APP_MODE", "dev", nil)
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{Log: log}
	a.Config = loadConfig(log)

	a.DB, err = db.NewService(log)
	if err != nil {
		return nil, err
	}
	if err := a.DB.AutoMigrateAll(); err != nil {
		return nil, err
	}

	// The cache is optional; the app runs fine without redis, views are
	// just computed on every request.
	if a.Config.RedisEnabled {
		cache, err := rediscache.New(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB, a.Config.RedisTTL, log)
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache", "error", err)
		} else {
			a.Cache = cache
		}
	}

	a.wireRepos()
	a.wireServices()
	a.wireHandlers()
	a.wireMiddleware()
	a.wireRouter()

	return a, nil
}

func (a *App) Run() error {
	a.Log.Info("Starting server...", "port", a.Config.Port)
	return a.Router.Run(":" + a.Config.Port)
}

func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		a.Log.Warn("Closing redis failed", "error", err)
	}
	a.Log.Sync()
}
