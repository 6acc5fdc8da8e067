package app

import (
	"github.com/UPTUZOVER/iiv-talim/internal/http/handlers"
	"github.com/UPTUZOVER/iiv-talim/internal/middleware"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Catalog *handlers.CatalogHandler
	Video   *handlers.VideoHandler
	Mission *handlers.MissionHandler
	Comment *handlers.CommentHandler
	Rating  *handlers.RatingHandler
}

func (a *App) wireHandlers() {
	a.Handlers = &Handlers{
		Health:  handlers.NewHealthHandler(),
		Auth:    handlers.NewAuthHandler(a.Log, a.Services.Auth),
		User:    handlers.NewUserHandler(a.Log, a.Services.User),
		Catalog: handlers.NewCatalogHandler(a.Log, a.Services.Catalog, a.Services.CourseView),
		Video:   handlers.NewVideoHandler(a.Log, a.Services.Video),
		Mission: handlers.NewMissionHandler(a.Log, a.Services.Mission),
		Comment: handlers.NewCommentHandler(a.Log, a.Services.Comment),
		Rating:  handlers.NewRatingHandler(a.Log, a.Services.Rating),
	}
}

func (a *App) wireMiddleware() {
	a.Middleware = middleware.New(a.Log, a.Services.Auth)
}
