package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
)

func (a *App) wireRouter() {
	if a.Config.Mode == "prod" || a.Config.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if a.Config.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{a.Config.CORSOrigin}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", a.Handlers.Health.Check)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", a.Handlers.Auth.Register)
		auth.POST("/login", a.Handlers.Auth.Login)
		auth.POST("/refresh", a.Handlers.Auth.Refresh)
	}

	// Catalog reads work anonymously; identity, when present, shapes the
	// access flags in the response.
	public := api.Group("")
	public.Use(a.Middleware.OptionalAuth())
	{
		public.GET("/categories", a.Handlers.Catalog.ListCategories)
		public.GET("/courses/:id", a.Handlers.Catalog.GetCourse)
	}

	protected := api.Group("")
	protected.Use(a.Middleware.RequireAuth())
	{
		protected.GET("/users/me", a.Handlers.User.GetMe)

		protected.GET("/sections/:id/videos", a.Handlers.Catalog.ListSectionVideos)
		protected.GET("/sections/:id/missions", a.Handlers.Mission.ListSectionMissions)

		protected.GET("/videos/:id/access", a.Handlers.Video.CheckAccess)
		protected.POST("/videos/:id/watched", a.Handlers.Video.MarkWatched)

		protected.POST("/missions/:id/submissions", a.Handlers.Mission.SubmitAssignment)

		protected.GET("/videos/:id/comments", a.Handlers.Comment.ListComments)
		protected.POST("/videos/:id/comments", a.Handlers.Comment.AddComment)
		protected.DELETE("/comments/:id", a.Handlers.Comment.DeleteComment)

		protected.GET("/videos/:id/ratings", a.Handlers.Rating.ListRatings)
		protected.POST("/videos/:id/ratings", a.Handlers.Rating.RateVideo)
	}

	staff := api.Group("")
	staff.Use(a.Middleware.RequireAuth(), a.Middleware.RequireRole(domain.RoleAdmin, domain.RoleTeacher))
	{
		staff.POST("/categories", a.Handlers.Catalog.CreateCategory)
		staff.POST("/courses", a.Handlers.Catalog.CreateCourse)
		staff.POST("/sections", a.Handlers.Catalog.CreateSection)
		staff.POST("/videos", a.Handlers.Catalog.CreateVideo)
		staff.POST("/missions", a.Handlers.Catalog.CreateMission)
	}

	admin := api.Group("")
	admin.Use(a.Middleware.RequireAuth(), a.Middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/submissions/:id/review", a.Handlers.Mission.ReviewSubmission)
	}

	a.Router = router
}
