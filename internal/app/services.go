package app

import (
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Catalog    services.CatalogService
	CourseView services.CourseViewService
	Video      services.VideoService
	Mission    services.MissionService
	Comment    services.CommentService
	Rating     services.RatingService
}

func (a *App) wireServices() {
	db := a.DB.DB()
	a.Services = &Services{
		Auth: services.NewAuthService(db, a.Log, a.Repos.User, a.Config.JWTSecret, a.Config.AccessTTL, a.Config.RefreshTTL),
		User: services.NewUserService(db, a.Log, a.Repos.User),
		Catalog: services.NewCatalogService(
			db, a.Log,
			a.Repos.Category, a.Repos.Course, a.Repos.Section, a.Repos.Video, a.Repos.Mission,
		),
		CourseView: services.NewCourseViewService(
			db, a.Log, a.Cache,
			a.Repos.Category, a.Repos.Course, a.Repos.Section, a.Repos.Video,
			a.Repos.VideoProgress, a.Repos.SectionProgress, a.Repos.CourseProgress,
		),
		Video: services.NewVideoService(
			db, a.Log, a.Cache,
			a.Repos.Video, a.Repos.Section,
			a.Repos.VideoProgress, a.Repos.SectionProgress, a.Repos.CourseProgress,
		),
		Mission: services.NewMissionService(
			db, a.Log, a.Cache,
			a.Repos.Mission, a.Repos.Submission, a.Repos.Section, a.Repos.Video,
			a.Repos.VideoProgress, a.Repos.SectionProgress, a.Repos.CourseProgress,
		),
		Comment: services.NewCommentService(db, a.Log, a.Repos.Comment, a.Repos.Video),
		Rating:  services.NewRatingService(db, a.Log, a.Repos.Rating, a.Repos.Video),
	}
}
