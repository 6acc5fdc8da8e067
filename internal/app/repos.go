package app

import (
	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	progressrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/progress"
	userrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/user"
)

type Repos struct {
	User userrepo.UserRepo

	Category   catalogrepo.CategoryRepo
	Course     catalogrepo.CourseRepo
	Section    catalogrepo.SectionRepo
	Video      catalogrepo.VideoRepo
	Mission    catalogrepo.MissionRepo
	Submission catalogrepo.SubmissionRepo
	Comment    catalogrepo.CommentRepo
	Rating     catalogrepo.RatingRepo

	VideoProgress   progressrepo.VideoProgressRepo
	SectionProgress progressrepo.SectionProgressRepo
	CourseProgress  progressrepo.CourseProgressRepo
}

func (a *App) wireRepos() {
	db := a.DB.DB()
	a.Repos = &Repos{
		User: userrepo.NewUserRepo(db, a.Log),

		Category:   catalogrepo.NewCategoryRepo(db, a.Log),
		Course:     catalogrepo.NewCourseRepo(db, a.Log),
		Section:    catalogrepo.NewSectionRepo(db, a.Log),
		Video:      catalogrepo.NewVideoRepo(db, a.Log),
		Mission:    catalogrepo.NewMissionRepo(db, a.Log),
		Submission: catalogrepo.NewSubmissionRepo(db, a.Log),
		Comment:    catalogrepo.NewCommentRepo(db, a.Log),
		Rating:     catalogrepo.NewRatingRepo(db, a.Log),

		VideoProgress:   progressrepo.NewVideoProgressRepo(db, a.Log),
		SectionProgress: progressrepo.NewSectionProgressRepo(db, a.Log),
		CourseProgress:  progressrepo.NewCourseProgressRepo(db, a.Log),
	}
}
