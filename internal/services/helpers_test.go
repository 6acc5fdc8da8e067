package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	progressrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/progress"
	"github.com/UPTUZOVER/iiv-talim/internal/data/repos/testutil"
	userrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/user"
	"github.com/UPTUZOVER/iiv-talim/internal/requestdata"
)

// svcBundle wires every service over one rolled-back test transaction.
type svcBundle struct {
	tx *gorm.DB

	auth       AuthService
	user       UserService
	catalog    CatalogService
	courseView CourseViewService
	video      VideoService
	mission    MissionService
	comment    CommentService
	rating     RatingService
}

func newBundle(t *testing.T) *svcBundle {
	t.Helper()

	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))

	users := userrepo.NewUserRepo(tx, log)
	categories := catalogrepo.NewCategoryRepo(tx, log)
	courses := catalogrepo.NewCourseRepo(tx, log)
	sections := catalogrepo.NewSectionRepo(tx, log)
	videos := catalogrepo.NewVideoRepo(tx, log)
	missions := catalogrepo.NewMissionRepo(tx, log)
	submissions := catalogrepo.NewSubmissionRepo(tx, log)
	comments := catalogrepo.NewCommentRepo(tx, log)
	ratings := catalogrepo.NewRatingRepo(tx, log)
	videoProgress := progressrepo.NewVideoProgressRepo(tx, log)
	sectionProgress := progressrepo.NewSectionProgressRepo(tx, log)
	courseProgress := progressrepo.NewCourseProgressRepo(tx, log)

	return &svcBundle{
		tx:         tx,
		auth:       NewAuthService(tx, log, users, "test-secret", 15*time.Minute, time.Hour),
		user:       NewUserService(tx, log, users),
		catalog:    NewCatalogService(tx, log, categories, courses, sections, videos, missions),
		courseView: NewCourseViewService(tx, log, nil, categories, courses, sections, videos, videoProgress, sectionProgress, courseProgress),
		video:      NewVideoService(tx, log, nil, videos, sections, videoProgress, sectionProgress, courseProgress),
		mission:    NewMissionService(tx, log, nil, missions, submissions, sections, videos, videoProgress, sectionProgress, courseProgress),
		comment:    NewCommentService(tx, log, comments, videos),
		rating:     NewRatingService(tx, log, ratings, videos),
	}
}

func asUser(userID uuid.UUID, role string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: userID,
		Role:   role,
	})
}
