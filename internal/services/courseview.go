package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	progressrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/progress"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/modules/progression"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/platform/rediscache"
	"github.com/UPTUZOVER/iiv-talim/internal/requestdata"
)

// CategoryView is a category with its courses nested, newest course first.
type CategoryView struct {
	Category *domain.Category `json:"category"`
	Courses  []*domain.Course `json:"courses"`
}

type VideoView struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	SmallDescription string    `json:"small_description"`
	Order            int       `json:"order"`
	IsBlocked        bool      `json:"is_blocked"`
	IsAccessible     bool      `json:"is_accessible"`
	IsCompleted      bool      `json:"is_completed"`
}

type SectionView struct {
	ID               uuid.UUID    `json:"id"`
	Title            string       `json:"title"`
	SmallDescription string       `json:"small_description"`
	Order            int          `json:"order"`
	IsBlocked        bool         `json:"is_blocked"`
	IsCompleted      bool         `json:"is_completed"`
	ScorePercent     float64      `json:"score_percent"`
	CanStartMissions bool         `json:"can_start_missions"`
	Videos           []*VideoView `json:"videos"`
}

type CourseView struct {
	ID               uuid.UUID      `json:"id"`
	CategoryID       uuid.UUID      `json:"category_id"`
	Title            string         `json:"title"`
	Author           string         `json:"author"`
	SmallDescription string         `json:"small_description"`
	IsBlocked        bool           `json:"is_blocked"`
	ProgressPercent  int            `json:"progress_percent"`
	IsCompleted      bool           `json:"is_completed"`
	Sections         []*SectionView `json:"sections"`
}

type CourseViewService interface {
	ListCategories(ctx context.Context) ([]*CategoryView, error)
	GetCourseView(ctx context.Context, courseID uuid.UUID) (*CourseView, error)
	SectionVideosWithAccess(ctx context.Context, sectionID uuid.UUID) ([]*VideoView, error)
}

type courseViewService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	cache               *rediscache.Cache
	categoryRepo        catalogrepo.CategoryRepo
	courseRepo          catalogrepo.CourseRepo
	sectionRepo         catalogrepo.SectionRepo
	videoRepo           catalogrepo.VideoRepo
	videoProgressRepo   progressrepo.VideoProgressRepo
	sectionProgressRepo progressrepo.SectionProgressRepo
	courseProgressRepo  progressrepo.CourseProgressRepo
}

func NewCourseViewService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache *rediscache.Cache,
	categoryRepo catalogrepo.CategoryRepo,
	courseRepo catalogrepo.CourseRepo,
	sectionRepo catalogrepo.SectionRepo,
	videoRepo catalogrepo.VideoRepo,
	videoProgressRepo progressrepo.VideoProgressRepo,
	sectionProgressRepo progressrepo.SectionProgressRepo,
	courseProgressRepo progressrepo.CourseProgressRepo,
) CourseViewService {
	return &courseViewService{
		db:                  db,
		log:                 baseLog.With("service", "CourseViewService"),
		cache:               cache,
		categoryRepo:        categoryRepo,
		courseRepo:          courseRepo,
		sectionRepo:         sectionRepo,
		videoRepo:           videoRepo,
		videoProgressRepo:   videoProgressRepo,
		sectionProgressRepo: sectionProgressRepo,
		courseProgressRepo:  courseProgressRepo,
	}
}

func (s *courseViewService) ListCategories(ctx context.Context) ([]*CategoryView, error) {
	categories, err := s.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	courses, err := s.courseRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	byCategory := make(map[uuid.UUID][]*domain.Course, len(categories))
	for _, c := range courses {
		byCategory[c.CategoryID] = append(byCategory[c.CategoryID], c)
	}

	views := make([]*CategoryView, 0, len(categories))
	for _, cat := range categories {
		courseList := byCategory[cat.ID]
		if courseList == nil {
			courseList = []*domain.Course{}
		}
		views = append(views, &CategoryView{Category: cat, Courses: courseList})
	}
	return views, nil
}

// GetCourseView assembles the per-user course tree: sections in order,
// videos in order, each video carrying its reachability and completion.
// Anonymous callers get the fail-closed view, only first videos reachable
// and nothing completed.
func (s *courseViewService) GetCourseView(ctx context.Context, courseID uuid.UUID) (*CourseView, error) {
	rd := requestdata.GetRequestData(ctx)
	userID := uuid.Nil
	role := ""
	if rd != nil {
		userID = rd.UserID
		role = rd.Role
	}

	cacheKey := ""
	if userID != uuid.Nil {
		cacheKey = rediscache.CourseViewKey(courseID, userID)
		var cached CourseView
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("course %s: %w", courseID, apperr.ErrNotFound)
	}
	course := courses[0]

	sections, err := s.sectionRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	videos, err := s.videoRepo.GetBySectionIDs(ctx, nil, sectionIDs(sections))
	if err != nil {
		return nil, fmt.Errorf("load videos: %w", err)
	}

	completed := progression.CompletedSet{}
	sectionProgressBySection := map[uuid.UUID]*domain.SectionProgress{}
	var courseProgress *domain.CourseProgress
	if userID != uuid.Nil {
		completed, err = completedVideoSet(ctx, nil, s.videoProgressRepo, userID, videos)
		if err != nil {
			return nil, fmt.Errorf("load completed facts: %w", err)
		}
		sectionFacts, err := s.sectionProgressRepo.GetByUserAndSectionIDs(ctx, nil, userID, sectionIDs(sections))
		if err != nil {
			return nil, fmt.Errorf("load section progress: %w", err)
		}
		for _, f := range sectionFacts {
			sectionProgressBySection[f.SectionID] = f
		}
		courseFacts, err := s.courseProgressRepo.GetByUserAndCourseIDs(ctx, nil, userID, []uuid.UUID{courseID})
		if err != nil {
			return nil, fmt.Errorf("load course progress: %w", err)
		}
		if len(courseFacts) > 0 {
			courseProgress = courseFacts[0]
		}
	}

	videosBySection := make(map[uuid.UUID][]*domain.Video, len(sections))
	for _, v := range videos {
		videosBySection[v.SectionID] = append(videosBySection[v.SectionID], v)
	}

	view := &CourseView{
		ID:               course.ID,
		CategoryID:       course.CategoryID,
		Title:            course.Title,
		Author:           course.Author,
		SmallDescription: course.SmallDescription,
		IsBlocked:        course.IsBlocked,
		Sections:         make([]*SectionView, 0, len(sections)),
	}
	if courseProgress != nil {
		view.ProgressPercent = courseProgress.ProgressPercent
		view.IsCompleted = courseProgress.IsCompleted
	}

	for _, section := range sections {
		sectionVideos := videosBySection[section.ID]
		sv := &SectionView{
			ID:               section.ID,
			Title:            section.Title,
			SmallDescription: section.SmallDescription,
			Order:            section.Order,
			IsBlocked:        section.IsBlocked,
			CanStartMissions: progression.CanStartMissions(sectionVideos, completed),
			Videos:           buildVideoViews(role, sectionVideos, completed),
		}
		if sp := sectionProgressBySection[section.ID]; sp != nil {
			sv.IsCompleted = sp.IsCompleted
			sv.ScorePercent = sp.ScorePercent
		}
		view.Sections = append(view.Sections, sv)
	}

	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, view)
	}
	return view, nil
}

func (s *courseViewService) SectionVideosWithAccess(ctx context.Context, sectionID uuid.UUID) ([]*VideoView, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{sectionID})
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("section %s: %w", sectionID, apperr.ErrNotFound)
	}

	videos, err := s.videoRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{sectionID})
	if err != nil {
		return nil, fmt.Errorf("load videos: %w", err)
	}
	completed, err := completedVideoSet(ctx, nil, s.videoProgressRepo, rd.UserID, videos)
	if err != nil {
		return nil, fmt.Errorf("load completed facts: %w", err)
	}
	return buildVideoViews(rd.Role, videos, completed), nil
}

func buildVideoViews(role string, videos []*domain.Video, completed progression.CompletedSet) []*VideoView {
	views := make([]*VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, &VideoView{
			ID:               v.ID,
			Title:            v.Title,
			SmallDescription: v.SmallDescription,
			Order:            v.Order,
			IsBlocked:        v.IsBlocked,
			IsAccessible:     progression.CanAccessVideo(role, v, videos, completed),
			IsCompleted:      completed[v.ID],
		})
	}
	return views
}
