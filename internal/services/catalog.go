package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/modules/progression"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type CatalogService interface {
	CreateCategory(ctx context.Context, title string) (*domain.Category, error)
	CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error)
	CreateSection(ctx context.Context, courseID uuid.UUID, title, smallDescription string) (*domain.Section, error)
	CreateVideo(ctx context.Context, sectionID uuid.UUID, title, smallDescription string) (*domain.Video, error)
	CreateMission(ctx context.Context, sectionID uuid.UUID, description string) (*domain.Mission, error)
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo catalogrepo.CategoryRepo
	courseRepo   catalogrepo.CourseRepo
	sectionRepo  catalogrepo.SectionRepo
	videoRepo    catalogrepo.VideoRepo
	missionRepo  catalogrepo.MissionRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	categoryRepo catalogrepo.CategoryRepo,
	courseRepo catalogrepo.CourseRepo,
	sectionRepo catalogrepo.SectionRepo,
	videoRepo catalogrepo.VideoRepo,
	missionRepo catalogrepo.MissionRepo,
) CatalogService {
	return &catalogService{
		db:           db,
		log:          baseLog.With("service", "CatalogService"),
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		sectionRepo:  sectionRepo,
		videoRepo:    videoRepo,
		missionRepo:  missionRepo,
	}
}

func requireStaff(ctx context.Context) (*requesterInfo, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	if rd.Role != domain.RoleAdmin && rd.Role != domain.RoleTeacher {
		return nil, fmt.Errorf("catalog writes are staff-only: %w", apperr.ErrForbidden)
	}
	return &requesterInfo{UserID: rd.UserID, Role: rd.Role}, nil
}

type requesterInfo struct {
	UserID uuid.UUID
	Role   string
}

func (s *catalogService) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrInvalidArgument)
	}

	category := &domain.Category{ID: uuid.New(), Title: title}
	created, err := s.categoryRepo.Create(ctx, nil, []*domain.Category{category})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *catalogService) CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if course == nil || strings.TrimSpace(course.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrInvalidArgument)
	}
	categories, err := s.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{course.CategoryID})
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("category %s: %w", course.CategoryID, apperr.ErrNotFound)
	}

	course.ID = uuid.New()
	created, err := s.courseRepo.Create(ctx, nil, []*domain.Course{course})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateSection allocates the next order slot inside the insert
// transaction so concurrent creates cannot collide. The course's first
// section starts unblocked.
func (s *catalogService) CreateSection(ctx context.Context, courseID uuid.UUID, title, smallDescription string) (*domain.Section, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrInvalidArgument)
	}
	courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("course %s: %w", courseID, apperr.ErrNotFound)
	}

	var section *domain.Section
	err = s.db.Transaction(func(tx *gorm.DB) error {
		maxOrder, err := s.sectionRepo.MaxOrder(ctx, tx, courseID)
		if err != nil {
			return fmt.Errorf("max order: %w", err)
		}
		section = &domain.Section{
			ID:               uuid.New(),
			CourseID:         courseID,
			Title:            title,
			SmallDescription: smallDescription,
			Order:            progression.NextOrder(maxOrder),
			IsBlocked:        maxOrder > 0,
		}
		_, err = s.sectionRepo.Create(ctx, tx, []*domain.Section{section})
		return err
	})
	if err != nil {
		s.log.Warn("CreateSection failed", "course_id", courseID, "error", err)
		return nil, err
	}
	return section, nil
}

// CreateVideo mirrors CreateSection: next order slot in-transaction, and
// the lowest-order video of a section is never blocked.
func (s *catalogService) CreateVideo(ctx context.Context, sectionID uuid.UUID, title, smallDescription string) (*domain.Video, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrInvalidArgument)
	}
	sections, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{sectionID})
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("section %s: %w", sectionID, apperr.ErrNotFound)
	}

	var video *domain.Video
	err = s.db.Transaction(func(tx *gorm.DB) error {
		maxOrder, err := s.videoRepo.MaxOrder(ctx, tx, sectionID)
		if err != nil {
			return fmt.Errorf("max order: %w", err)
		}
		video = &domain.Video{
			ID:               uuid.New(),
			SectionID:        sectionID,
			Title:            title,
			SmallDescription: smallDescription,
			Order:            progression.NextOrder(maxOrder),
			IsBlocked:        maxOrder > 0,
		}
		_, err = s.videoRepo.Create(ctx, tx, []*domain.Video{video})
		return err
	})
	if err != nil {
		s.log.Warn("CreateVideo failed", "section_id", sectionID, "error", err)
		return nil, err
	}
	return video, nil
}

func (s *catalogService) CreateMission(ctx context.Context, sectionID uuid.UUID, description string) (*domain.Mission, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	sections, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{sectionID})
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("section %s: %w", sectionID, apperr.ErrNotFound)
	}

	mission := &domain.Mission{
		ID:          uuid.New(),
		SectionID:   sectionID,
		Description: description,
	}
	created, err := s.missionRepo.Create(ctx, nil, []*domain.Mission{mission})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}
