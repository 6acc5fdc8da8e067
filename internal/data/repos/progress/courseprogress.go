package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type CourseProgressRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*domain.CourseProgress, error)
	Save(ctx context.Context, tx *gorm.DB, row *domain.CourseProgress) error
	GetByUserAndCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseIDs []uuid.UUID) ([]*domain.CourseProgress, error)
}

type courseProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseProgressRepo(db *gorm.DB, baseLog *logger.Logger) CourseProgressRepo {
	repoLog := baseLog.With("repo", "CourseProgressRepo")
	return &courseProgressRepo{db: db, log: repoLog}
}

func (r *courseProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*domain.CourseProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row domain.CourseProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID != uuid.Nil {
		return &row, nil
	}

	row = domain.CourseProgress{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
	}
	if err := transaction.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *courseProgressRepo) Save(ctx context.Context, tx *gorm.DB, row *domain.CourseProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *courseProgressRepo) GetByUserAndCourseIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseIDs []uuid.UUID) ([]*domain.CourseProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.CourseProgress
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
