package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type SectionProgressRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (*domain.SectionProgress, error)
	Save(ctx context.Context, tx *gorm.DB, row *domain.SectionProgress) error
	GetByUserAndSectionIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sectionIDs []uuid.UUID) ([]*domain.SectionProgress, error)
	CompletedCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sectionIDs []uuid.UUID) (int, error)
}

type sectionProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionProgressRepo(db *gorm.DB, baseLog *logger.Logger) SectionProgressRepo {
	repoLog := baseLog.With("repo", "SectionProgressRepo")
	return &sectionProgressRepo{db: db, log: repoLog}
}

func (r *sectionProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (*domain.SectionProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row domain.SectionProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID != uuid.Nil {
		return &row, nil
	}

	row = domain.SectionProgress{
		ID:        uuid.New(),
		UserID:    userID,
		SectionID: sectionID,
	}
	if err := transaction.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *sectionProgressRepo) Save(ctx context.Context, tx *gorm.DB, row *domain.SectionProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *sectionProgressRepo) GetByUserAndSectionIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sectionIDs []uuid.UUID) ([]*domain.SectionProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.SectionProgress
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND section_id IN ?", userID, sectionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionProgressRepo) CompletedCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sectionIDs []uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sectionIDs) == 0 {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.SectionProgress{}).
		Where("user_id = ? AND section_id IN ? AND is_completed = ?", userID, sectionIDs, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
