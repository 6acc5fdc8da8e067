package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type MissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, missions []*domain.Mission) ([]*domain.Mission, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, missionIDs []uuid.UUID) ([]*domain.Mission, error)
	GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*domain.Mission, error)
}

type missionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMissionRepo(db *gorm.DB, baseLog *logger.Logger) MissionRepo {
	repoLog := baseLog.With("repo", "MissionRepo")
	return &missionRepo{db: db, log: repoLog}
}

func (r *missionRepo) Create(ctx context.Context, tx *gorm.DB, missions []*domain.Mission) ([]*domain.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(missions) == 0 {
		return []*domain.Mission{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *missionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, missionIDs []uuid.UUID) ([]*domain.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Mission
	if len(missionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", missionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *missionRepo) GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*domain.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Mission
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
