package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type RatingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ratings []*domain.VideoRating) ([]*domain.VideoRating, error)
	ListByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, limit, offset int) ([]*domain.VideoRating, error)
	CountByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (int64, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	repoLog := baseLog.With("repo", "RatingRepo")
	return &ratingRepo{db: db, log: repoLog}
}

func (r *ratingRepo) Create(ctx context.Context, tx *gorm.DB, ratings []*domain.VideoRating) ([]*domain.VideoRating, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ratings) == 0 {
		return []*domain.VideoRating{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepo) ListByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, limit, offset int) ([]*domain.VideoRating, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.VideoRating
	if err := transaction.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ratingRepo) CountByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.VideoRating{}).
		Where("video_id = ?", videoID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
