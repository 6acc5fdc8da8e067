package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type VideoProgressRepo interface {
	// GetOrCreate loads the unique (user, video) fact, creating an
	// incomplete one when absent.
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, videoID uuid.UUID) (*domain.VideoProgress, error)
	Save(ctx context.Context, tx *gorm.DB, row *domain.VideoProgress) error
	GetByUserAndVideoIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, videoIDs []uuid.UUID) ([]*domain.VideoProgress, error)
}

type videoProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoProgressRepo(db *gorm.DB, baseLog *logger.Logger) VideoProgressRepo {
	repoLog := baseLog.With("repo", "VideoProgressRepo")
	return &videoProgressRepo{db: db, log: repoLog}
}

func (r *videoProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, videoID uuid.UUID) (*domain.VideoProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row domain.VideoProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID != uuid.Nil {
		return &row, nil
	}

	row = domain.VideoProgress{
		ID:      uuid.New(),
		UserID:  userID,
		VideoID: videoID,
	}
	if err := transaction.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *videoProgressRepo) Save(ctx context.Context, tx *gorm.DB, row *domain.VideoProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *videoProgressRepo) GetByUserAndVideoIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, videoIDs []uuid.UUID) ([]*domain.VideoProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.VideoProgress
	if len(videoIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
