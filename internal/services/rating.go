package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

// RatingSummary is one page of a video's ratings plus the running average.
type RatingSummary struct {
	Items   []*domain.VideoRating `json:"items"`
	Total   int64                 `json:"total"`
	Average float64               `json:"average"`
}

type RatingService interface {
	RateVideo(ctx context.Context, videoID uuid.UUID, rating int) (*domain.VideoRating, error)
	ListRatings(ctx context.Context, videoID uuid.UUID, limit, offset int) (*RatingSummary, error)
}

type ratingService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo catalogrepo.RatingRepo
	videoRepo  catalogrepo.VideoRepo
}

func NewRatingService(db *gorm.DB, baseLog *logger.Logger, ratingRepo catalogrepo.RatingRepo, videoRepo catalogrepo.VideoRepo) RatingService {
	return &ratingService{
		db:         db,
		log:        baseLog.With("service", "RatingService"),
		ratingRepo: ratingRepo,
		videoRepo:  videoRepo,
	}
}

func (s *ratingService) RateVideo(ctx context.Context, videoID uuid.UUID, rating int) (*domain.VideoRating, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be 1..5: %w", apperr.ErrInvalidArgument)
	}
	videos, err := s.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, apperr.ErrNotFound)
	}

	row := &domain.VideoRating{
		ID:      uuid.New(),
		VideoID: videoID,
		UserID:  rd.UserID,
		Rating:  rating,
	}
	created, err := s.ratingRepo.Create(ctx, nil, []*domain.VideoRating{row})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *ratingService) ListRatings(ctx context.Context, videoID uuid.UUID, limit, offset int) (*RatingSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.ratingRepo.ListByVideoID(ctx, nil, videoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	total, err := s.ratingRepo.CountByVideoID(ctx, nil, videoID)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	summary := &RatingSummary{Items: items, Total: total}
	if len(items) > 0 {
		sum := 0
		for _, r := range items {
			sum += r.Rating
		}
		summary.Average = float64(sum) / float64(len(items))
	}
	return summary, nil
}
