package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	progressrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/progress"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/modules/progression"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/requestdata"
)

func requester(ctx context.Context) (*requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	return rd, nil
}

func videoIDs(videos []*domain.Video) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}

func sectionIDs(sections []*domain.Section) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// completedVideoSet loads the user's completed facts for the given videos.
func completedVideoSet(
	ctx context.Context,
	tx *gorm.DB,
	repo progressrepo.VideoProgressRepo,
	userID uuid.UUID,
	videos []*domain.Video,
) (progression.CompletedSet, error) {
	facts, err := repo.GetByUserAndVideoIDs(ctx, tx, userID, videoIDs(videos))
	if err != nil {
		return nil, err
	}
	completed := make(progression.CompletedSet, len(facts))
	for _, f := range facts {
		if f.IsCompleted {
			completed[f.VideoID] = true
		}
	}
	return completed, nil
}
