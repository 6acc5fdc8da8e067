package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	progressrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/progress"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/modules/progression"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/platform/rediscache"
)

// VideoAccess is the reachability answer for one (user, video) pair.
// NextVideoID is revealed only when the video itself is accessible and
// the following video is reachable too.
type VideoAccess struct {
	VideoID     uuid.UUID  `json:"video_id"`
	HasAccess   bool       `json:"has_access"`
	NextVideoID *uuid.UUID `json:"next_video_id,omitempty"`
}

// WatchResult reports the full cascade outcome of marking one video
// watched, including whether the following video became reachable.
type WatchResult struct {
	VideoID             uuid.UUID  `json:"video_id"`
	SectionPercent      int        `json:"section_percent"`
	SectionCompleted    bool       `json:"section_completed"`
	CoursePercent       int        `json:"course_percent"`
	CourseCompleted     bool       `json:"course_completed"`
	NextVideoID         *uuid.UUID `json:"next_video_id,omitempty"`
	NextVideoAccessible bool       `json:"next_video_accessible"`
}

type VideoService interface {
	CheckAccess(ctx context.Context, videoID uuid.UUID) (*VideoAccess, error)
	MarkWatched(ctx context.Context, videoID uuid.UUID) (*WatchResult, error)
}

type videoService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	cache               *rediscache.Cache
	videoRepo           catalogrepo.VideoRepo
	sectionRepo         catalogrepo.SectionRepo
	videoProgressRepo   progressrepo.VideoProgressRepo
	sectionProgressRepo progressrepo.SectionProgressRepo
	courseProgressRepo  progressrepo.CourseProgressRepo
}

func NewVideoService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache *rediscache.Cache,
	videoRepo catalogrepo.VideoRepo,
	sectionRepo catalogrepo.SectionRepo,
	videoProgressRepo progressrepo.VideoProgressRepo,
	sectionProgressRepo progressrepo.SectionProgressRepo,
	courseProgressRepo progressrepo.CourseProgressRepo,
) VideoService {
	return &videoService{
		db:                  db,
		log:                 baseLog.With("service", "VideoService"),
		cache:               cache,
		videoRepo:           videoRepo,
		sectionRepo:         sectionRepo,
		videoProgressRepo:   videoProgressRepo,
		sectionProgressRepo: sectionProgressRepo,
		courseProgressRepo:  courseProgressRepo,
	}
}

func (s *videoService) loadVideoWithSiblings(ctx context.Context, videoID uuid.UUID) (*domain.Video, []*domain.Video, error) {
	videos, err := s.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, nil, fmt.Errorf("video %s: %w", videoID, apperr.ErrNotFound)
	}
	video := videos[0]

	siblings, err := s.videoRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{video.SectionID})
	if err != nil {
		return nil, nil, fmt.Errorf("load section videos: %w", err)
	}
	return video, siblings, nil
}

func (s *videoService) CheckAccess(ctx context.Context, videoID uuid.UUID) (*VideoAccess, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	video, siblings, err := s.loadVideoWithSiblings(ctx, videoID)
	if err != nil {
		return nil, err
	}

	completed, err := completedVideoSet(ctx, nil, s.videoProgressRepo, rd.UserID, siblings)
	if err != nil {
		return nil, fmt.Errorf("load completed facts: %w", err)
	}

	access := &VideoAccess{
		VideoID:   video.ID,
		HasAccess: progression.CanAccessVideo(rd.Role, video, siblings, completed),
	}
	if access.HasAccess {
		if next := progression.NextVideo(siblings, video); next != nil && progression.CanAccessVideo(rd.Role, next, siblings, completed) {
			access.NextVideoID = &next.ID
		}
	}
	return access, nil
}

// MarkWatched upserts the caller's completion fact for the video and
// recomputes the section and course aggregates in one transaction. The
// whole cascade commits or none of it does.
func (s *videoService) MarkWatched(ctx context.Context, videoID uuid.UUID) (*WatchResult, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	video, siblings, err := s.loadVideoWithSiblings(ctx, videoID)
	if err != nil {
		return nil, err
	}

	completed, err := completedVideoSet(ctx, nil, s.videoProgressRepo, rd.UserID, siblings)
	if err != nil {
		return nil, fmt.Errorf("load completed facts: %w", err)
	}
	if !progression.CanAccessVideo(rd.Role, video, siblings, completed) {
		return nil, fmt.Errorf("video %s is locked: %w", videoID, apperr.ErrAccessDenied)
	}

	sections, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{video.SectionID})
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("section %s: %w", video.SectionID, apperr.ErrNotFound)
	}
	section := sections[0]

	result := &WatchResult{VideoID: video.ID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		fact, err := s.videoProgressRepo.GetOrCreate(ctx, tx, rd.UserID, video.ID)
		if err != nil {
			return fmt.Errorf("upsert video fact: %w", err)
		}
		if !fact.IsCompleted {
			fact.IsCompleted = true
			now := time.Now()
			fact.CompletedAt = &now
			if err := s.videoProgressRepo.Save(ctx, tx, fact); err != nil {
				return fmt.Errorf("save video fact: %w", err)
			}
		}

		facts, err := s.videoProgressRepo.GetByUserAndVideoIDs(ctx, tx, rd.UserID, videoIDs(siblings))
		if err != nil {
			return fmt.Errorf("load section facts: %w", err)
		}
		completedCount := 0
		for _, f := range facts {
			if f.IsCompleted {
				completedCount++
			}
		}
		agg := progression.AggregateSectionVideos(completedCount, len(siblings))

		sp, err := s.sectionProgressRepo.GetOrCreate(ctx, tx, rd.UserID, section.ID)
		if err != nil {
			return fmt.Errorf("upsert section progress: %w", err)
		}
		if agg.IsCompleted && !sp.IsCompleted && sp.CompletedAt == nil {
			now := time.Now()
			sp.CompletedAt = &now
		}
		sp.IsCompleted = agg.IsCompleted
		if err := s.sectionProgressRepo.Save(ctx, tx, sp); err != nil {
			return fmt.Errorf("save section progress: %w", err)
		}
		result.SectionPercent = agg.Percent
		result.SectionCompleted = agg.IsCompleted

		courseSections, err := s.sectionRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{section.CourseID})
		if err != nil {
			return fmt.Errorf("load course sections: %w", err)
		}
		completedSections, err := s.sectionProgressRepo.CompletedCount(ctx, tx, rd.UserID, sectionIDs(courseSections))
		if err != nil {
			return fmt.Errorf("count completed sections: %w", err)
		}
		cagg := progression.AggregateCourseSections(completedSections, len(courseSections))

		cp, err := s.courseProgressRepo.GetOrCreate(ctx, tx, rd.UserID, section.CourseID)
		if err != nil {
			return fmt.Errorf("upsert course progress: %w", err)
		}
		if cagg.IsCompleted && !cp.IsCompleted && cp.CompletedAt == nil {
			now := time.Now()
			cp.CompletedAt = &now
		}
		cp.ProgressPercent = cagg.Percent
		cp.IsCompleted = cagg.IsCompleted
		if err := s.courseProgressRepo.Save(ctx, tx, cp); err != nil {
			return fmt.Errorf("save course progress: %w", err)
		}
		result.CoursePercent = cagg.Percent
		result.CourseCompleted = cagg.IsCompleted
		return nil
	})
	if err != nil {
		s.log.Error("MarkWatched cascade failed", "video_id", videoID, "user_id", rd.UserID, "error", err)
		return nil, err
	}

	// Reachability of the following video is answered against the state
	// just written.
	completed[video.ID] = true
	if next := progression.NextVideo(siblings, video); next != nil {
		result.NextVideoID = &next.ID
		result.NextVideoAccessible = progression.CanAccessVideo(rd.Role, next, siblings, completed)
	}

	s.cache.Delete(ctx, rediscache.CourseViewKey(section.CourseID, rd.UserID))
	return result, nil
}
