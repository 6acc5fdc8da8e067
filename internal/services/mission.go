package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	progressrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/progress"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/modules/progression"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/platform/rediscache"
)

// ApprovalResult reports the mission-track recomputation triggered by an
// approval, for the submission's author.
type ApprovalResult struct {
	SubmissionID     uuid.UUID  `json:"submission_id"`
	UserID           uuid.UUID  `json:"user_id"`
	ScorePercent     float64    `json:"score_percent"`
	SectionCompleted bool       `json:"section_completed"`
	UnblockedSection *uuid.UUID `json:"unblocked_section_id,omitempty"`
}

type MissionService interface {
	ListSectionMissions(ctx context.Context, sectionID uuid.UUID) ([]*domain.Mission, error)
	SubmitAssignment(ctx context.Context, missionID uuid.UUID, description string, payload datatypes.JSON) (*domain.Submission, error)
	ReviewSubmission(ctx context.Context, submissionID uuid.UUID, score int, approve bool) (*ApprovalResult, error)
}

type missionService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	cache               *rediscache.Cache
	missionRepo         catalogrepo.MissionRepo
	submissionRepo      catalogrepo.SubmissionRepo
	sectionRepo         catalogrepo.SectionRepo
	videoRepo           catalogrepo.VideoRepo
	videoProgressRepo   progressrepo.VideoProgressRepo
	sectionProgressRepo progressrepo.SectionProgressRepo
	courseProgressRepo  progressrepo.CourseProgressRepo
}

func NewMissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cache *rediscache.Cache,
	missionRepo catalogrepo.MissionRepo,
	submissionRepo catalogrepo.SubmissionRepo,
	sectionRepo catalogrepo.SectionRepo,
	videoRepo catalogrepo.VideoRepo,
	videoProgressRepo progressrepo.VideoProgressRepo,
	sectionProgressRepo progressrepo.SectionProgressRepo,
	courseProgressRepo progressrepo.CourseProgressRepo,
) MissionService {
	return &missionService{
		db:                  db,
		log:                 baseLog.With("service", "MissionService"),
		cache:               cache,
		missionRepo:         missionRepo,
		submissionRepo:      submissionRepo,
		sectionRepo:         sectionRepo,
		videoRepo:           videoRepo,
		videoProgressRepo:   videoProgressRepo,
		sectionProgressRepo: sectionProgressRepo,
		courseProgressRepo:  courseProgressRepo,
	}
}

// missionGate enforces the watch-gate: a student may touch a section's
// missions only once the gating video is completed. Staff bypass it.
func (s *missionService) missionGate(ctx context.Context, role string, userID, sectionID uuid.UUID) error {
	if role == domain.RoleAdmin || role == domain.RoleTeacher {
		return nil
	}
	videos, err := s.videoRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{sectionID})
	if err != nil {
		return fmt.Errorf("load section videos: %w", err)
	}
	completed, err := completedVideoSet(ctx, nil, s.videoProgressRepo, userID, videos)
	if err != nil {
		return fmt.Errorf("load completed facts: %w", err)
	}
	if !progression.CanStartMissions(videos, completed) {
		return fmt.Errorf("section %s missions are gated: %w", sectionID, apperr.ErrAccessDenied)
	}
	return nil
}

func (s *missionService) ListSectionMissions(ctx context.Context, sectionID uuid.UUID) ([]*domain.Mission, error) {
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

	if err := s.missionGate(ctx, rd.Role, rd.UserID, sectionID); err != nil {
		return nil, err
	}
	return s.missionRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{sectionID})
}

func (s *missionService) SubmitAssignment(ctx context.Context, missionID uuid.UUID, description string, payload datatypes.JSON) (*domain.Submission, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	missions, err := s.missionRepo.GetByIDs(ctx, nil, []uuid.UUID{missionID})
	if err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	if len(missions) == 0 {
		return nil, fmt.Errorf("mission %s: %w", missionID, apperr.ErrNotFound)
	}
	mission := missions[0]

	if err := s.missionGate(ctx, rd.Role, rd.UserID, mission.SectionID); err != nil {
		return nil, err
	}

	// The denominator of the mission track is "missions with at least
	// one submission", so a brand-new submission shifts the user's
	// percent and must recompute it alongside the insert.
	submission := &domain.Submission{
		ID:          uuid.New(),
		MissionID:   mission.ID,
		UserID:      rd.UserID,
		Description: description,
		Payload:     payload,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.submissionRepo.Create(ctx, tx, []*domain.Submission{submission}); err != nil {
			return fmt.Errorf("create submission: %w", err)
		}
		_, err := s.recomputeMissionTrack(ctx, tx, rd.UserID, mission.SectionID)
		return err
	})
	if err != nil {
		s.log.Warn("SubmitAssignment failed", "mission_id", missionID, "user_id", rd.UserID, "error", err)
		return nil, err
	}
	return submission, nil
}

// recomputeMissionTrack refreshes the user's SectionProgress from the
// mission aggregate and reports whether the completion bar was crossed
// upward by this write.
func (s *missionService) recomputeMissionTrack(ctx context.Context, tx *gorm.DB, userID, sectionID uuid.UUID) (*missionTrackState, error) {
	approved, err := s.submissionRepo.ApprovedCountForUser(ctx, tx, sectionID, userID)
	if err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	distinct, err := s.submissionRepo.DistinctMissionCount(ctx, tx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("count distinct missions: %w", err)
	}
	agg := progression.AggregateSectionMissions(approved, distinct)

	sp, err := s.sectionProgressRepo.GetOrCreate(ctx, tx, userID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("upsert section progress: %w", err)
	}
	crossed := agg.IsCompleted && !sp.IsCompleted
	if crossed && sp.CompletedAt == nil {
		now := time.Now()
		sp.CompletedAt = &now
	}
	sp.ScorePercent = agg.ScorePercent
	sp.IsCompleted = agg.IsCompleted
	if err := s.sectionProgressRepo.Save(ctx, tx, sp); err != nil {
		return nil, fmt.Errorf("save section progress: %w", err)
	}
	return &missionTrackState{aggregate: agg, crossed: crossed}, nil
}

type missionTrackState struct {
	aggregate progression.MissionAggregate
	crossed   bool
}

// ReviewSubmission sets a submission's score and approval flag, then
// recomputes the author's mission track for the section. Crossing the
// threshold completes the section and unblocks the next one, then
// refreshes the course aggregate, all inside one transaction.
func (s *missionService) ReviewSubmission(ctx context.Context, submissionID uuid.UUID, score int, approve bool) (*ApprovalResult, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	if rd.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("approval is admin-only: %w", apperr.ErrForbidden)
	}

	submissions, err := s.submissionRepo.GetByIDs(ctx, nil, []uuid.UUID{submissionID})
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if len(submissions) == 0 {
		return nil, fmt.Errorf("submission %s: %w", submissionID, apperr.ErrNotFound)
	}
	submission := submissions[0]

	missions, err := s.missionRepo.GetByIDs(ctx, nil, []uuid.UUID{submission.MissionID})
	if err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	if len(missions) == 0 {
		return nil, fmt.Errorf("mission %s: %w", submission.MissionID, apperr.ErrNotFound)
	}
	mission := missions[0]

	sections, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{mission.SectionID})
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("section %s: %w", mission.SectionID, apperr.ErrNotFound)
	}
	section := sections[0]

	result := &ApprovalResult{SubmissionID: submission.ID, UserID: submission.UserID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		submission.IsApproved = approve
		submission.Score = score
		if err := s.submissionRepo.Save(ctx, tx, submission); err != nil {
			return fmt.Errorf("save submission: %w", err)
		}

		state, err := s.recomputeMissionTrack(ctx, tx, submission.UserID, section.ID)
		if err != nil {
			return err
		}
		result.ScorePercent = state.aggregate.ScorePercent
		result.SectionCompleted = state.aggregate.IsCompleted

		courseSections, err := s.sectionRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{section.CourseID})
		if err != nil {
			return fmt.Errorf("load course sections: %w", err)
		}

		if state.crossed {
			if next := progression.NextSection(courseSections, section); next != nil && next.IsBlocked {
				if err := s.sectionRepo.SetBlocked(ctx, tx, next.ID, false); err != nil {
					return fmt.Errorf("unblock next section: %w", err)
				}
				result.UnblockedSection = &next.ID
			}
		}

		completedSections, err := s.sectionProgressRepo.CompletedCount(ctx, tx, submission.UserID, sectionIDs(courseSections))
		if err != nil {
			return fmt.Errorf("count completed sections: %w", err)
		}
		cagg := progression.AggregateCourseSections(completedSections, len(courseSections))

		cp, err := s.courseProgressRepo.GetOrCreate(ctx, tx, submission.UserID, section.CourseID)
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
		return nil
	})
	if err != nil {
		s.log.Error("ReviewSubmission cascade failed", "submission_id", submissionID, "error", err)
		return nil, err
	}

	s.cache.Delete(ctx, rediscache.CourseViewKey(section.CourseID, submission.UserID))
	return result, nil
}
