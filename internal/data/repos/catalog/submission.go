package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, submissions []*domain.Submission) ([]*domain.Submission, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*domain.Submission, error)
	GetByMissionIDs(ctx context.Context, tx *gorm.DB, missionIDs []uuid.UUID) ([]*domain.Submission, error)
	Save(ctx context.Context, tx *gorm.DB, submission *domain.Submission) error
	// DistinctMissionCount counts the section's missions holding at least
	// one submission by anyone; it is the mission-track denominator.
	DistinctMissionCount(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) (int, error)
	// ApprovedCountForUser counts the user's approved submissions across
	// the section's missions; it is the mission-track numerator.
	ApprovedCountForUser(ctx context.Context, tx *gorm.DB, sectionID, userID uuid.UUID) (int, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	repoLog := baseLog.With("repo", "SubmissionRepo")
	return &submissionRepo{db: db, log: repoLog}
}

func (r *submissionRepo) Create(ctx context.Context, tx *gorm.DB, submissions []*domain.Submission) ([]*domain.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(submissions) == 0 {
		return []*domain.Submission{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*domain.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Submission
	if len(submissionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", submissionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) GetByMissionIDs(ctx context.Context, tx *gorm.DB, missionIDs []uuid.UUID) ([]*domain.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Submission
	if len(missionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("mission_id IN ?", missionIDs).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) Save(ctx context.Context, tx *gorm.DB, submission *domain.Submission) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepo) DistinctMissionCount(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Submission{}).
		Joins("JOIN mission ON mission.id = submission.mission_id").
		Where("mission.section_id = ?", sectionID).
		Distinct("submission.mission_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *submissionRepo) ApprovedCountForUser(ctx context.Context, tx *gorm.DB, sectionID, userID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Submission{}).
		Joins("JOIN mission ON mission.id = submission.mission_id").
		Where("mission.section_id = ? AND submission.user_id = ? AND submission.is_approved = ?", sectionID, userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
