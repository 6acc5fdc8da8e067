package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/UPTUZOVER/iiv-talim/internal/data/repos/catalog"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
)

// CommentPage is one page of a video's comments, newest first.
type CommentPage struct {
	Items []*domain.Comment `json:"items"`
	Total int64             `json:"total"`
}

type CommentService interface {
	AddComment(ctx context.Context, videoID uuid.UUID, text string) (*domain.Comment, error)
	ListComments(ctx context.Context, videoID uuid.UUID, limit, offset int) (*CommentPage, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

type commentService struct {
	db          *gorm.DB
	log         *logger.Logger
	commentRepo catalogrepo.CommentRepo
	videoRepo   catalogrepo.VideoRepo
}

func NewCommentService(db *gorm.DB, baseLog *logger.Logger, commentRepo catalogrepo.CommentRepo, videoRepo catalogrepo.VideoRepo) CommentService {
	return &commentService{
		db:          db,
		log:         baseLog.With("service", "CommentService"),
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, videoID uuid.UUID, text string) (*domain.Comment, error) {
	rd, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("comment text is required: %w", apperr.ErrInvalidArgument)
	}
	videos, err := s.videoRepo.GetByIDs(ctx, nil, []uuid.UUID{videoID})
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, apperr.ErrNotFound)
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		UserID:  rd.UserID,
		VideoID: videoID,
		Comment: text,
	}
	created, err := s.commentRepo.Create(ctx, nil, []*domain.Comment{comment})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *commentService) ListComments(ctx context.Context, videoID uuid.UUID, limit, offset int) (*CommentPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.commentRepo.ListByVideoID(ctx, nil, videoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	total, err := s.commentRepo.CountByVideoID(ctx, nil, videoID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &CommentPage{Items: items, Total: total}, nil
}

// DeleteComment allows the author or an admin to remove a comment.
func (s *commentService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	rd, err := requester(ctx)
	if err != nil {
		return err
	}
	comments, err := s.commentRepo.GetByIDs(ctx, nil, []uuid.UUID{commentID})
	if err != nil {
		return fmt.Errorf("load comment: %w", err)
	}
	if len(comments) == 0 {
		return fmt.Errorf("comment %s: %w", commentID, apperr.ErrNotFound)
	}
	comment := comments[0]
	if comment.UserID != rd.UserID && rd.Role != domain.RoleAdmin {
		return fmt.Errorf("not the comment author: %w", apperr.ErrForbidden)
	}
	return s.commentRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{commentID})
}
