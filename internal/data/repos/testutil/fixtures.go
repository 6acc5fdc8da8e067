package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, hemisID, role string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		HemisID:   hemisID,
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *domain.Category {
	tb.Helper()
	c := &domain.Category{ID: uuid.New(), Title: title}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, title string) *domain.Course {
	tb.Helper()
	c := &domain.Course{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Title:      title,
		Author:     "author",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int, blocked bool) *domain.Section {
	tb.Helper()
	s := &domain.Section{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     "section",
		Order:     order,
		IsBlocked: blocked,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func SeedVideo(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, order int, blocked bool) *domain.Video {
	tb.Helper()
	v := &domain.Video{
		ID:        uuid.New(),
		SectionID: sectionID,
		Title:     "video",
		Order:     order,
		IsBlocked: blocked,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}

func SeedMission(tb testing.TB, ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) *domain.Mission {
	tb.Helper()
	m := &domain.Mission{ID: uuid.New(), SectionID: sectionID, Description: "mission"}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mission: %v", err)
	}
	return m
}

func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, missionID, userID uuid.UUID) *domain.Submission {
	tb.Helper()
	s := &domain.Submission{
		ID:        uuid.New(),
		MissionID: missionID,
		UserID:    userID,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return s
}
