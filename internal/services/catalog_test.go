package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UPTUZOVER/iiv-talim/internal/data/repos/testutil"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
)

func TestCreateSectionOrderAllocation(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, ctx, b.tx, "hemis-catalog-1", domain.RoleAdmin)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")

	adminCtx := asUser(admin.ID, admin.Role)

	s1, err := b.catalog.CreateSection(adminCtx, course.ID, "intro", "")
	if err != nil {
		t.Fatalf("create first section: %v", err)
	}
	if s1.Order != 1 {
		t.Fatalf("first section order should be 1, got %d", s1.Order)
	}
	if s1.IsBlocked {
		t.Fatalf("a course's first section starts unblocked")
	}

	// The unblocked flag must survive the insert, not just the returned
	// struct.
	var stored domain.Section
	if err := b.tx.Where("id = ?", s1.ID).First(&stored).Error; err != nil {
		t.Fatalf("reload first section: %v", err)
	}
	if stored.IsBlocked {
		t.Fatalf("first section must be stored unblocked")
	}

	s2, err := b.catalog.CreateSection(adminCtx, course.ID, "next", "")
	if err != nil {
		t.Fatalf("create second section: %v", err)
	}
	if s2.Order != 2 {
		t.Fatalf("second section order should be 2, got %d", s2.Order)
	}
	if !s2.IsBlocked {
		t.Fatalf("later sections start blocked")
	}
}

func TestCreateVideoFirstNeverBlocked(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, ctx, b.tx, "hemis-catalog-2", domain.RoleAdmin)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)

	adminCtx := asUser(admin.ID, admin.Role)

	v1, err := b.catalog.CreateVideo(adminCtx, section.ID, "lesson 1", "")
	if err != nil {
		t.Fatalf("create first video: %v", err)
	}
	if v1.Order != 1 || v1.IsBlocked {
		t.Fatalf("first video should be order 1 and unblocked, got %+v", v1)
	}

	var stored domain.Video
	if err := b.tx.Where("id = ?", v1.ID).First(&stored).Error; err != nil {
		t.Fatalf("reload first video: %v", err)
	}
	if stored.IsBlocked {
		t.Fatalf("first video must be stored unblocked")
	}

	v2, err := b.catalog.CreateVideo(adminCtx, section.ID, "lesson 2", "")
	if err != nil {
		t.Fatalf("create second video: %v", err)
	}
	if v2.Order != 2 || !v2.IsBlocked {
		t.Fatalf("second video should be order 2 and blocked, got %+v", v2)
	}
}

func TestCatalogWritesAreStaffOnly(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-catalog-3", domain.RoleStudent)

	_, err := b.catalog.CreateCategory(asUser(student.ID, student.Role), "nope")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("student category create should be forbidden, got %v", err)
	}
}

func TestCreateCourseUnknownCategory(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, ctx, b.tx, "hemis-catalog-4", domain.RoleAdmin)

	_, err := b.catalog.CreateCourse(asUser(admin.ID, admin.Role), &domain.Course{
		CategoryID: admin.ID,
		Title:      "orphan",
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown category, got %v", err)
	}
}
