package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/UPTUZOVER/iiv-talim/internal/data/repos/testutil"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
)

func TestVideoMaxOrderAndOrdering(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewVideoRepo(tx, testutil.Logger(t))

	category := testutil.SeedCategory(t, ctx, tx, "cat")
	course := testutil.SeedCourse(t, ctx, tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, tx, course.ID, 1, false)

	maxOrder, err := repo.MaxOrder(ctx, tx, section.ID)
	if err != nil {
		t.Fatalf("max order empty: %v", err)
	}
	if maxOrder != 0 {
		t.Fatalf("empty section max order should be 0, got %d", maxOrder)
	}

	// Seed out of order; the listing must come back sorted.
	testutil.SeedVideo(t, ctx, tx, section.ID, 3, true)
	testutil.SeedVideo(t, ctx, tx, section.ID, 1, false)
	testutil.SeedVideo(t, ctx, tx, section.ID, 2, true)

	maxOrder, err = repo.MaxOrder(ctx, tx, section.ID)
	if err != nil {
		t.Fatalf("max order: %v", err)
	}
	if maxOrder != 3 {
		t.Fatalf("expected max order 3, got %d", maxOrder)
	}

	videos, err := repo.GetBySectionIDs(ctx, tx, []uuid.UUID{section.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(videos))
	}
	for i, v := range videos {
		if v.Order != i+1 {
			t.Fatalf("position %d has order %d", i, v.Order)
		}
	}
}

func TestSectionSetBlocked(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewSectionRepo(tx, testutil.Logger(t))

	category := testutil.SeedCategory(t, ctx, tx, "cat")
	course := testutil.SeedCourse(t, ctx, tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, tx, course.ID, 2, true)

	if err := repo.SetBlocked(ctx, tx, section.ID, false); err != nil {
		t.Fatalf("set blocked: %v", err)
	}

	reloaded, err := repo.GetByIDs(ctx, tx, []uuid.UUID{section.ID})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].IsBlocked {
		t.Fatalf("section should be unblocked")
	}
}

func TestSubmissionCounts(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewSubmissionRepo(tx, testutil.Logger(t))

	userA := testutil.SeedUser(t, ctx, tx, "hemis-sub-1", domain.RoleStudent)
	userB := testutil.SeedUser(t, ctx, tx, "hemis-sub-2", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, tx, "cat")
	course := testutil.SeedCourse(t, ctx, tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, tx, course.ID, 1, false)

	m1 := testutil.SeedMission(t, ctx, tx, section.ID)
	m2 := testutil.SeedMission(t, ctx, tx, section.ID)
	m3 := testutil.SeedMission(t, ctx, tx, section.ID)

	// m1: approved submission by A plus one by B. m2: unapproved by A.
	// m3: no submissions at all, so it is outside the denominator.
	subA1 := testutil.SeedSubmission(t, ctx, tx, m1.ID, userA.ID)
	subA1.IsApproved = true
	if err := repo.Save(ctx, tx, subA1); err != nil {
		t.Fatalf("approve subA1: %v", err)
	}
	testutil.SeedSubmission(t, ctx, tx, m1.ID, userB.ID)
	testutil.SeedSubmission(t, ctx, tx, m2.ID, userA.ID)
	_ = m3

	distinct, err := repo.DistinctMissionCount(ctx, tx, section.ID)
	if err != nil {
		t.Fatalf("distinct count: %v", err)
	}
	if distinct != 2 {
		t.Fatalf("expected 2 distinct missions with submissions, got %d", distinct)
	}

	approved, err := repo.ApprovedCountForUser(ctx, tx, section.ID, userA.ID)
	if err != nil {
		t.Fatalf("approved count: %v", err)
	}
	if approved != 1 {
		t.Fatalf("expected 1 approved for user A, got %d", approved)
	}

	approvedB, err := repo.ApprovedCountForUser(ctx, tx, section.ID, userB.ID)
	if err != nil {
		t.Fatalf("approved count B: %v", err)
	}
	if approvedB != 0 {
		t.Fatalf("user B has no approvals, got %d", approvedB)
	}
}

func TestCommentPagination(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewCommentRepo(tx, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "hemis-cmt-1", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, tx, "cat")
	course := testutil.SeedCourse(t, ctx, tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, tx, course.ID, 1, false)
	video := testutil.SeedVideo(t, ctx, tx, section.ID, 1, false)

	for i := 0; i < 5; i++ {
		c := &domain.Comment{ID: uuid.New(), UserID: user.ID, VideoID: video.ID, Comment: "hi"}
		if err := tx.WithContext(ctx).Create(c).Error; err != nil {
			t.Fatalf("seed comment: %v", err)
		}
	}

	page, err := repo.ListByVideoID(ctx, tx, video.ID, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(page))
	}

	total, err := repo.CountByVideoID(ctx, tx, video.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
}
