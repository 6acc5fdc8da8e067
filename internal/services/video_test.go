package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UPTUZOVER/iiv-talim/internal/data/repos/testutil"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
)

func TestMarkWatchedCascade(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-1", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	v1 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	v2 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 2, true)
	v3 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 3, true)

	studentCtx := asUser(student.ID, student.Role)

	r1, err := b.video.MarkWatched(studentCtx, v1.ID)
	if err != nil {
		t.Fatalf("mark v1: %v", err)
	}
	if r1.SectionPercent != 33 {
		t.Fatalf("after v1 expected section 33, got %d", r1.SectionPercent)
	}
	if r1.SectionCompleted || r1.CourseCompleted {
		t.Fatalf("nothing should be completed after v1: %+v", r1)
	}
	if r1.NextVideoID == nil || *r1.NextVideoID != v2.ID {
		t.Fatalf("next after v1 should be v2")
	}
	if !r1.NextVideoAccessible {
		t.Fatalf("v2 should unlock once v1 is completed")
	}

	r2, err := b.video.MarkWatched(studentCtx, v2.ID)
	if err != nil {
		t.Fatalf("mark v2: %v", err)
	}
	if r2.SectionPercent != 66 {
		t.Fatalf("after v2 expected section 66, got %d", r2.SectionPercent)
	}

	r3, err := b.video.MarkWatched(studentCtx, v3.ID)
	if err != nil {
		t.Fatalf("mark v3: %v", err)
	}
	if r3.SectionPercent != 100 || !r3.SectionCompleted {
		t.Fatalf("after v3 expected completed section, got %+v", r3)
	}
	if r3.CoursePercent != 100 || !r3.CourseCompleted {
		t.Fatalf("single-section course should complete with its section, got %+v", r3)
	}
	if r3.NextVideoID != nil {
		t.Fatalf("v3 is last, no next expected")
	}
}

func TestMarkWatchedDeniesLockedVideo(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-2", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	testutil.SeedVideo(t, ctx, b.tx, section.ID, 2, true)
	v3 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 3, true)

	_, err := b.video.MarkWatched(asUser(student.ID, student.Role), v3.ID)
	if !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("expected access denied on skipped video, got %v", err)
	}
}

func TestMarkWatchedKeepsFirstCompletedAt(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-3", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	v1 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)

	studentCtx := asUser(student.ID, student.Role)
	if _, err := b.video.MarkWatched(studentCtx, v1.ID); err != nil {
		t.Fatalf("first mark: %v", err)
	}

	var first domain.VideoProgress
	if err := b.tx.Where("user_id = ? AND video_id = ?", student.ID, v1.ID).First(&first).Error; err != nil {
		t.Fatalf("load fact: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatalf("completed_at should be stamped on completion")
	}

	if _, err := b.video.MarkWatched(studentCtx, v1.ID); err != nil {
		t.Fatalf("re-mark: %v", err)
	}

	var again domain.VideoProgress
	if err := b.tx.Where("user_id = ? AND video_id = ?", student.ID, v1.ID).First(&again).Error; err != nil {
		t.Fatalf("reload fact: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("re-marking must not create a second row")
	}
	if again.CompletedAt == nil || !again.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatalf("completed_at must not move on re-mark: %v vs %v", again.CompletedAt, first.CompletedAt)
	}
}

func TestMarkWatchedCourseAggregateOverSections(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-4", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	s1 := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	testutil.SeedSection(t, ctx, b.tx, course.ID, 2, true)
	testutil.SeedSection(t, ctx, b.tx, course.ID, 3, true)
	v1 := testutil.SeedVideo(t, ctx, b.tx, s1.ID, 1, false)

	r, err := b.video.MarkWatched(asUser(student.ID, student.Role), v1.ID)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !r.SectionCompleted {
		t.Fatalf("one-video section should complete immediately")
	}
	if r.CoursePercent != 33 || r.CourseCompleted {
		t.Fatalf("1 of 3 sections done should be course 33, got %+v", r)
	}
}

func TestCheckAccessStaffBypass(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	teacher := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-5", domain.RoleTeacher)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	v2 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 2, true)

	access, err := b.video.CheckAccess(asUser(teacher.ID, teacher.Role), v2.ID)
	if err != nil {
		t.Fatalf("check access: %v", err)
	}
	if !access.HasAccess {
		t.Fatalf("teacher should bypass sequencing")
	}
}

func TestCheckAccessRevealsNextOnlyWhenReachable(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-7", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	v1 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	v2 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 2, true)

	studentCtx := asUser(student.ID, student.Role)

	// v1 is open but v2 is still locked, so no next id yet.
	a1, err := b.video.CheckAccess(studentCtx, v1.ID)
	if err != nil {
		t.Fatalf("check v1: %v", err)
	}
	if !a1.HasAccess {
		t.Fatalf("first video should be accessible")
	}
	if a1.NextVideoID != nil {
		t.Fatalf("next id must stay hidden while the next video is locked")
	}

	// A locked video reveals nothing.
	a2, err := b.video.CheckAccess(studentCtx, v2.ID)
	if err != nil {
		t.Fatalf("check v2: %v", err)
	}
	if a2.HasAccess || a2.NextVideoID != nil {
		t.Fatalf("locked video must answer denied with no next, got %+v", a2)
	}

	if _, err := b.video.MarkWatched(studentCtx, v1.ID); err != nil {
		t.Fatalf("mark v1: %v", err)
	}

	a3, err := b.video.CheckAccess(studentCtx, v1.ID)
	if err != nil {
		t.Fatalf("recheck v1: %v", err)
	}
	if a3.NextVideoID == nil || *a3.NextVideoID != v2.ID {
		t.Fatalf("completing v1 should reveal v2 as next")
	}
}

func TestCheckAccessUnknownVideo(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-watch-6", domain.RoleStudent)

	_, err := b.video.CheckAccess(asUser(student.ID, student.Role), student.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
