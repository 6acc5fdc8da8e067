package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UPTUZOVER/iiv-talim/internal/data/repos/testutil"
	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
)

func TestMissionsGatedUntilFirstVideoWatched(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-1", domain.RoleStudent)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	v1 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	mission := testutil.SeedMission(t, ctx, b.tx, section.ID)

	studentCtx := asUser(student.ID, student.Role)

	if _, err := b.mission.ListSectionMissions(studentCtx, section.ID); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("list before watching should be denied, got %v", err)
	}
	if _, err := b.mission.SubmitAssignment(studentCtx, mission.ID, "answer", nil); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("submit before watching should be denied, got %v", err)
	}

	if _, err := b.video.MarkWatched(studentCtx, v1.ID); err != nil {
		t.Fatalf("mark watched: %v", err)
	}

	missions, err := b.mission.ListSectionMissions(studentCtx, section.ID)
	if err != nil {
		t.Fatalf("list after watching: %v", err)
	}
	if len(missions) != 1 || missions[0].ID != mission.ID {
		t.Fatalf("expected the seeded mission, got %d", len(missions))
	}

	submission, err := b.mission.SubmitAssignment(studentCtx, mission.ID, "answer", nil)
	if err != nil {
		t.Fatalf("submit after watching: %v", err)
	}
	if submission.IsApproved {
		t.Fatalf("fresh submission must not be approved")
	}
	if submission.UserID != student.ID {
		t.Fatalf("submission author mismatch")
	}
}

func TestMissionGateStaffBypass(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	admin := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-2", domain.RoleAdmin)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	testutil.SeedMission(t, ctx, b.tx, section.ID)

	missions, err := b.mission.ListSectionMissions(asUser(admin.ID, admin.Role), section.ID)
	if err != nil {
		t.Fatalf("admin should bypass the gate: %v", err)
	}
	if len(missions) != 1 {
		t.Fatalf("expected 1 mission, got %d", len(missions))
	}
}

func TestNewSubmissionShiftsDenominator(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-7", domain.RoleStudent)
	admin := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-8", domain.RoleAdmin)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	v1 := testutil.SeedVideo(t, ctx, b.tx, section.ID, 1, false)
	m1 := testutil.SeedMission(t, ctx, b.tx, section.ID)
	m2 := testutil.SeedMission(t, ctx, b.tx, section.ID)

	studentCtx := asUser(student.ID, student.Role)
	if _, err := b.video.MarkWatched(studentCtx, v1.ID); err != nil {
		t.Fatalf("mark watched: %v", err)
	}

	sub1, err := b.mission.SubmitAssignment(studentCtx, m1.ID, "a", nil)
	if err != nil {
		t.Fatalf("submit m1: %v", err)
	}
	r, err := b.mission.ReviewSubmission(asUser(admin.ID, admin.Role), sub1.ID, 100, true)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if r.ScorePercent != 100 || !r.SectionCompleted {
		t.Fatalf("1 of 1 approved should be 100 complete, got %+v", r)
	}

	// A submission to a second mission grows the denominator; the track
	// recomputes to 1 of 2 and the completion flag follows.
	if _, err := b.mission.SubmitAssignment(studentCtx, m2.ID, "b", nil); err != nil {
		t.Fatalf("submit m2: %v", err)
	}

	var sp domain.SectionProgress
	if err := b.tx.Where("user_id = ? AND section_id = ?", student.ID, section.ID).First(&sp).Error; err != nil {
		t.Fatalf("load section progress: %v", err)
	}
	if sp.ScorePercent != 50 {
		t.Fatalf("expected 50 percent after denominator shift, got %v", sp.ScorePercent)
	}
	if sp.IsCompleted {
		t.Fatalf("50 percent is below the bar")
	}
	if sp.CompletedAt == nil {
		t.Fatalf("completed_at is never cleared once set")
	}
}

func TestReviewSubmissionAdminOnly(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-3", domain.RoleStudent)
	teacher := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-4", domain.RoleTeacher)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	section := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	mission := testutil.SeedMission(t, ctx, b.tx, section.ID)
	submission := testutil.SeedSubmission(t, ctx, b.tx, mission.ID, student.ID)

	if _, err := b.mission.ReviewSubmission(asUser(student.ID, student.Role), submission.ID, 90, true); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("student approval should be forbidden, got %v", err)
	}
	if _, err := b.mission.ReviewSubmission(asUser(teacher.ID, teacher.Role), submission.ID, 90, true); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("teacher approval should be forbidden, got %v", err)
	}
}

func TestApprovalThresholdUnblocksNextSection(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-5", domain.RoleStudent)
	admin := testutil.SeedUser(t, ctx, b.tx, "hemis-mission-6", domain.RoleAdmin)
	category := testutil.SeedCategory(t, ctx, b.tx, "cat")
	course := testutil.SeedCourse(t, ctx, b.tx, category.ID, "course")
	s1 := testutil.SeedSection(t, ctx, b.tx, course.ID, 1, false)
	s2 := testutil.SeedSection(t, ctx, b.tx, course.ID, 2, true)

	// Five missions, each with one submission by the student: the
	// denominator is 5, so four approvals reach exactly 80.
	submissions := make([]*domain.Submission, 0, 5)
	for i := 0; i < 5; i++ {
		m := testutil.SeedMission(t, ctx, b.tx, s1.ID)
		submissions = append(submissions, testutil.SeedSubmission(t, ctx, b.tx, m.ID, student.ID))
	}

	adminCtx := asUser(admin.ID, admin.Role)

	for i := 0; i < 3; i++ {
		r, err := b.mission.ReviewSubmission(adminCtx, submissions[i].ID, 100, true)
		if err != nil {
			t.Fatalf("approve %d: %v", i, err)
		}
		if r.SectionCompleted {
			t.Fatalf("section must not complete below the threshold, at approval %d", i)
		}
		if r.UnblockedSection != nil {
			t.Fatalf("no unlock below the threshold")
		}
	}

	r, err := b.mission.ReviewSubmission(adminCtx, submissions[3].ID, 100, true)
	if err != nil {
		t.Fatalf("fourth approval: %v", err)
	}
	if r.ScorePercent != 80 {
		t.Fatalf("expected 80 percent, got %v", r.ScorePercent)
	}
	if !r.SectionCompleted {
		t.Fatalf("80 percent must complete the section")
	}
	if r.UnblockedSection == nil || *r.UnblockedSection != s2.ID {
		t.Fatalf("crossing the threshold must unblock the next section")
	}

	var reloaded domain.Section
	if err := b.tx.Where("id = ?", s2.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload s2: %v", err)
	}
	if reloaded.IsBlocked {
		t.Fatalf("next section should be unblocked in storage")
	}

	// The fifth approval keeps the section complete and must not try to
	// unlock anything again.
	r5, err := b.mission.ReviewSubmission(adminCtx, submissions[4].ID, 100, true)
	if err != nil {
		t.Fatalf("fifth approval: %v", err)
	}
	if r5.ScorePercent != 100 || !r5.SectionCompleted {
		t.Fatalf("expected 100 percent complete, got %+v", r5)
	}
	if r5.UnblockedSection != nil {
		t.Fatalf("already-crossed threshold must not report another unlock")
	}
}
