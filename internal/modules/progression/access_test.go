package progression

import (
	"testing"

	"github.com/google/uuid"

	"github.com/UPTUZOVER/iiv-talim/internal/domain/catalog"
	"github.com/UPTUZOVER/iiv-talim/internal/domain/user"
)

func video(order int) *catalog.Video {
	return &catalog.Video{ID: uuid.New(), SectionID: uuid.New(), Order: order}
}

func section(order int) *catalog.Section {
	return &catalog.Section{ID: uuid.New(), Order: order}
}

func TestFirstVideoAlwaysAccessible(t *testing.T) {
	videos := []*catalog.Video{video(3), video(1), video(2)}
	first := FirstVideo(videos)
	if first == nil || first.Order != 1 {
		t.Fatalf("FirstVideo: want order 1, got %+v", first)
	}
	if !CanAccessVideo(user.RoleStudent, first, videos, nil) {
		t.Fatalf("first video must be accessible with no progress")
	}
}

func TestCanAccessVideoEmptySection(t *testing.T) {
	v := video(1)
	if CanAccessVideo(user.RoleStudent, v, nil, nil) {
		t.Fatalf("empty section must deny")
	}
}

func TestCanAccessVideoStaffBypass(t *testing.T) {
	v := video(5)
	for _, role := range []string{user.RoleAdmin, user.RoleTeacher} {
		if !CanAccessVideo(role, v, nil, nil) {
			t.Fatalf("role %s must bypass sequencing", role)
		}
	}
}

func TestCanAccessVideoSequencing(t *testing.T) {
	v1, v2, v3 := video(1), video(2), video(3)
	videos := []*catalog.Video{v1, v2, v3}

	if CanAccessVideo(user.RoleStudent, v2, videos, CompletedSet{}) {
		t.Fatalf("v2 locked before v1 completed")
	}
	if CanAccessVideo(user.RoleStudent, v3, videos, CompletedSet{v1.ID: true}) {
		t.Fatalf("v3 locked while v2 incomplete")
	}
	if !CanAccessVideo(user.RoleStudent, v2, videos, CompletedSet{v1.ID: true}) {
		t.Fatalf("v2 unlocked by completed v1")
	}
	if !CanAccessVideo(user.RoleStudent, v3, videos, CompletedSet{v2.ID: true}) {
		t.Fatalf("v3 unlocked by completed v2")
	}
}

func TestCanAccessVideoStickyUnlock(t *testing.T) {
	// A video with its own completed fact stays open even when the
	// preceding video's fact is absent.
	v1, v2, v3 := video(1), video(2), video(3)
	videos := []*catalog.Video{v1, v2, v3}
	if !CanAccessVideo(user.RoleStudent, v3, videos, CompletedSet{v3.ID: true}) {
		t.Fatalf("previously completed video must stay accessible")
	}
}

func TestCanAccessVideoNonContiguousOrders(t *testing.T) {
	v1, v5, v9 := video(1), video(5), video(9)
	videos := []*catalog.Video{v9, v1, v5}
	if !CanAccessVideo(user.RoleStudent, v9, videos, CompletedSet{v5.ID: true}) {
		t.Fatalf("gap in orders must not break the previous-video rule")
	}
	if CanAccessVideo(user.RoleStudent, v9, videos, CompletedSet{v1.ID: true}) {
		t.Fatalf("completing a non-adjacent predecessor must not unlock v9")
	}
}

func TestNextAndPreviousVideo(t *testing.T) {
	v1, v2, v3 := video(1), video(2), video(3)
	videos := []*catalog.Video{v2, v3, v1}

	if got := NextVideo(videos, v1); got == nil || got.ID != v2.ID {
		t.Fatalf("NextVideo(v1): want v2, got %+v", got)
	}
	if got := NextVideo(videos, v3); got != nil {
		t.Fatalf("NextVideo(v3): want nil, got %+v", got)
	}
	if got := PreviousVideo(videos, v3); got == nil || got.ID != v2.ID {
		t.Fatalf("PreviousVideo(v3): want v2, got %+v", got)
	}
	if got := PreviousVideo(videos, v1); got != nil {
		t.Fatalf("PreviousVideo(v1): want nil, got %+v", got)
	}
}

func TestCanStartMissions(t *testing.T) {
	v1, v2 := video(1), video(2)
	videos := []*catalog.Video{v2, v1}

	if CanStartMissions(nil, nil) {
		t.Fatalf("no videos means missions stay closed")
	}
	if CanStartMissions(videos, CompletedSet{v2.ID: true}) {
		t.Fatalf("gate is the first video, not a later one")
	}
	if !CanStartMissions(videos, CompletedSet{v1.ID: true}) {
		t.Fatalf("first video completed must open missions")
	}
}

func TestNextSection(t *testing.T) {
	s1, s2, s4 := section(1), section(2), section(4)
	sections := []*catalog.Section{s4, s1, s2}

	if got := NextSection(sections, s1); got == nil || got.ID != s2.ID {
		t.Fatalf("NextSection(s1): want s2, got %+v", got)
	}
	if got := NextSection(sections, s2); got == nil || got.ID != s4.ID {
		t.Fatalf("NextSection(s2): want s4, got %+v", got)
	}
	if got := NextSection(sections, s4); got != nil {
		t.Fatalf("NextSection(s4): want nil, got %+v", got)
	}
}
