package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/UPTUZOVER/iiv-talim/internal/domain/catalog"
	"github.com/UPTUZOVER/iiv-talim/internal/domain/user"
)

// VideoProgress is the per-(user, video) completion fact. At most one row
// per pair; re-marking watched updates in place. CompletedAt is stamped
// exactly once, on the false→true transition.
type VideoProgress struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_video_progress_user_video" json:"user_id"`
	User    *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	VideoID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_video_progress_user_video" json:"video_id"`
	Video   *catalog.Video `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`

	IsCompleted bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VideoProgress) TableName() string { return "video_progress" }

// SectionProgress is written by both aggregation tracks: the video track
// owns IsCompleted at 100%, the mission track owns ScorePercent and flips
// IsCompleted at >=80. Last writer wins, as in the source system.
type SectionProgress struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_section_progress_user_section" json:"user_id"`
	User      *user.User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SectionID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_section_progress_user_section" json:"section_id"`
	Section   *catalog.Section `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`

	IsCompleted  bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	ScorePercent float64    `gorm:"not null;default:0;column:score_percent" json:"score_percent"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SectionProgress) TableName() string { return "section_progress" }

type CourseProgress struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_course_progress_user_course" json:"user_id"`
	User     *user.User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_course_progress_user_course" json:"course_id"`
	Course   *catalog.Course `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	ProgressPercent int        `gorm:"not null;default:0;column:progress_percent" json:"progress_percent"`
	IsCompleted     bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CourseProgress) TableName() string { return "course_progress" }
