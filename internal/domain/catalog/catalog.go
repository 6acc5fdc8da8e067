package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/UPTUZOVER/iiv-talim/internal/domain/user"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string { return "category" }

// Course.IsBlocked is author-controlled; section blocking is owned by the
// aggregation cascade instead.
type Course struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`

	Title            string       `gorm:"not null;column:title" json:"title"`
	Author           string       `gorm:"column:author" json:"author"`
	SmallDescription string       `gorm:"column:small_description;type:text" json:"small_description"`
	IsBlocked        bool         `gorm:"not null;default:false;column:is_blocked" json:"is_blocked"`
	Teachers         []*user.User `gorm:"many2many:course_teacher" json:"teachers,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

// Section order is unique per course, strictly increasing, allocated as
// max+1 on create. IsBlocked is flipped by the mission-track cascade only.
type Section struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	Title            string `gorm:"not null;column:title" json:"title"`
	SmallDescription string `gorm:"column:small_description;type:text" json:"small_description"`
	// No column default: gorm would omit an explicit false on insert,
	// and the creation path decides blocking per row.
	IsBlocked bool `gorm:"not null;column:is_blocked" json:"is_blocked"`
	Order     int  `gorm:"not null;default:0;column:sort_order" json:"order"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Section) TableName() string { return "section" }

// Video order is unique per section. Invariant: the lowest-order video of a
// section is never blocked; enforced on every write path.
type Video struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	Section   *Section  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`

	Title            string `gorm:"not null;column:title" json:"title"`
	SmallDescription string `gorm:"column:small_description;type:text" json:"small_description"`
	IsBlocked        bool   `gorm:"not null;column:is_blocked" json:"is_blocked"`
	Order            int    `gorm:"not null;default:0;column:sort_order" json:"order"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Video) TableName() string { return "video" }

type Mission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	Section   *Section  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`

	Description string `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Mission) TableName() string { return "mission" }

// Submission is one user's attempt at a mission. Score and IsApproved are
// admin-set; approval drives the mission-track aggregation.
type Submission struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MissionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"mission_id"`
	Mission   *Mission   `gorm:"constraint:OnDelete:CASCADE;foreignKey:MissionID;references:ID" json:"mission,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Description string         `gorm:"column:description;type:text" json:"description"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	Score       int            `gorm:"not null;default:0;column:score" json:"score"`
	IsApproved  bool           `gorm:"not null;default:false;column:is_approved" json:"is_approved"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }

type Comment struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	VideoID uuid.UUID  `gorm:"type:uuid;not null;index" json:"video_id"`
	Video   *Video     `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`

	Comment string `gorm:"not null;column:comment;type:text" json:"comment"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Comment) TableName() string { return "comment" }

type VideoRating struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID uuid.UUID  `gorm:"type:uuid;not null;index" json:"video_id"`
	Video   *Video     `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	// 1..5 stars
	Rating int `gorm:"not null;column:rating" json:"rating"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VideoRating) TableName() string { return "video_rating" }
