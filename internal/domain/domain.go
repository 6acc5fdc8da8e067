package domain

import (
	"github.com/UPTUZOVER/iiv-talim/internal/domain/catalog"
	"github.com/UPTUZOVER/iiv-talim/internal/domain/progress"
	"github.com/UPTUZOVER/iiv-talim/internal/domain/user"
)

const (
	RoleStudent = user.RoleStudent
	RoleTeacher = user.RoleTeacher
	RoleAdmin   = user.RoleAdmin
)

type User = user.User
type Group = user.Group

type Category = catalog.Category
type Course = catalog.Course
type Section = catalog.Section
type Video = catalog.Video
type Mission = catalog.Mission
type Submission = catalog.Submission
type Comment = catalog.Comment
type VideoRating = catalog.VideoRating

type VideoProgress = progress.VideoProgress
type SectionProgress = progress.SectionProgress
type CourseProgress = progress.CourseProgress
