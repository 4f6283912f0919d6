package models

import "time"

type CourseRole string

const (
	CourseRoleStudent  CourseRole = "STUDENT"
	CourseRoleTutor    CourseRole = "TUTOR"
	CourseRoleLecturer CourseRole = "LECTURER"
)

// Participant is a user enrolled in a course
type Participant struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	CourseID string     `json:"course_id" gorm:"not null;uniqueIndex:idx_participant_course_user;size:255"`
	UserID   string     `json:"user_id" gorm:"not null;uniqueIndex:idx_participant_course_user;size:255"`
	Username string     `json:"username" gorm:"size:100"`
	Role     CourseRole `json:"role" gorm:"default:STUDENT"`

	// Current group, if any
	GroupID *string `json:"group_id" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
}

func (Participant) TableName() string {
	return "participants"
}

// GroupMembership records that a user was a member of a group in a course.
// Memberships are kept after leaving a group so group assessments graded
// while the user was a member still count.
type GroupMembership struct {
	GroupID  string    `json:"group_id" gorm:"primaryKey;size:255"`
	UserID   string    `json:"user_id" gorm:"primaryKey;size:255"`
	CourseID string    `json:"course_id" gorm:"not null;index;size:255"`
	JoinedAt time.Time `json:"joined_at"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}
