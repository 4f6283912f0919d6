package models

import (
	"time"
)

// Assessment is the grading record of one student or group for one assignment
type Assessment struct {
	ID           string `json:"id" gorm:"primaryKey;size:255"`
	AssignmentID string `json:"assignment_id" gorm:"not null;index;size:255"`

	// Exactly one of UserID / GroupID is set
	UserID  *string `json:"user_id" gorm:"index;size:255"`
	GroupID *string `json:"group_id" gorm:"index;size:255"`

	// Nil until graded
	AchievedPoints *float64 `json:"achieved_points"`
	IsDraft        bool     `json:"is_draft" gorm:"not null;default:false"`
	Comment        *string  `json:"comment" gorm:"type:text"`

	CreatorID *string   `json:"creator_id" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// IsGroupAssessment reports whether the assessment grades a group
func (a Assessment) IsGroupAssessment() bool {
	return a.GroupID != nil
}

// Points returns the achieved points, treating ungraded assessments as zero
func (a Assessment) Points() float64 {
	if a.AchievedPoints == nil {
		return 0
	}
	return *a.AchievedPoints
}
