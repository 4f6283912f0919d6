package models

import (
	"time"

	"gorm.io/gorm"
)

type AssignmentType string

const (
	AssignmentHomework     AssignmentType = "HOMEWORK"
	AssignmentTestat       AssignmentType = "TESTAT"
	AssignmentProject      AssignmentType = "PROJECT"
	AssignmentSeminar      AssignmentType = "SEMINAR"
	AssignmentPresentation AssignmentType = "PRESENTATION"
	AssignmentExamPrep     AssignmentType = "EXAM_PREP"
	AssignmentRequired     AssignmentType = "REQUIRED"
	AssignmentOther        AssignmentType = "OTHER"
)

// AssignmentTypes lists every assignment type a rule may filter on
func AssignmentTypes() []AssignmentType {
	return []AssignmentType{
		AssignmentHomework,
		AssignmentTestat,
		AssignmentProject,
		AssignmentSeminar,
		AssignmentPresentation,
		AssignmentExamPrep,
		AssignmentRequired,
		AssignmentOther,
	}
}

func IsValidAssignmentType(t AssignmentType) bool {
	for _, valid := range AssignmentTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

type AssignmentState string

const (
	AssignmentStateInvisible  AssignmentState = "INVISIBLE"
	AssignmentStateInProgress AssignmentState = "IN_PROGRESS"
	AssignmentStateEvaluated  AssignmentState = "EVALUATED"
	AssignmentStateClosed     AssignmentState = "CLOSED"
)

// Assignment is a gradable unit of coursework
type Assignment struct {
	ID       string          `json:"id" gorm:"primaryKey;size:255"`
	CourseID string          `json:"course_id" gorm:"not null;index;size:255"`
	Name     string          `json:"name" gorm:"not null;size:200"`
	Type     AssignmentType  `json:"type" gorm:"not null;index"`
	State    AssignmentState `json:"state" gorm:"default:INVISIBLE"`

	// Maximum achievable points
	Points float64 `json:"points" gorm:"not null"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Assignment) TableName() string {
	return "assignments"
}
