package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ===== SHARED FILTER STRUCTS =====

type AssessmentFilters struct {
	IncludeDrafts  bool                   `json:"include_drafts"`
	AssignmentType *models.AssignmentType `json:"assignment_type"`
}

// ===== REPOSITORIES =====

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]models.Assignment, error)
}

// AssessmentRepository returns assessments ordered by updated_at ascending,
// so the latest grade of an assignment comes last
type AssessmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID string, filters AssessmentFilters) ([]models.Assessment, error)

	// GetByParticipant returns the individual assessments of the user and the
	// assessments of every group the user has been a member of
	GetByParticipant(ctx context.Context, tx *gorm.DB, courseID, userID string, filters AssessmentFilters) ([]models.Assessment, error)
}

type ParticipantRepository interface {
	Create(ctx context.Context, tx *gorm.DB, participant *models.Participant) error
	GetByCourseAndUser(ctx context.Context, tx *gorm.DB, courseID, userID string) (*models.Participant, error)
	ListByRole(ctx context.Context, tx *gorm.DB, courseID string, role models.CourseRole) ([]models.Participant, error)

	AddGroupMembership(ctx context.Context, tx *gorm.DB, membership *models.GroupMembership) error
	GetGroupMemberships(ctx context.Context, tx *gorm.DB, courseID string) ([]models.GroupMembership, error)
}

type AdmissionCriteriaRepository interface {
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) (*models.AdmissionCriteria, error)
	Upsert(ctx context.Context, tx *gorm.DB, criteria *models.AdmissionCriteria) error
	Delete(ctx context.Context, tx *gorm.DB, courseID string) error
}

// Repository aggregates all repositories sharing one database
type Repository interface {
	Course() CourseRepository
	Assignment() AssignmentRepository
	Assessment() AssessmentRepository
	Participant() ParticipantRepository
	AdmissionCriteria() AdmissionCriteriaRepository

	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
