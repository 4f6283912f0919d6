package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB

	course            repositories.CourseRepository
	assignment        repositories.AssignmentRepository
	assessment        repositories.AssessmentRepository
	participant       repositories.ParticipantRepository
	admissionCriteria repositories.AdmissionCriteriaRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:                db,
		course:            NewCoursePostgreSQL(db),
		assignment:        NewAssignmentPostgreSQL(db),
		assessment:        NewAssessmentPostgreSQL(db),
		participant:       NewParticipantPostgreSQL(db),
		admissionCriteria: NewAdmissionCriteriaPostgreSQL(db),
	}
}

func (r *Repository) Course() repositories.CourseRepository {
	return r.course
}

func (r *Repository) Assignment() repositories.AssignmentRepository {
	return r.assignment
}

func (r *Repository) Assessment() repositories.AssessmentRepository {
	return r.assessment
}

func (r *Repository) Participant() repositories.ParticipantRepository {
	return r.participant
}

func (r *Repository) AdmissionCriteria() repositories.AdmissionCriteriaRepository {
	return r.admissionCriteria
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// AutoMigrate creates or updates every table used by the service
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Course{},
		&models.Assignment{},
		&models.Assessment{},
		&models.Participant{},
		&models.GroupMembership{},
		&models.AdmissionCriteria{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
