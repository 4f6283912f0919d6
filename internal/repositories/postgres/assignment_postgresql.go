package postgres

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"gorm.io/gorm"
)

type AssignmentPostgreSQL struct {
	base
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{base{db: db}}
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	return a.getDB(tx).WithContext(ctx).Create(assignment).Error
}

// GetByCourse returns the assignment catalog of a course. Soft deleted
// assignments are not part of the catalog.
func (a *AssignmentPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := a.getDB(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC, id ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
