package postgres

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdmissionCriteriaPostgreSQL struct {
	base
}

func NewAdmissionCriteriaPostgreSQL(db *gorm.DB) repositories.AdmissionCriteriaRepository {
	return &AdmissionCriteriaPostgreSQL{base{db: db}}
}

func (a *AdmissionCriteriaPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) (*models.AdmissionCriteria, error) {
	var criteria models.AdmissionCriteria
	if err := a.getDB(tx).WithContext(ctx).Where("course_id = ?", courseID).First(&criteria).Error; err != nil {
		return nil, translate(err)
	}
	return &criteria, nil
}

// Upsert creates the criteria of a course or replaces its rules
func (a *AdmissionCriteriaPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, criteria *models.AdmissionCriteria) error {
	return a.getDB(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rules", "updated_by", "updated_at"}),
		}).
		Create(criteria).Error
}

func (a *AdmissionCriteriaPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, courseID string) error {
	result := a.getDB(tx).WithContext(ctx).Where("course_id = ?", courseID).Delete(&models.AdmissionCriteria{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
