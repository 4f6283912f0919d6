package postgres

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	base
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{base{db: db}}
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	return a.getDB(tx).WithContext(ctx).Create(assessment).Error
}

func (a *AssessmentPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string, filters repositories.AssessmentFilters) ([]models.Assessment, error) {
	var assessments []models.Assessment
	if err := a.courseQuery(ctx, tx, courseID, filters).Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (a *AssessmentPostgreSQL) GetByParticipant(ctx context.Context, tx *gorm.DB, courseID, userID string, filters repositories.AssessmentFilters) ([]models.Assessment, error) {
	db := a.getDB(tx)

	groups := db.Model(&models.GroupMembership{}).
		Select("group_id").
		Where("course_id = ? AND user_id = ?", courseID, userID)

	var assessments []models.Assessment
	if err := a.courseQuery(ctx, tx, courseID, filters).
		Where("assessments.user_id = ? OR assessments.group_id IN (?)", userID, groups).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// courseQuery selects the assessments of a course's assignments, including
// assignments that were deleted since grading
func (a *AssessmentPostgreSQL) courseQuery(ctx context.Context, tx *gorm.DB, courseID string, filters repositories.AssessmentFilters) *gorm.DB {
	query := a.getDB(tx).WithContext(ctx).
		Model(&models.Assessment{}).
		Select("assessments.*").
		Joins("JOIN assignments ON assignments.id = assessments.assignment_id").
		Where("assignments.course_id = ?", courseID)

	if !filters.IncludeDrafts {
		query = query.Where("assessments.is_draft = ?", false)
	}
	if filters.AssignmentType != nil {
		query = query.Where("assignments.type = ?", *filters.AssignmentType)
	}

	return query.Order("assessments.updated_at ASC, assessments.id ASC")
}
