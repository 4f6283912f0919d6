package postgres

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantPostgreSQL struct {
	base
}

func NewParticipantPostgreSQL(db *gorm.DB) repositories.ParticipantRepository {
	return &ParticipantPostgreSQL{base{db: db}}
}

func (p *ParticipantPostgreSQL) Create(ctx context.Context, tx *gorm.DB, participant *models.Participant) error {
	return p.getDB(tx).WithContext(ctx).Create(participant).Error
}

func (p *ParticipantPostgreSQL) GetByCourseAndUser(ctx context.Context, tx *gorm.DB, courseID, userID string) (*models.Participant, error) {
	var participant models.Participant
	if err := p.getDB(tx).WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&participant).Error; err != nil {
		return nil, translate(err)
	}
	return &participant, nil
}

func (p *ParticipantPostgreSQL) ListByRole(ctx context.Context, tx *gorm.DB, courseID string, role models.CourseRole) ([]models.Participant, error) {
	var participants []models.Participant
	if err := p.getDB(tx).WithContext(ctx).
		Where("course_id = ? AND role = ?", courseID, role).
		Order("username ASC, user_id ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// AddGroupMembership records a membership. Joining the same group again is a no-op.
func (p *ParticipantPostgreSQL) AddGroupMembership(ctx context.Context, tx *gorm.DB, membership *models.GroupMembership) error {
	return p.getDB(tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(membership).Error
}

func (p *ParticipantPostgreSQL) GetGroupMemberships(ctx context.Context, tx *gorm.DB, courseID string) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	if err := p.getDB(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
