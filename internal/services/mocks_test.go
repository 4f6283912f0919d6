package services

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRepository is a mock implementation of repositories.Repository
type MockRepository struct {
	mock.Mock

	courses     *MockCourseRepository
	assignments *MockAssignmentRepository
	assessments *MockAssessmentRepository
	participant *MockParticipantRepository
	criteria    *MockAdmissionCriteriaRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		courses:     &MockCourseRepository{},
		assignments: &MockAssignmentRepository{},
		assessments: &MockAssessmentRepository{},
		participant: &MockParticipantRepository{},
		criteria:    &MockAdmissionCriteriaRepository{},
	}
}

func (m *MockRepository) Course() repositories.CourseRepository { return m.courses }

func (m *MockRepository) Assignment() repositories.AssignmentRepository { return m.assignments }

func (m *MockRepository) Assessment() repositories.AssessmentRepository { return m.assessments }

func (m *MockRepository) Participant() repositories.ParticipantRepository { return m.participant }

func (m *MockRepository) AdmissionCriteria() repositories.AdmissionCriteriaRepository {
	return m.criteria
}

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

func (m *MockRepository) AssertExpectations(t mock.TestingT) bool {
	return m.Mock.AssertExpectations(t) &&
		m.courses.AssertExpectations(t) &&
		m.assignments.AssertExpectations(t) &&
		m.assessments.AssertExpectations(t) &&
		m.participant.AssertExpectations(t) &&
		m.criteria.AssertExpectations(t)
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	args := m.Called(ctx, tx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error) {
	args := m.Called(ctx, tx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	args := m.Called(ctx, tx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]models.Assignment, error) {
	args := m.Called(ctx, tx, courseID)
	assignments, _ := args.Get(0).([]models.Assignment)
	return assignments, args.Error(1)
}

// MockAssessmentRepository is a mock implementation of AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	args := m.Called(ctx, tx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string, filters repositories.AssessmentFilters) ([]models.Assessment, error) {
	args := m.Called(ctx, tx, courseID, filters)
	assessments, _ := args.Get(0).([]models.Assessment)
	return assessments, args.Error(1)
}

func (m *MockAssessmentRepository) GetByParticipant(ctx context.Context, tx *gorm.DB, courseID, userID string, filters repositories.AssessmentFilters) ([]models.Assessment, error) {
	args := m.Called(ctx, tx, courseID, userID, filters)
	assessments, _ := args.Get(0).([]models.Assessment)
	return assessments, args.Error(1)
}

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Create(ctx context.Context, tx *gorm.DB, participant *models.Participant) error {
	args := m.Called(ctx, tx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) GetByCourseAndUser(ctx context.Context, tx *gorm.DB, courseID, userID string) (*models.Participant, error) {
	args := m.Called(ctx, tx, courseID, userID)
	participant, _ := args.Get(0).(*models.Participant)
	return participant, args.Error(1)
}

func (m *MockParticipantRepository) ListByRole(ctx context.Context, tx *gorm.DB, courseID string, role models.CourseRole) ([]models.Participant, error) {
	args := m.Called(ctx, tx, courseID, role)
	participants, _ := args.Get(0).([]models.Participant)
	return participants, args.Error(1)
}

func (m *MockParticipantRepository) AddGroupMembership(ctx context.Context, tx *gorm.DB, membership *models.GroupMembership) error {
	args := m.Called(ctx, tx, membership)
	return args.Error(0)
}

func (m *MockParticipantRepository) GetGroupMemberships(ctx context.Context, tx *gorm.DB, courseID string) ([]models.GroupMembership, error) {
	args := m.Called(ctx, tx, courseID)
	memberships, _ := args.Get(0).([]models.GroupMembership)
	return memberships, args.Error(1)
}

// MockAdmissionCriteriaRepository is a mock implementation of AdmissionCriteriaRepository
type MockAdmissionCriteriaRepository struct {
	mock.Mock
}

func (m *MockAdmissionCriteriaRepository) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) (*models.AdmissionCriteria, error) {
	args := m.Called(ctx, tx, courseID)
	criteria, _ := args.Get(0).(*models.AdmissionCriteria)
	return criteria, args.Error(1)
}

func (m *MockAdmissionCriteriaRepository) Upsert(ctx context.Context, tx *gorm.DB, criteria *models.AdmissionCriteria) error {
	args := m.Called(ctx, tx, criteria)
	return args.Error(0)
}

func (m *MockAdmissionCriteriaRepository) Delete(ctx context.Context, tx *gorm.DB, courseID string) error {
	args := m.Called(ctx, tx, courseID)
	return args.Error(0)
}

// MockAdmissionCache is a mock implementation of cache.AdmissionCache
type MockAdmissionCache struct {
	mock.Mock
}

func (m *MockAdmissionCache) GetCourseStatus(ctx context.Context, courseID string) ([]*models.AdmissionStatus, error) {
	args := m.Called(ctx, courseID)
	statuses, _ := args.Get(0).([]*models.AdmissionStatus)
	return statuses, args.Error(1)
}

func (m *MockAdmissionCache) SetCourseStatus(ctx context.Context, courseID string, statuses []*models.AdmissionStatus) error {
	args := m.Called(ctx, courseID, statuses)
	return args.Error(0)
}

func (m *MockAdmissionCache) GetParticipantStatus(ctx context.Context, courseID, userID string) (*models.AdmissionStatus, error) {
	args := m.Called(ctx, courseID, userID)
	status, _ := args.Get(0).(*models.AdmissionStatus)
	return status, args.Error(1)
}

func (m *MockAdmissionCache) SetParticipantStatus(ctx context.Context, status *models.AdmissionStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockAdmissionCache) InvalidateCourse(ctx context.Context, courseID string) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}
