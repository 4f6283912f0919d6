package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func TestAdmissionCache_Keys(t *testing.T) {
	assert.Equal(t, "admission:course:c1", CourseStatusKey("c1"))
	assert.Equal(t, "admission:course:c1:user:u1", ParticipantStatusKey("c1", "u1"))
}

func TestAdmissionCache_SetCourseStatusUsesTTL(t *testing.T) {
	ctx := context.Background()
	svc := new(MockCacheService)
	statuses := []*models.AdmissionStatus{{CourseID: "c1", UserID: "u1", HasAdmission: true}}

	svc.On("Set", ctx, "admission:course:c1", statuses, 5*time.Minute).Return(nil)

	err := NewAdmissionCache(svc, 5*time.Minute).SetCourseStatus(ctx, "c1", statuses)
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestAdmissionCache_GetCourseStatusMiss(t *testing.T) {
	ctx := context.Background()
	svc := new(MockCacheService)
	svc.On("Get", ctx, "admission:course:c1", mock.Anything).Return(ErrCacheMiss)

	statuses, err := NewAdmissionCache(svc, time.Minute).GetCourseStatus(ctx, "c1")
	assert.Nil(t, statuses)
	assert.True(t, IsCacheMiss(err))
}

func TestAdmissionCache_GetParticipantStatus(t *testing.T) {
	ctx := context.Background()
	svc := new(MockCacheService)
	svc.On("Get", ctx, "admission:course:c1:user:u1", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*models.AdmissionStatus)
			dest.CourseID = "c1"
			dest.UserID = "u1"
			dest.HasAdmission = true
		}).
		Return(nil)

	status, err := NewAdmissionCache(svc, time.Minute).GetParticipantStatus(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, status.HasAdmission)
}

func TestAdmissionCache_InvalidateCourse(t *testing.T) {
	ctx := context.Background()
	svc := new(MockCacheService)
	svc.On("Delete", ctx, "admission:course:c1").Return(nil)
	svc.On("DeletePattern", ctx, "admission:course:c1:user:*").Return(nil)

	require.NoError(t, NewAdmissionCache(svc, time.Minute).InvalidateCourse(ctx, "c1"))
	svc.AssertExpectations(t)
}

func TestAdmissionCache_InvalidateCourseStopsOnError(t *testing.T) {
	ctx := context.Background()
	svc := new(MockCacheService)
	svc.On("Delete", ctx, "admission:course:c1").Return(errors.New("connection refused"))

	err := NewAdmissionCache(svc, time.Minute).InvalidateCourse(ctx, "c1")
	assert.Error(t, err)
	svc.AssertNotCalled(t, "DeletePattern", mock.Anything, mock.Anything)
}
