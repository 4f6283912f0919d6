package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

// AdmissionCache stores computed admission statuses per course
type AdmissionCache interface {
	GetCourseStatus(ctx context.Context, courseID string) ([]*models.AdmissionStatus, error)
	SetCourseStatus(ctx context.Context, courseID string, statuses []*models.AdmissionStatus) error

	GetParticipantStatus(ctx context.Context, courseID, userID string) (*models.AdmissionStatus, error)
	SetParticipantStatus(ctx context.Context, status *models.AdmissionStatus) error

	// InvalidateCourse drops the course status and every participant status
	InvalidateCourse(ctx context.Context, courseID string) error
}

type admissionCache struct {
	cache CacheService
	ttl   time.Duration
}

func NewAdmissionCache(cache CacheService, ttl time.Duration) AdmissionCache {
	return &admissionCache{cache: cache, ttl: ttl}
}

func CourseStatusKey(courseID string) string {
	return fmt.Sprintf("admission:course:%s", courseID)
}

func ParticipantStatusKey(courseID, userID string) string {
	return fmt.Sprintf("admission:course:%s:user:%s", courseID, userID)
}

func (c *admissionCache) GetCourseStatus(ctx context.Context, courseID string) ([]*models.AdmissionStatus, error) {
	var statuses []*models.AdmissionStatus
	if err := c.cache.Get(ctx, CourseStatusKey(courseID), &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *admissionCache) SetCourseStatus(ctx context.Context, courseID string, statuses []*models.AdmissionStatus) error {
	return c.cache.Set(ctx, CourseStatusKey(courseID), statuses, c.ttl)
}

func (c *admissionCache) GetParticipantStatus(ctx context.Context, courseID, userID string) (*models.AdmissionStatus, error) {
	var status models.AdmissionStatus
	if err := c.cache.Get(ctx, ParticipantStatusKey(courseID, userID), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *admissionCache) SetParticipantStatus(ctx context.Context, status *models.AdmissionStatus) error {
	return c.cache.Set(ctx, ParticipantStatusKey(status.CourseID, status.UserID), status, c.ttl)
}

func (c *admissionCache) InvalidateCourse(ctx context.Context, courseID string) error {
	if err := c.cache.Delete(ctx, CourseStatusKey(courseID)); err != nil {
		return err
	}
	return c.cache.DeletePattern(ctx, ParticipantStatusKey(courseID, "*"))
}
