package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	apperrors "github.com/SAP-F-2025/admission-service/internal/errors"
	"github.com/SAP-F-2025/admission-service/internal/events"
	"github.com/SAP-F-2025/admission-service/internal/metrics"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/rules"
	"github.com/SAP-F-2025/admission-service/internal/validator"
)

// validationErrorLabel is the configuration error label for rules rejected
// before they reach a rule kind
const validationErrorLabel = "validation"

// AdmissionStatusService decides which participants of a course are admitted
// to the exam
type AdmissionStatusService interface {
	GetAdmissionStatusOfParticipant(ctx context.Context, courseID, userID string) (*models.AdmissionStatus, error)

	// GetAdmissionStatusOfCourse returns the status of every student of the
	// course, in participant order
	GetAdmissionStatusOfCourse(ctx context.Context, courseID string) ([]*models.AdmissionStatus, error)

	GetAdmissionCriteria(ctx context.Context, courseID string) (models.AdmissionRules, error)

	// ValidateAdmissionCriteria checks rules against the course's assignments
	// without storing them. Invalid rules yield a *errors.ConfigurationError.
	ValidateAdmissionCriteria(ctx context.Context, courseID string, criteria models.AdmissionRules) error

	SetAdmissionCriteria(ctx context.Context, courseID string, criteria models.AdmissionRules, updatedBy *string) error
}

// AdmissionStatusOptions tune evaluation
type AdmissionStatusOptions struct {
	// Workers bounds the number of participants evaluated concurrently
	Workers int

	// AllowEmptyRuleScope lets rules without relevant assignments pass
	AllowEmptyRuleScope bool
}

type admissionStatusService struct {
	repo      repositories.Repository
	cache     cache.AdmissionCache
	publisher events.EventPublisher
	factory   *rules.Factory
	validator *validator.Validator
	metrics   *metrics.Metrics
	logger    *ServiceLogger
	opts      AdmissionStatusOptions
	now       func() time.Time
}

// NewAdmissionStatusService creates the service. admissionCache, publisher
// and m may be nil.
func NewAdmissionStatusService(
	repo repositories.Repository,
	admissionCache cache.AdmissionCache,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
	m *metrics.Metrics,
	opts AdmissionStatusOptions,
) AdmissionStatusService {
	if v == nil {
		v = validator.New()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &admissionStatusService{
		repo:      repo,
		cache:     admissionCache,
		publisher: publisher,
		factory:   rules.NewFactory(v),
		validator: v,
		metrics:   m,
		logger:    NewServiceLogger(logger, LogConfig{Service: "admission-service", Component: "admission_status"}),
		opts:      opts,
		now:       time.Now,
	}
}

// courseRules is a course's catalog with its evaluators built once
type courseRules struct {
	course      *models.Course
	assignments []models.Assignment
	rules       []rules.Rule
}

// ===== STATUS =====

func (s *admissionStatusService) GetAdmissionStatusOfParticipant(ctx context.Context, courseID, userID string) (status *models.AdmissionStatus, err error) {
	op := s.logger.WithOperation(ctx, "get_admission_status_of_participant", courseID, userID)
	defer func() { op.LogResult(err) }()

	participant, err := s.repo.Participant().GetByCourseAndUser(ctx, nil, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", notFound(err, ErrParticipantNotFound))
	}
	if participant.Role != models.CourseRoleStudent {
		return nil, ErrNotAStudent
	}

	if cached, ok := s.cachedParticipantStatus(ctx, courseID, userID); ok {
		return cached, nil
	}

	cr, err := s.loadCourseRules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	assessments, err := s.repo.Assessment().GetByParticipant(ctx, nil, courseID, userID, repositories.AssessmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get assessments: %w", err)
	}

	status = s.evaluate(ctx, cr, participant, assessments)

	if s.cache != nil {
		if err := s.cache.SetParticipantStatus(ctx, status); err != nil {
			s.logger.logger.WarnContext(ctx, "Failed to cache admission status", "course_id", courseID, "user_id", userID, "error", err)
		}
	}

	return status, nil
}

func (s *admissionStatusService) GetAdmissionStatusOfCourse(ctx context.Context, courseID string) (statuses []*models.AdmissionStatus, err error) {
	op := s.logger.WithOperation(ctx, "get_admission_status_of_course", courseID, "")
	defer func() { op.LogResult(err) }()

	if cached, ok := s.cachedCourseStatus(ctx, courseID); ok {
		return cached, nil
	}

	start := time.Now()

	cr, err := s.loadCourseRules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Participant().ListByRole(ctx, nil, courseID, models.CourseRoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	assessments, err := s.repo.Assessment().GetByCourse(ctx, nil, courseID, repositories.AssessmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get assessments: %w", err)
	}

	memberships, err := s.repo.Participant().GetGroupMemberships(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group memberships: %w", err)
	}

	byUser := assessmentsByUser(assessments, memberships)

	statuses = make([]*models.AdmissionStatus, len(students))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i := range students {
		participant := &students[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			statuses[i] = s.evaluate(gctx, cr, participant, byUser[participant.UserID])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to evaluate admission status: %w", err)
	}

	s.metrics.ObserveCourseEvaluateLatency(time.Since(start))

	if s.cache != nil {
		if err := s.cache.SetCourseStatus(ctx, courseID, statuses); err != nil {
			s.logger.logger.WarnContext(ctx, "Failed to cache course admission status", "course_id", courseID, "error", err)
		}
	}

	s.publish(ctx, events.NewAdmissionStatusComputedEvent(summarize(courseID, len(cr.rules), statuses)))

	return statuses, nil
}

// evaluate checks every rule for one participant. Assessments must be
// ordered oldest first.
func (s *admissionStatusService) evaluate(ctx context.Context, cr *courseRules, participant *models.Participant, assessments []models.Assessment) *models.AdmissionStatus {
	results := make([]models.RuleCheckResult, 0, len(cr.rules))
	for _, rule := range cr.rules {
		result := rule.Check(assessments)
		s.metrics.IncrementRuleCheck(string(result.Rule), result.Passed)
		results = append(results, result)
	}

	warnings := uniqueWarnings(results)
	s.metrics.AddDataWarnings(string(models.WarningMissingAssignment), len(warnings))
	s.logger.LogDataWarnings(ctx, cr.course.ID, participant.UserID, warnings)

	hasAdmission := models.AllRulesPassed(results)
	s.metrics.IncrementAdmission(hasAdmission)

	return &models.AdmissionStatus{
		CourseID:     cr.course.ID,
		UserID:       participant.UserID,
		Username:     participant.Username,
		HasAdmission: hasAdmission,
		Results:      results,
		EvaluatedAt:  s.now().UTC(),
	}
}

// ===== CRITERIA =====

func (s *admissionStatusService) GetAdmissionCriteria(ctx context.Context, courseID string) (models.AdmissionRules, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	criteria, err := s.repo.AdmissionCriteria().GetByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission criteria: %w", notFound(err, ErrCriteriaNotFound))
	}
	return criteria.DecodeRules()
}

func (s *admissionStatusService) ValidateAdmissionCriteria(ctx context.Context, courseID string, criteria models.AdmissionRules) (err error) {
	op := s.logger.WithOperation(ctx, "validate_admission_criteria", courseID, "")
	defer func() { op.LogResult(err) }()

	_, err = s.buildCriteria(ctx, courseID, criteria)
	return err
}

func (s *admissionStatusService) SetAdmissionCriteria(ctx context.Context, courseID string, criteria models.AdmissionRules, updatedBy *string) (err error) {
	op := s.logger.WithOperation(ctx, "set_admission_criteria", courseID, "")
	defer func() { op.LogResult(err) }()

	if _, err := s.buildCriteria(ctx, courseID, criteria); err != nil {
		return err
	}

	record := &models.AdmissionCriteria{CourseID: courseID, UpdatedBy: updatedBy}
	if err := record.SetRules(criteria); err != nil {
		return err
	}

	if err := s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.repo.AdmissionCriteria().Upsert(ctx, tx, record)
	}); err != nil {
		return fmt.Errorf("failed to save admission criteria: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCourse(ctx, courseID); err != nil {
			s.logger.logger.WarnContext(ctx, "Failed to invalidate admission cache", "course_id", courseID, "error", err)
		}
	}

	s.logger.LogAuditEvent(ctx, AuditEvent{
		Type:         AuditEventUpdate,
		UserID:       updatedBy,
		ResourceID:   courseID,
		ResourceType: "admission_criteria",
		Action:       "set_admission_criteria",
		NewValue:     criteria,
		Timestamp:    s.now().UTC(),
	})
	s.publish(ctx, events.NewAdmissionCriteriaUpdatedEvent(courseID, len(criteria), updatedBy))

	return nil
}

// buildCriteria validates every rule and builds it against the course's
// assignments
func (s *admissionStatusService) buildCriteria(ctx context.Context, courseID string, criteria models.AdmissionRules) ([]rules.Rule, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateRules(criteria); err != nil {
		s.metrics.IncrementConfigurationError(validationErrorLabel)
		return nil, apperrors.NewConfigurationError("", err)
	}

	assignments, err := s.repo.Assignment().GetByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	built, err := s.factory.NewRules(criteria, assignments, s.ruleOptions()...)
	if err != nil {
		s.recordConfigurationError(err)
		return nil, err
	}
	return built, nil
}

// ===== HELPERS =====

func (s *admissionStatusService) getCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", notFound(err, ErrCourseNotFound))
	}
	return course, nil
}

func (s *admissionStatusService) loadCourseRules(ctx context.Context, courseID string) (*courseRules, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	criteria, err := s.repo.AdmissionCriteria().GetByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission criteria: %w", notFound(err, ErrCriteriaNotFound))
	}
	configs, err := criteria.DecodeRules()
	if err != nil {
		return nil, apperrors.NewConfigurationError("", err)
	}

	assignments, err := s.repo.Assignment().GetByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	// stored criteria can become invalid when assignments change
	built, err := s.factory.NewRules(configs, assignments, s.ruleOptions()...)
	if err != nil {
		s.recordConfigurationError(err)
		return nil, err
	}

	return &courseRules{course: course, assignments: assignments, rules: built}, nil
}

func (s *admissionStatusService) ruleOptions() []rules.Option {
	if s.opts.AllowEmptyRuleScope {
		return []rules.Option{rules.WithEmptyScope(rules.EmptyScopePass)}
	}
	return nil
}

func (s *admissionStatusService) recordConfigurationError(err error) {
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		s.metrics.IncrementConfigurationError(configErr.Rule)
	}
}

func (s *admissionStatusService) cachedCourseStatus(ctx context.Context, courseID string) ([]*models.AdmissionStatus, bool) {
	if s.cache == nil {
		return nil, false
	}
	statuses, err := s.cache.GetCourseStatus(ctx, courseID)
	return statuses, s.cacheLookup(ctx, courseID, err)
}

func (s *admissionStatusService) cachedParticipantStatus(ctx context.Context, courseID, userID string) (*models.AdmissionStatus, bool) {
	if s.cache == nil {
		return nil, false
	}
	status, err := s.cache.GetParticipantStatus(ctx, courseID, userID)
	return status, s.cacheLookup(ctx, courseID, err)
}

func (s *admissionStatusService) cacheLookup(ctx context.Context, courseID string, err error) bool {
	switch {
	case err == nil:
		s.metrics.IncrementCacheLookup("hit")
		return true
	case cache.IsCacheMiss(err):
		s.metrics.IncrementCacheLookup("miss")
	default:
		s.metrics.IncrementCacheLookup("error")
		s.logger.logger.WarnContext(ctx, "Failed to read admission cache", "course_id", courseID, "error", err)
	}
	return false
}

func (s *admissionStatusService) publish(ctx context.Context, event *events.AdmissionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAdmissionEvent(ctx, event); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to publish admission event", "event_type", event.Type, "error", err)
	}
}

// assessmentsByUser distributes assessments to users. Group assessments go
// to every user that has been a member of the group. Input order is kept.
func assessmentsByUser(assessments []models.Assessment, memberships []models.GroupMembership) map[string][]models.Assessment {
	members := make(map[string][]string)
	for _, m := range memberships {
		members[m.GroupID] = append(members[m.GroupID], m.UserID)
	}

	byUser := make(map[string][]models.Assessment)
	for _, a := range assessments {
		switch {
		case a.GroupID != nil:
			for _, userID := range members[*a.GroupID] {
				byUser[userID] = append(byUser[userID], a)
			}
		case a.UserID != nil:
			byUser[*a.UserID] = append(byUser[*a.UserID], a)
		}
	}
	return byUser
}

func uniqueWarnings(results []models.RuleCheckResult) []models.DataWarning {
	var warnings []models.DataWarning
	seen := make(map[string]struct{})
	for _, result := range results {
		for _, w := range result.Warnings {
			if _, ok := seen[w.AssessmentID]; ok {
				continue
			}
			seen[w.AssessmentID] = struct{}{}
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func summarize(courseID string, ruleCount int, statuses []*models.AdmissionStatus) events.AdmissionStatusComputedEvent {
	summary := events.AdmissionStatusComputedEvent{
		CourseID:         courseID,
		ParticipantCount: len(statuses),
		AdmittedUserIDs:  []string{},
		RuleCount:        ruleCount,
	}
	for _, status := range statuses {
		if status.HasAdmission {
			summary.AdmittedCount++
			summary.AdmittedUserIDs = append(summary.AdmittedUserIDs, status.UserID)
		}
		summary.DataWarningCount += len(uniqueWarnings(status.Results))
	}
	return summary
}
