package rules

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/admission-service/internal/errors"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/utils"
)

// requiredPercentOfTotalPoints passes when the points achieved over all
// relevant assignments reach the required percent of their total
type requiredPercentOfTotalPoints struct {
	scope scope

	totalPoints     float64
	requiredPercent float64
	roundPercent    func(float64) float64
}

func newRequiredPercentOfTotalPoints(cfg models.AdmissionRule, assignments []models.Assignment, opts Options) (Rule, error) {
	var c models.RequiredPercentOfTotalPoints
	switch v := cfg.(type) {
	case *models.RequiredPercentOfTotalPoints:
		c = *v
	case models.RequiredPercentOfTotalPoints:
		c = v
	default:
		return nil, fmt.Errorf("unexpected configuration %T for %s", cfg, models.RuleRequiredPercentOfTotalPoints)
	}

	roundPercent, err := utils.RoundingMethod(c.AchievedPercentRounding.Type, c.AchievedPercentRounding.Decimals)
	if err != nil {
		return nil, fmt.Errorf("achieved percent rounding: %w", err)
	}

	s := newScope(c.AssignmentType, assignments)
	if err := s.checkEmpty(c.Type, opts.EmptyScope); err != nil {
		return nil, err
	}

	total := s.totalPoints()
	if !s.empty() && total <= 0 {
		return nil, apperrors.NewFieldConfigurationError(string(c.Type), "assignment_type", "matches assignments without achievable points", c.AssignmentType)
	}

	return &requiredPercentOfTotalPoints{
		scope:           s,
		totalPoints:     total,
		requiredPercent: c.RequiredPercent,
		roundPercent:    roundPercent,
	}, nil
}

func (r *requiredPercentOfTotalPoints) Type() models.RuleType {
	return models.RuleRequiredPercentOfTotalPoints
}

func (r *requiredPercentOfTotalPoints) AssignmentType() models.AssignmentType {
	return r.scope.filter
}

func (r *requiredPercentOfTotalPoints) Check(assessments []models.Assessment) models.RuleCheckResult {
	achieved, warnings := r.scope.achievedPoints(assessments)

	var sum float64
	for _, id := range r.scope.ids {
		sum += achieved[id]
	}

	percent := r.roundPercent(quotaPercent(sum, r.totalPoints))
	return models.RuleCheckResult{
		AchievedPoints:  sum,
		AchievedPercent: percent,
		Passed:          percent >= r.requiredPercent,
		Rule:            r.Type(),
		AssignmentType:  r.AssignmentType(),
		Warnings:        warnings,
	}
}
