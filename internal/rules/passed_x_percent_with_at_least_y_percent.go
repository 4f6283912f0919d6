package rules

import (
	"fmt"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/utils"
)

// passedXPercentWithAtLeastYPercent passes when enough relevant assignments
// reach the required percent of their points
type passedXPercentWithAtLeastYPercent struct {
	scope scope

	requiredPercent   float64
	requiredPassCount float64
	roundPercent      func(float64) float64
}

func newPassedXPercentWithAtLeastYPercent(cfg models.AdmissionRule, assignments []models.Assignment, opts Options) (Rule, error) {
	var c models.PassedXPercentWithAtLeastYPercent
	switch v := cfg.(type) {
	case *models.PassedXPercentWithAtLeastYPercent:
		c = *v
	case models.PassedXPercentWithAtLeastYPercent:
		c = v
	default:
		return nil, fmt.Errorf("unexpected configuration %T for %s", cfg, models.RulePassedXPercentWithAtLeastYPercent)
	}

	roundCount, err := utils.RoundingMethod(c.PassedAssignmentsRounding.Type, c.PassedAssignmentsRounding.Decimals)
	if err != nil {
		return nil, fmt.Errorf("passed assignments rounding: %w", err)
	}
	roundPercent, err := utils.RoundingMethod(c.AchievedPercentRounding.Type, c.AchievedPercentRounding.Decimals)
	if err != nil {
		return nil, fmt.Errorf("achieved percent rounding: %w", err)
	}

	s := newScope(c.AssignmentType, assignments)
	if err := s.checkEmpty(c.Type, opts.EmptyScope); err != nil {
		return nil, err
	}
	if err := s.checkPoints(c.Type); err != nil {
		return nil, err
	}

	return &passedXPercentWithAtLeastYPercent{
		scope:             s,
		requiredPercent:   c.RequiredPercent,
		requiredPassCount: roundCount(utils.CountFromPercent(len(s.ids), c.PassedAssignmentsPercent/100)),
		roundPercent:      roundPercent,
	}, nil
}

func (r *passedXPercentWithAtLeastYPercent) Type() models.RuleType {
	return models.RulePassedXPercentWithAtLeastYPercent
}

func (r *passedXPercentWithAtLeastYPercent) AssignmentType() models.AssignmentType {
	return r.scope.filter
}

// RequiredPassCount is the number of assignments a student has to pass
func (r *passedXPercentWithAtLeastYPercent) RequiredPassCount() float64 {
	return r.requiredPassCount
}

func (r *passedXPercentWithAtLeastYPercent) Check(assessments []models.Assessment) models.RuleCheckResult {
	achieved, warnings := r.scope.achievedPoints(assessments)

	passedCount := 0
	for _, id := range r.scope.ids {
		percent, err := utils.PercentOf(achieved[id], r.scope.maxPoints[id])
		if err != nil {
			// unreachable, construction rejects assignments without points
			continue
		}
		if r.roundPercent(percent) >= r.requiredPercent {
			passedCount++
		}
	}

	passed := float64(passedCount)
	return models.RuleCheckResult{
		AchievedPoints:  passed,
		AchievedPercent: quotaPercent(passed, r.requiredPassCount),
		Passed:          passed >= r.requiredPassCount,
		Rule:            r.Type(),
		AssignmentType:  r.AssignmentType(),
		Warnings:        warnings,
	}
}
