package rules

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/admission-service/internal/errors"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/utils"
)

// scope is the precomputed set of assignments a rule looks at
type scope struct {
	filter models.AssignmentType

	// relevant assignment ids in catalog order
	ids       []string
	maxPoints map[string]float64

	known map[string]struct{}
}

func newScope(filter models.AssignmentType, assignments []models.Assignment) scope {
	s := scope{
		filter:    filter,
		maxPoints: make(map[string]float64),
		known:     make(map[string]struct{}, len(assignments)),
	}

	for _, assignment := range assignments {
		if _, seen := s.known[assignment.ID]; seen {
			continue
		}
		s.known[assignment.ID] = struct{}{}

		if assignment.Type != filter {
			continue
		}
		s.ids = append(s.ids, assignment.ID)
		s.maxPoints[assignment.ID] = assignment.Points
	}

	return s
}

func (s scope) empty() bool {
	return len(s.ids) == 0
}

func (s scope) totalPoints() float64 {
	var total float64
	for _, id := range s.ids {
		total += s.maxPoints[id]
	}
	return total
}

// checkEmpty applies the empty scope policy
func (s scope) checkEmpty(rule models.RuleType, policy EmptyScopePolicy) error {
	if !s.empty() || policy == EmptyScopePass {
		return nil
	}
	return apperrors.NewFieldConfigurationError(string(rule), "assignment_type", "matches no assignments of the course", s.filter)
}

// checkPoints rejects relevant assignments that have no achievable points
func (s scope) checkPoints(rule models.RuleType) error {
	for _, id := range s.ids {
		if s.maxPoints[id] <= 0 {
			return apperrors.NewFieldConfigurationError(
				string(rule),
				"assignment_type",
				fmt.Sprintf("includes assignment %s without achievable points", id),
				s.filter,
			)
		}
	}
	return nil
}

// achievedPoints maps every relevant assignment with an assessment to its
// achieved points. Assessments for unknown assignments are reported.
func (s scope) achievedPoints(assessments []models.Assessment) (map[string]float64, []models.DataWarning) {
	achieved := make(map[string]float64, len(s.ids))
	var warnings []models.DataWarning

	for _, assessment := range assessments {
		if _, ok := s.known[assessment.AssignmentID]; !ok {
			warnings = append(warnings, models.DataWarning{
				Code:         models.WarningMissingAssignment,
				AssessmentID: assessment.ID,
				AssignmentID: assessment.AssignmentID,
			})
			continue
		}
		if _, ok := s.maxPoints[assessment.AssignmentID]; !ok {
			continue
		}
		achieved[assessment.AssignmentID] = assessment.Points()
	}

	return achieved, warnings
}

// quotaPercent is the share of the required amount that was reached.
// Nothing required means the quota is met.
func quotaPercent(achieved, required float64) float64 {
	percent, err := utils.PercentOf(achieved, required)
	if err != nil {
		return 100
	}
	return percent
}
