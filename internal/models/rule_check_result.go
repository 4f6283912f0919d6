package models

type DataWarningCode string

const (
	// WarningMissingAssignment: the assessment references an assignment that
	// is not part of the course catalog. The assessment is ignored.
	WarningMissingAssignment DataWarningCode = "MISSING_ASSIGNMENT"
)

// DataWarning reports an input record that was excluded from an evaluation
type DataWarning struct {
	Code         DataWarningCode `json:"code"`
	AssessmentID string          `json:"assessment_id"`
	AssignmentID string          `json:"assignment_id"`
}

// RuleCheckResult is the outcome of checking one rule for one student.
//
// Field meaning depends on the rule kind:
//
//   - PASSED_X_PERCENT_WITH_AT_LEAST_Y_PERCENT: AchievedPoints is the number
//     of passed assignments (a count, not points). AchievedPercent is that
//     count relative to the required number of passed assignments, so 100
//     means the quota is exactly met.
//   - REQUIRED_PERCENT_OF_TOTAL_POINTS: AchievedPoints is the sum of achieved
//     points and AchievedPercent the rounded percent of the total points.
type RuleCheckResult struct {
	AchievedPoints  float64        `json:"achieved_points"`
	AchievedPercent float64        `json:"achieved_percent"`
	Passed          bool           `json:"passed"`
	Rule            RuleType       `json:"rule"`
	AssignmentType  AssignmentType `json:"assignment_type"`
	Warnings        []DataWarning  `json:"warnings,omitempty"`
}
