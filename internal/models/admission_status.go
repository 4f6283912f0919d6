package models

import "time"

// AdmissionStatus is the admission verdict of one participant
type AdmissionStatus struct {
	CourseID     string            `json:"course_id"`
	UserID       string            `json:"user_id"`
	Username     string            `json:"username"`
	HasAdmission bool              `json:"has_admission"`
	Results      []RuleCheckResult `json:"results"`
	EvaluatedAt  time.Time         `json:"evaluated_at"`
}

// AllRulesPassed reports whether every result passed. A status without
// results never grants admission.
func AllRulesPassed(results []RuleCheckResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
