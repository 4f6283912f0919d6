package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// AdmissionCriteria is the admission policy of a course
type AdmissionCriteria struct {
	CourseID string `json:"course_id" gorm:"primaryKey;size:255"`

	// Rules is a JSON array of rule configurations, see AdmissionRules
	Rules datatypes.JSON `json:"rules" gorm:"type:jsonb;not null"`

	UpdatedBy *string   `json:"updated_by" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdmissionCriteria) TableName() string {
	return "admission_criteria"
}

// DecodeRules returns the typed rule configurations
func (c *AdmissionCriteria) DecodeRules() (AdmissionRules, error) {
	if len(c.Rules) == 0 {
		return AdmissionRules{}, nil
	}

	var rules AdmissionRules
	if err := json.Unmarshal(c.Rules, &rules); err != nil {
		return nil, fmt.Errorf("invalid admission criteria for course %s: %w", c.CourseID, err)
	}
	return rules, nil
}

// SetRules replaces the stored rule configurations
func (c *AdmissionCriteria) SetRules(rules AdmissionRules) error {
	if rules == nil {
		rules = AdmissionRules{}
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode admission rules: %w", err)
	}
	c.Rules = datatypes.JSON(data)
	return nil
}
