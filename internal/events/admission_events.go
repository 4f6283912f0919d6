package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of admission events
type EventType string

const (
	EventAdmissionStatusComputed  EventType = "admission.status_computed"
	EventAdmissionCriteriaUpdated EventType = "admission.criteria_updated"
)

const (
	eventSource  = "admission-service"
	eventVersion = "1.0"
)

// AdmissionEvent is the base event structure for all admission events
type AdmissionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Admission event payloads

type AdmissionStatusComputedEvent struct {
	CourseID         string   `json:"course_id"`
	ParticipantCount int      `json:"participant_count"`
	AdmittedCount    int      `json:"admitted_count"`
	AdmittedUserIDs  []string `json:"admitted_user_ids"`
	RuleCount        int      `json:"rule_count"`
	DataWarningCount int      `json:"data_warning_count"`
}

type AdmissionCriteriaUpdatedEvent struct {
	CourseID  string  `json:"course_id"`
	RuleCount int     `json:"rule_count"`
	UpdatedBy *string `json:"updated_by,omitempty"`
}

// Event factory functions

func NewAdmissionStatusComputedEvent(data AdmissionStatusComputedEvent) *AdmissionEvent {
	return newEvent(EventAdmissionStatusComputed, data)
}

func NewAdmissionCriteriaUpdatedEvent(courseID string, ruleCount int, updatedBy *string) *AdmissionEvent {
	return newEvent(EventAdmissionCriteriaUpdated, AdmissionCriteriaUpdatedEvent{
		CourseID:  courseID,
		RuleCount: ruleCount,
		UpdatedBy: updatedBy,
	})
}

func newEvent(eventType EventType, data interface{}) *AdmissionEvent {
	return &AdmissionEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random event id
func GenerateEventID() string {
	return uuid.NewString()
}
