package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/SAP-F-2025/admission-service/internal/utils"
)

type RuleType string

const (
	RulePassedXPercentWithAtLeastYPercent RuleType = "PASSED_X_PERCENT_WITH_AT_LEAST_Y_PERCENT"
	RuleRequiredPercentOfTotalPoints      RuleType = "REQUIRED_PERCENT_OF_TOTAL_POINTS"
)

// RoundingOption is a (method, precision) pair
type RoundingOption struct {
	Type     utils.RoundingType `json:"type" validate:"required,rounding_type"`
	Decimals int                `json:"decimals" validate:"min=0,max=10"`
}

// AdmissionRule is the configuration of a single admission criterion.
// Concrete kinds are registered with RegisterRuleKind.
type AdmissionRule interface {
	RuleType() RuleType
	FilterType() AssignmentType
}

// RuleBase holds the fields shared by every rule kind
type RuleBase struct {
	Type           RuleType       `json:"type" validate:"required,rule_type"`
	AssignmentType AssignmentType `json:"assignment_type" validate:"required,assignment_type"`
}

func (r RuleBase) RuleType() RuleType {
	return r.Type
}

func (r RuleBase) FilterType() AssignmentType {
	return r.AssignmentType
}

// PassedXPercentWithAtLeastYPercent requires the student to pass
// PassedAssignmentsPercent of the relevant assignments, where an assignment
// counts as passed when at least RequiredPercent of its points were achieved.
type PassedXPercentWithAtLeastYPercent struct {
	RuleBase

	PassedAssignmentsPercent  float64        `json:"passed_assignments_percent" validate:"min=0,max=100"`
	PassedAssignmentsRounding RoundingOption `json:"passed_assignments_rounding"`
	RequiredPercent           float64        `json:"required_percent" validate:"min=0,max=100"`
	AchievedPercentRounding   RoundingOption `json:"achieved_percent_rounding"`
}

// RequiredPercentOfTotalPoints requires the student to achieve RequiredPercent
// of the summed points of all relevant assignments.
type RequiredPercentOfTotalPoints struct {
	RuleBase

	RequiredPercent         float64        `json:"required_percent" validate:"min=0,max=100"`
	AchievedPercentRounding RoundingOption `json:"achieved_percent_rounding"`
}

var (
	ruleKindsMu sync.RWMutex
	ruleKinds   = map[RuleType]func() AdmissionRule{
		RulePassedXPercentWithAtLeastYPercent: func() AdmissionRule { return &PassedXPercentWithAtLeastYPercent{} },
		RuleRequiredPercentOfTotalPoints:      func() AdmissionRule { return &RequiredPercentOfTotalPoints{} },
	}
	ruleKindsByConfig = map[reflect.Type]RuleType{
		configType(&PassedXPercentWithAtLeastYPercent{}): RulePassedXPercentWithAtLeastYPercent,
		configType(&RequiredPercentOfTotalPoints{}):      RuleRequiredPercentOfTotalPoints,
	}
)

// RegisterRuleKind makes a rule kind decodable from its type tag
func RegisterRuleKind(t RuleType, newRule func() AdmissionRule) {
	ruleKindsMu.Lock()
	defer ruleKindsMu.Unlock()
	ruleKinds[t] = newRule
	if cfg := newRule(); cfg != nil {
		ruleKindsByConfig[configType(cfg)] = t
	}
}

// ExpectedRuleType returns the type tag the rule's configuration struct was
// registered under. ok is false for unregistered configurations.
func ExpectedRuleType(rule AdmissionRule) (RuleType, bool) {
	if rule == nil {
		return "", false
	}
	ruleKindsMu.RLock()
	defer ruleKindsMu.RUnlock()
	t, ok := ruleKindsByConfig[configType(rule)]
	return t, ok
}

// configType maps *T and T to the same key
func configType(rule AdmissionRule) reflect.Type {
	t := reflect.TypeOf(rule)
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func IsValidRuleType(t RuleType) bool {
	ruleKindsMu.RLock()
	defer ruleKindsMu.RUnlock()
	_, ok := ruleKinds[t]
	return ok
}

// DecodeAdmissionRule decodes a raw rule configuration into its concrete kind
func DecodeAdmissionRule(raw []byte) (AdmissionRule, error) {
	var base RuleBase
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("failed to decode rule: %w", err)
	}

	ruleKindsMu.RLock()
	newRule, ok := ruleKinds[base.Type]
	ruleKindsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown rule type %q", base.Type)
	}

	rule := newRule()
	if err := json.Unmarshal(raw, rule); err != nil {
		return nil, fmt.Errorf("failed to decode %s rule: %w", base.Type, err)
	}
	return rule, nil
}

// AdmissionRules is an ordered list of rule configurations
type AdmissionRules []AdmissionRule

func (r *AdmissionRules) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("failed to decode rules: %w", err)
	}

	rules := make(AdmissionRules, 0, len(raws))
	for i, raw := range raws {
		rule, err := DecodeAdmissionRule(raw)
		if err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}

	*r = rules
	return nil
}
