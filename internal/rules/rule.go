// Package rules evaluates admission rules against the assessments of one
// student. Evaluators are built once per course and are safe for concurrent use.
package rules

import (
	"fmt"
	"sync"

	apperrors "github.com/SAP-F-2025/admission-service/internal/errors"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/validator"
)

// Rule checks one admission criterion
type Rule interface {
	Type() models.RuleType
	AssignmentType() models.AssignmentType

	// Check evaluates the assessments of a single student. Assessments for
	// other assignment types are ignored. For duplicates of the same
	// assignment the last one in input order wins.
	Check(assessments []models.Assessment) models.RuleCheckResult
}

// EmptyScopePolicy decides what happens when a rule's assignment type
// matches no assignment of the course
type EmptyScopePolicy int

const (
	// EmptyScopeReject fails construction with a ConfigurationError
	EmptyScopeReject EmptyScopePolicy = iota
	// EmptyScopePass builds a rule that every student passes
	EmptyScopePass
)

func (p EmptyScopePolicy) String() string {
	switch p {
	case EmptyScopeReject:
		return "reject"
	case EmptyScopePass:
		return "pass"
	default:
		return fmt.Sprintf("EmptyScopePolicy(%d)", int(p))
	}
}

// Options configure rule construction
type Options struct {
	EmptyScope EmptyScopePolicy
}

type Option func(*Options)

func WithEmptyScope(policy EmptyScopePolicy) Option {
	return func(o *Options) {
		o.EmptyScope = policy
	}
}

func newOptions(opts []Option) Options {
	options := Options{EmptyScope: EmptyScopeReject}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Constructor builds an evaluator from an already validated configuration
type Constructor func(cfg models.AdmissionRule, assignments []models.Assignment, opts Options) (Rule, error)

// Factory builds evaluators keyed by rule type. A new rule kind is added by
// registering its configuration with models.RegisterRuleKind and its
// constructor with Register.
type Factory struct {
	validator *validator.Validator

	mu           sync.RWMutex
	constructors map[models.RuleType]Constructor
}

// NewFactory creates a factory with every built-in rule kind registered
func NewFactory(v *validator.Validator) *Factory {
	if v == nil {
		v = validator.New()
	}

	f := &Factory{
		validator:    v,
		constructors: make(map[models.RuleType]Constructor),
	}
	f.Register(models.RulePassedXPercentWithAtLeastYPercent, newPassedXPercentWithAtLeastYPercent)
	f.Register(models.RuleRequiredPercentOfTotalPoints, newRequiredPercentOfTotalPoints)
	return f
}

func (f *Factory) Register(t models.RuleType, constructor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[t] = constructor
}

// NewRule validates cfg and builds its evaluator against the course's
// assignments. Every failure is a *errors.ConfigurationError.
func (f *Factory) NewRule(cfg models.AdmissionRule, assignments []models.Assignment, opts ...Option) (Rule, error) {
	if cfg == nil {
		return nil, apperrors.NewFieldConfigurationError("", "rule", "is required", nil)
	}

	ruleType := string(cfg.RuleType())
	if err := f.validator.Validate(cfg); err != nil {
		return nil, apperrors.NewConfigurationError(ruleType, err)
	}

	f.mu.RLock()
	constructor, ok := f.constructors[cfg.RuleType()]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewFieldConfigurationError(ruleType, "type", "has no registered evaluator", cfg.RuleType())
	}

	rule, err := constructor(cfg, assignments, newOptions(opts))
	if err != nil {
		if apperrors.IsConfigurationError(err) {
			return nil, err
		}
		return nil, apperrors.NewConfigurationError(ruleType, err)
	}
	return rule, nil
}

// NewRules builds every rule of a criteria list, stopping at the first
// invalid configuration
func (f *Factory) NewRules(cfgs models.AdmissionRules, assignments []models.Assignment, opts ...Option) ([]Rule, error) {
	built := make([]Rule, 0, len(cfgs))
	for i, cfg := range cfgs {
		rule, err := f.NewRule(cfg, assignments, opts...)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		built = append(built, rule)
	}
	return built, nil
}

var defaultFactory = NewFactory(nil)

// Register adds a constructor to the default factory
func Register(t models.RuleType, constructor Constructor) {
	defaultFactory.Register(t, constructor)
}

// NewRule builds a rule with the default factory
func NewRule(cfg models.AdmissionRule, assignments []models.Assignment, opts ...Option) (Rule, error) {
	return defaultFactory.NewRule(cfg, assignments, opts...)
}
