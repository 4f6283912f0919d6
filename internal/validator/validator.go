package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SAP-F-2025/admission-service/internal/errors"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/utils"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines struct tags and
// business rules for admission criteria
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateBusiness validates business rules only
func (v *Validator) ValidateBusiness(s interface{}) ValidationErrors {
	rule, ok := s.(models.AdmissionRule)
	if !ok {
		return nil
	}
	return validateRuleKind(rule)
}

// Validate performs complete validation (struct + business rules)
func (v *Validator) Validate(s interface{}) error {
	// First validate struct tags
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	// Then validate business rules
	if errs := v.ValidateBusiness(s); len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateRules validates every rule of a criteria list. Field paths are
// prefixed with the rule index.
func (v *Validator) ValidateRules(rules models.AdmissionRules) error {
	var all ValidationErrors
	for i, rule := range rules {
		if rule == nil {
			all = append(all, *errors.NewValidationErrorWithRule(fmt.Sprintf("rules[%d]", i), "is required", "required", nil))
			continue
		}

		err := v.Validate(rule)
		if err == nil {
			continue
		}

		fieldErrs := ToValidationErrors(err)
		if businessErrs, ok := err.(ValidationErrors); ok {
			fieldErrs = businessErrs
		}
		if len(fieldErrs) == 0 {
			fieldErrs = ValidationErrors{*errors.NewValidationError("", err.Error(), nil)}
		}
		for _, fe := range fieldErrs {
			fe.Field = strings.TrimSuffix(fmt.Sprintf("rules[%d].%s", i, fe.Field), ".")
			all = append(all, fe)
		}
	}

	if len(all) > 0 {
		return all
	}
	return nil
}

// validateRuleKind checks that the type tag matches the concrete configuration
func validateRuleKind(rule models.AdmissionRule) ValidationErrors {
	expected, ok := models.ExpectedRuleType(rule)
	if !ok {
		return nil
	}

	if rule.RuleType() != expected {
		return ValidationErrors{*errors.NewValidationErrorWithRule(
			"type",
			fmt.Sprintf("does not match the rule configuration (expected %s)", expected),
			"rule_kind",
			rule.RuleType(),
		)}
	}
	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("rule_type", validateRuleType)
	validate.RegisterValidation("assignment_type", validateAssignmentType)
	validate.RegisterValidation("rounding_type", validateRoundingType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateRuleType(fl validator.FieldLevel) bool {
	return models.IsValidRuleType(models.RuleType(fl.Field().String()))
}

func validateAssignmentType(fl validator.FieldLevel) bool {
	return models.IsValidAssignmentType(models.AssignmentType(fl.Field().String()))
}

func validateRoundingType(fl validator.FieldLevel) bool {
	return utils.IsValidRoundingType(utils.RoundingType(fl.Field().String()))
}
