package errors

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if validatorErr, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validatorErr {
			errors = append(errors, ValidationError{
				Field:   fieldPath(err),
				Message: getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// fieldPath returns the JSON path of the failing field, without the root
// struct name and without embedded struct names.
func fieldPath(err validator.FieldError) string {
	segments := strings.Split(err.Namespace(), ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}

	path := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" || unicode.IsUpper(rune(segment[0])) {
			continue
		}
		path = append(path, segment)
	}
	if len(path) == 0 {
		return err.Field()
	}
	return strings.Join(path, ".")
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "numeric":
		return "must be a number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())

	// Custom validators
	case "rule_type":
		return "must be a valid rule type (PASSED_X_PERCENT_WITH_AT_LEAST_Y_PERCENT, REQUIRED_PERCENT_OF_TOTAL_POINTS)"
	case "assignment_type":
		return "must be a valid assignment type (HOMEWORK, TESTAT, PROJECT, SEMINAR, PRESENTATION, EXAM_PREP, REQUIRED, OTHER)"
	case "rounding_type":
		return "must be a valid rounding type (NONE, ROUND_HALF_UP, DEFAULT, ROUND_UP, ROUND_DOWN)"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
