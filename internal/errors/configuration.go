package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ConfigurationError reports an admission rule that cannot be evaluated.
// It is raised while building a rule, never while checking one.
type ConfigurationError struct {
	Rule   string           `json:"rule,omitempty"`
	Errors ValidationErrors `json:"errors,omitempty"`
	Cause  error            `json:"-"`
}

func (ce *ConfigurationError) Error() string {
	prefix := "invalid rule configuration"
	if ce.Rule != "" {
		prefix = fmt.Sprintf("invalid %s rule configuration", ce.Rule)
	}
	switch {
	case len(ce.Errors) > 0:
		return fmt.Sprintf("%s: %s", prefix, ce.Errors.Error())
	case ce.Cause != nil:
		return fmt.Sprintf("%s: %s", prefix, ce.Cause.Error())
	default:
		return prefix
	}
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Cause
}

// NewConfigurationError wraps cause. Struct validation failures are
// converted into field errors.
func NewConfigurationError(rule string, cause error) *ConfigurationError {
	ce := &ConfigurationError{Rule: rule, Cause: cause}

	var validationErrs validator.ValidationErrors
	var fieldErrs ValidationErrors
	switch {
	case stderrors.As(cause, &validationErrs):
		ce.Errors = ToValidationErrors(validationErrs)
	case stderrors.As(cause, &fieldErrs):
		ce.Errors = fieldErrs
	}

	return ce
}

// NewFieldConfigurationError reports a single invalid field
func NewFieldConfigurationError(rule, field, message string, value interface{}) *ConfigurationError {
	fieldErrs := ValidationErrors{*NewValidationError(field, message, value)}
	return &ConfigurationError{Rule: rule, Errors: fieldErrs, Cause: fieldErrs}
}

// IsConfigurationError checks if err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return stderrors.As(err, &ce)
}
