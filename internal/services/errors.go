package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/admission-service/internal/errors"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Admission specific errors
	ErrCourseNotFound      = errors.New("course not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrCriteriaNotFound    = errors.New("admission criteria not configured")
	ErrNotAStudent         = errors.New("participant is not a student")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type ConfigurationError = apperrors.ConfigurationError

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, repositories.ErrNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrCriteriaNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrNotAStudent) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConfiguration checks if error reports invalid admission criteria
func IsConfiguration(err error) bool {
	return apperrors.IsConfigurationError(err)
}

// notFound replaces a repository not-found error with a service error
func notFound(err error, replacement error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return replacement
	}
	return err
}
