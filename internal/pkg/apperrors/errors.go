package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrResourceNotFound)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
)

// Setup errors
var (
	ErrAlreadyInitialized = errors.New("system already initialized")
	ErrNotInitialized     = fmt.Errorf("system not initialized: %w", ErrConflict)
)

// Workflow errors
var (
	// ErrInvalidTransition is returned when a status change is not allowed
	// by the entity's transition table.
	ErrInvalidTransition = errors.New("illegal status transition")
)

// Domain sentinels wrap the base taxonomy above so the HTTP layer can map
// any of them with a single errors.Is check per status code.

// Enrollment errors
var (
	ErrEnrollmentNotFound = fmt.Errorf("enrollment not found: %w", ErrResourceNotFound)
	ErrAlreadyEnrolled    = fmt.Errorf("student is already enrolled in this course: %w", ErrResourceAlreadyExists)
	ErrCourseNotActive    = fmt.Errorf("course is not open for enrollment: %w", ErrConflict)
)

// Attendance errors
var (
	ErrAttendanceNotFound = fmt.Errorf("attendance record not found: %w", ErrResourceNotFound)
	ErrAttendanceExists   = fmt.Errorf("attendance already marked for this date: %w", ErrResourceAlreadyExists)
)

// Course errors
var (
	ErrCourseNotFound  = fmt.Errorf("course not found: %w", ErrResourceNotFound)
	ErrTeacherAssigned = fmt.Errorf("teacher is already assigned to this course: %w", ErrResourceAlreadyExists)
)

// Recruitment errors
var (
	ErrJobPostNotFound    = fmt.Errorf("job post not found: %w", ErrResourceNotFound)
	ErrAlreadyApplied     = fmt.Errorf("candidate has already applied for this job: %w", ErrResourceAlreadyExists)
	ErrDeadlinePassed     = fmt.Errorf("application deadline has passed: %w", ErrConflict)
	ErrProfileIncomplete  = fmt.Errorf("candidate profile is incomplete: %w", ErrBadRequest)
	ErrApplicationMissing = fmt.Errorf("application not found: %w", ErrResourceNotFound)
)

// Finance errors
var (
	ErrSalaryExists          = fmt.Errorf("salary already recorded for this employee and month: %w", ErrResourceAlreadyExists)
	ErrFeePaymentNotFound    = fmt.Errorf("fee payment not found: %w", ErrResourceNotFound)
	ErrOverviewAlreadyExists = fmt.Errorf("financial overview already exists for this month: %w", ErrResourceAlreadyExists)
)

// Certificate errors
var (
	ErrCertificateNotFound = fmt.Errorf("certificate not found: %w", ErrResourceNotFound)
	ErrCertificateExists   = fmt.Errorf("certificate already exists for this course: %w", ErrResourceAlreadyExists)
	ErrCourseNotCompleted  = fmt.Errorf("course has not been completed: %w", ErrConflict)
)

// Email verification errors
var (
	ErrEmailNotVerified     = fmt.Errorf("email not verified: %w", ErrPermissionDenied)
	ErrInvalidEmailToken    = fmt.Errorf("invalid or expired email verification token: %w", ErrTokenInvalid)
	ErrEmailAlreadyVerified = fmt.Errorf("email already verified: %w", ErrConflict)
)

// Password reset errors
var (
	ErrInvalidPasswordResetToken = fmt.Errorf("invalid or expired password reset token: %w", ErrTokenInvalid)
	ErrPasswordResetTokenUsed    = fmt.Errorf("password reset token has already been used: %w", ErrTokenInvalid)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
