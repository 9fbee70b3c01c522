// Package apperror defines the application error taxonomy and its mapping
// onto HTTP status codes, so handlers can return typed errors and let a
// single response writer pick the wire code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// ConflictError means a duplicate identity at registration
	ConflictError
	// InvalidCredentialsError means a failed login attempt
	InvalidCredentialsError
	// UnauthenticatedError means no token was presented
	UnauthenticatedError
	// InvalidTokenError means the token is malformed, unparseable, or expired
	InvalidTokenError
	// NotFoundError means the target record is absent or not owned by the caller
	NotFoundError
	// ValidationError means a required field is missing or malformed
	ValidationError
	// DatabaseError represents an error originating from the store
	DatabaseError
	// InternalError represents a generic internal server error
	InternalError
)

// AppError is the error type returned by services and handlers.
// It wraps an optional underlying cause for debugging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
// Conflict and invalid credentials map to 400 rather than 409/401 to stay
// wire-compatible with the published API contract.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ConflictError:
		return http.StatusBadRequest
	case InvalidCredentialsError:
		return http.StatusBadRequest
	case UnauthenticatedError:
		return http.StatusUnauthorized
	case InvalidTokenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	case DatabaseError:
		return http.StatusInternalServerError
	case InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError of an arbitrary type.
func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewConflictError creates a ConflictError
func NewConflictError(message string, underlying error) *AppError {
	return New(ConflictError, message, underlying)
}

// NewInvalidCredentialsError creates an InvalidCredentialsError
func NewInvalidCredentialsError(message string, underlying error) *AppError {
	return New(InvalidCredentialsError, message, underlying)
}

// NewUnauthenticatedError creates an UnauthenticatedError
func NewUnauthenticatedError(message string, underlying error) *AppError {
	return New(UnauthenticatedError, message, underlying)
}

// NewInvalidTokenError creates an InvalidTokenError
func NewInvalidTokenError(message string, underlying error) *AppError {
	return New(InvalidTokenError, message, underlying)
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(message string, underlying error) *AppError {
	return New(NotFoundError, message, underlying)
}

// NewValidationError creates a ValidationError
func NewValidationError(message string, underlying error) *AppError {
	return New(ValidationError, message, underlying)
}

// NewDatabaseError creates a DatabaseError
func NewDatabaseError(message string, underlying error) *AppError {
	return New(DatabaseError, message, underlying)
}

// NewInternalError creates an InternalError
func NewInternalError(message string, underlying error) *AppError {
	return New(InternalError, message, underlying)
}

// ErrorResponse is the JSON error payload sent to API clients.
// The message field is what the UI displays and dismisses.
type ErrorResponse struct {
	Error   string `json:"error" example:"not_found"`
	Message string `json:"message" example:"A description of the error"`
}

// label returns a short machine-readable name for the error type.
func (e *AppError) label() string {
	switch e.Type {
	case ConflictError:
		return "conflict"
	case InvalidCredentialsError:
		return "invalid_credentials"
	case UnauthenticatedError:
		return "unauthenticated"
	case InvalidTokenError:
		return "invalid_token"
	case NotFoundError:
		return "not_found"
	case ValidationError:
		return "validation_error"
	case DatabaseError, InternalError:
		return "server_error"
	default:
		return "server_error"
	}
}

// ToResponse converts an AppError to the client-facing payload.
// Only the user-facing message is exposed, never the underlying cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.label(), Message: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsConflict checks if an error is a Conflict error
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error
func IsInvalidCredentials(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == InvalidCredentialsError
}

// IsInvalidToken checks if an error is an InvalidToken error
func IsInvalidToken(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == InvalidTokenError
}
