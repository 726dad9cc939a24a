package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound            = errors.New(constants.ErrorNotFound)
	ErrBadRequest          = errors.New(constants.ErrorBadRequest)
	ErrInternalServer      = errors.New(constants.ErrorInternalServer)
	ErrValidation          = errors.New(constants.ErrorValidation)
	ErrInvalidNumber       = errors.New(constants.ErrorInvalidNumber)
	ErrInvalidStatus       = errors.New(constants.ErrorInvalidStatus)
	ErrNameTooLong         = errors.New(constants.ErrorNameTooLong)
	ErrCallHistoryConflict = errors.New(constants.ErrorCallHistoryConflict)
	ErrIO                  = errors.New(constants.ErrorIO)
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers
	Field      string // Field related to the error (for validation errors)
	Details    map[string]any
	cause      error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error, and the cause when there is one, so
// that errors.Is matches both the sentinel and a wrapped fs error.
func (e *AppError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgInternalServerError,
		DevInfo:    devInfo,
		cause:      err,
	}
}

// NewInvalidNumberError reports a value that is not a 7 to 11 digit number.
func NewInvalidNumberError(number string) *AppError {
	return &AppError{
		Err:        ErrInvalidNumber,
		StatusCode: http.StatusBadRequest,
		Message:    constants.MsgInvalidNumber,
		Field:      constants.ParamPhoneNumber,
		DevInfo:    fmt.Sprintf("rejected %q", number),
	}
}

// NewInvalidStatusError reports an unknown target classification.
func NewInvalidStatusError(status string) *AppError {
	return &AppError{
		Err:        ErrInvalidStatus,
		StatusCode: http.StatusBadRequest,
		Message:    constants.MsgInvalidStatus,
		Field:      constants.ParamStatus,
		DevInfo:    fmt.Sprintf("rejected %q", status),
	}
}

// NewNameTooLongError reports a display name over the configured ceiling.
func NewNameTooLongError(maxLength int) *AppError {
	return &AppError{
		Err:        ErrNameTooLong,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf(constants.MsgNameTooLong, maxLength),
		Field:      constants.ParamName,
		Details:    map[string]any{"max_length": maxLength},
	}
}

// NewCallHistoryConflictError reports a refused deletion of a number that has called.
func NewCallHistoryConflictError(number string) *AppError {
	return &AppError{
		Err:        ErrCallHistoryConflict,
		StatusCode: http.StatusConflict,
		Message:    constants.MsgCallHistoryConflict,
		DevInfo:    fmt.Sprintf("number %s is in the call log", number),
	}
}

// NewIOError wraps a failure reading or writing one of the jcblock files.
// The operation and path are kept for logs but not sent to clients.
func NewIOError(op, path string, err error) *AppError {
	return &AppError{
		Err:        ErrIO,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgFileUnavailable,
		DevInfo:    fmt.Sprintf("%s %s: %v", op, path, err),
		Details:    map[string]any{"op": op, "path": path},
		cause:      err,
	}
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	// If it's already an AppError, return it
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	// Check for specific error types
	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrInvalidNumber):
		return NewInvalidNumberError("")
	case errors.Is(err, ErrInvalidStatus):
		return NewInvalidStatusError("")
	case errors.Is(err, ErrCallHistoryConflict):
		return NewCallHistoryConflictError("")
	case errors.Is(err, ErrNameTooLong):
		return &AppError{
			Err:        ErrNameTooLong,
			StatusCode: http.StatusBadRequest,
			Message:    constants.MsgNameRejected,
			Field:      constants.ParamName,
		}
	case errors.Is(err, ErrIO):
		return NewIOError("", "", err)
	}

	// Filesystem errors that escaped the repository layer unwrapped
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return NewIOError(pathErr.Op, pathErr.Path, pathErr.Err)
	}

	// Default to internal server error
	return NewInternalServerError(err)
}

// IsIOError checks if an error came from jcblock file access
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
