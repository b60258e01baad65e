package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not allowed in the current state of the resource
// (e.g. opening a session while another one is open, confirming a non-pending transaction).
var ErrConflict = errors.New("state conflict")

// ErrInsufficientBalance indicates that the acting cashier does not hold enough float in a currency.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrForbidden indicates that the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned to callers in place of unexpected persistence failures.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is keeps matching the sentinels above.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflictError wraps ErrConflict with a message.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}
