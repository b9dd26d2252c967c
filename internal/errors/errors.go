package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound          = new(ErrCodeNotFound, "resource not found")
	ErrValidation        = new(ErrCodeValidation, "validation error")
	ErrInsufficientStock = new(ErrCodeInsufficientStock, "insufficient stock")
	ErrIndexOutOfRange   = new(ErrCodeIndexOutOfRange, "index out of range")
	ErrInvalidOperation  = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPersistence       = new(ErrCodePersistence, "persistence error")
	ErrDatabase          = new(ErrCodeDatabase, "database error")
	ErrSystem            = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:          http.StatusNotFound,
		ErrValidation:        http.StatusBadRequest,
		ErrIndexOutOfRange:   http.StatusBadRequest,
		ErrInvalidOperation:  http.StatusBadRequest,
		ErrInsufficientStock: http.StatusConflict,
		ErrPersistence:       http.StatusServiceUnavailable,
		ErrDatabase:          http.StatusInternalServerError,
		ErrSystem:            http.StatusInternalServerError,
	}
)

const (
	ErrCodeSystemError       = "system_error"
	ErrCodeNotFound          = "not_found"
	ErrCodeValidation        = "validation_error"
	ErrCodeInsufficientStock = "insufficient_stock"
	ErrCodeIndexOutOfRange   = "index_out_of_range"
	ErrCodeInvalidOperation  = "invalid_operation"
	ErrCodePersistence       = "persistence_error"
	ErrCodeDatabase          = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInsufficientStock checks if an error is an insufficient stock error
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

// IsIndexOutOfRange checks if an error is an index out of range error
func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsPersistence checks if an error is a persistence error
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func HTTPStatusFromErr(err error) int {
	// stock and persistence errors are checked before the broader categories
	// they may also carry (a persistence error usually wraps a database error).
	for _, e := range []error{ErrInsufficientStock, ErrPersistence} {
		if errors.Is(err, e) {
			return statusCodeMap[e]
		}
	}
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
