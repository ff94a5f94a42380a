package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors. The assignment-rule rejections are all recoverable by the
// caller: stable code, 4xx status, detail message naming the conflicting
// values.
var (
	ErrInvalidCredentials   = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount      = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden            = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized         = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss            = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrDuplicateAssignment  = New("DUPLICATE_ASSIGNMENT", http.StatusConflict, "teacher is already assigned to this course")
	ErrDepartmentMismatch   = New("DEPARTMENT_MISMATCH", http.StatusBadRequest, "teacher and course belong to different departments")
	ErrCapacityExceeded     = New("CAPACITY_EXCEEDED", http.StatusBadRequest, "teacher weekly working-hour budget exceeded")
	ErrScheduleConflict     = New("SCHEDULE_CONFLICT", http.StatusConflict, "assignment conflicts with an existing slot")
	ErrQuotaExceeded        = New("QUOTA_EXCEEDED", http.StatusConflict, "department slot quota reached")
	ErrDayCapExceeded       = New("DAY_CAP_EXCEEDED", http.StatusBadRequest, "weekly teaching-day limit reached")
	ErrAvailabilityViolated = New("AVAILABILITY_VIOLATION", http.StatusBadRequest, "slot falls outside declared availability")
	ErrRoleViolation        = New("ROLE_VIOLATION", http.StatusBadRequest, "operation not permitted for this teacher role")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Clonef is Clone with fmt-style message construction.
func Clonef(err *Error, format string, args ...interface{}) *Error {
	return Clone(err, fmt.Sprintf(format, args...))
}
