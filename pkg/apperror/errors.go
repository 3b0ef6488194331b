package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// InsufficientStockError reports that an order line referenced stock that is
// not sellable right now. ItemID names the offending item so the caller can
// refresh it before retrying.
type InsufficientStockError struct {
	ItemID string
	Detail string
}

func (e *InsufficientStockError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("insufficient stock for item %s: %s", e.ItemID, e.Detail)
	}
	return fmt.Sprintf("insufficient stock for item %s", e.ItemID)
}

// NewInsufficientStockError creates an insufficient stock error for an item
func NewInsufficientStockError(itemID, detail string) *InsufficientStockError {
	return &InsufficientStockError{ItemID: itemID, Detail: detail}
}

// ToleranceExceededError reports that a computed installment schedule drifted
// from the financed debt by more than the accepted bound. It is advisory: the
// caller may resubmit with an override instead of treating it as fatal.
type ToleranceExceededError struct {
	ScheduleSum int64
	Remaining   int64
	Tolerance   int64
}

func (e *ToleranceExceededError) Error() string {
	return fmt.Sprintf("installment schedule sum %d differs from remaining debt %d by more than tolerance %d",
		e.ScheduleSum, e.Remaining, e.Tolerance)
}

// NewToleranceExceededError creates a tolerance exceeded error with both figures and the bound
func NewToleranceExceededError(scheduleSum, remaining, tolerance int64) *ToleranceExceededError {
	return &ToleranceExceededError{ScheduleSum: scheduleSum, Remaining: remaining, Tolerance: tolerance}
}

// MigrationError reports a failed schema repair. It is fatal at startup: the
// process must not serve requests over a partially migrated schema.
type MigrationError struct {
	Step string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("schema migration step %q failed: %v", e.Step, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// NewMigrationError wraps a failure from a named migration step
func NewMigrationError(step string, err error) *MigrationError {
	return &MigrationError{Step: step, Err: err}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsInsufficientStock checks if an error is an InsufficientStockError
func IsInsufficientStock(err error) bool {
	var stockErr *InsufficientStockError
	return errors.As(err, &stockErr)
}

// IsToleranceExceeded checks if an error is a ToleranceExceededError
func IsToleranceExceeded(err error) bool {
	var tolErr *ToleranceExceededError
	return errors.As(err, &tolErr)
}

// IsNotFound checks if an error is a not-found AppError
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return &AppError{
			Code:    http.StatusConflict,
			Message: stockErr.Error(),
			Errors:  []FieldError{{Field: "item_id", Message: stockErr.ItemID}},
		}
	}

	var tolErr *ToleranceExceededError
	if errors.As(err, &tolErr) {
		return &AppError{
			Code:    http.StatusUnprocessableEntity,
			Message: tolErr.Error(),
		}
	}

	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
