package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrMissingField             ErrorCode = "MISSING_FIELD"
	ErrInconsistentValue        ErrorCode = "INCONSISTENT_VALUE"
	ErrQuantityExceeded         ErrorCode = "QUANTITY_EXCEEDED"
	ErrNoEligiblePackage        ErrorCode = "NO_ELIGIBLE_PACKAGE"
	ErrPackageOwnershipMismatch ErrorCode = "PACKAGE_OWNERSHIP_MISMATCH"
	ErrPackageDepleted          ErrorCode = "PACKAGE_DEPLETED"
	ErrPackageExpired           ErrorCode = "PACKAGE_EXPIRED"
	ErrInsufficientBalance      ErrorCode = "INSUFFICIENT_BALANCE"
	ErrInvalidAmount            ErrorCode = "INVALID_AMOUNT"
	ErrNotAPackage              ErrorCode = "NOT_A_PACKAGE"
)

// ValidationError names the field and condition that rejected a request so
// the API layer can render a precise message. Validation always happens
// before any write, so a ValidationError means nothing was persisted.
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field string, code ErrorCode, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
