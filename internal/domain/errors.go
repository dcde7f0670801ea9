package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller lacks the role or ownership required.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated indicates the operation needs a known principal.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrConsentRequired indicates the caller has not accepted terms and privacy policy.
	ErrConsentRequired = errors.New("terms and privacy policy must be accepted")
	// ErrPaymentNotConfigured indicates checkout is unavailable until an admin sets payment configuration.
	ErrPaymentNotConfigured = errors.New("payment processing is not configured")
)

// ValidationError is returned for input rejected before any state change.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
