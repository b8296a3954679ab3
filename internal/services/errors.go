package services

import "errors"

// Sentinel errors shared by all services. Handlers translate these to HTTP
// status codes with errors.Is.
var (
	// ErrNotFound covers both a missing row and a row owned by a different
	// user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a per-owner uniqueness violation.
	ErrConflict = errors.New("already exists")

	// ErrInvalidState signals a domain invariant violation, e.g. a budget
	// whose start date falls after its end date.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation signals a malformed field value in an otherwise
	// well-shaped payload.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a caller cannot probe which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
