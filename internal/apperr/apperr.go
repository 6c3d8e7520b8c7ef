// Package apperr defines the error taxonomy shared across the API:
// handlers map these sentinels to HTTP status codes, stores and
// services wrap them with context via %w.
package apperr

import "errors"

var (
	// ErrNotFound: the referenced exam, attempt, or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the caller is not allowed to act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyFinalized: End was called on an attempt whose end time
	// is already set.
	ErrAlreadyFinalized = errors.New("attempt already finalized")
	// ErrNotEligible: the attempt does not qualify for a certificate.
	ErrNotEligible = errors.New("attempt not eligible for a certificate")
	// ErrValidation: malformed or incomplete input.
	ErrValidation = errors.New("invalid input")
)
