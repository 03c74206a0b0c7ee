package ledger

import "errors"

var (
	// ErrNotFound is returned when a referenced document no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed input before any write is issued.
	ErrValidation = errors.New("validation failed")
)
