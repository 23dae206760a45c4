package booking

import "errors"

var (
	// ErrNotFound means the referenced booking ID is absent from the stored
	// collection. Nothing was written.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidTransition means the requested status change is outside the
	// legal transition table. Nothing was written.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation means a required booking field was missing; creation was
	// rejected before any store access.
	ErrValidation = errors.New("booking validation failed")

	// ErrRateLimited means the patient submitted requests faster than the
	// configured limit allows.
	ErrRateLimited = errors.New("too many booking requests")
)
