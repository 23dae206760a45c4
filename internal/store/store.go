package store

import "errors"

// Persisted keys. Each key holds one complete JSON blob; partial updates are
// never written.
const (
	KeyBookings   = "bookings"
	KeyUserData   = "userData"
	KeyAuthStatus = "authStatus"
)

var (
	// ErrKeyNotFound is returned when a key has never been written. Callers
	// degrade to an in-memory default (empty collection, zero profile).
	ErrKeyNotFound = errors.New("key not found")
)
