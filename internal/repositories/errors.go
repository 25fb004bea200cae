package repositories

import "errors"

// Sentinel errors returned by the data access layer. Callers distinguish
// them with errors.Is; handlers map them to HTTP status codes.
var (
	// ErrSessionNotFound is returned when a session id is not in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrProductNotFound is returned when a product id is not in the catalog.
	// The session service treats this as "unit price zero", not a failure.
	ErrProductNotFound = errors.New("product not found")
)
