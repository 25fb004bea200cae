package services

import "errors"

// Sentinel errors for the service layer. Handlers map them to HTTP status
// codes with errors.Is; they are never converted to silent successes.
var (
	// ErrInvalidInput marks missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a transition hits a session already in
	// the opposite terminal state: confirming a failed session, or failing
	// a confirmed one.
	ErrConflict = errors.New("session in terminal state")

	// ErrCatalogUnavailable is returned when the price lookup collaborator
	// cannot be reached. Distinct from "product unknown", which resolves to
	// a zero unit price.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrPublishFailed is returned when the broker publish fails after the
	// session was already transitioned to confirmed. The transition is not
	// rolled back; recovering the lost event is an operational concern.
	ErrPublishFailed = errors.New("event publish failed")
)
