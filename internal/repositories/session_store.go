package repositories

import (
	"codpay/internal/models"
)

// SessionStore defines the interface for session data access.
//
// CompareAndSwapStatus is the only way status is ever written: it transitions
// the session atomically iff its current status equals expected, so a session
// is confirmed at most once even under concurrent confirmation attempts.
type SessionStore interface {
	Put(session *models.Session) error
	Get(id string) (*models.Session, error)
	CompareAndSwapStatus(id string, expected string, next string) (bool, error)
}
