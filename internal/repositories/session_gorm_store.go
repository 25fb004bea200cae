package repositories

import (
	"errors"
	"fmt"

	"codpay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSessionStore is a GORM implementation of SessionStore.
type GORMSessionStore struct {
	db *gorm.DB
}

// NewGORMSessionStore creates a new instance of GORMSessionStore.
func NewGORMSessionStore(db *gorm.DB) *GORMSessionStore {
	return &GORMSessionStore{
		db: db,
	}
}

// Put stores a session in the database, assigning an ID if missing.
func (r *GORMSessionStore) Put(session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get retrieves a session by its ID from the database.
func (r *GORMSessionStore) Get(id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return &session, nil
}

// CompareAndSwapStatus transitions the session's status with a conditional
// UPDATE. RowsAffected tells swap-won from swap-lost; a follow-up read tells
// swap-lost from session-missing.
func (r *GORMSessionStore) CompareAndSwapStatus(id, expected, next string) (bool, error) {
	res := r.db.Model(&models.Session{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update session %s status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the session does not exist or its status differs.
		if _, err := r.Get(id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}
