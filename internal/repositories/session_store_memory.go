package repositories

import (
	"fmt"
	"sync"
	"time"

	"codpay/internal/models"

	"github.com/google/uuid"
)

// MemorySessionStore is an in-memory implementation of SessionStore.
// The mutex makes CompareAndSwapStatus a single critical section, which is
// the whole concurrency contract of the store.
type MemorySessionStore struct {
	sessions map[string]models.Session
	mu       sync.RWMutex
}

// NewMemorySessionStore creates a new instance of MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.Session),
	}
}

// Put stores a session, assigning an ID and timestamps if missing.
func (r *MemorySessionStore) Put(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = *session
	return nil
}

// Get returns a session by its ID.
func (r *MemorySessionStore) Get(id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return &session, nil
}

// CompareAndSwapStatus transitions the session's status iff it currently
// equals expected. Returns false without modifying anything otherwise.
func (r *MemorySessionStore) CompareAndSwapStatus(id, expected, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if session.Status != expected {
		return false, nil
	}
	session.Status = next
	session.UpdatedAt = time.Now()
	r.sessions[id] = session
	return true, nil
}
