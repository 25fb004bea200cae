package services

import (
	"fmt"
	"log"

	"codpay/internal/models"
	"codpay/internal/repositories"
)

// EventPublisher hands a confirmed payment off to downstream order
// processing. The publish must be acknowledged by the broker before Confirm
// reports success; it is not fire-and-forget.
type EventPublisher interface {
	PublishPaymentSuccessful(event models.PaymentSuccessfulEvent) error
}

// ConfirmService drives the created → {confirmed, failed} state machine.
type ConfirmService struct {
	store     repositories.SessionStore
	publisher EventPublisher
}

// NewConfirmService creates a new ConfirmService.
func NewConfirmService(store repositories.SessionStore, publisher EventPublisher) *ConfirmService {
	return &ConfirmService{
		store:     store,
		publisher: publisher,
	}
}

// Confirm transitions a session to confirmed and publishes exactly one
// payment.successful event for it.
//
// The compare-and-swap on the store is the only serialization point: of any
// number of concurrent or retried confirmations for the same session, exactly
// one wins the swap and publishes. The rest observe an already confirmed
// session and return the same success without re-publishing, so duplicate
// webhook deliveries never produce duplicate downstream events.
//
// If the publish fails after the swap succeeded the session stays confirmed
// and ErrPublishFailed is returned; the lost event is an operational concern,
// not a reason to roll back the state machine.
func (s *ConfirmService) Confirm(sessionID, userID, email string) (*models.Session, error) {
	if sessionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: sessionId and userId are required", ErrInvalidInput)
	}

	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	swapped, err := s.store.CompareAndSwapStatus(sessionID, models.SessionStatusCreated, models.SessionStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to transition session %s: %w", sessionID, err)
	}

	if !swapped {
		// Lost the swap: the session is already in a terminal state. Re-read
		// to see which one; with at most one transition per session the
		// re-read cannot observe created again.
		current, err := s.store.Get(sessionID)
		if err != nil {
			return nil, err
		}
		if current.Status == models.SessionStatusConfirmed {
			// Idempotent success: the event was already published (or its
			// loss is already being reconciled). Never publish twice.
			log.Printf("Session %s already confirmed, treating as idempotent success", sessionID)
			return current, nil
		}
		return nil, fmt.Errorf("%w: session %s is %s", ErrConflict, sessionID, current.Status)
	}

	event := models.PaymentSuccessfulEvent{
		UserID:        session.UserID,
		Email:         email,
		Amount:        session.AmountTotal,
		Status:        "pending",
		PaymentMethod: models.PaymentMethodCOD,
		Products:      session.LineItems,
	}

	if err := s.publisher.PublishPaymentSuccessful(event); err != nil {
		// The session is authoritatively confirmed at this point.
		log.Printf("Publish failed for confirmed session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	session.Status = models.SessionStatusConfirmed
	return session, nil
}

// Fail transitions a session to the failed terminal state, e.g. when a
// delivery is refused or the order is cancelled before confirmation. Failing
// an already failed session is an idempotent success; failing a confirmed
// session is a conflict.
func (s *ConfirmService) Fail(sessionID, userID string) (*models.Session, error) {
	if sessionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: sessionId and userId are required", ErrInvalidInput)
	}

	swapped, err := s.store.CompareAndSwapStatus(sessionID, models.SessionStatusCreated, models.SessionStatusFailed)
	if err != nil {
		return nil, err
	}

	session, getErr := s.store.Get(sessionID)
	if getErr != nil {
		return nil, getErr
	}
	if !swapped && session.Status != models.SessionStatusFailed {
		return nil, fmt.Errorf("%w: session %s is %s", ErrConflict, sessionID, session.Status)
	}
	return session, nil
}
