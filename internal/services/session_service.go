package services

import (
	"fmt"
	"time"

	"codpay/internal/models"
	"codpay/internal/repositories"

	"github.com/google/uuid"
)

// Catalog resolves a product's unit price in minor currency units. It is the
// external price-lookup collaborator; CatalogService implements it.
type Catalog interface {
	GetUnitPrice(productID string) (int64, error)
}

// SessionService handles business logic for checkout sessions.
type SessionService struct {
	store   repositories.SessionStore
	catalog Catalog
}

// NewSessionService creates a new SessionService.
func NewSessionService(store repositories.SessionStore, catalog Catalog) *SessionService {
	return &SessionService{
		store:   store,
		catalog: catalog,
	}
}

// CreateSession builds a session from a cart and payer identity: resolves
// each line's unit price from the catalog, computes the total in integer
// minor units, and stores the session in state created/unpaid.
func (s *SessionService) CreateSession(userID string, cart []models.CartItem) (*models.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: cart must not be empty", ErrInvalidInput)
	}

	var totalAmount int64
	lineItems := make([]models.LineItem, 0, len(cart))

	for _, item := range cart {
		if item.ID == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cart items need an id and a positive quantity", ErrInvalidInput)
		}

		unitAmount, err := s.catalog.GetUnitPrice(item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve price for product %s: %w", item.ID, err)
		}

		lineItems = append(lineItems, models.LineItem{
			ProductID:  item.ID,
			Name:       item.Name,
			UnitAmount: unitAmount,
			Quantity:   item.Quantity,
		})
		totalAmount += unitAmount * int64(item.Quantity)
	}

	session := &models.Session{
		ID:            uuid.New().String(),
		UserID:        userID,
		LineItems:     lineItems,
		AmountTotal:   totalAmount,
		Status:        models.SessionStatusCreated,
		PaymentStatus: models.PaymentStatusUnpaid,
		PaymentMethod: models.PaymentMethodCOD,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.store.Put(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// GetSession retrieves a session by its ID. Read-only.
func (s *SessionService) GetSession(id string) (*models.Session, error) {
	return s.store.Get(id)
}
