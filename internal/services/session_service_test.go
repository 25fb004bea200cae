package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"codpay/internal/models"
	"codpay/internal/repositories"
	"codpay/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockSessionStore is a mock implementation of repositories.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(session *models.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionStore) Get(id string) (*models.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) CompareAndSwapStatus(id, expected, next string) (bool, error) {
	args := m.Called(id, expected, next)
	return args.Bool(0), args.Error(1)
}

// MockCatalog is a mock implementation of services.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetUnitPrice(productID string) (int64, error) {
	args := m.Called(productID)
	return args.Get(0).(int64), args.Error(1)
}

func TestSessionService_CreateSession(t *testing.T) {
	mockStore := new(MockSessionStore)
	mockCatalog := new(MockCatalog)
	service := services.NewSessionService(mockStore, mockCatalog)

	cart := []models.CartItem{{ID: "1", Name: "Laptop", Quantity: 2}}

	mockCatalog.On("GetUnitPrice", "1").Return(int64(500), nil).Once()
	mockStore.On("Put", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	session, err := service.CreateSession("user-1", cart)

	assert.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, int64(1000), session.AmountTotal)
	assert.Equal(t, models.SessionStatusCreated, session.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, session.PaymentStatus)
	assert.Equal(t, models.PaymentMethodCOD, session.PaymentMethod)
	assert.Len(t, session.LineItems, 1)
	assert.Equal(t, int64(500), session.LineItems[0].UnitAmount)
	assert.Equal(t, 2, session.LineItems[0].Quantity)
	mockStore.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
}

func TestSessionService_CreateSession_MultipleLines(t *testing.T) {
	mockStore := new(MockSessionStore)
	mockCatalog := new(MockCatalog)
	service := services.NewSessionService(mockStore, mockCatalog)

	cart := []models.CartItem{
		{ID: "1", Name: "Laptop", Quantity: 1},
		{ID: "2", Name: "Mouse", Quantity: 3},
	}

	mockCatalog.On("GetUnitPrice", "1").Return(int64(120000), nil).Once()
	mockCatalog.On("GetUnitPrice", "2").Return(int64(2599), nil).Once()
	mockStore.On("Put", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	session, err := service.CreateSession("user-1", cart)

	assert.NoError(t, err)
	// 120000*1 + 2599*3, integer arithmetic throughout.
	assert.Equal(t, int64(127797), session.AmountTotal)
	mockStore.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
}

func TestSessionService_CreateSession_UnknownProductPricedAtZero(t *testing.T) {
	mockStore := new(MockSessionStore)
	mockCatalog := new(MockCatalog)
	service := services.NewSessionService(mockStore, mockCatalog)

	cart := []models.CartItem{
		{ID: "ghost", Name: "Unknown", Quantity: 5},
		{ID: "1", Name: "Laptop", Quantity: 1},
	}

	// The catalog resolves unknown products to price 0 rather than failing.
	mockCatalog.On("GetUnitPrice", "ghost").Return(int64(0), nil).Once()
	mockCatalog.On("GetUnitPrice", "1").Return(int64(500), nil).Once()
	mockStore.On("Put", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	session, err := service.CreateSession("user-1", cart)

	assert.NoError(t, err)
	assert.Equal(t, int64(500), session.AmountTotal)
	assert.Equal(t, int64(0), session.LineItems[0].UnitAmount)
	mockStore.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
}

func TestSessionService_CreateSession_InvalidInput(t *testing.T) {
	mockStore := new(MockSessionStore)
	mockCatalog := new(MockCatalog)
	service := services.NewSessionService(mockStore, mockCatalog)

	// Missing user
	session, err := service.CreateSession("", []models.CartItem{{ID: "1", Quantity: 1}})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Nil(t, session)

	// Empty cart
	session, err = service.CreateSession("user-1", nil)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Nil(t, session)

	// Non-positive quantity
	session, err = service.CreateSession("user-1", []models.CartItem{{ID: "1", Quantity: 0}})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Nil(t, session)

	// Nothing was stored and the catalog was never consulted
	mockStore.AssertNotCalled(t, "Put", mock.Anything)
	mockCatalog.AssertNotCalled(t, "GetUnitPrice", mock.Anything)
}

func TestSessionService_CreateSession_CatalogUnavailable(t *testing.T) {
	mockStore := new(MockSessionStore)
	mockCatalog := new(MockCatalog)
	service := services.NewSessionService(mockStore, mockCatalog)

	cart := []models.CartItem{{ID: "1", Quantity: 1}}

	mockCatalog.On("GetUnitPrice", "1").Return(int64(0), fmt.Errorf("%w: connection refused", services.ErrCatalogUnavailable)).Once()

	session, err := service.CreateSession("user-1", cart)

	assert.ErrorIs(t, err, services.ErrCatalogUnavailable)
	assert.Nil(t, session)
	mockStore.AssertNotCalled(t, "Put", mock.Anything)
	mockCatalog.AssertExpectations(t)
}

func TestSessionService_GetSession(t *testing.T) {
	mockStore := new(MockSessionStore)
	mockCatalog := new(MockCatalog)
	service := services.NewSessionService(mockStore, mockCatalog)

	expected := &models.Session{ID: "sess-1", UserID: "user-1", Status: models.SessionStatusCreated}

	mockStore.On("Get", "sess-1").Return(expected, nil).Once()
	session, err := service.GetSession("sess-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, session)

	mockStore.On("Get", "missing").Return(nil, fmt.Errorf("%w: missing", repositories.ErrSessionNotFound)).Once()
	session, err = service.GetSession("missing")
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
	assert.Nil(t, session)
	mockStore.AssertExpectations(t)
}
