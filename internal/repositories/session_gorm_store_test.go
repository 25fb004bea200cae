package repositories_test

import (
	"testing"

	"codpay/internal/models"
	"codpay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Session{}))
	return db
}

func TestGORMSessionStore_PutAndGet(t *testing.T) {
	store := repositories.NewGORMSessionStore(setupSessionDB(t))

	session := &models.Session{
		UserID: "user-1",
		LineItems: []models.LineItem{
			{ProductID: "1", Name: "Laptop", UnitAmount: 500, Quantity: 2},
		},
		AmountTotal:   1000,
		Status:        models.SessionStatusCreated,
		PaymentStatus: models.PaymentStatusUnpaid,
		PaymentMethod: models.PaymentMethodCOD,
	}
	assert.NoError(t, store.Put(session))
	assert.NotEmpty(t, session.ID)

	got, err := store.Get(session.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), got.AmountTotal)
	assert.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(500), got.LineItems[0].UnitAmount)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestGORMSessionStore_CompareAndSwapStatus(t *testing.T) {
	store := repositories.NewGORMSessionStore(setupSessionDB(t))

	session := &models.Session{UserID: "user-1", Status: models.SessionStatusCreated}
	assert.NoError(t, store.Put(session))

	swapped, err := store.CompareAndSwapStatus(session.ID, models.SessionStatusCreated, models.SessionStatusConfirmed)
	assert.NoError(t, err)
	assert.True(t, swapped)

	// Losing swap: status no longer matches.
	swapped, err = store.CompareAndSwapStatus(session.ID, models.SessionStatusCreated, models.SessionStatusFailed)
	assert.NoError(t, err)
	assert.False(t, swapped)

	got, err := store.Get(session.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.SessionStatusConfirmed, got.Status)

	// Missing session surfaces as an error.
	_, err = store.CompareAndSwapStatus("missing", models.SessionStatusCreated, models.SessionStatusConfirmed)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}
