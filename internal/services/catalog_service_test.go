package services_test

import (
	"testing"

	"codpay/internal/models"
	"codpay/internal/repositories"
	"codpay/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCatalogService_ApplyProductEvent(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewCatalogService(repo)

	err := service.ApplyProductEvent(models.ProductEvent{
		Event:   models.ProductEventCreated,
		Product: models.Product{ID: "42", Name: "Monitor", Price: 19900},
	})
	assert.NoError(t, err)

	price, err := service.GetUnitPrice("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(19900), price)

	err = service.ApplyProductEvent(models.ProductEvent{
		Event:   models.ProductEventDeleted,
		Product: models.Product{ID: "42"},
	})
	assert.NoError(t, err)

	price, err = service.GetUnitPrice("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), price)

	// Deleting an already absent product stays a no-op.
	err = service.ApplyProductEvent(models.ProductEvent{
		Event:   models.ProductEventDeleted,
		Product: models.Product{ID: "42"},
	})
	assert.NoError(t, err)
}

func TestCatalogService_ApplyProductEvent_UnknownTypeIgnored(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewCatalogService(repo)

	err := service.ApplyProductEvent(models.ProductEvent{
		Event:   "product.renamed",
		Product: models.Product{ID: "42", Name: "Monitor", Price: 19900},
	})

	// An unknown event type must not error: the consumer nacks errored
	// messages back onto the queue, and an event type this service cannot
	// handle would be redelivered forever. It is dropped instead, and the
	// catalog stays untouched.
	assert.NoError(t, err)
	products, listErr := service.GetAllProducts()
	assert.NoError(t, listErr)
	assert.Empty(t, products)
}
