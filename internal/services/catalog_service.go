package services

import (
	"errors"
	"fmt"
	"log"

	"codpay/internal/models"
	"codpay/internal/repositories"
)

// CatalogService handles business logic for the price catalog and implements
// the unit-price lookup used at session creation.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllProducts retrieves all catalog products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct registers a product and its price in the catalog.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// GetUnitPrice resolves a product's unit price in minor currency units.
// An unknown product resolves to 0 rather than an error; only a failing
// catalog backend is reported, as ErrCatalogUnavailable.
func (s *CatalogService) GetUnitPrice(productID string) (int64, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			log.Printf("Unit price requested for unknown product %s, using 0", productID)
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return product.Price, nil
}

// ApplyProductEvent applies a catalog maintenance event received from the
// broker. Unknown event types are ignored: requeueing them cannot help, and
// a newer product service may well emit types this consumer does not know.
// A non-nil return means the apply itself failed and a redelivery may succeed.
func (s *CatalogService) ApplyProductEvent(event models.ProductEvent) error {
	switch event.Event {
	case models.ProductEventCreated:
		product := event.Product
		return s.repo.Create(&product)
	case models.ProductEventDeleted:
		err := s.repo.Delete(event.Product.ID)
		if errors.Is(err, repositories.ErrProductNotFound) {
			// Deleting an already absent product is a no-op.
			return nil
		}
		return err
	default:
		log.Printf("Ignoring unknown product event type %q", event.Event)
		return nil
	}
}
