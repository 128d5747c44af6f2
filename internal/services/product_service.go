package services

import (
	"errors"
	"fmt"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/rs/zerolog/log"
)

// ErrProductNotFound is returned when an id does not resolve to a product.
var ErrProductNotFound = errors.New("product not found")

// EventPublisher sends product events to a message broker.
type EventPublisher interface {
	PublishJSON(payload interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. A nil publisher disables product events.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID. It returns nil when the product does not exist.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a validated product. The boolean is false when the store created no row.
func (s *ProductService) CreateProduct(input models.CreateProductInput) (*models.Product, bool, error) {
	product := input.Product()
	created, err := s.repo.Create(product)
	if err != nil {
		return nil, false, err
	}
	if !created {
		log.Warn().Str("name", product.Name).Msg("insert reported no row")
		return nil, false, nil
	}

	s.publish(models.NewProductEvent(models.ProductCreated, product.ID, product))
	return product, true, nil
}

// UpdateProduct writes the fields present in input to an existing product.
func (s *ProductService) UpdateProduct(id uint, input models.UpdateProductInput) error {
	fields := input.Fields()
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.Update(id, fields); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if s.publisher != nil {
		product, err := s.repo.GetByID(id)
		if err != nil {
			log.Warn().Err(err).Uint("product_id", id).Msg("failed to load product for update event")
		}
		s.publish(models.NewProductEvent(models.ProductUpdated, id, product))
	}
	return nil
}

// DeleteProduct permanently removes a product.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to look up product %d: %w", id, err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.publish(models.NewProductEvent(models.ProductDeleted, id, nil))
	return nil
}

// publish never fails the calling operation; broker errors are only logged.
func (s *ProductService) publish(event models.ProductEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(event); err != nil {
		log.Warn().Err(err).Str("type", event.Type).Uint("product_id", event.ProductID).Msg("failed to publish product event")
		return
	}
	log.Debug().Str("type", event.Type).Uint("product_id", event.ProductID).Msg("published product event")
}
