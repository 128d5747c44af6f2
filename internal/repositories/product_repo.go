package repositories

import (
	"errors"

	"katalog/internal/models"
)

// ErrProductNotFound is returned by Update and Delete when no row matches the id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by id.
	GetAll() ([]models.Product, error)
	// GetByID returns nil without an error when the product does not exist.
	GetByID(id uint) (*models.Product, error)
	// Create reports false when the store created no row.
	Create(product *models.Product) (bool, error)
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}
