package services_test

import (
	"fmt"
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) (bool, error) {
	args := m.Called(product)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Update(id uint, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(payload interface{}) error {
	args := m.Called(payload)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(ev models.ProductEvent) bool { return ev.Type == eventType })
}

func ptr[T any](v T) *T { return &v }

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Mango Sago", Price: 25000},
		{ID: 2, Name: "Nasi Kuning", Price: 15000, IsPromo: true},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: 1, Name: "Mango Sago", Price: 25000}

	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Absent product is not an error
	mockRepo.On("GetByID", uint(99)).Return(nil, nil).Once()
	product, err = service.GetProductByID(99)
	assert.NoError(t, err)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	input := models.CreateProductInput{
		Name:    ptr("Mango Sago"),
		Price:   ptr(25000.0),
		IsPromo: ptr(false),
	}
	matchesInput := mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Mango Sago" && p.Price == 25000 && !p.IsPromo && p.Photo == nil
	})

	t.Run("created and published", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub)

		mockRepo.On("Create", matchesInput).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Product).ID = 5
		}).Return(true, nil).Once()
		mockPub.On("PublishJSON", eventOfType(models.ProductCreated)).Return(nil).Once()

		product, created, err := service.CreateProduct(input)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, uint(5), product.ID)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("no row created", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub)

		mockRepo.On("Create", matchesInput).Return(false, nil).Once()

		product, created, err := service.CreateProduct(input)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Nil(t, product)
		mockPub.AssertNotCalled(t, "PublishJSON", mock.Anything)
	})

	t.Run("database error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)

		mockRepo.On("Create", matchesInput).Return(false, fmt.Errorf("database error")).Once()

		_, _, err := service.CreateProduct(input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub)

		mockRepo.On("Create", matchesInput).Return(true, nil).Once()
		mockPub.On("PublishJSON", mock.Anything).Return(fmt.Errorf("broker down")).Once()

		_, created, err := service.CreateProduct(input)
		assert.NoError(t, err)
		assert.True(t, created)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Run("only present fields are written", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub)

		updated := &models.Product{ID: 1, Name: "Mango Sago", Price: 27000}
		mockRepo.On("Update", uint(1), map[string]interface{}{"price": 27000.0}).Return(nil).Once()
		mockRepo.On("GetByID", uint(1)).Return(updated, nil).Once()
		mockPub.On("PublishJSON", eventOfType(models.ProductUpdated)).Return(nil).Once()

		err := service.UpdateProduct(1, models.UpdateProductInput{Price: ptr(27000.0)})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)

		assert.NoError(t, service.UpdateProduct(1, models.UpdateProductInput{}))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)

		mockRepo.On("Update", uint(999), mock.Anything).
			Return(fmt.Errorf("product with ID 999 not found for update: %w", repositories.ErrProductNotFound)).Once()

		err := service.UpdateProduct(999, models.UpdateProductInput{Price: ptr(10000.0)})
		assert.ErrorIs(t, err, services.ErrProductNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Run("deleted and published", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockPub := new(MockPublisher)
		service := services.NewProductService(mockRepo, mockPub)

		mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1}, nil).Once()
		mockRepo.On("Delete", uint(1)).Return(nil).Once()
		mockPub.On("PublishJSON", eventOfType(models.ProductDeleted)).Return(nil).Once()

		assert.NoError(t, service.DeleteProduct(1))
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)

		mockRepo.On("GetByID", uint(99)).Return(nil, nil).Twice()

		assert.ErrorIs(t, service.DeleteProduct(99), services.ErrProductNotFound)
		assert.ErrorIs(t, service.DeleteProduct(99), services.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("lookup error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo, nil)

		mockRepo.On("GetByID", uint(3)).Return(nil, fmt.Errorf("connection refused")).Once()

		err := service.DeleteProduct(3)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrProductNotFound)
	})
}
