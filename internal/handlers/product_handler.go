package handlers

import (
	"errors"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	msgProductCreated      = "Produk berhasil ditambahkan"
	msgProductCreateFailed = "Produk gagal ditambahkan"
	msgProductUpdated      = "Produk berhasil diupdate"
	msgProductDeleted      = "Produk berhasil dihapus"
	msgProductNotFound     = "Produk tidak ditemukan"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts returns every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a single product, or a JSON null body when it does not exist.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(nil)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct validates and stores a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := parseBody(c, &input); err != nil {
		log.Debug().Err(err).Msg("invalid create product body")
		return validationError(c, err)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	product, created, err := h.service.CreateProduct(input)
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(fiber.Map{"message": msgProductCreateFailed})
	}

	log.Info().Uint("product_id", product.ID).Msg("product created")
	return c.JSON(fiber.Map{"message": msgProductCreated})
}

// HandleUpdateProduct applies a partial update. The product must exist before the body is validated.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return productNotFound(c)
	}

	var input models.UpdateProductInput
	if err := parseBody(c, &input); err != nil {
		log.Debug().Err(err).Uint("product_id", id).Msg("invalid update product body")
		return validationError(c, err)
	}
	// a present key must carry a value; null would otherwise decode as absent
	if errs := nullFields(c.Body(), "name", "price", "photo", "is_promo"); len(errs) > 0 {
		return fieldErrorResponse(c, errs)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationError(c, err)
	}

	if err := h.service.UpdateProduct(id, input); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return productNotFound(c)
		}
		return err
	}

	log.Info().Uint("product_id", id).Msg("product updated")
	return c.JSON(fiber.Map{"message": msgProductUpdated})
}

// HandleDeleteProduct permanently removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return productNotFound(c)
		}
		return err
	}

	log.Info().Uint("product_id", id).Msg("product deleted")
	return c.JSON(fiber.Map{"message": msgProductDeleted})
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": msgProductNotFound,
	})
}
