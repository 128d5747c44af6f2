package handlers

import "github.com/gofiber/fiber/v2"

// DemoHandler serves static fixture routes that never touch the store.
type DemoHandler struct{}

// NewDemoHandler creates a new DemoHandler.
func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

// RegisterRoutes registers the demo routes with the Fiber app.
func (h *DemoHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/test", h.HandleTest)
	router.Get("/demo/products", h.HandleSampleProducts)
}

// HandleTest answers with the JSON string "test".
func (h *DemoHandler) HandleTest(c *fiber.Ctx) error {
	return c.JSON("test")
}

// HandleSampleProducts returns hardcoded sample products.
func (h *DemoHandler) HandleSampleProducts(c *fiber.Ctx) error {
	return c.JSON([]fiber.Map{
		{"id": 1, "name": "Mango Sago", "price": 25000},
		{"id": 2, "name": "Nasi Kuning", "price": 15000},
	})
}
