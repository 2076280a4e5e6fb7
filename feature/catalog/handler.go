package catalog

import (
	"pharmacy-manager/core/logger"
	"pharmacy-manager/core/server"
	"pharmacy-manager/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	products := app.Group("/products")
	products.Post("/", h.HandleCreateProduct)
	products.Get("/", h.HandleListProducts)
	products.Get("/code/:code", h.HandleGetProductByCode)
	products.Get("/:id", h.HandleGetProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)

	categories := app.Group("/categories")
	categories.Post("/", h.HandleCreateCategory)
	categories.Get("/", h.HandleListCategories)

	suppliers := app.Group("/suppliers")
	suppliers.Post("/", h.HandleCreateSupplier)
	suppliers.Get("/", h.HandleListSuppliers)
	suppliers.Get("/:id", h.HandleGetSupplier)
}

// HandleCreateProduct creates a product with a minted code.
func (h *Handler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Product creation failed", zap.Error(err))
		return server.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts lists products, optionally by category.
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)
	if categoryID := c.Query("category_id"); categoryID != "" {
		products, err = h.service.ListProductsByCategory(c.Context(), categoryID)
	} else {
		products, err = h.service.ListProducts(c.Context())
	}
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product.
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(product)
}

// HandleGetProductByCode returns one product via the unique code index.
func (h *Handler) HandleGetProductByCode(c *fiber.Ctx) error {
	product, err := h.service.GetProductByCode(c.Context(), c.Params("code"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct upserts a product.
func (h *Handler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	product.ID = c.Params("id")
	if err := h.service.UpdateProduct(c.Context(), &product); err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product (idempotent).
func (h *Handler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return server.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreateCategory creates a category.
func (h *Handler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.service.CreateCategory(c.Context(), &category); err != nil {
		return server.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleListCategories lists categories.
func (h *Handler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreateSupplier creates a supplier.
func (h *Handler) HandleCreateSupplier(c *fiber.Ctx) error {
	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.service.CreateSupplier(c.Context(), &supplier); err != nil {
		return server.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// HandleGetSupplier returns one supplier.
func (h *Handler) HandleGetSupplier(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(supplier)
}

// HandleListSuppliers lists suppliers.
func (h *Handler) HandleListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers(c.Context())
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(suppliers)
}
