package inventory

import (
	"pharmacy-manager/core/logger"
	"pharmacy-manager/core/server"
	"pharmacy-manager/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/batches", h.HandleAddBatch)
	group.Get("/products/:id/batches", h.HandleListBatches)
	group.Get("/products/:id/stock", h.HandleStockSummary)
	group.Get("/low-stock", h.HandleLowStock)
}

// HandleAddBatch records a manually entered lot.
func (h *Handler) HandleAddBatch(c *fiber.Ctx) error {
	var batch models.Batch
	if err := c.BodyParser(&batch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.service.AddBatch(c.Context(), &batch); err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Batch entry failed", zap.Error(err))
		return server.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}

// HandleListBatches lists a product's lots.
func (h *Handler) HandleListBatches(c *fiber.Ctx) error {
	batches, err := h.service.ListBatches(c.Context(), c.Params("id"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(batches)
}

// HandleStockSummary returns a product's aggregated stock.
func (h *Handler) HandleStockSummary(c *fiber.Ctx) error {
	summary, err := h.service.StockSummary(c.Context(), c.Params("id"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(summary)
}

// HandleLowStock reports products at or below their reorder level.
func (h *Handler) HandleLowStock(c *fiber.Ctx) error {
	entries, err := h.service.LowStock(c.Context())
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(entries)
}
