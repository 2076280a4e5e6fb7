package purchasing

import (
	"pharmacy-manager/core/logger"
	"pharmacy-manager/core/server"
	"pharmacy-manager/feature/purchasing/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for purchase orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the purchasing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/purchase-orders")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/receive", h.HandleReceive)
	group.Patch("/:id/status", h.HandleUpdateStatus)
}

type createOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Items      []models.PurchaseOrderItem `json:"items"`
}

// HandleCreate creates a draft purchase order.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	order, err := h.service.CreateOrder(c.Context(), req.SupplierID, req.Items)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Purchase order creation failed", zap.Error(err))
		return server.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleList lists purchase orders, optionally filtered by supplier or status.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var (
		orders []models.PurchaseOrder
		err    error
	)
	switch {
	case c.Query("supplier_id") != "":
		orders, err = h.service.ListOrdersBySupplier(c.Context(), c.Query("supplier_id"))
	case c.Query("status") != "":
		orders, err = h.service.ListOrdersByStatus(c.Context(), models.Status(c.Query("status")))
	default:
		orders, err = h.service.ListOrders(c.Context())
	}
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGet returns one purchase order.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(order)
}

type receiveRequest struct {
	Lines []models.ReceiptLine `json:"lines"`
}

// HandleReceive applies a delivery receipt against the order.
func (h *Handler) HandleReceive(c *fiber.Ctx) error {
	var req receiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	order, err := h.service.ReceiveItems(c.Context(), c.Params("id"), req.Lines)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Receiving failed", zap.Error(err))
		return server.RespondError(c, err)
	}
	return c.JSON(order)
}

type statusRequest struct {
	Status models.Status `json:"status"`
}

// HandleUpdateStatus applies an external status transition.
func (h *Handler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	order, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(order)
}
