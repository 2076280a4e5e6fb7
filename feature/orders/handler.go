package orders

import (
	"pharmacy-manager/core/server"
	"pharmacy-manager/feature/orders/models"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the orders routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleCreate stores a new order.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.service.CreateOrder(c.Context(), &order); err != nil {
		return server.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleList lists orders, optionally by user or status.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var (
		out []models.Order
		err error
	)
	switch {
	case c.Query("user_id") != "":
		out, err = h.service.ListOrdersByUser(c.Context(), c.Query("user_id"))
	case c.Query("status") != "":
		out, err = h.service.ListOrdersByStatus(c.Context(), c.Query("status"))
	default:
		out, err = h.service.ListOrders(c.Context())
	}
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(out)
}

// HandleGet returns one order.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdate upserts an order.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	order.ID = c.Params("id")
	if err := h.service.UpdateOrder(c.Context(), &order); err != nil {
		return server.RespondError(c, err)
	}
	return c.JSON(order)
}

// HandleDelete removes an order (idempotent).
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Context(), c.Params("id")); err != nil {
		return server.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
