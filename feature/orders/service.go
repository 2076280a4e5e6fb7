package orders

import (
	"context"
	"time"

	"pharmacy-manager/core/store"
	"pharmacy-manager/feature/orders/models"
	"pharmacy-manager/feature/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes the orders collection to the external order workflow:
// keyed CRUD plus the user_id/status index scans.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a new orders service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// CreateOrder stores a new order with a minted order_code.
func (s *Service) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		if order.ID == "" {
			order.ID = uuid.NewString()
		}
		code, err := tx.NextCode(schema.SeqOrderCode)
		if err != nil {
			return err
		}
		order.Code = code
		now := time.Now()
		order.CreatedAt = now
		order.UpdatedAt = now
		return store.Create(tx, order)
	})
}

// GetOrder returns one order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return store.Get[models.Order](s.store.WithContext(ctx), id)
}

// UpdateOrder upserts the order.
func (s *Service) UpdateOrder(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()
	return store.Upsert(s.store.WithContext(ctx), order)
}

// DeleteOrder removes an order (idempotent).
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return store.Delete[models.Order](s.store.WithContext(ctx), id)
}

// ListOrders returns every order.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return store.ListAll[models.Order](s.store.WithContext(ctx))
}

// ListOrdersByUser returns a user's orders.
func (s *Service) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return store.ListByIndex[models.Order](s.store.WithContext(ctx), "user_id", userID)
}

// ListOrdersByStatus returns every order in the given status.
func (s *Service) ListOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return store.ListByIndex[models.Order](s.store.WithContext(ctx), "status", status)
}
