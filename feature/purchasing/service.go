package purchasing

import (
	"context"
	"fmt"
	"time"

	"pharmacy-manager/core/store"
	catalog "pharmacy-manager/feature/catalog/models"
	inventory "pharmacy-manager/feature/inventory/models"
	"pharmacy-manager/feature/purchasing/models"
	"pharmacy-manager/feature/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles purchase-order operations, including the receiving engine
// that reconciles supplier deliveries against ordered quantities.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a new purchasing service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// CreateOrder creates a draft purchase order for a supplier, minting its code
// and computing the total from the item lines.
func (s *Service) CreateOrder(ctx context.Context, supplierID string, items []models.PurchaseOrderItem) (*models.PurchaseOrder, error) {
	if len(items) == 0 {
		return nil, &store.ValidationError{Reason: "purchase order needs at least one item"}
	}

	var created *models.PurchaseOrder
	err := s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		if _, err := store.Get[catalog.Supplier](tx, supplierID); err != nil {
			return err
		}

		id := uuid.NewString()
		total := 0.0
		for i := range items {
			if items[i].QuantityOrdered <= 0 {
				return &store.ValidationError{Reason: fmt.Sprintf("item %d: quantity ordered must be positive", i)}
			}
			if _, err := store.Get[catalog.Product](tx, items[i].ProductID); err != nil {
				return err
			}
			items[i].ID = uuid.NewString()
			items[i].PurchaseOrderID = id
			items[i].QuantityReceived = 0
			total += float64(items[i].QuantityOrdered) * items[i].UnitCost
		}

		code, err := tx.NextCode(schema.SeqPurchaseOrderCode)
		if err != nil {
			return err
		}

		now := time.Now()
		order := &models.PurchaseOrder{
			ID:         id,
			Code:       code,
			SupplierID: supplierID,
			Status:     models.StatusDraft,
			Items:      items,
			Total:      total,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := store.Create(tx, order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("id", created.ID),
		zap.String("code", created.Code),
		zap.String("supplier_id", created.SupplierID))
	return created, nil
}

// GetOrder returns one purchase order.
func (s *Service) GetOrder(ctx context.Context, id string) (*models.PurchaseOrder, error) {
	return store.Get[models.PurchaseOrder](s.store.WithContext(ctx), id)
}

// ListOrders returns all purchase orders.
func (s *Service) ListOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	return store.ListAll[models.PurchaseOrder](s.store.WithContext(ctx))
}

// ListOrdersBySupplier returns the supplier's purchase orders.
func (s *Service) ListOrdersBySupplier(ctx context.Context, supplierID string) ([]models.PurchaseOrder, error) {
	return store.ListByIndex[models.PurchaseOrder](s.store.WithContext(ctx), "supplier_id", supplierID)
}

// ListOrdersByStatus returns all purchase orders in the given status.
func (s *Service) ListOrdersByStatus(ctx context.Context, status models.Status) ([]models.PurchaseOrder, error) {
	return store.ListByIndex[models.PurchaseOrder](s.store.WithContext(ctx), "status", string(status))
}

// ReceiveItems applies a partial or complete receipt of ordered items: it
// accumulates received quantities (rejecting any overshoot past the ordered
// quantity), derives the order status and creates one inventory batch per
// received line. The whole operation is a single transaction; a rejected
// receipt mutates nothing, so operators can retry the same request safely.
func (s *Service) ReceiveItems(ctx context.Context, orderID string, lines []models.ReceiptLine) (*models.PurchaseOrder, error) {
	if len(lines) == 0 {
		return nil, &store.ValidationError{Reason: "no receipt lines"}
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, &store.ValidationError{Reason: fmt.Sprintf("line %d: received quantity must be positive", i)}
		}
		// An item can only be received with full batch identification.
		if line.BatchNumber == "" {
			return nil, &store.ValidationError{Reason: fmt.Sprintf("line %d: missing batch number", i)}
		}
		if line.ExpiryDate.IsZero() {
			return nil, &store.ValidationError{Reason: fmt.Sprintf("line %d: missing expiry date", i)}
		}
	}

	var updated *models.PurchaseOrder
	err := s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		order, err := store.Get[models.PurchaseOrder](tx, orderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return &store.ValidationError{Reason: fmt.Sprintf("purchase order %s is %s", order.Code, order.Status)}
		}

		now := time.Now()
		for _, line := range lines {
			item := order.Item(line.ItemID)
			if item == nil {
				return &store.ValidationError{Reason: fmt.Sprintf("unknown item %q", line.ItemID)}
			}
			if item.QuantityReceived+line.Quantity > item.QuantityOrdered {
				return &store.ValidationError{Reason: fmt.Sprintf(
					"item %q: receiving %d would exceed ordered quantity (%d of %d already received)",
					line.ItemID, line.Quantity, item.QuantityReceived, item.QuantityOrdered)}
			}
			item.QuantityReceived += line.Quantity
			item.BatchNumber = line.BatchNumber
			expiry := line.ExpiryDate
			item.ExpiryDate = &expiry
		}

		order.Status = DeriveStatus(order.Items, order.Status)
		order.UpdatedAt = now
		if err := store.Upsert(tx, order); err != nil {
			return err
		}

		// Each receipt is its own lot, even on a repeated batch number.
		for _, line := range lines {
			item := order.Item(line.ItemID)
			batch := &inventory.Batch{
				ID:              uuid.NewString(),
				ProductID:       item.ProductID,
				BatchNumber:     line.BatchNumber,
				Quantity:        line.Quantity,
				ManufactureDate: now,
				ExpiryDate:      line.ExpiryDate,
				CreatedAt:       now,
			}
			if err := store.Create(tx, batch); err != nil {
				return err
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order received",
		zap.String("id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int("lines", len(lines)))
	return updated, nil
}

// UpdateStatus applies an external status transition (draft→sent,
// sent/partial→cancelled). Terminal orders reject every transition;
// partial/complete are reserved to ReceiveItems.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to models.Status) (*models.PurchaseOrder, error) {
	if !to.IsValid() {
		return nil, &store.ValidationError{Reason: fmt.Sprintf("unknown status %q", to)}
	}

	var updated *models.PurchaseOrder
	err := s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		order, err := store.Get[models.PurchaseOrder](tx, orderID)
		if err != nil {
			return err
		}
		if !CanTransition(order.Status, to) {
			return &store.ValidationError{Reason: fmt.Sprintf("cannot transition %s from %s to %s", order.Code, order.Status, to)}
		}
		order.Status = to
		order.UpdatedAt = time.Now()
		if err := store.Upsert(tx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
