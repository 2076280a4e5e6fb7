package inventory

import (
	"context"
	"time"

	"pharmacy-manager/core/store"
	catalog "pharmacy-manager/feature/catalog/models"
	"pharmacy-manager/feature/inventory/models"
	"pharmacy-manager/feature/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles inventory batch operations and stock aggregation.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// AddBatch records a manually entered lot. The product must exist and the
// quantity must not be negative. A missing batch number gets one minted from
// the batch_code sequence.
func (s *Service) AddBatch(ctx context.Context, batch *models.Batch) error {
	if batch.Quantity < 0 {
		return &store.ValidationError{Reason: "negative quantity"}
	}
	if batch.ExpiryDate.IsZero() {
		return &store.ValidationError{Reason: "missing expiry date"}
	}

	err := s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		if _, err := store.Get[catalog.Product](tx, batch.ProductID); err != nil {
			return err
		}
		if batch.ID == "" {
			batch.ID = uuid.NewString()
		}
		if batch.BatchNumber == "" {
			code, err := tx.NextCode(schema.SeqBatchCode)
			if err != nil {
				return err
			}
			batch.BatchNumber = code
		}
		if batch.ManufactureDate.IsZero() {
			batch.ManufactureDate = time.Now()
		}
		batch.CreatedAt = time.Now()
		return store.Create(tx, batch)
	})
	if err != nil {
		return err
	}

	s.logger.Info("batch added",
		zap.String("id", batch.ID),
		zap.String("product_id", batch.ProductID),
		zap.Int("quantity", batch.Quantity))
	return nil
}

// ListBatches returns a product's lots via the product_id index.
func (s *Service) ListBatches(ctx context.Context, productID string) ([]models.Batch, error) {
	return store.ListByIndex[models.Batch](s.store.WithContext(ctx), "product_id", productID)
}

// StockSummary aggregates a product's batches into on-hand and expired
// quantities plus the nearest upcoming expiry. Expired lots are not removed;
// expiry is a derived state.
func (s *Service) StockSummary(ctx context.Context, productID string) (*models.StockSummary, error) {
	st := s.store.WithContext(ctx)
	if _, err := store.Get[catalog.Product](st, productID); err != nil {
		return nil, err
	}
	batches, err := store.ListByIndex[models.Batch](st, "product_id", productID)
	if err != nil {
		return nil, err
	}
	summary := summarize(productID, batches, time.Now())
	return &summary, nil
}

// LowStock reports every product whose unexpired on-hand quantity is at or
// below its reorder level.
func (s *Service) LowStock(ctx context.Context) ([]models.LowStockEntry, error) {
	st := s.store.WithContext(ctx)
	products, err := store.ListAll[catalog.Product](st)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := []models.LowStockEntry{}
	for _, product := range products {
		batches, err := store.ListByIndex[models.Batch](st, "product_id", product.ID)
		if err != nil {
			return nil, err
		}
		summary := summarize(product.ID, batches, now)
		if summary.OnHand <= product.ReorderLevel {
			entries = append(entries, models.LowStockEntry{
				ProductID:    product.ID,
				ProductCode:  product.Code,
				ProductName:  product.Name,
				OnHand:       summary.OnHand,
				ReorderLevel: product.ReorderLevel,
			})
		}
	}
	return entries, nil
}

// summarize folds batches into a stock summary at the given time.
func summarize(productID string, batches []models.Batch, now time.Time) models.StockSummary {
	summary := models.StockSummary{ProductID: productID, BatchCount: len(batches)}
	for _, b := range batches {
		if b.Expired(now) {
			summary.Expired += b.Quantity
			continue
		}
		summary.OnHand += b.Quantity
		if !b.ExpiryDate.IsZero() {
			if summary.NearestExpiry == nil || b.ExpiryDate.Before(*summary.NearestExpiry) {
				expiry := b.ExpiryDate
				summary.NearestExpiry = &expiry
			}
		}
	}
	return summary
}
