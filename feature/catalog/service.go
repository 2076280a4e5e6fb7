package catalog

import (
	"context"
	"time"

	"pharmacy-manager/core/store"
	"pharmacy-manager/feature/catalog/models"
	"pharmacy-manager/feature/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles catalog operations for products, categories and suppliers.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// CreateProduct creates a product, minting its unique code from the
// product_code sequence.
func (s *Service) CreateProduct(ctx context.Context, product *models.Product) error {
	if reason := product.Validate(); reason != "" {
		return &store.ValidationError{Reason: reason}
	}

	err := s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		code, err := tx.NextCode(schema.SeqProductCode)
		if err != nil {
			return err
		}
		product.Code = code
		now := time.Now()
		product.CreatedAt = now
		product.UpdatedAt = now
		return store.Create(tx, product)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product created", zap.String("id", product.ID), zap.String("code", product.Code))
	return nil
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return store.Get[models.Product](s.store.WithContext(ctx), id)
}

// GetProductByCode looks a product up through the unique code index.
func (s *Service) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	matches, err := store.ListByIndex[models.Product](s.store.WithContext(ctx), "code", code)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &store.NotFoundError{Collection: "products", Key: code}
	}
	return &matches[0], nil
}

// UpdateProduct upserts the product, keeping its minted code.
func (s *Service) UpdateProduct(ctx context.Context, product *models.Product) error {
	if reason := product.Validate(); reason != "" {
		return &store.ValidationError{Reason: reason}
	}
	product.UpdatedAt = time.Now()
	return store.Upsert(s.store.WithContext(ctx), product)
}

// DeleteProduct removes a product. Deleting a missing id succeeds.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return store.Delete[models.Product](s.store.WithContext(ctx), id)
}

// ListProducts returns every product.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return store.ListAll[models.Product](s.store.WithContext(ctx))
}

// ListProductsByCategory returns the category's products.
func (s *Service) ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return store.ListByIndex[models.Product](s.store.WithContext(ctx), "category_id", categoryID)
}

// CreateCategory creates a category with a minted code.
func (s *Service) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return &store.ValidationError{Reason: "missing name"}
	}
	return s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		if category.ID == "" {
			category.ID = uuid.NewString()
		}
		code, err := tx.NextCode(schema.SeqCategoryCode)
		if err != nil {
			return err
		}
		category.Code = code
		category.CreatedAt = time.Now()
		return store.Create(tx, category)
	})
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return store.ListAll[models.Category](s.store.WithContext(ctx))
}

// CreateSupplier creates a supplier with a minted code.
func (s *Service) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return &store.ValidationError{Reason: "missing name"}
	}
	return s.store.WithContext(ctx).Transaction(func(tx *store.Store) error {
		if supplier.ID == "" {
			supplier.ID = uuid.NewString()
		}
		code, err := tx.NextCode(schema.SeqSupplierCode)
		if err != nil {
			return err
		}
		supplier.Code = code
		supplier.CreatedAt = time.Now()
		return store.Create(tx, supplier)
	})
}

// GetSupplier returns one supplier by id.
func (s *Service) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	return store.Get[models.Supplier](s.store.WithContext(ctx), id)
}

// ListSuppliers returns every supplier.
func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return store.ListAll[models.Supplier](s.store.WithContext(ctx))
}
