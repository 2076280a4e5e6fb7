package catalog

import (
	"context"
	"testing"

	"pharmacy-manager/core/store"
	"pharmacy-manager/feature/catalog/models"
	"pharmacy-manager/feature/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: ":memory:"}, schema.Current())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st, zap.NewNop())
}

func TestCreateProduct_MintsCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := &models.Product{Name: "Paracetamol 500mg", UnitPrice: 2.5, ReorderLevel: 20}
	require.NoError(t, svc.CreateProduct(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "001001", first.Code)

	second := &models.Product{Name: "Ibuprofen 200mg", UnitPrice: 3.0}
	require.NoError(t, svc.CreateProduct(ctx, second))
	assert.Equal(t, "001002", second.Code)
}

func TestCreateProduct_Invalid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var invalid *store.ValidationError
	err := svc.CreateProduct(ctx, &models.Product{UnitPrice: 1})
	require.ErrorAs(t, err, &invalid)

	err = svc.CreateProduct(ctx, &models.Product{Name: "x", UnitPrice: -1})
	assert.ErrorAs(t, err, &invalid)
}

func TestGetProductByCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := &models.Product{Name: "Amoxicillin 250mg", UnitPrice: 5}
	require.NoError(t, svc.CreateProduct(ctx, product))

	got, err := svc.GetProductByCode(ctx, product.Code)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	_, err = svc.GetProductByCode(ctx, "999999")
	var notFound *store.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateProduct_KeepsCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := &models.Product{Name: "Aspirin 100mg", UnitPrice: 1.5}
	require.NoError(t, svc.CreateProduct(ctx, product))
	minted := product.Code

	product.UnitPrice = 1.8
	require.NoError(t, svc.UpdateProduct(ctx, product))

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, minted, got.Code)
	assert.Equal(t, 1.8, got.UnitPrice)
}

func TestDeleteProduct_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := &models.Product{Name: "Cetirizine 10mg", UnitPrice: 2}
	require.NoError(t, svc.CreateProduct(ctx, product))

	assert.NoError(t, svc.DeleteProduct(ctx, product.ID))
	assert.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err := svc.GetProduct(ctx, product.ID)
	var notFound *store.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListProductsByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category := &models.Category{Name: "Analgesics"}
	require.NoError(t, svc.CreateCategory(ctx, category))
	assert.Equal(t, "000101", category.Code)

	require.NoError(t, svc.CreateProduct(ctx, &models.Product{Name: "A", UnitPrice: 1, CategoryID: category.ID}))
	require.NoError(t, svc.CreateProduct(ctx, &models.Product{Name: "B", UnitPrice: 1, CategoryID: category.ID}))
	require.NoError(t, svc.CreateProduct(ctx, &models.Product{Name: "C", UnitPrice: 1}))

	inCategory, err := svc.ListProductsByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, inCategory, 2)

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateSupplier_MintsCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	supplier := &models.Supplier{Name: "MediSupply Ltd", Email: "orders@medisupply.test"}
	require.NoError(t, svc.CreateSupplier(ctx, supplier))
	assert.Equal(t, "003001", supplier.Code)

	got, err := svc.GetSupplier(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "MediSupply Ltd", got.Name)

	var invalid *store.ValidationError
	err = svc.CreateSupplier(ctx, &models.Supplier{})
	assert.ErrorAs(t, err, &invalid)
}
