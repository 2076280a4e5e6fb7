package inventory

import (
	"context"
	"testing"
	"time"

	"pharmacy-manager/core/store"
	catalog "pharmacy-manager/feature/catalog/models"
	"pharmacy-manager/feature/inventory/models"
	"pharmacy-manager/feature/schema"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: ":memory:"}, schema.Current())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st, zap.NewNop()), st
}

func createProduct(t *testing.T, st *store.Store, reorderLevel int) *catalog.Product {
	t.Helper()
	product := &catalog.Product{
		ID:           uuid.NewString(),
		Code:         uuid.NewString()[:6],
		Name:         "Test Product",
		UnitPrice:    1,
		ReorderLevel: reorderLevel,
	}
	require.NoError(t, store.Create(st, product))
	return product
}

func TestAddBatch_MintsBatchNumber(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	product := createProduct(t, st, 0)

	batch := &models.Batch{
		ProductID:  product.ID,
		Quantity:   40,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, svc.AddBatch(ctx, batch))
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "002001", batch.BatchNumber)

	// A supplied batch number is kept as-is.
	named := &models.Batch{
		ProductID:   product.ID,
		BatchNumber: "LOT-77",
		Quantity:    10,
		ExpiryDate:  time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, svc.AddBatch(ctx, named))
	assert.Equal(t, "LOT-77", named.BatchNumber)
}

func TestAddBatch_Rejections(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	product := createProduct(t, st, 0)
	expiry := time.Now().AddDate(1, 0, 0)

	var invalid *store.ValidationError
	err := svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: -1, ExpiryDate: expiry})
	require.ErrorAs(t, err, &invalid)

	err = svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: 1})
	require.ErrorAs(t, err, &invalid)

	var notFound *store.NotFoundError
	err = svc.AddBatch(ctx, &models.Batch{ProductID: "missing", Quantity: 1, ExpiryDate: expiry})
	assert.ErrorAs(t, err, &notFound)
}

func TestStockSummary(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	product := createProduct(t, st, 0)

	soon := time.Now().AddDate(0, 1, 0)
	later := time.Now().AddDate(1, 0, 0)
	past := time.Now().AddDate(0, 0, -1)

	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: 30, ExpiryDate: later}))
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: 20, ExpiryDate: soon}))
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: 15, ExpiryDate: past}))

	summary, err := svc.StockSummary(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, summary.OnHand)
	assert.Equal(t, 15, summary.Expired)
	assert.Equal(t, 3, summary.BatchCount)
	require.NotNil(t, summary.NearestExpiry)
	assert.Equal(t, soon.Unix(), summary.NearestExpiry.Unix())

	var notFound *store.NotFoundError
	_, err = svc.StockSummary(ctx, "missing")
	assert.ErrorAs(t, err, &notFound)
}

func TestLowStock(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	low := createProduct(t, st, 10)
	ok := createProduct(t, st, 10)
	expiredOnly := createProduct(t, st, 5)

	future := time.Now().AddDate(1, 0, 0)
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: low.ID, Quantity: 10, ExpiryDate: future}))
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: ok.ID, Quantity: 50, ExpiryDate: future}))
	// Expired stock does not count toward on-hand.
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: expiredOnly.ID, Quantity: 100, ExpiryDate: time.Now().AddDate(0, 0, -1)}))

	entries, err := svc.LowStock(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	assert.ElementsMatch(t, []string{low.ID, expiredOnly.ID}, ids)
}

func TestListBatches(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	product := createProduct(t, st, 0)
	other := createProduct(t, st, 0)

	future := time.Now().AddDate(1, 0, 0)
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: 5, ExpiryDate: future}))
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: product.ID, Quantity: 7, ExpiryDate: future}))
	require.NoError(t, svc.AddBatch(ctx, &models.Batch{ProductID: other.ID, Quantity: 9, ExpiryDate: future}))

	batches, err := svc.ListBatches(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}
