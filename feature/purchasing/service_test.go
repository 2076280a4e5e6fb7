package purchasing

import (
	"context"
	"testing"
	"time"

	"pharmacy-manager/core/store"
	catalog "pharmacy-manager/feature/catalog/models"
	inventory "pharmacy-manager/feature/inventory/models"
	"pharmacy-manager/feature/purchasing/models"
	"pharmacy-manager/feature/schema"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc      *Service
	st       *store.Store
	supplier *catalog.Supplier
	productA *catalog.Product
	productB *catalog.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: ":memory:"}, schema.Current())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{svc: NewService(st, zap.NewNop()), st: st}
	f.supplier = &catalog.Supplier{ID: uuid.NewString(), Code: "003001", Name: "MediSupply Ltd"}
	require.NoError(t, store.Create(st, f.supplier))
	f.productA = &catalog.Product{ID: uuid.NewString(), Code: "001001", Name: "Paracetamol", UnitPrice: 2}
	require.NoError(t, store.Create(st, f.productA))
	f.productB = &catalog.Product{ID: uuid.NewString(), Code: "001002", Name: "Ibuprofen", UnitPrice: 3}
	require.NoError(t, store.Create(st, f.productB))
	return f
}

func (f *fixture) createOrder(t *testing.T, quantities ...int) *models.PurchaseOrder {
	t.Helper()
	products := []*catalog.Product{f.productA, f.productB}
	items := make([]models.PurchaseOrderItem, len(quantities))
	for i, q := range quantities {
		items[i] = models.PurchaseOrderItem{
			ProductID:       products[i%len(products)].ID,
			QuantityOrdered: q,
			UnitCost:        1.5,
		}
	}
	order, err := f.svc.CreateOrder(context.Background(), f.supplier.ID, items)
	require.NoError(t, err)
	return order
}

func (f *fixture) batchesFor(t *testing.T, productID string) []inventory.Batch {
	t.Helper()
	batches, err := store.ListByIndex[inventory.Batch](f.st, "product_id", productID)
	require.NoError(t, err)
	return batches
}

func expiry() time.Time { return time.Now().AddDate(2, 0, 0) }

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, f.supplier.ID, []models.PurchaseOrderItem{
		{ProductID: f.productA.ID, QuantityOrdered: 10, UnitCost: 2.5},
		{ProductID: f.productB.ID, QuantityOrdered: 4, UnitCost: 1.0},
	})
	require.NoError(t, err)

	assert.Equal(t, "004001", order.Code)
	assert.Equal(t, models.StatusDraft, order.Status)
	assert.Equal(t, 29.0, order.Total)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, order.ID, item.PurchaseOrderID)
		assert.Zero(t, item.QuantityReceived)
	}

	// Items round-trip through the JSON column.
	got, err := f.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Items, got.Items)
}

func TestCreateOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var invalid *store.ValidationError
	_, err := f.svc.CreateOrder(ctx, f.supplier.ID, nil)
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.CreateOrder(ctx, f.supplier.ID, []models.PurchaseOrderItem{
		{ProductID: f.productA.ID, QuantityOrdered: 0},
	})
	require.ErrorAs(t, err, &invalid)

	var notFound *store.NotFoundError
	_, err = f.svc.CreateOrder(ctx, "missing", []models.PurchaseOrderItem{
		{ProductID: f.productA.ID, QuantityOrdered: 1},
	})
	require.ErrorAs(t, err, &notFound)

	_, err = f.svc.CreateOrder(ctx, f.supplier.ID, []models.PurchaseOrderItem{
		{ProductID: "missing", QuantityOrdered: 1},
	})
	assert.ErrorAs(t, err, &notFound)
}

func TestReceiveItems_FullReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10, 5)

	updated, err := f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 10, BatchNumber: "LOT-A", ExpiryDate: expiry()},
		{ItemID: order.Items[1].ID, Quantity: 5, BatchNumber: "LOT-B", ExpiryDate: expiry()},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, updated.Status)

	batchesA := f.batchesFor(t, f.productA.ID)
	require.Len(t, batchesA, 1)
	assert.Equal(t, "LOT-A", batchesA[0].BatchNumber)
	assert.Equal(t, 10, batchesA[0].Quantity)
	assert.Len(t, f.batchesFor(t, f.productB.ID), 1)
}

func TestReceiveItems_PartialThenComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10)

	updated, err := f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 4, BatchNumber: "LOT-1", ExpiryDate: expiry()},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPartial, updated.Status)
	assert.Equal(t, 4, updated.Items[0].QuantityReceived)

	updated, err = f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 6, BatchNumber: "LOT-2", ExpiryDate: expiry()},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, updated.Status)
	assert.Equal(t, 10, updated.Items[0].QuantityReceived)

	// Two receipts stay two separate lots.
	assert.Len(t, f.batchesFor(t, f.productA.ID), 2)
}

func TestReceiveItems_OverReceiptMutatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10, 5)

	_, err := f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 10, BatchNumber: "LOT-A", ExpiryDate: expiry()},
		{ItemID: order.Items[1].ID, Quantity: 6, BatchNumber: "LOT-B", ExpiryDate: expiry()},
	})
	var invalid *store.ValidationError
	require.ErrorAs(t, err, &invalid)

	// The whole receipt rolls back: no item progress, no batches, no status
	// change, even for the valid first line.
	got, err := f.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, got.Status)
	assert.Zero(t, got.Items[0].QuantityReceived)
	assert.Zero(t, got.Items[1].QuantityReceived)
	assert.Empty(t, f.batchesFor(t, f.productA.ID))
	assert.Empty(t, f.batchesFor(t, f.productB.ID))
}

func TestReceiveItems_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10)

	var invalid *store.ValidationError
	_, err := f.svc.ReceiveItems(ctx, order.ID, nil)
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 0, BatchNumber: "LOT-A", ExpiryDate: expiry()},
	})
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 1, ExpiryDate: expiry()},
	})
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 1, BatchNumber: "LOT-A"},
	})
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: "missing", Quantity: 1, BatchNumber: "LOT-A", ExpiryDate: expiry()},
	})
	require.ErrorAs(t, err, &invalid)

	var notFound *store.NotFoundError
	_, err = f.svc.ReceiveItems(ctx, "missing", []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 1, BatchNumber: "LOT-A", ExpiryDate: expiry()},
	})
	assert.ErrorAs(t, err, &notFound)
}

func TestReceiveItems_TerminalOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 3)

	_, err := f.svc.UpdateStatus(ctx, order.ID, models.StatusSent)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, order.ID, models.StatusCancelled)
	require.NoError(t, err)

	var invalid *store.ValidationError
	_, err = f.svc.ReceiveItems(ctx, order.ID, []models.ReceiptLine{
		{ItemID: order.Items[0].ID, Quantity: 3, BatchNumber: "LOT-A", ExpiryDate: expiry()},
	})
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, f.batchesFor(t, f.productA.ID))
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 3)

	updated, err := f.svc.UpdateStatus(ctx, order.ID, models.StatusSent)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, updated.Status)

	// partial/complete are reserved to receiving.
	var invalid *store.ValidationError
	_, err = f.svc.UpdateStatus(ctx, order.ID, models.StatusComplete)
	require.ErrorAs(t, err, &invalid)

	_, err = f.svc.UpdateStatus(ctx, order.ID, "shipped")
	require.ErrorAs(t, err, &invalid)

	updated, err = f.svc.UpdateStatus(ctx, order.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, order.ID, models.StatusSent)
	assert.ErrorAs(t, err, &invalid)
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createOrder(t, 1)
	f.createOrder(t, 2)

	all, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bySupplier, err := f.svc.ListOrdersBySupplier(ctx, f.supplier.ID)
	require.NoError(t, err)
	assert.Len(t, bySupplier, 2)

	_, err = f.svc.UpdateStatus(ctx, first.ID, models.StatusSent)
	require.NoError(t, err)

	drafts, err := f.svc.ListOrdersByStatus(ctx, models.StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.NotEqual(t, first.ID, drafts[0].ID)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		items   models.Items
		current models.Status
		want    models.Status
	}{
		{"no items keeps current", nil, models.StatusSent, models.StatusSent},
		{
			"nothing received keeps draft",
			models.Items{{QuantityOrdered: 5}},
			models.StatusDraft,
			models.StatusDraft,
		},
		{
			"some received is partial",
			models.Items{{QuantityOrdered: 5, QuantityReceived: 2}, {QuantityOrdered: 3}},
			models.StatusSent,
			models.StatusPartial,
		},
		{
			"all full is complete",
			models.Items{{QuantityOrdered: 5, QuantityReceived: 5}, {QuantityOrdered: 3, QuantityReceived: 3}},
			models.StatusPartial,
			models.StatusComplete,
		},
		{
			"one full one empty is partial",
			models.Items{{QuantityOrdered: 5, QuantityReceived: 5}, {QuantityOrdered: 3}},
			models.StatusSent,
			models.StatusPartial,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.items, tt.current))
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusDraft, models.StatusSent))
	assert.True(t, CanTransition(models.StatusSent, models.StatusCancelled))
	assert.True(t, CanTransition(models.StatusPartial, models.StatusCancelled))

	assert.False(t, CanTransition(models.StatusDraft, models.StatusComplete))
	assert.False(t, CanTransition(models.StatusSent, models.StatusDraft))
	assert.False(t, CanTransition(models.StatusComplete, models.StatusCancelled))
	assert.False(t, CanTransition(models.StatusCancelled, models.StatusSent))
}
