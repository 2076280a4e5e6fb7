package schema

import (
	"pharmacy-manager/core/store"
	catalog "pharmacy-manager/feature/catalog/models"
	inventory "pharmacy-manager/feature/inventory/models"
	orders "pharmacy-manager/feature/orders/models"
	purchasing "pharmacy-manager/feature/purchasing/models"

	"gorm.io/gorm"
)

// Sequence names and their seed values. Formatted codes are the seed-derived
// integers zero-padded to 6 digits.
const (
	SeqProductCode       = "product_code"
	SeqOrderCode         = "order_code"
	SeqSupplierCode      = "supplier_code"
	SeqBatchCode         = "batch_code"
	SeqPurchaseOrderCode = "purchase_order_code"
	SeqCategoryCode      = "category_code"
)

var seeds = map[string]int64{
	SeqProductCode:       1000,
	SeqOrderCode:         5000,
	SeqSupplierCode:      3000,
	SeqBatchCode:         2000,
	SeqPurchaseOrderCode: 4000,
	SeqCategoryCode:      100,
}

var collections = []store.Collection{
	{
		Name:  "products",
		Model: &catalog.Product{},
		Indexes: []store.Index{
			{Name: "code", Column: "code", Unique: true},
			{Name: "category_id", Column: "category_id"},
		},
	},
	{
		Name:  "categories",
		Model: &catalog.Category{},
		Indexes: []store.Index{
			{Name: "code", Column: "code", Unique: true},
		},
	},
	{
		Name:  "suppliers",
		Model: &catalog.Supplier{},
		Indexes: []store.Index{
			{Name: "code", Column: "code", Unique: true},
		},
	},
	{
		Name:       "sequences",
		Model:      &store.Sequence{},
		PrimaryKey: "name",
	},
	{
		Name:  "batches",
		Model: &inventory.Batch{},
		Indexes: []store.Index{
			{Name: "product_id", Column: "product_id"},
		},
	},
	{
		Name:  "purchase_orders",
		Model: &purchasing.PurchaseOrder{},
		Indexes: []store.Index{
			{Name: "supplier_id", Column: "supplier_id"},
			{Name: "status", Column: "status"},
		},
	},
	{
		Name:  "orders",
		Model: &orders.Order{},
		Indexes: []store.Index{
			{Name: "user_id", Column: "user_id"},
			{Name: "status", Column: "status"},
		},
	},
}

// Current returns the pharmacy schema: the collection registry and the
// ordered migration list a fresh store converges through.
func Current() store.Schema {
	return store.Schema{
		Collections: collections,
		Migrations: []store.Migration{
			{Version: 1, Name: "catalog collections", Apply: applyCatalog},
			{Version: 2, Name: "code sequences", Apply: applySequences},
			{Version: 3, Name: "inventory collections", Apply: applyInventory},
			{Version: 4, Name: "order collections", Apply: applyOrders},
		},
	}
}

func byName(name string) store.Collection {
	for _, c := range collections {
		if c.Name == name {
			return c
		}
	}
	// Unknown names are a programming error in this package.
	panic("schema: unknown collection " + name)
}

func applyCatalog(tx *gorm.DB) error {
	if err := store.EnsureCollection(tx, byName("products")); err != nil {
		return err
	}
	return store.EnsureCollection(tx, byName("categories"))
}

func applySequences(tx *gorm.DB) error {
	if err := store.EnsureCollection(tx, byName("sequences")); err != nil {
		return err
	}
	for name, value := range seeds {
		if err := store.SeedSequence(tx, name, value); err != nil {
			return err
		}
	}
	return nil
}

func applyInventory(tx *gorm.DB) error {
	if err := store.EnsureCollection(tx, byName("batches")); err != nil {
		return err
	}
	return store.EnsureCollection(tx, byName("suppliers"))
}

func applyOrders(tx *gorm.DB) error {
	if err := store.EnsureCollection(tx, byName("purchase_orders")); err != nil {
		return err
	}
	return store.EnsureCollection(tx, byName("orders"))
}
