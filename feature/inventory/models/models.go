package models

import "time"

// Batch is a received lot of a product with its own quantity and expiry.
// Batches are created by manual admin entry or by purchase-order receiving,
// and are never deleted automatically: expiry is a derived state, not a
// lifecycle event. Repeated batch numbers stay separate lots.
type Batch struct {
	ID              string    `gorm:"column:id;primaryKey" json:"id"`
	ProductID       string    `gorm:"column:product_id;index" json:"product_id"`
	BatchNumber     string    `gorm:"column:batch_number" json:"batch_number"`
	Quantity        int       `gorm:"column:quantity" json:"quantity"`
	ManufactureDate time.Time `gorm:"column:manufacture_date" json:"manufacture_date"`
	ExpiryDate      time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Batch) TableName() string { return "batches" }

// RecordKey returns the primary key value.
func (b Batch) RecordKey() string { return b.ID }

// Expired reports whether the lot is past its expiry date at the given time.
func (b Batch) Expired(now time.Time) bool {
	return !b.ExpiryDate.IsZero() && b.ExpiryDate.Before(now)
}

// StockSummary aggregates a product's batches. It is derived, never stored.
type StockSummary struct {
	ProductID     string     `json:"product_id"`
	OnHand        int        `json:"on_hand"`
	Expired       int        `json:"expired"`
	BatchCount    int        `json:"batch_count"`
	NearestExpiry *time.Time `json:"nearest_expiry,omitempty"`
}

// LowStockEntry flags a product at or below its reorder level.
type LowStockEntry struct {
	ProductID    string `json:"product_id"`
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	OnHand       int    `json:"on_hand"`
	ReorderLevel int    `json:"reorder_level"`
}
