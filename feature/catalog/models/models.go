package models

import "time"

// Product is a sellable pharmacy item. Code is minted from the product_code
// sequence and unique across the store; physical stock lives in batches.
type Product struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Code         string    `gorm:"column:code;uniqueIndex" json:"code"`
	Name         string    `gorm:"column:name" json:"name"`
	Description  string    `gorm:"column:description" json:"description"`
	CategoryID   string    `gorm:"column:category_id;index" json:"category_id"`
	UnitPrice    float64   `gorm:"column:unit_price" json:"unit_price"`
	ReorderLevel int       `gorm:"column:reorder_level" json:"reorder_level"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// RecordKey returns the primary key value.
func (p Product) RecordKey() string { return p.ID }

// Validate checks the minimum required fields.
func (p Product) Validate() string {
	if p.Name == "" {
		return "missing name"
	}
	if p.UnitPrice < 0 {
		return "negative unit price"
	}
	if p.ReorderLevel < 0 {
		return "negative reorder level"
	}
	return ""
}

// Category groups products for catalog navigation.
type Category struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Code      string    `gorm:"column:code;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// RecordKey returns the primary key value.
func (c Category) RecordKey() string { return c.ID }

// Supplier is a purchase-order counterparty.
type Supplier struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Code      string    `gorm:"column:code;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Supplier) TableName() string { return "suppliers" }

// RecordKey returns the primary key value.
func (s Supplier) RecordKey() string { return s.ID }
