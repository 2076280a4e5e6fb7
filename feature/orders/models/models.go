package models

import "time"

// Order is a customer order record. The order workflow itself lives in the
// external order service; this collection only backs its keyed lookups and
// index scans. Code is minted from the order_code sequence.
type Order struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Code      string    `gorm:"column:code;uniqueIndex" json:"code"`
	UserID    string    `gorm:"column:user_id;index" json:"user_id"`
	Status    string    `gorm:"column:status;index" json:"status"`
	Total     float64   `gorm:"column:total" json:"total"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// RecordKey returns the primary key value.
func (o Order) RecordKey() string { return o.ID }
