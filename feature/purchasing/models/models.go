package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the purchase-order lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPartial   Status = "partial"
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
)

// IsValid checks the status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPartial, StatusComplete, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// PurchaseOrderItem is one ordered line. Items are owned by their order and
// are not separately addressable. quantity_received accumulates across
// receipts and never exceeds quantity_ordered.
type PurchaseOrderItem struct {
	ID               string     `json:"id"`
	PurchaseOrderID  string     `json:"purchase_order_id"`
	ProductID        string     `json:"product_id"`
	QuantityOrdered  int        `json:"quantity_ordered"`
	QuantityReceived int        `json:"quantity_received"`
	UnitCost         float64    `json:"unit_cost"`
	BatchNumber      string     `json:"batch_number,omitempty"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}

// Items is the embedded item list, serialized as a JSON column.
type Items []PurchaseOrderItem

// Value implements driver.Valuer.
func (i Items) Value() (driver.Value, error) {
	if i == nil {
		i = Items{}
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner.
func (i *Items) Scan(value any) error {
	if value == nil {
		*i = Items{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("unsupported items column type %T", value)
	}
}

// PurchaseOrder is a supplier order. Code is minted from the
// purchase_order_code sequence.
type PurchaseOrder struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	Code       string    `gorm:"column:code;uniqueIndex" json:"code"`
	SupplierID string    `gorm:"column:supplier_id;index" json:"supplier_id"`
	Status     Status    `gorm:"column:status;index" json:"status"`
	Items      Items     `gorm:"column:items;type:text" json:"items"`
	Total      float64   `gorm:"column:total" json:"total"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// RecordKey returns the primary key value.
func (p PurchaseOrder) RecordKey() string { return p.ID }

// Item returns the embedded item with the given id, or nil.
func (p *PurchaseOrder) Item(id string) *PurchaseOrderItem {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// ReceiptLine reports one received delivery line. A positive quantity requires
// full batch identification.
type ReceiptLine struct {
	ItemID      string    `json:"item_id"`
	Quantity    int       `json:"quantity"`
	BatchNumber string    `json:"batch_number"`
	ExpiryDate  time.Time `json:"expiry_date"`
}
