package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is created once at checkout and never deleted; only its status
// moves, along the edges in status.go. All amounts are captured at
// creation: total = subtotal + tax + delivery, never recomputed later.
type Order struct {
	BaseModel
	OrderNumber    string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer       *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	AddressID      uuid.UUID `gorm:"type:uuid" json:"address_id"`

	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	DeliveryAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"delivery_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency       string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is an immutable snapshot of a purchased line. Price, currency
// and unit are copied from the product row at checkout and never touched
// again, whatever the catalog does afterwards.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `json:"product" validate:"-"`

	Quantity int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency string          `gorm:"type:varchar(3)" json:"currency"`
	Unit     string          `gorm:"type:varchar(20)" json:"unit"`
}

// StockAdjustment is the audit record of one stock mutation performed by
// the adjustment engine. It is returned to the caller for logging and
// responses, not persisted as its own table.
type StockAdjustment struct {
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
}
