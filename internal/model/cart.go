package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one logical line per (user, product). Adding the same
// product again merges into the existing line; a quantity update to zero
// or below deletes the line outright. Price/currency/unit are display
// snapshots taken at add-time; checkout re-reads live prices.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency string          `gorm:"type:varchar(3)" json:"currency"`
	Unit     string          `gorm:"type:varchar(20)" json:"unit"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
