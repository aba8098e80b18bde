package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMergeType decides which row owns a unit of inventory for grouped
// variants: each variant its own stock column, or one shared group counter.
type StockMergeType string

const (
	StockIndependent StockMergeType = "independent"
	StockMerged      StockMergeType = "merged"
)

// ProductGroup bundles product variants that differ by unit/size.
// In merged mode BaseStock is the single authoritative counter for
// every variant in the group.
type ProductGroup struct {
	BaseModel
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id" validate:"uuid_required"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	StockMergeType StockMergeType `gorm:"type:varchar(20);not null;default:'independent'" json:"stock_merge_type" validate:"oneof=independent merged"`
	BaseStock      int            `gorm:"default:0" json:"base_stock"`

	Variants []Product `gorm:"foreignKey:GroupID" json:"variants,omitempty"`
}

type Product struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id" validate:"uuid_required"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id" validate:"uuid_required"`

	SKU      string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Stock    int             `gorm:"default:0" json:"stock"`
	Unit     string          `gorm:"type:varchar(20)" json:"unit"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	Currency string          `gorm:"type:varchar(3);default:'USD'" json:"currency" validate:"omitempty,currency_code"`

	// Tax annotation for read-time responses. Orders snapshot their tax
	// at checkout and never consult these again.
	TaxRate decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"tax_rate"`
	TaxType string          `gorm:"type:varchar(20);default:'percentage'" json:"tax_type"`

	// Variant grouping. StockMergeType mirrors the group's mode so the
	// resolver can route without an extra lookup.
	GroupID        *uuid.UUID     `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group          *ProductGroup  `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	StockMergeType StockMergeType `gorm:"type:varchar(20);default:'independent'" json:"stock_merge_type"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

// Merged reports whether this product draws stock from its group counter.
func (p *Product) Merged() bool {
	return p.GroupID != nil && p.StockMergeType == StockMerged
}

// ProductResponse is the storefront view of a product: price annotated
// with tax and the stock figure customers actually buy against.
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	PriceWithTax   decimal.Decimal `json:"price_with_tax"`
	EffectiveStock int             `json:"effective_stock"`
	GroupID        *uuid.UUID      `json:"group_id,omitempty"`
	StockMergeType StockMergeType  `json:"stock_merge_type"`
}
