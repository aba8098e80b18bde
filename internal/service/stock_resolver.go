package service

import (
	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
)

// StockTargetKind says which table holds the authoritative stock row.
type StockTargetKind int

const (
	TargetProduct StockTargetKind = iota
	TargetGroup
)

// StockTarget identifies the canonical stock holder for a product.
type StockTarget struct {
	Kind StockTargetKind
	ID   uuid.UUID
}

// ResolveStockTarget decides which row owns a unit of inventory for the
// given product. Independent variants own their stock column. Merged
// variants all draw from their group's base_stock counter; the group row
// is the single lock target for both deduction and restoration, and the
// per-variant stock columns become non-authoritative mirrors.
func ResolveStockTarget(p *model.Product) StockTarget {
	if p.Merged() {
		return StockTarget{Kind: TargetGroup, ID: *p.GroupID}
	}
	return StockTarget{Kind: TargetProduct, ID: p.ID}
}

// EffectiveStock returns the stock figure a customer can buy against:
// the group counter for merged variants, the product's own column
// otherwise. Expects p.Group preloaded for merged products.
func EffectiveStock(p *model.Product) int {
	if p.Merged() && p.Group != nil {
		return p.Group.BaseStock
	}
	return p.Stock
}
