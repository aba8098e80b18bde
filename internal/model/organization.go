package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Organization is a seller tenant. Every product, branch and incoming
// order hangs off exactly one organization.
type Organization struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Slug     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug" validate:"required"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Branches []Branch `json:"branches,omitempty"`
}

// Branch is a physical fulfillment location of an organization.
// Storefront listings, operating hours and delivery fees are per branch.
type Branch struct {
	BaseModel
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id" validate:"uuid_required"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`

	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address     string          `gorm:"type:text" json:"address"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"delivery_fee"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}
