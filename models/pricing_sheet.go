package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type PricingSheetTier struct {
	MinQuantity int             `json:"minQuantity"`
	MaxQuantity *int            `json:"maxQuantity,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
}

type PricingSheetProduct struct {
	ProductID   string             `json:"productId"`
	ProductName string             `json:"productName"`
	SKU         string             `json:"sku"`
	BasePrice   decimal.Decimal    `json:"basePrice"`
	Tiers       []PricingSheetTier `json:"tiers"`
}

// PricingSheet is an exportable point-in-time price list, optionally per customer group
type PricingSheet struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	CustomerGroup *CustomerGroup        `json:"customerGroup,omitempty"`
	Products      []PricingSheetProduct `json:"products"`
	ValidFrom     time.Time             `json:"validFrom"`
	ValidUntil    *time.Time            `json:"validUntil,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// MaxTiers is the largest tier count across the sheet's products
func (s *PricingSheet) MaxTiers() int {
	n := 0
	for _, p := range s.Products {
		n = max(n, len(p.Tiers))
	}
	return n
}

func (s PricingSheet) Clone() PricingSheet {
	s.Products = slices.Clone(s.Products)
	for i := range s.Products {
		s.Products[i].Tiers = slices.Clone(s.Products[i].Tiers)
	}
	return s
}
