package models

import "time"

// PricingStorageKey names the persisted engine state
const PricingStorageKey = "pricing-storage"

// PricingSnapshot is the persisted shape of the engine: the five rule
// collections and the pricing sheets, nothing else.
type PricingSnapshot struct {
	TieredRules        []TieredRule          `json:"tieredRules"`
	VolumeRules        []VolumeRule          `json:"volumeRules"`
	PromotionalRules   []PromotionalRule     `json:"promotionalRules"`
	CustomerGroupRules []CustomerGroupRule   `json:"customerGroupRules"`
	ProductRules       []ProductSpecificRule `json:"productRules"`
	PricingSheets      []PricingSheet        `json:"pricingSheets"`
}

// PricingStorage is the database row holding a snapshot under its key
type PricingStorage struct {
	Key       string          `gorm:"primaryKey;size:64"`
	State     PricingSnapshot `gorm:"serializer:json;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
