package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/utils"
)

func intPtr(v int) *int { return &v }

func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

// SeedDemoRules installs a small demo catalogue when the engine holds no
// rules yet, so the calculator has something to work with.
func (e *Engine) SeedDemoRules() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.tieredRules)+len(e.volumeRules)+len(e.promotionalRules)+
		len(e.customerGroupRules)+len(e.productRules) > 0 {
		return false
	}

	products := []string{"demo-notebook", "demo-pen", "demo-stapler"}

	addRule(e, &e.productRules, models.ProductSpecificRule{
		RuleBase:    models.RuleBase{Name: "Notebook list price", ProductIDs: products[:1], Active: true},
		ProductID:   products[0],
		ProductName: "A5 Notebook",
		SKU:         "NB-A5-001",
		BasePrice:   decimal.NewFromInt(120),
		CostPrice:   decPtr(decimal.NewFromInt(70)),
		MSRP:        decPtr(decimal.NewFromInt(150)),
	})
	addRule(e, &e.productRules, models.ProductSpecificRule{
		RuleBase:    models.RuleBase{Name: "Pen list price", ProductIDs: products[1:2], Active: true},
		ProductID:   products[1],
		ProductName: "Gel Pen",
		SKU:         "PEN-GEL-002",
		BasePrice:   decimal.NewFromInt(20),
	})
	addRule(e, &e.tieredRules, models.TieredRule{
		RuleBase: models.RuleBase{Name: "Stationery tiers", ProductIDs: products, Active: true, Priority: 10},
		Tiers: []models.PriceTier{
			{MinQuantity: 1, MaxQuantity: intPtr(9), DiscountType: models.DiscountPercentage, DiscountValue: decimal.Zero},
			{MinQuantity: 10, MaxQuantity: intPtr(49), DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(5)},
			{MinQuantity: 50, DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10)},
		},
	})
	addRule(e, &e.volumeRules, models.VolumeRule{
		RuleBase: models.RuleBase{Name: "Bulk volume", ProductIDs: products, Active: true, Priority: 5},
		Breaks: []models.VolumeBreak{
			{MinQuantity: 100, DiscountPercentage: decimal.NewFromInt(12)},
			{MinQuantity: 500, DiscountPercentage: decimal.NewFromInt(18)},
		},
	})
	addRule(e, &e.customerGroupRules, models.CustomerGroupRule{
		RuleBase:         models.RuleBase{Name: "Wholesale pricing", ProductIDs: products, Active: true, Priority: 8},
		CustomerGroup:    models.CustomerGroupWholesale,
		DiscountType:     models.DiscountPercentage,
		DiscountValue:    decimal.NewFromInt(7),
		MinOrderQuantity: intPtr(20),
	})

	utils.LogInfo("Seeded demo pricing rules for %d products", len(products))
	return true
}
