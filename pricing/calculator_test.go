package pricing_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/pricing"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// stepClock advances one second on every reading
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rule-%d", n)
	}
}

func newTestEngine(t *testing.T, store pricing.Store) (*pricing.Engine, *stepClock) {
	t.Helper()
	clock := &stepClock{t: epoch}
	return pricing.NewEngine(store, pricing.WithClock(clock.Now), pricing.WithIDGenerator(sequentialIDs())), clock
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func intPtr(v int) *int { return &v }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func appliedAmount(calc models.PriceCalculation, ruleID string) (decimal.Decimal, bool) {
	for _, a := range calc.AppliedRules {
		if a.RuleID == ruleID {
			return a.DiscountAmount, true
		}
	}
	return decimal.Zero, false
}

func activeBase(name string, products ...string) models.RuleBase {
	return models.RuleBase{Name: name, ProductIDs: products, Active: true}
}

func TestIsRuleActive(t *testing.T) {
	before := epoch.Add(-time.Hour)
	after := epoch.Add(time.Hour)

	tests := []struct {
		name string
		base models.RuleBase
		want bool
	}{
		{"inactive", models.RuleBase{Active: false}, false},
		{"no window", models.RuleBase{Active: true}, true},
		{"started", models.RuleBase{Active: true, StartDate: &before}, true},
		{"not started", models.RuleBase{Active: true, StartDate: &after}, false},
		{"ended", models.RuleBase{Active: true, EndDate: &before}, false},
		{"inside window", models.RuleBase{Active: true, StartDate: &before, EndDate: &after}, true},
		{"inactive inside window", models.RuleBase{Active: false, StartDate: &before, EndDate: &after}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &models.VolumeRule{RuleBase: tt.base}
			assert.Equal(t, tt.want, pricing.IsRuleActive(rule, epoch))
		})
	}
}

func TestCalculatePriceUnknownProduct(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	calc := engine.CalculatePrice("sku-1", 3, "")
	assert.Equal(t, "Product sku-1", calc.ProductName)
	assert.Equal(t, 3, calc.Quantity)
	assertDecimal(t, "100", calc.BasePrice)
	assertDecimal(t, "100", calc.UnitPrice)
	assertDecimal(t, "300", calc.Subtotal)
	assertDecimal(t, "300", calc.Total)
	assertDecimal(t, "0", calc.Discount)
	assertDecimal(t, "0", calc.SavingsPercentage)
	assert.Empty(t, calc.AppliedRules)
}

func TestCalculatePriceProductRule(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	special := dec("45")
	engine.AddProductRule(models.ProductSpecificRule{
		RuleBase:     activeBase("Widget price"),
		ProductID:    "widget",
		ProductName:  "Widget",
		BasePrice:    dec("50"),
		SpecialPrice: &special,
	})

	calc := engine.CalculatePrice("widget", 2, "")
	assert.Equal(t, "Widget", calc.ProductName)
	assertDecimal(t, "50", calc.BasePrice)
	assertDecimal(t, "45", calc.UnitPrice)
	assertDecimal(t, "100", calc.Subtotal)
	assertDecimal(t, "90", calc.Total)
	assertDecimal(t, "10", calc.Savings)
	assertDecimal(t, "10", calc.SavingsPercentage)
}

func TestCalculatePriceTierBoundary(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	rule := engine.AddTieredRule(models.TieredRule{
		RuleBase: activeBase("Bulk tiers", "p1"),
		Tiers: []models.PriceTier{
			{MinQuantity: 1, MaxQuantity: intPtr(9), DiscountType: models.DiscountPercentage, DiscountValue: dec("5")},
			{MinQuantity: 10, DiscountType: models.DiscountPercentage, DiscountValue: dec("20")},
		},
	})

	at10 := engine.CalculatePrice("p1", 10, "")
	assertDecimal(t, "80", at10.UnitPrice)
	assertDecimal(t, "200", at10.Discount)
	amount, ok := appliedAmount(at10, rule.ID)
	require.True(t, ok)
	assertDecimal(t, "200", amount)
	assert.Equal(t, models.RuleKindTiered, at10.AppliedRules[0].RuleType)

	at9 := engine.CalculatePrice("p1", 9, "")
	assertDecimal(t, "95", at9.UnitPrice)
	amount, _ = appliedAmount(at9, rule.ID)
	assertDecimal(t, "45", amount)
}

func TestCalculatePriceFixedTiers(t *testing.T) {
	tests := []struct {
		name      string
		kind      models.DiscountType
		value     string
		wantUnit  string
		wantAudit string
	}{
		{"fixed price", models.DiscountFixedPrice, "60", "60", "160"},
		{"fixed amount", models.DiscountFixed, "15", "85", "60"},
		{"fixed price above base", models.DiscountFixedPrice, "120", "120", "-80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(t, nil)
			rule := engine.AddTieredRule(models.TieredRule{
				RuleBase: activeBase("Fixed", "p1"),
				Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: tt.kind, DiscountValue: dec(tt.value)}},
			})

			calc := engine.CalculatePrice("p1", 4, "")
			assertDecimal(t, tt.wantUnit, calc.UnitPrice)
			amount, ok := appliedAmount(calc, rule.ID)
			require.True(t, ok)
			assertDecimal(t, tt.wantAudit, amount)
		})
	}
}

func TestCalculatePriceNonStackableVolume(t *testing.T) {
	tests := []struct {
		name        string
		tierPercent string
		wantUnit    string
		wantTiered  string
		wantVolume  string
		wantTotal   string
	}{
		// tiered 10/unit, volume 20% of 90 = 18/unit wins
		{"volume wins", "10", "82", "100", "180", "180"},
		// tiered 30/unit, volume 20% of 70 = 14/unit loses
		{"tiered wins", "30", "70", "300", "140", "300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(t, nil)
			tiered := engine.AddTieredRule(models.TieredRule{
				RuleBase: activeBase("Tiers", "p1"),
				Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountPercentage, DiscountValue: dec(tt.tierPercent)}},
			})
			volume := engine.AddVolumeRule(models.VolumeRule{
				RuleBase: activeBase("Volume", "p1"),
				Breaks: []models.VolumeBreak{
					{MinQuantity: 5, DiscountPercentage: dec("20")},
					{MinQuantity: 50, DiscountPercentage: dec("40")},
				},
			})

			calc := engine.CalculatePrice("p1", 10, "")
			assertDecimal(t, tt.wantUnit, calc.UnitPrice)
			assertDecimal(t, tt.wantTotal, calc.Discount)

			tieredAmount, ok := appliedAmount(calc, tiered.ID)
			require.True(t, ok)
			assertDecimal(t, tt.wantTiered, tieredAmount)
			volumeAmount, ok := appliedAmount(calc, volume.ID)
			require.True(t, ok, "volume audit entry is recorded even when it loses")
			assertDecimal(t, tt.wantVolume, volumeAmount)
		})
	}
}

func TestCalculatePriceStackableVolume(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	engine.AddTieredRule(models.TieredRule{
		RuleBase: activeBase("Tiers", "p1"),
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountPercentage, DiscountValue: dec("10")}},
	})
	engine.AddVolumeRule(models.VolumeRule{
		RuleBase:  activeBase("Volume", "p1"),
		Stackable: true,
		Breaks:    []models.VolumeBreak{{MinQuantity: 2, DiscountPercentage: dec("50")}},
	})

	calc := engine.CalculatePrice("p1", 2, "")
	assertDecimal(t, "45", calc.UnitPrice)
	assertDecimal(t, "110", calc.Discount)
	assertDecimal(t, "90", calc.Total)
	assert.Len(t, calc.AppliedRules, 2)
}

func TestCalculatePriceVolumeHighestBreak(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	engine.AddVolumeRule(models.VolumeRule{
		RuleBase: activeBase("Volume", "p1"),
		Breaks: []models.VolumeBreak{
			{MinQuantity: 10, DiscountPercentage: dec("5")},
			{MinQuantity: 100, DiscountPercentage: dec("15")},
			{MinQuantity: 50, DiscountPercentage: dec("10")},
		},
	})

	assertDecimal(t, "90", engine.CalculatePrice("p1", 60, "").UnitPrice)
	assertDecimal(t, "85", engine.CalculatePrice("p1", 100, "").UnitPrice)
	assert.Empty(t, engine.CalculatePrice("p1", 9, "").AppliedRules)
}

func TestCalculatePriceCustomerGroupGate(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	rule := engine.AddCustomerGroupRule(models.CustomerGroupRule{
		RuleBase:         activeBase("Wholesale", "p1"),
		CustomerGroup:    models.CustomerGroupWholesale,
		DiscountType:     models.DiscountPercentage,
		DiscountValue:    dec("10"),
		MinOrderQuantity: intPtr(50),
	})

	assert.False(t, engine.CalculatePrice("p1", 49, models.CustomerGroupWholesale).HasRule(rule.ID))
	assert.False(t, engine.CalculatePrice("p1", 50, models.CustomerGroupVIP).HasRule(rule.ID))
	assert.False(t, engine.CalculatePrice("p1", 50, "").HasRule(rule.ID))

	calc := engine.CalculatePrice("p1", 50, models.CustomerGroupWholesale)
	assert.True(t, calc.HasRule(rule.ID))
	assertDecimal(t, "90", calc.UnitPrice)
}

func TestCalculatePriceLayerOrder(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	start, end := epoch.Add(-time.Hour), epoch.Add(48*time.Hour)
	promo := engine.AddPromotionalRule(models.PromotionalRule{
		RuleBase:      models.RuleBase{Name: "Spring", ProductIDs: []string{"p1"}, Active: true, StartDate: &start, EndDate: &end, Priority: 100},
		DiscountType:  models.DiscountPercentage,
		DiscountValue: dec("10"),
	})
	group := engine.AddCustomerGroupRule(models.CustomerGroupRule{
		RuleBase:      activeBase("VIP", "p1"),
		CustomerGroup: models.CustomerGroupVIP,
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec("5"),
	})
	tiered := engine.AddTieredRule(models.TieredRule{
		RuleBase: activeBase("Tiers", "p1"),
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountPercentage, DiscountValue: dec("20")}},
	})

	calc := engine.CalculatePrice("p1", 1, models.CustomerGroupVIP)
	// 100 -> 80 tiered -> 75 group -> 67.5 promotion
	assertDecimal(t, "67.5", calc.UnitPrice)
	require.Len(t, calc.AppliedRules, 3)
	assert.Equal(t, tiered.ID, calc.AppliedRules[0].RuleID)
	assert.Equal(t, group.ID, calc.AppliedRules[1].RuleID)
	assert.Equal(t, promo.ID, calc.AppliedRules[2].RuleID)
	assertDecimal(t, "7.5", calc.AppliedRules[2].DiscountAmount)
	assertDecimal(t, "32.5", calc.SavingsPercentage)
}

func TestCalculatePriceFirstMatchIgnoresPriority(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	first := engine.AddTieredRule(models.TieredRule{
		RuleBase: models.RuleBase{Name: "Low priority", ProductIDs: []string{"p1"}, Active: true, Priority: 1},
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountFixed, DiscountValue: dec("1")}},
	})
	second := engine.AddTieredRule(models.TieredRule{
		RuleBase: models.RuleBase{Name: "High priority", ProductIDs: []string{"p1"}, Active: true, Priority: 99},
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountFixed, DiscountValue: dec("50")}},
	})

	calc := engine.CalculatePrice("p1", 1, "")
	assert.True(t, calc.HasRule(first.ID))
	assert.False(t, calc.HasRule(second.ID))

	active := engine.GetActiveRulesForProduct("p1")
	require.Len(t, active, 2)
	assert.Equal(t, second.ID, active[0].Rule.Base().ID)
}

func TestCalculatePriceSkipsInactiveAndExhausted(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	start, end := epoch.Add(-time.Hour), epoch.Add(time.Hour)
	exhausted := engine.AddPromotionalRule(models.PromotionalRule{
		RuleBase:      models.RuleBase{Name: "Used up", ProductIDs: []string{"p1"}, Active: true, StartDate: &start, EndDate: &end},
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec("30"),
		TotalLimit:    intPtr(2),
		CurrentUsage:  2,
	})
	live := engine.AddPromotionalRule(models.PromotionalRule{
		RuleBase:      models.RuleBase{Name: "Live", ProductIDs: []string{"p1"}, Active: true, StartDate: &start, EndDate: &end},
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec("10"),
	})
	disabled := engine.AddTieredRule(models.TieredRule{
		RuleBase: models.RuleBase{Name: "Disabled", ProductIDs: []string{"p1"}},
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountFixed, DiscountValue: dec("50")}},
	})

	calc := engine.CalculatePrice("p1", 1, "")
	assert.False(t, calc.HasRule(exhausted.ID))
	assert.False(t, calc.HasRule(disabled.ID))
	assert.True(t, calc.HasRule(live.ID))
	assertDecimal(t, "90", calc.UnitPrice)
}

func TestCalculatePriceZeroBasePrice(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	engine.AddProductRule(models.ProductSpecificRule{
		RuleBase:  activeBase("Free sample"),
		ProductID: "free",
		BasePrice: decimal.Zero,
	})
	engine.AddTieredRule(models.TieredRule{
		RuleBase: activeBase("Tiers", "free"),
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountFixed, DiscountValue: dec("5")}},
	})

	calc := engine.CalculatePrice("free", 3, "")
	assertDecimal(t, "0", calc.Subtotal)
	assertDecimal(t, "0", calc.SavingsPercentage)

	zeroQty := engine.CalculatePrice("other", 0, "")
	assertDecimal(t, "0", zeroQty.SavingsPercentage)
}

func TestCalculatePriceIsPure(t *testing.T) {
	store := newCountingStore()
	engine := pricing.NewEngine(store, pricing.WithClock(func() time.Time { return epoch }), pricing.WithIDGenerator(sequentialIDs()))
	start, end := epoch.Add(-time.Hour), epoch.Add(time.Hour)
	promo := engine.AddPromotionalRule(models.PromotionalRule{
		RuleBase:      models.RuleBase{Name: "Promo", ProductIDs: []string{"p1"}, Active: true, StartDate: &start, EndDate: &end},
		DiscountType:  models.DiscountPercentage,
		DiscountValue: dec("15"),
		TotalLimit:    intPtr(1),
	})
	engine.AddTieredRule(models.TieredRule{
		RuleBase: activeBase("Tiers", "p1"),
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountPercentage, DiscountValue: dec("5")}},
	})
	saves := store.saves

	first := engine.CalculatePrice("p1", 7, "")
	second := engine.CalculatePrice("p1", 7, "")
	assert.Equal(t, first, second)
	assert.Equal(t, saves, store.saves, "calculation must not persist anything")

	stored, err := engine.GetPromotionalRule(promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentUsage)
}

func TestCalculateBulkPrices(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	engine.AddProductRule(models.ProductSpecificRule{RuleBase: activeBase("B"), ProductID: "b", BasePrice: dec("10")})

	results := engine.CalculateBulkPrices([]models.LineItem{
		{ProductID: "a", Quantity: 1},
		{ProductID: "b", Quantity: 2},
	}, "")
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ProductID)
	assert.Equal(t, "b", results[1].ProductID)
	assertDecimal(t, "20", results[1].Total)

	assert.Equal(t, results, engine.CalculatorResults())

	engine.CalculateBulkPrices([]models.LineItem{{ProductID: "c", Quantity: 1}}, "")
	cached := engine.CalculatorResults()
	require.Len(t, cached, 1)
	assert.Equal(t, "c", cached[0].ProductID)
}
