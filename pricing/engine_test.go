package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/pricing"
	"github.com/Govind-619/PriceSphere/utils"
)

// countingStore keeps the last snapshot and can be told to fail
type countingStore struct {
	snapshot *models.PricingSnapshot
	saves    int
	fail     bool
}

func newCountingStore() *countingStore {
	return &countingStore{}
}

func (s *countingStore) Load(context.Context) (*models.PricingSnapshot, error) {
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	if s.snapshot == nil {
		return &models.PricingSnapshot{}, nil
	}
	return s.snapshot, nil
}

func (s *countingStore) Save(_ context.Context, snapshot *models.PricingSnapshot) error {
	if s.fail {
		return errors.New("store unavailable")
	}
	s.saves++
	s.snapshot = snapshot
	return nil
}

func TestAddRuleStampsIdentity(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	input := models.TieredRule{
		RuleBase: models.RuleBase{ID: "ignored", Name: "Tiers", ProductIDs: []string{"p1"}, Active: true},
		Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountFixed, DiscountValue: dec("1")}},
	}

	added := engine.AddTieredRule(input)
	assert.Equal(t, "rule-1", added.ID)
	assert.False(t, added.CreatedAt.IsZero())
	assert.Equal(t, added.CreatedAt, added.UpdatedAt)

	// the caller's rule is not aliased
	input.ProductIDs[0] = "changed"
	stored, err := engine.GetTieredRule(added.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, stored.ProductIDs)
}

func TestToggleTwiceRestoresActive(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	rule := engine.AddTieredRule(models.TieredRule{RuleBase: activeBase("Tiers", "p1")})

	once, err := engine.ToggleTieredRule(rule.ID)
	require.NoError(t, err)
	assert.False(t, once.Active)
	assert.True(t, once.UpdatedAt.After(rule.UpdatedAt))

	twice, err := engine.ToggleTieredRule(rule.ID)
	require.NoError(t, err)
	assert.True(t, twice.Active)
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
	assert.Equal(t, rule.CreatedAt, twice.CreatedAt)
}

func TestUpdateRuleKeepsIdentity(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	rule := engine.AddVolumeRule(models.VolumeRule{RuleBase: activeBase("Volume", "p1")})

	updated, err := engine.UpdateVolumeRule(rule.ID, func(r *models.VolumeRule) {
		r.ID = "hijacked"
		r.Name = "Renamed"
		r.Stackable = true
	})
	require.NoError(t, err)
	assert.Equal(t, rule.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.Stackable)
	assert.Equal(t, rule.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(rule.UpdatedAt))
}

func TestUnknownRuleIDs(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	_, err := engine.UpdateCustomerGroupRule("missing", func(*models.CustomerGroupRule) {})
	assert.ErrorIs(t, err, pricing.ErrRuleNotFound)
	assert.True(t, utils.IsNotFoundError(err))

	assert.ErrorIs(t, engine.DeletePromotionalRule("missing"), pricing.ErrRuleNotFound)
	_, err = engine.ToggleProductRule("missing")
	assert.ErrorIs(t, err, pricing.ErrRuleNotFound)
	_, err = engine.DuplicateRule(models.RuleKindVolume, "missing")
	assert.ErrorIs(t, err, pricing.ErrRuleNotFound)
}

func TestDeleteRule(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	keep := engine.AddProductRule(models.ProductSpecificRule{RuleBase: activeBase("Keep"), ProductID: "a"})
	drop := engine.AddProductRule(models.ProductSpecificRule{RuleBase: activeBase("Drop"), ProductID: "b"})

	require.NoError(t, engine.DeleteProductRule(drop.ID))
	rules := engine.ProductRules()
	require.Len(t, rules, 1)
	assert.Equal(t, keep.ID, rules[0].ID)
}

func TestDuplicateTieredRule(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	source := engine.AddTieredRule(models.TieredRule{
		RuleBase: models.RuleBase{Name: "Tiers", ProductIDs: []string{"p1"}, Active: false, Priority: 4},
		Tiers: []models.PriceTier{
			{MinQuantity: 1, MaxQuantity: intPtr(9), DiscountType: models.DiscountPercentage, DiscountValue: dec("5")},
			{MinQuantity: 10, DiscountType: models.DiscountFixedPrice, DiscountValue: dec("70")},
		},
	})

	dup, err := engine.DuplicateRule(models.RuleKindTiered, source.ID)
	require.NoError(t, err)
	copied, ok := dup.(*models.TieredRule)
	require.True(t, ok)

	assert.NotEqual(t, source.ID, copied.ID)
	assert.Equal(t, "Tiers (Copy)", copied.Name)
	assert.Equal(t, source.Tiers, copied.Tiers)
	assert.Equal(t, source.Active, copied.Active)
	assert.Equal(t, source.Priority, copied.Priority)
	assert.True(t, copied.CreatedAt.After(source.CreatedAt))
	assert.Len(t, engine.TieredRules(), 2)
}

func TestDuplicatePromotionResetsUsage(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	source := engine.AddPromotionalRule(models.PromotionalRule{
		RuleBase:      activeBase("Promo", "p1"),
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec("5"),
		CurrentUsage:  7,
		CustomerUsage: map[string]int{"c1": 3},
	})

	dup, err := engine.DuplicateRule(models.RuleKindPromotional, source.ID)
	require.NoError(t, err)
	promo := dup.(*models.PromotionalRule)
	assert.Equal(t, 0, promo.CurrentUsage)
	assert.Empty(t, promo.CustomerUsage)

	stored, err := engine.GetPromotionalRule(source.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.CurrentUsage)
}

func TestGetActiveRulesForProduct(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	low := engine.AddTieredRule(models.TieredRule{RuleBase: models.RuleBase{Name: "low", ProductIDs: []string{"p1"}, Active: true, Priority: 1}})
	high := engine.AddCustomerGroupRule(models.CustomerGroupRule{RuleBase: models.RuleBase{Name: "high", ProductIDs: []string{"p1"}, Active: true, Priority: 9}})
	product := engine.AddProductRule(models.ProductSpecificRule{RuleBase: models.RuleBase{Name: "own", Active: true, Priority: 5}, ProductID: "p1"})
	engine.AddVolumeRule(models.VolumeRule{RuleBase: models.RuleBase{Name: "off", ProductIDs: []string{"p1"}, Priority: 50}})
	engine.AddVolumeRule(models.VolumeRule{RuleBase: models.RuleBase{Name: "other", ProductIDs: []string{"p2"}, Active: true, Priority: 50}})

	active := engine.GetActiveRulesForProduct("p1")
	require.Len(t, active, 3)
	assert.Equal(t, high.ID, active[0].Rule.Base().ID)
	assert.Equal(t, models.RuleKindCustomerGroup, active[0].Kind)
	assert.Equal(t, product.ID, active[1].Rule.Base().ID)
	assert.Equal(t, models.RuleKindProductSpecific, active[1].Kind)
	assert.Equal(t, low.ID, active[2].Rule.Base().ID)
}

func TestDispatchByKind(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	for _, kind := range models.AllRuleKinds() {
		rule, err := pricing.NewRule(kind)
		require.NoError(t, err)
		rule.Base().Name = string(kind)
		rule.Base().Active = true

		added, err := engine.AddRule(rule)
		require.NoError(t, err)
		assert.Equal(t, kind, added.Kind())

		got, err := engine.GetRule(kind, added.Base().ID)
		require.NoError(t, err)
		assert.Equal(t, string(kind), got.Base().Name)

		updated, err := engine.UpdateRule(kind, added.Base().ID, func(r models.Rule) error {
			r.Base().Priority = 3
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Base().Priority)

		toggled, err := engine.ToggleRule(kind, added.Base().ID)
		require.NoError(t, err)
		assert.False(t, toggled.Base().Active)

		list, err := engine.ListRules(kind)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, engine.DeleteRule(kind, added.Base().ID))
		_, err = engine.GetRule(kind, added.Base().ID)
		assert.ErrorIs(t, err, pricing.ErrRuleNotFound)
	}

	_, err := pricing.NewRule("bogus")
	assert.ErrorIs(t, err, pricing.ErrUnknownRuleKind)
	_, err = engine.ListRules("bogus")
	assert.ErrorIs(t, err, pricing.ErrUnknownRuleKind)
}

func TestUpdateRulePatchErrorLeavesRule(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	rule := engine.AddTieredRule(models.TieredRule{RuleBase: activeBase("Tiers", "p1")})

	boom := errors.New("boom")
	_, err := engine.UpdateRule(models.RuleKindTiered, rule.ID, func(r models.Rule) error {
		r.Base().Name = "half applied"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := engine.GetTieredRule(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tiers", stored.Name)
	assert.Equal(t, rule.UpdatedAt, stored.UpdatedAt)
}

func TestEnginePersistsAndLoads(t *testing.T) {
	store := newCountingStore()
	engine, _ := newTestEngine(t, store)

	rule := engine.AddTieredRule(models.TieredRule{RuleBase: activeBase("Tiers", "p1")})
	engine.AddPromotionalRule(models.PromotionalRule{RuleBase: activeBase("Promo", "p1")})
	engine.CreatePricingSheet(models.PricingSheet{Name: "Sheet"})
	_, err := engine.ToggleTieredRule(rule.ID)
	require.NoError(t, err)
	engine.CalculateBulkPrices([]models.LineItem{{ProductID: "p1", Quantity: 1}}, "")
	assert.Equal(t, 4, store.saves, "bulk calculation is not persisted")

	restored, _ := newTestEngine(t, store)
	require.NoError(t, restored.Load(context.Background()))
	snapshot := restored.Snapshot()
	require.Len(t, snapshot.TieredRules, 1)
	assert.False(t, snapshot.TieredRules[0].Active)
	assert.Len(t, snapshot.PromotionalRules, 1)
	assert.Len(t, snapshot.PricingSheets, 1)
	assert.Empty(t, restored.CalculatorResults())
}

func TestEngineToleratesStoreFailures(t *testing.T) {
	store := newCountingStore()
	store.fail = true
	engine, _ := newTestEngine(t, store)

	rule := engine.AddTieredRule(models.TieredRule{RuleBase: activeBase("Tiers", "p1")})
	_, err := engine.GetTieredRule(rule.ID)
	assert.NoError(t, err, "mutations succeed even when saving fails")

	assert.Error(t, engine.Load(context.Background()))
}

func TestRecordPromotionalUsage(t *testing.T) {
	engine, clock := newTestEngine(t, nil)
	start, end := epoch, epoch.Add(time.Hour)
	promo := engine.AddPromotionalRule(models.PromotionalRule{
		RuleBase:         models.RuleBase{Name: "Promo", ProductIDs: []string{"p1"}, Active: true, StartDate: &start, EndDate: &end},
		DiscountType:     models.DiscountPercentage,
		DiscountValue:    dec("10"),
		LimitPerCustomer: intPtr(1),
		TotalLimit:       intPtr(2),
	})

	used, err := engine.RecordPromotionalUsage(promo.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, used.CurrentUsage)
	assert.Equal(t, 1, used.CustomerUsage["alice"])

	_, err = engine.RecordPromotionalUsage(promo.ID, "alice")
	assert.ErrorIs(t, err, pricing.ErrCustomerLimitReached)
	assert.True(t, utils.IsConflictError(err))

	_, err = engine.RecordPromotionalUsage(promo.ID, "bob")
	require.NoError(t, err)

	_, err = engine.RecordPromotionalUsage(promo.ID, "carol")
	assert.ErrorIs(t, err, pricing.ErrPromotionExhausted)

	// exhausted promotions drop out of the calculator
	assert.False(t, engine.CalculatePrice("p1", 1, "").HasRule(promo.ID))

	stored, err := engine.GetPromotionalRule(promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentUsage)

	clock.t = end.Add(time.Minute)
	_, err = engine.RecordPromotionalUsage(promo.ID, "dave")
	assert.ErrorIs(t, err, pricing.ErrPromotionInactive)
}

func TestSeedDemoRules(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	assert.True(t, engine.SeedDemoRules())
	assert.False(t, engine.SeedDemoRules(), "seeding only runs on an empty engine")

	calc := engine.CalculatePrice("demo-notebook", 60, models.CustomerGroupWholesale)
	assert.Equal(t, "A5 Notebook", calc.ProductName)
	assert.NotEmpty(t, calc.AppliedRules)
	assert.True(t, calc.Total.LessThan(calc.Subtotal))
}
