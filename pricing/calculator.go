package pricing

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Govind-619/PriceSphere/models"
)

// DefaultBasePrice is used for products without a product-specific rule so the
// calculator keeps working without a real catalogue.
var DefaultBasePrice = decimal.NewFromInt(100)

var hundred = decimal.NewFromInt(100)

// IsRuleActive reports whether a rule is enabled and inside its validity window.
// A missing bound is unbounded.
func IsRuleActive(rule models.Rule, now time.Time) bool {
	base := rule.Base()
	if !base.Active {
		return false
	}
	if base.StartDate != nil && base.StartDate.After(now) {
		return false
	}
	if base.EndDate != nil && base.EndDate.Before(now) {
		return false
	}
	return true
}

// CalculatePrice prices quantity units of a product. An empty customer group
// skips the customer group layer. The result depends only on the current rules
// and the clock; no counters are touched.
//
// Layers are applied in a fixed order: product base price, tiered, volume,
// customer group, promotional. Within a kind the first active matching rule in
// insertion order wins; the priority field is not consulted here.
func (e *Engine) CalculatePrice(productID string, quantity int, group models.CustomerGroup) models.PriceCalculation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.calculateLocked(productID, quantity, group, e.now())
}

// CalculateBulkPrices prices every line in input order and keeps the results
// as the engine's calculator results.
func (e *Engine) CalculateBulkPrices(items []models.LineItem, group models.CustomerGroup) []models.PriceCalculation {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	results := make([]models.PriceCalculation, len(items))
	for i, item := range items {
		results[i] = e.calculateLocked(item.ProductID, item.Quantity, group, now)
	}
	e.calculatorResults = cloneCalculations(results)
	return results
}

func (e *Engine) calculateLocked(productID string, quantity int, group models.CustomerGroup, now time.Time) models.PriceCalculation {
	qty := decimal.NewFromInt(int64(quantity))
	productName := fmt.Sprintf("Product %s", productID)
	basePrice := DefaultBasePrice
	unitPrice := basePrice
	totalDiscount := decimal.Zero
	applied := []models.AppliedRule{}

	record := func(rule models.Rule, amount decimal.Decimal) {
		applied = append(applied, models.AppliedRule{
			RuleID:         rule.Base().ID,
			RuleName:       rule.Base().Name,
			RuleType:       rule.Kind(),
			DiscountAmount: amount,
		})
	}
	forProduct := func(rule models.Rule) bool { return rule.AppliesTo(productID) }

	if product := firstActive(e.productRules, now, forProduct); product != nil {
		basePrice = product.BasePrice
		unitPrice = basePrice
		if product.SpecialPrice != nil {
			unitPrice = *product.SpecialPrice
		}
		if product.ProductName != "" {
			productName = product.ProductName
		}
	}

	if tiered := firstActive(e.tieredRules, now, forProduct); tiered != nil {
		if tier, ok := matchTier(tiered.Tiers, quantity); ok {
			perUnit := discountPerUnit(tier.DiscountType, tier.DiscountValue, basePrice)
			unitPrice = unitPrice.Sub(perUnit)
			amount := perUnit.Mul(qty)
			totalDiscount = totalDiscount.Add(amount)
			record(tiered, amount)
		}
	}

	if volume := firstActive(e.volumeRules, now, forProduct); volume != nil {
		if brk, ok := matchVolumeBreak(volume.Breaks, quantity); ok {
			perUnit := unitPrice.Mul(brk.DiscountPercentage).Div(hundred)
			amount := perUnit.Mul(qty)
			if volume.Stackable {
				unitPrice = unitPrice.Sub(perUnit)
				totalDiscount = totalDiscount.Add(amount)
			} else if amount.GreaterThan(totalDiscount) {
				// non-stackable: the larger of this and everything so far wins
				totalDiscount = amount
				unitPrice = basePrice.Sub(perUnit)
			}
			record(volume, amount)
		}
	}

	if group != "" {
		groupRule := firstActive(e.customerGroupRules, now, func(rule models.Rule) bool {
			r := rule.(*models.CustomerGroupRule)
			return r.CustomerGroup == group && r.AppliesTo(productID) && r.QuantityAllowed(quantity)
		})
		if groupRule != nil {
			perUnit := discountPerUnit(groupRule.DiscountType, groupRule.DiscountValue, unitPrice)
			unitPrice = unitPrice.Sub(perUnit)
			amount := perUnit.Mul(qty)
			totalDiscount = totalDiscount.Add(amount)
			record(groupRule, amount)
		}
	}

	promo := firstActive(e.promotionalRules, now, func(rule models.Rule) bool {
		r := rule.(*models.PromotionalRule)
		return r.AppliesTo(productID) && !r.Exhausted()
	})
	if promo != nil {
		perUnit := discountPerUnit(promo.DiscountType, promo.DiscountValue, unitPrice)
		unitPrice = unitPrice.Sub(perUnit)
		amount := perUnit.Mul(qty)
		totalDiscount = totalDiscount.Add(amount)
		record(promo, amount)
	}

	subtotal := basePrice.Mul(qty)
	total := unitPrice.Mul(qty)
	savings := subtotal.Sub(total)
	savingsPercentage := decimal.Zero
	if !subtotal.IsZero() {
		savingsPercentage = savings.Div(subtotal).Mul(hundred).Round(2)
	}

	return models.PriceCalculation{
		ProductID:         productID,
		ProductName:       productName,
		Quantity:          quantity,
		BasePrice:         basePrice,
		UnitPrice:         unitPrice,
		Subtotal:          subtotal,
		Discount:          totalDiscount,
		Total:             total,
		AppliedRules:      applied,
		Savings:           savings,
		SavingsPercentage: savingsPercentage,
	}
}

// firstActive returns the first active rule accepted by match, in insertion order
func firstActive[T any, P rulePtr[T]](list []T, now time.Time, match func(models.Rule) bool) P {
	for i := range list {
		rule := P(&list[i])
		if IsRuleActive(rule, now) && match(rule) {
			return rule
		}
	}
	return nil
}

func matchTier(tiers []models.PriceTier, quantity int) (models.PriceTier, bool) {
	for _, tier := range tiers {
		if tier.Contains(quantity) {
			return tier, true
		}
	}
	return models.PriceTier{}, false
}

// matchVolumeBreak picks the highest break whose threshold the quantity reaches
func matchVolumeBreak(breaks []models.VolumeBreak, quantity int) (models.VolumeBreak, bool) {
	sorted := slices.Clone(breaks)
	slices.SortStableFunc(sorted, func(a, b models.VolumeBreak) int {
		return b.MinQuantity - a.MinQuantity
	})
	for _, brk := range sorted {
		if brk.MinQuantity <= quantity {
			return brk, true
		}
	}
	return models.VolumeBreak{}, false
}

// discountPerUnit converts a discount into a per-unit amount off reference.
// A fixed price discounts down to the given value.
func discountPerUnit(kind models.DiscountType, value, reference decimal.Decimal) decimal.Decimal {
	switch kind {
	case models.DiscountPercentage:
		return reference.Mul(value).Div(hundred)
	case models.DiscountFixed:
		return value
	case models.DiscountFixedPrice:
		return reference.Sub(value)
	}
	return decimal.Zero
}
