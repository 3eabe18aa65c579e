package pricing

import (
	"fmt"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/utils"
)

// RecordPromotionalUsage commits one redemption of a promotion by a customer.
// It is the checkout-time counterpart of CalculatePrice, which never counts
// usage. An empty customerID only counts against the total limit.
func (e *Engine) RecordPromotionalUsage(ruleID, customerID string) (models.PromotionalRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	return updateRule(e, e.promotionalRules, ruleID, func(r *models.PromotionalRule) error {
		if !IsRuleActive(r, now) {
			return fmt.Errorf("%w: %s", ErrPromotionInactive, ruleID)
		}
		if r.Exhausted() {
			return fmt.Errorf("%w: %d of %d used", ErrPromotionExhausted, r.CurrentUsage, *r.TotalLimit)
		}
		if customerID != "" && r.LimitPerCustomer != nil && r.CustomerUsage[customerID] >= *r.LimitPerCustomer {
			return fmt.Errorf("%w: customer %s", ErrCustomerLimitReached, customerID)
		}

		r.CurrentUsage++
		if customerID != "" {
			if r.CustomerUsage == nil {
				r.CustomerUsage = make(map[string]int)
			}
			r.CustomerUsage[customerID]++
		}
		utils.LogInfo("Promotion %s redeemed (usage %d)", ruleID, r.CurrentUsage)
		return nil
	})
}
