package pricing

import (
	"slices"

	"github.com/Govind-619/PriceSphere/models"
)

// ActiveRule is a rule tagged with its kind
type ActiveRule struct {
	Kind models.RuleKind `json:"kind"`
	Rule models.Rule     `json:"rule"`
}

// GetActiveRulesForProduct lists every currently active rule that references
// the product, highest priority first. Equal priorities keep kind order.
//
// This ordering is informational. CalculatePrice selects rules by kind and
// insertion order and never looks at priority.
func (e *Engine) GetActiveRulesForProduct(productID string) []ActiveRule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.now()
	var active []ActiveRule
	collect := func(rules []models.Rule) {
		for _, rule := range rules {
			if IsRuleActive(rule, now) && rule.AppliesTo(productID) {
				active = append(active, ActiveRule{Kind: rule.Kind(), Rule: rule})
			}
		}
	}
	collect(asRules(e.tieredRules))
	collect(asRules(e.volumeRules))
	collect(asRules(e.promotionalRules))
	collect(asRules(e.customerGroupRules))
	collect(asRules(e.productRules))

	slices.SortStableFunc(active, func(a, b ActiveRule) int {
		return b.Rule.Base().Priority - a.Rule.Base().Priority
	})
	return active
}

// DuplicateRule adds a copy of a rule under a fresh id with " (Copy)" appended
// to its name. Usage counters of promotional rules start from zero.
func (e *Engine) DuplicateRule(kind models.RuleKind, id string) (models.Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	source, err := e.getRuleLocked(kind, id)
	if err != nil {
		return nil, err
	}

	dup := source.Clone()
	base := dup.Base()
	base.ID = ""
	base.Name += " (Copy)"
	if promo, ok := dup.(*models.PromotionalRule); ok {
		promo.CurrentUsage = 0
		promo.CustomerUsage = nil
	}
	return e.addRuleLocked(dup)
}
