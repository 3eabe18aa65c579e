package pricing

import (
	"fmt"

	"github.com/Govind-619/PriceSphere/models"
)

func unknownKind(kind models.RuleKind) error {
	return fmt.Errorf("%w: %q", ErrUnknownRuleKind, kind)
}

// NewRule returns an empty rule of the given kind, ready to be decoded into
func NewRule(kind models.RuleKind) (models.Rule, error) {
	switch kind {
	case models.RuleKindTiered:
		return &models.TieredRule{}, nil
	case models.RuleKindVolume:
		return &models.VolumeRule{}, nil
	case models.RuleKindPromotional:
		return &models.PromotionalRule{}, nil
	case models.RuleKindCustomerGroup:
		return &models.CustomerGroupRule{}, nil
	case models.RuleKindProductSpecific:
		return &models.ProductSpecificRule{}, nil
	}
	return nil, unknownKind(kind)
}

// AddRule adds a rule of any kind through its typed add
func (e *Engine) AddRule(rule models.Rule) (models.Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addRuleLocked(rule)
}

func (e *Engine) addRuleLocked(rule models.Rule) (models.Rule, error) {
	switch r := rule.(type) {
	case *models.TieredRule:
		added := addRule(e, &e.tieredRules, *r)
		return &added, nil
	case *models.VolumeRule:
		added := addRule(e, &e.volumeRules, *r)
		return &added, nil
	case *models.PromotionalRule:
		added := addRule(e, &e.promotionalRules, *r)
		return &added, nil
	case *models.CustomerGroupRule:
		added := addRule(e, &e.customerGroupRules, *r)
		return &added, nil
	case *models.ProductSpecificRule:
		added := addRule(e, &e.productRules, *r)
		return &added, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownRuleKind, rule)
}

// GetRule looks a rule up by kind and id
func (e *Engine) GetRule(kind models.RuleKind, id string) (models.Rule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.getRuleLocked(kind, id)
}

func (e *Engine) getRuleLocked(kind models.RuleKind, id string) (models.Rule, error) {
	switch kind {
	case models.RuleKindTiered:
		r, err := getRule(e.tieredRules, id)
		return asRule(r, err)
	case models.RuleKindVolume:
		r, err := getRule(e.volumeRules, id)
		return asRule(r, err)
	case models.RuleKindPromotional:
		r, err := getRule(e.promotionalRules, id)
		return asRule(r, err)
	case models.RuleKindCustomerGroup:
		r, err := getRule(e.customerGroupRules, id)
		return asRule(r, err)
	case models.RuleKindProductSpecific:
		r, err := getRule(e.productRules, id)
		return asRule(r, err)
	}
	return nil, unknownKind(kind)
}

// ListRules returns every rule of a kind in insertion order
func (e *Engine) ListRules(kind models.RuleKind) ([]models.Rule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	switch kind {
	case models.RuleKindTiered:
		return asRules(e.tieredRules), nil
	case models.RuleKindVolume:
		return asRules(e.volumeRules), nil
	case models.RuleKindPromotional:
		return asRules(e.promotionalRules), nil
	case models.RuleKindCustomerGroup:
		return asRules(e.customerGroupRules), nil
	case models.RuleKindProductSpecific:
		return asRules(e.productRules), nil
	}
	return nil, unknownKind(kind)
}

// UpdateRule applies patch to a copy of the rule and stores the result. A
// patch error leaves the stored rule untouched.
func (e *Engine) UpdateRule(kind models.RuleKind, id string, patch func(models.Rule) error) (models.Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case models.RuleKindTiered:
		r, err := updateRule(e, e.tieredRules, id, func(r *models.TieredRule) error { return patch(r) })
		return asRule(r, err)
	case models.RuleKindVolume:
		r, err := updateRule(e, e.volumeRules, id, func(r *models.VolumeRule) error { return patch(r) })
		return asRule(r, err)
	case models.RuleKindPromotional:
		r, err := updateRule(e, e.promotionalRules, id, func(r *models.PromotionalRule) error { return patch(r) })
		return asRule(r, err)
	case models.RuleKindCustomerGroup:
		r, err := updateRule(e, e.customerGroupRules, id, func(r *models.CustomerGroupRule) error { return patch(r) })
		return asRule(r, err)
	case models.RuleKindProductSpecific:
		r, err := updateRule(e, e.productRules, id, func(r *models.ProductSpecificRule) error { return patch(r) })
		return asRule(r, err)
	}
	return nil, unknownKind(kind)
}

// DeleteRule removes a rule by kind and id
func (e *Engine) DeleteRule(kind models.RuleKind, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case models.RuleKindTiered:
		return deleteRule(e, &e.tieredRules, id)
	case models.RuleKindVolume:
		return deleteRule(e, &e.volumeRules, id)
	case models.RuleKindPromotional:
		return deleteRule(e, &e.promotionalRules, id)
	case models.RuleKindCustomerGroup:
		return deleteRule(e, &e.customerGroupRules, id)
	case models.RuleKindProductSpecific:
		return deleteRule(e, &e.productRules, id)
	}
	return unknownKind(kind)
}

// ToggleRule flips the active flag of a rule by kind and id
func (e *Engine) ToggleRule(kind models.RuleKind, id string) (models.Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case models.RuleKindTiered:
		r, err := toggleRule(e, e.tieredRules, id)
		return asRule(r, err)
	case models.RuleKindVolume:
		r, err := toggleRule(e, e.volumeRules, id)
		return asRule(r, err)
	case models.RuleKindPromotional:
		r, err := toggleRule(e, e.promotionalRules, id)
		return asRule(r, err)
	case models.RuleKindCustomerGroup:
		r, err := toggleRule(e, e.customerGroupRules, id)
		return asRule(r, err)
	case models.RuleKindProductSpecific:
		r, err := toggleRule(e, e.productRules, id)
		return asRule(r, err)
	}
	return nil, unknownKind(kind)
}

func asRule[T any, P rulePtr[T]](rule T, err error) (models.Rule, error) {
	if err != nil {
		return nil, err
	}
	return P(&rule), nil
}

func asRules[T any, P rulePtr[T]](list []T) []models.Rule {
	out := make([]models.Rule, len(list))
	for i := range list {
		out[i] = P(&list[i]).Clone()
	}
	return out
}
