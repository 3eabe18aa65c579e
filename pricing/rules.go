package pricing

import (
	"fmt"
	"slices"

	"github.com/Govind-619/PriceSphere/models"
)

// rulePtr ties a rule struct to its pointer, which implements models.Rule
type rulePtr[T any] interface {
	*T
	models.Rule
}

func cloneOf[T any, P rulePtr[T]](rule *T) T {
	return *(P(rule).Clone().(P))
}

func cloneAll[T any, P rulePtr[T]](list []T) []T {
	out := make([]T, len(list))
	for i := range list {
		out[i] = cloneOf[T, P](&list[i])
	}
	return out
}

func indexOf[T any, P rulePtr[T]](list []T, id string) int {
	return slices.IndexFunc(list, func(r T) bool {
		return P(&r).Base().ID == id
	})
}

func ruleNotFound(kind models.RuleKind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrRuleNotFound, kind, id)
}

func addRule[T any, P rulePtr[T]](e *Engine, list *[]T, rule T) T {
	now := e.now()
	added := cloneOf[T, P](&rule)
	base := P(&added).Base()
	base.ID = e.newID()
	base.CreatedAt = now
	base.UpdatedAt = now
	*list = append(*list, added)
	e.persistLocked()
	return cloneOf[T, P](&added)
}

func getRule[T any, P rulePtr[T]](list []T, id string) (T, error) {
	i := indexOf[T, P](list, id)
	if i < 0 {
		var zero T
		return zero, ruleNotFound(P(&zero).Kind(), id)
	}
	return cloneOf[T, P](&list[i]), nil
}

// updateRule applies patch to a copy of the stored rule. Identity and creation
// time survive any patch.
func updateRule[T any, P rulePtr[T]](e *Engine, list []T, id string, patch func(*T) error) (T, error) {
	i := indexOf[T, P](list, id)
	if i < 0 {
		var zero T
		return zero, ruleNotFound(P(&zero).Kind(), id)
	}
	updated := cloneOf[T, P](&list[i])
	if err := patch(&updated); err != nil {
		var zero T
		return zero, err
	}
	original := P(&list[i]).Base()
	base := P(&updated).Base()
	base.ID = original.ID
	base.CreatedAt = original.CreatedAt
	base.UpdatedAt = e.now()
	list[i] = updated
	e.persistLocked()
	return cloneOf[T, P](&updated), nil
}

func deleteRule[T any, P rulePtr[T]](e *Engine, list *[]T, id string) error {
	i := indexOf[T, P](*list, id)
	if i < 0 {
		var zero T
		return ruleNotFound(P(&zero).Kind(), id)
	}
	*list = slices.Delete(*list, i, i+1)
	e.persistLocked()
	return nil
}

func toggleRule[T any, P rulePtr[T]](e *Engine, list []T, id string) (T, error) {
	return updateRule[T, P](e, list, id, func(r *T) error {
		base := P(r).Base()
		base.Active = !base.Active
		return nil
	})
}

func plainPatch[T any](patch func(*T)) func(*T) error {
	return func(r *T) error {
		patch(r)
		return nil
	}
}

// Tiered rules

func (e *Engine) AddTieredRule(rule models.TieredRule) models.TieredRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return addRule(e, &e.tieredRules, rule)
}

func (e *Engine) GetTieredRule(id string) (models.TieredRule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return getRule(e.tieredRules, id)
}

func (e *Engine) TieredRules() []models.TieredRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.tieredRules)
}

func (e *Engine) UpdateTieredRule(id string, patch func(*models.TieredRule)) (models.TieredRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return updateRule(e, e.tieredRules, id, plainPatch(patch))
}

func (e *Engine) DeleteTieredRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deleteRule(e, &e.tieredRules, id)
}

func (e *Engine) ToggleTieredRule(id string) (models.TieredRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return toggleRule(e, e.tieredRules, id)
}

// Volume rules

func (e *Engine) AddVolumeRule(rule models.VolumeRule) models.VolumeRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return addRule(e, &e.volumeRules, rule)
}

func (e *Engine) GetVolumeRule(id string) (models.VolumeRule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return getRule(e.volumeRules, id)
}

func (e *Engine) VolumeRules() []models.VolumeRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.volumeRules)
}

func (e *Engine) UpdateVolumeRule(id string, patch func(*models.VolumeRule)) (models.VolumeRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return updateRule(e, e.volumeRules, id, plainPatch(patch))
}

func (e *Engine) DeleteVolumeRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deleteRule(e, &e.volumeRules, id)
}

func (e *Engine) ToggleVolumeRule(id string) (models.VolumeRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return toggleRule(e, e.volumeRules, id)
}

// Promotional rules

func (e *Engine) AddPromotionalRule(rule models.PromotionalRule) models.PromotionalRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return addRule(e, &e.promotionalRules, rule)
}

func (e *Engine) GetPromotionalRule(id string) (models.PromotionalRule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return getRule(e.promotionalRules, id)
}

func (e *Engine) PromotionalRules() []models.PromotionalRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.promotionalRules)
}

func (e *Engine) UpdatePromotionalRule(id string, patch func(*models.PromotionalRule)) (models.PromotionalRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return updateRule(e, e.promotionalRules, id, plainPatch(patch))
}

func (e *Engine) DeletePromotionalRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deleteRule(e, &e.promotionalRules, id)
}

func (e *Engine) TogglePromotionalRule(id string) (models.PromotionalRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return toggleRule(e, e.promotionalRules, id)
}

// Customer group rules

func (e *Engine) AddCustomerGroupRule(rule models.CustomerGroupRule) models.CustomerGroupRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return addRule(e, &e.customerGroupRules, rule)
}

func (e *Engine) GetCustomerGroupRule(id string) (models.CustomerGroupRule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return getRule(e.customerGroupRules, id)
}

func (e *Engine) CustomerGroupRules() []models.CustomerGroupRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.customerGroupRules)
}

func (e *Engine) UpdateCustomerGroupRule(id string, patch func(*models.CustomerGroupRule)) (models.CustomerGroupRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return updateRule(e, e.customerGroupRules, id, plainPatch(patch))
}

func (e *Engine) DeleteCustomerGroupRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deleteRule(e, &e.customerGroupRules, id)
}

func (e *Engine) ToggleCustomerGroupRule(id string) (models.CustomerGroupRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return toggleRule(e, e.customerGroupRules, id)
}

// Product-specific rules

func (e *Engine) AddProductRule(rule models.ProductSpecificRule) models.ProductSpecificRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return addRule(e, &e.productRules, rule)
}

func (e *Engine) GetProductRule(id string) (models.ProductSpecificRule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return getRule(e.productRules, id)
}

func (e *Engine) ProductRules() []models.ProductSpecificRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAll(e.productRules)
}

func (e *Engine) UpdateProductRule(id string, patch func(*models.ProductSpecificRule)) (models.ProductSpecificRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return updateRule(e, e.productRules, id, plainPatch(patch))
}

func (e *Engine) DeleteProductRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deleteRule(e, &e.productRules, id)
}

func (e *Engine) ToggleProductRule(id string) (models.ProductSpecificRule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return toggleRule(e, e.productRules, id)
}
