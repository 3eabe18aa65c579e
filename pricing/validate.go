package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/utils"
)

// ValidateRule checks the shape of a rule submitted through the admin API.
// The engine itself accepts any rule; validation belongs to the caller.
func ValidateRule(rule models.Rule) error {
	var errs utils.FieldValidationErrors
	base := rule.Base()

	if err := utils.ValidateStringLength(base.Name, 1, 200); err != nil {
		errs.Add("name", "%v", err)
	} else if ok, msg := utils.ValidateXSS(base.Name); !ok {
		errs.Add("name", "%s", msg)
	}
	if base.StartDate != nil && base.EndDate != nil && base.EndDate.Before(*base.StartDate) {
		errs.Add("endDate", "must not be before startDate")
	}

	switch r := rule.(type) {
	case *models.TieredRule:
		if len(r.Tiers) == 0 {
			errs.Add("tiers", "at least one tier is required")
		}
		for i, tier := range r.Tiers {
			field := fmt.Sprintf("tiers[%d]", i)
			if tier.MinQuantity < 0 {
				errs.Add(field, "minQuantity cannot be negative")
			}
			if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
				errs.Add(field, "maxQuantity must not be below minQuantity")
			}
			validateDiscount(&errs, field, tier.DiscountType, tier.DiscountValue)
		}
	case *models.VolumeRule:
		if len(r.Breaks) == 0 {
			errs.Add("breaks", "at least one break is required")
		}
		for i, brk := range r.Breaks {
			if err := utils.ValidateDiscountValue(string(models.DiscountPercentage), brk.DiscountPercentage); err != nil {
				errs.Add(fmt.Sprintf("breaks[%d]", i), "%v", err)
			}
		}
	case *models.PromotionalRule:
		if base.StartDate == nil || base.EndDate == nil {
			errs.Add("startDate", "promotions need both startDate and endDate")
		}
		if r.DiscountType == models.DiscountFixedPrice {
			errs.Add("discountType", "promotions support percentage or fixed discounts")
		}
		validateDiscount(&errs, "discount", r.DiscountType, r.DiscountValue)
		if r.TotalLimit != nil && *r.TotalLimit < 0 {
			errs.Add("totalLimit", "cannot be negative")
		}
		if r.LimitPerCustomer != nil && *r.LimitPerCustomer < 0 {
			errs.Add("limitPerCustomer", "cannot be negative")
		}
	case *models.CustomerGroupRule:
		if _, ok := models.ParseCustomerGroup(string(r.CustomerGroup)); !ok {
			errs.Add("customerGroup", "unknown customer group %q", r.CustomerGroup)
		}
		if r.DiscountType == models.DiscountFixedPrice {
			errs.Add("discountType", "customer group rules support percentage or fixed discounts")
		}
		validateDiscount(&errs, "discount", r.DiscountType, r.DiscountValue)
		if r.MinOrderQuantity != nil && r.MaxOrderQuantity != nil && *r.MaxOrderQuantity < *r.MinOrderQuantity {
			errs.Add("maxOrderQuantity", "must not be below minOrderQuantity")
		}
	case *models.ProductSpecificRule:
		if r.ProductID == "" {
			errs.Add("productId", "is required")
		}
		if err := utils.ValidatePrice(r.BasePrice); err != nil {
			errs.Add("basePrice", "%v", err)
		}
		if r.SpecialPrice != nil {
			if err := utils.ValidatePrice(*r.SpecialPrice); err != nil {
				errs.Add("specialPrice", "%v", err)
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownRuleKind, rule)
	}

	if err := errs.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	return nil
}

func validateDiscount(errs *utils.FieldValidationErrors, field string, kind models.DiscountType, value decimal.Decimal) {
	if !kind.Valid() {
		errs.Add(field, "unknown discount type %q", kind)
		return
	}
	if err := utils.ValidateDiscountValue(string(kind), value); err != nil {
		errs.Add(field, "%v", err)
	}
}
