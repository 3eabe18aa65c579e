package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/pricing"
	"github.com/Govind-619/PriceSphere/utils"
)

func TestValidateRule(t *testing.T) {
	start, end := epoch, epoch.Add(time.Hour)
	negative := dec("-1")

	tests := []struct {
		name    string
		rule    models.Rule
		wantErr string
	}{
		{
			name: "valid tiered",
			rule: &models.TieredRule{
				RuleBase: activeBase("Tiers", "p1"),
				Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountPercentage, DiscountValue: dec("10")}},
			},
		},
		{
			name:    "missing name",
			rule:    &models.VolumeRule{Breaks: []models.VolumeBreak{{MinQuantity: 1, DiscountPercentage: dec("5")}}},
			wantErr: "name",
		},
		{
			name: "inverted tier window",
			rule: &models.TieredRule{
				RuleBase: activeBase("Tiers"),
				Tiers:    []models.PriceTier{{MinQuantity: 10, MaxQuantity: intPtr(5), DiscountType: models.DiscountFixed, DiscountValue: dec("1")}},
			},
			wantErr: "maxQuantity",
		},
		{
			name: "percentage over 100",
			rule: &models.TieredRule{
				RuleBase: activeBase("Tiers"),
				Tiers:    []models.PriceTier{{MinQuantity: 1, DiscountType: models.DiscountPercentage, DiscountValue: dec("150")}},
			},
			wantErr: "cannot exceed 100",
		},
		{
			name:    "promotion without window",
			rule:    &models.PromotionalRule{RuleBase: activeBase("Promo"), DiscountType: models.DiscountFixed, DiscountValue: dec("1")},
			wantErr: "startDate",
		},
		{
			name: "valid promotion",
			rule: &models.PromotionalRule{
				RuleBase:     models.RuleBase{Name: "Promo", StartDate: &start, EndDate: &end},
				DiscountType: models.DiscountPercentage, DiscountValue: dec("10"),
			},
		},
		{
			name:    "unknown customer group",
			rule:    &models.CustomerGroupRule{RuleBase: activeBase("Group"), CustomerGroup: "martians", DiscountType: models.DiscountFixed, DiscountValue: dec("1")},
			wantErr: "customerGroup",
		},
		{
			name:    "negative special price",
			rule:    &models.ProductSpecificRule{RuleBase: activeBase("Product"), ProductID: "p1", BasePrice: dec("10"), SpecialPrice: &negative},
			wantErr: "specialPrice",
		},
		{
			name:    "script in name",
			rule:    &models.VolumeRule{RuleBase: activeBase("<script>alert(1)</script>"), Breaks: []models.VolumeBreak{{MinQuantity: 1, DiscountPercentage: dec("5")}}},
			wantErr: "XSS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pricing.ValidateRule(tt.rule)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, pricing.ErrInvalidRule)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, 422, utils.StatusCode(err))
		})
	}
}
