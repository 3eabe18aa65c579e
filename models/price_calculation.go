package models

import "github.com/shopspring/decimal"

// AppliedRule is the audit entry of one rule's contribution to a calculation
type AppliedRule struct {
	RuleID         string          `json:"ruleId"`
	RuleName       string          `json:"ruleName"`
	RuleType       RuleKind        `json:"ruleType"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// PriceCalculation is the itemized result of pricing one line
type PriceCalculation struct {
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	Quantity          int             `json:"quantity"`
	BasePrice         decimal.Decimal `json:"basePrice"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	AppliedRules      []AppliedRule   `json:"appliedRules"`
	Savings           decimal.Decimal `json:"savings"`
	SavingsPercentage decimal.Decimal `json:"savingsPercentage"`
}

// HasRule reports whether the rule contributed an audit entry
func (p PriceCalculation) HasRule(ruleID string) bool {
	for _, applied := range p.AppliedRules {
		if applied.RuleID == ruleID {
			return true
		}
	}
	return false
}

// LineItem is one product/quantity pair of a bulk calculation
type LineItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}
