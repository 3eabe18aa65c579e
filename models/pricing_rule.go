package models

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// RuleKind discriminates the pricing rule variants
type RuleKind string

const (
	RuleKindTiered          RuleKind = "tiered"
	RuleKindVolume          RuleKind = "volume"
	RuleKindPromotional     RuleKind = "promotional"
	RuleKindCustomerGroup   RuleKind = "customer_group"
	RuleKindProductSpecific RuleKind = "product_specific"
)

// AllRuleKinds returns every rule kind in evaluation order of the calculator,
// product-specific first.
func AllRuleKinds() []RuleKind {
	return []RuleKind{
		RuleKindProductSpecific,
		RuleKindTiered,
		RuleKindVolume,
		RuleKindCustomerGroup,
		RuleKindPromotional,
	}
}

// ParseRuleKind accepts the wire name of a rule kind
func ParseRuleKind(s string) (RuleKind, bool) {
	k := RuleKind(s)
	if slices.Contains(AllRuleKinds(), k) {
		return k, true
	}
	return "", false
}

// DiscountType tells how a discount value is interpreted
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
	DiscountFixedPrice DiscountType = "fixed_price"
)

// Valid reports whether the discount type is one of the known values
func (d DiscountType) Valid() bool {
	switch d {
	case DiscountPercentage, DiscountFixed, DiscountFixedPrice:
		return true
	}
	return false
}

// CustomerGroup is a coarse buyer classification
type CustomerGroup string

const (
	CustomerGroupRetail      CustomerGroup = "retail"
	CustomerGroupWholesale   CustomerGroup = "wholesale"
	CustomerGroupVIP         CustomerGroup = "vip"
	CustomerGroupDistributor CustomerGroup = "distributor"
	CustomerGroupReseller    CustomerGroup = "reseller"
	CustomerGroupCorporate   CustomerGroup = "corporate"
)

var customerGroups = []CustomerGroup{
	CustomerGroupRetail,
	CustomerGroupWholesale,
	CustomerGroupVIP,
	CustomerGroupDistributor,
	CustomerGroupReseller,
	CustomerGroupCorporate,
}

var customerGroupLabels = map[CustomerGroup]string{
	CustomerGroupRetail:      "Retail",
	CustomerGroupWholesale:   "Wholesale",
	CustomerGroupVIP:         "VIP",
	CustomerGroupDistributor: "Distributor",
	CustomerGroupReseller:    "Reseller",
	CustomerGroupCorporate:   "Corporate",
}

// Label is the name shown on exported sheets and emails. Unknown groups
// are shown as stored.
func (g CustomerGroup) Label() string {
	if label, ok := customerGroupLabels[g]; ok {
		return label
	}
	return string(g)
}

// ParseCustomerGroup accepts the wire name of a customer group
func ParseCustomerGroup(s string) (CustomerGroup, bool) {
	g := CustomerGroup(s)
	if slices.Contains(customerGroups, g) {
		return g, true
	}
	return "", false
}

// Rule is implemented by the pointer of every rule variant
type Rule interface {
	Kind() RuleKind
	Base() *RuleBase
	AppliesTo(productID string) bool
	Clone() Rule
}

// RuleBase holds the fields shared by every rule variant
type RuleBase struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ProductIDs []string   `json:"productIds"`
	Active     bool       `json:"active"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Priority   int        `json:"priority"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (b *RuleBase) Base() *RuleBase { return b }

// AppliesTo reports whether the rule lists the product
func (b *RuleBase) AppliesTo(productID string) bool {
	return slices.Contains(b.ProductIDs, productID)
}

func (b RuleBase) clone() RuleBase {
	b.ProductIDs = slices.Clone(b.ProductIDs)
	return b
}

// PriceTier is one quantity bracket of a tiered rule. A nil MaxQuantity is unbounded.
type PriceTier struct {
	MinQuantity   int             `json:"minQuantity"`
	MaxQuantity   *int            `json:"maxQuantity,omitempty"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

// Contains reports whether quantity falls inside the tier window
func (t PriceTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}

type TieredRule struct {
	RuleBase
	Tiers []PriceTier `json:"tiers"`
}

func (r *TieredRule) Kind() RuleKind { return RuleKindTiered }

func (r *TieredRule) Clone() Rule {
	c := *r
	c.RuleBase = r.RuleBase.clone()
	c.Tiers = slices.Clone(r.Tiers)
	return &c
}

// VolumeBreak unlocks a percentage discount from MinQuantity upwards
type VolumeBreak struct {
	MinQuantity        int             `json:"minQuantity"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

type VolumeRule struct {
	RuleBase
	Breaks    []VolumeBreak `json:"breaks"`
	Stackable bool          `json:"stackable"`
}

func (r *VolumeRule) Kind() RuleKind { return RuleKindVolume }

func (r *VolumeRule) Clone() Rule {
	c := *r
	c.RuleBase = r.RuleBase.clone()
	c.Breaks = slices.Clone(r.Breaks)
	return &c
}

// PromotionalRule is a time-boxed discount with optional usage caps.
// CurrentUsage and CustomerUsage only move through an explicit redemption.
type PromotionalRule struct {
	RuleBase
	DiscountType     DiscountType    `json:"discountType"`
	DiscountValue    decimal.Decimal `json:"discountValue"`
	LimitPerCustomer *int            `json:"limitPerCustomer,omitempty"`
	TotalLimit       *int            `json:"totalLimit,omitempty"`
	CurrentUsage     int             `json:"currentUsage"`
	CustomerUsage    map[string]int  `json:"customerUsage,omitempty"`
}

func (r *PromotionalRule) Kind() RuleKind { return RuleKindPromotional }

func (r *PromotionalRule) Clone() Rule {
	c := *r
	c.RuleBase = r.RuleBase.clone()
	c.CustomerUsage = maps.Clone(r.CustomerUsage)
	return &c
}

// Exhausted reports whether the total usage cap has been reached
func (r *PromotionalRule) Exhausted() bool {
	return r.TotalLimit != nil && r.CurrentUsage >= *r.TotalLimit
}

type CustomerGroupRule struct {
	RuleBase
	CustomerGroup    CustomerGroup   `json:"customerGroup"`
	DiscountType     DiscountType    `json:"discountType"`
	DiscountValue    decimal.Decimal `json:"discountValue"`
	MinOrderQuantity *int            `json:"minOrderQuantity,omitempty"`
	MaxOrderQuantity *int            `json:"maxOrderQuantity,omitempty"`
}

func (r *CustomerGroupRule) Kind() RuleKind { return RuleKindCustomerGroup }

func (r *CustomerGroupRule) Clone() Rule {
	c := *r
	c.RuleBase = r.RuleBase.clone()
	return &c
}

// QuantityAllowed checks the optional order quantity gate
func (r *CustomerGroupRule) QuantityAllowed(quantity int) bool {
	if r.MinOrderQuantity != nil && quantity < *r.MinOrderQuantity {
		return false
	}
	if r.MaxOrderQuantity != nil && quantity > *r.MaxOrderQuantity {
		return false
	}
	return true
}

// ProductSubRuleType labels the auxiliary sub-rules of a product rule
type ProductSubRuleType string

const (
	SubRuleBulk      ProductSubRuleType = "bulk"
	SubRuleSeasonal  ProductSubRuleType = "seasonal"
	SubRuleClearance ProductSubRuleType = "clearance"
	SubRuleLoyalty   ProductSubRuleType = "loyalty"
)

// ProductSubRule is stored with the product rule but not used by the calculator
type ProductSubRule struct {
	Type        ProductSubRuleType `json:"type"`
	Condition   string             `json:"condition,omitempty"`
	Adjustment  decimal.Decimal    `json:"adjustment"`
	Description string             `json:"description,omitempty"`
}

// ProductSpecificRule carries the authoritative base price of one product
type ProductSpecificRule struct {
	RuleBase
	ProductID        string           `json:"productId"`
	ProductName      string           `json:"productName"`
	SKU              string           `json:"sku"`
	BasePrice        decimal.Decimal  `json:"basePrice"`
	SpecialPrice     *decimal.Decimal `json:"specialPrice,omitempty"`
	CostPrice        *decimal.Decimal `json:"costPrice,omitempty"`
	MSRP             *decimal.Decimal `json:"msrp,omitempty"`
	MarginPercentage *decimal.Decimal `json:"marginPercentage,omitempty"`
	Rules            []ProductSubRule `json:"rules,omitempty"`
}

func (r *ProductSpecificRule) Kind() RuleKind { return RuleKindProductSpecific }

// AppliesTo matches the rule's own product as well as its product list
func (r *ProductSpecificRule) AppliesTo(productID string) bool {
	return r.ProductID == productID || r.RuleBase.AppliesTo(productID)
}

func (r *ProductSpecificRule) Clone() Rule {
	c := *r
	c.RuleBase = r.RuleBase.clone()
	c.Rules = slices.Clone(r.Rules)
	return &c
}
