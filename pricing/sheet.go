package pricing

import (
	"fmt"
	"slices"
	"time"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/utils"
)

// SheetRequest describes a pricing sheet to generate from the current rules
type SheetRequest struct {
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description"`
	ProductIDs    []string             `json:"productIds" binding:"required,min=1"`
	CustomerGroup models.CustomerGroup `json:"customerGroup"`
	ValidFrom     *time.Time           `json:"validFrom"`
	ValidUntil    *time.Time           `json:"validUntil"`
}

func (e *Engine) sheetIndex(id string) int {
	return slices.IndexFunc(e.pricingSheets, func(s models.PricingSheet) bool { return s.ID == id })
}

func sheetNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrSheetNotFound, id)
}

func (e *Engine) CreatePricingSheet(sheet models.PricingSheet) models.PricingSheet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createSheetLocked(sheet)
}

func (e *Engine) createSheetLocked(sheet models.PricingSheet) models.PricingSheet {
	now := e.now()
	added := sheet.Clone()
	added.ID = e.newID()
	added.CreatedAt = now
	added.UpdatedAt = now
	if added.ValidFrom.IsZero() {
		added.ValidFrom = now
	}
	e.pricingSheets = append(e.pricingSheets, added)
	e.persistLocked()
	return added.Clone()
}

func (e *Engine) GetPricingSheet(id string) (models.PricingSheet, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i := e.sheetIndex(id)
	if i < 0 {
		return models.PricingSheet{}, sheetNotFound(id)
	}
	return e.pricingSheets[i].Clone(), nil
}

func (e *Engine) ListPricingSheets() []models.PricingSheet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.PricingSheet, len(e.pricingSheets))
	for i := range e.pricingSheets {
		out[i] = e.pricingSheets[i].Clone()
	}
	return out
}

// UpdatePricingSheet applies patch to a copy of the sheet. Id and creation time
// are kept.
func (e *Engine) UpdatePricingSheet(id string, patch func(*models.PricingSheet)) (models.PricingSheet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.sheetIndex(id)
	if i < 0 {
		return models.PricingSheet{}, sheetNotFound(id)
	}
	updated := e.pricingSheets[i].Clone()
	patch(&updated)
	updated.ID = e.pricingSheets[i].ID
	updated.CreatedAt = e.pricingSheets[i].CreatedAt
	updated.UpdatedAt = e.now()
	e.pricingSheets[i] = updated
	e.persistLocked()
	return updated.Clone(), nil
}

func (e *Engine) DeletePricingSheet(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.sheetIndex(id)
	if i < 0 {
		return sheetNotFound(id)
	}
	e.pricingSheets = slices.Delete(e.pricingSheets, i, i+1)
	e.persistLocked()
	return nil
}

// GeneratePricingSheet snapshots current prices into a new sheet. Each product
// gets one row per tier of its first active tiered rule, priced at the tier's
// minimum quantity for the requested customer group. Products without a tiered
// rule get a single row at quantity 1.
func (e *Engine) GeneratePricingSheet(req SheetRequest) (models.PricingSheet, error) {
	if req.Name == "" {
		return models.PricingSheet{}, fmt.Errorf("%w: sheet name is required", ErrInvalidRule)
	}
	if req.CustomerGroup != "" {
		if _, ok := models.ParseCustomerGroup(string(req.CustomerGroup)); !ok {
			return models.PricingSheet{}, fmt.Errorf("%w: unknown customer group %q", ErrInvalidRule, req.CustomerGroup)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	sheet := models.PricingSheet{
		Name:        req.Name,
		Description: req.Description,
		ValidUntil:  req.ValidUntil,
		Products:    make([]models.PricingSheetProduct, 0, len(req.ProductIDs)),
	}
	if req.ValidFrom != nil {
		sheet.ValidFrom = *req.ValidFrom
	}
	if req.CustomerGroup != "" {
		group := req.CustomerGroup
		sheet.CustomerGroup = &group
	}

	forProduct := func(id string) func(models.Rule) bool {
		return func(rule models.Rule) bool { return rule.AppliesTo(id) }
	}
	for _, productID := range req.ProductIDs {
		row := models.PricingSheetProduct{ProductID: productID}

		tiers := []models.PriceTier{{MinQuantity: 1}}
		if tiered := firstActive(e.tieredRules, now, forProduct(productID)); tiered != nil && len(tiered.Tiers) > 0 {
			tiers = tiered.Tiers
		}
		for _, tier := range tiers {
			quantity := max(tier.MinQuantity, 1)
			calc := e.calculateLocked(productID, quantity, req.CustomerGroup, now)
			row.ProductName = calc.ProductName
			row.BasePrice = calc.BasePrice
			row.Tiers = append(row.Tiers, models.PricingSheetTier{
				MinQuantity: tier.MinQuantity,
				MaxQuantity: tier.MaxQuantity,
				Price:       calc.UnitPrice,
				Discount:    calc.BasePrice.Sub(calc.UnitPrice),
			})
		}
		if product := firstActive(e.productRules, now, forProduct(productID)); product != nil {
			row.SKU = product.SKU
		}
		sheet.Products = append(sheet.Products, row)
	}

	created := e.createSheetLocked(sheet)
	utils.LogInfo("Pricing sheet %s generated with %d products", created.ID, len(created.Products))
	return created, nil
}
