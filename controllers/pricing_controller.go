package controllers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/pricing"
	"github.com/Govind-619/PriceSphere/utils"
)

// PricingController serves the pricing engine over HTTP
type PricingController struct {
	engine *pricing.Engine
	mailer utils.Mailer
}

func NewPricingController(engine *pricing.Engine, mailer utils.Mailer) *PricingController {
	return &PricingController{engine: engine, mailer: mailer}
}

// CalculatePriceRequest represents a single price calculation request
type CalculatePriceRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity"`
	CustomerGroup string `json:"customerGroup"`
}

// CalculateBulkRequest represents a bulk price calculation request
type CalculateBulkRequest struct {
	Items         []models.LineItem `json:"items" binding:"required,min=1,dive"`
	CustomerGroup string            `json:"customerGroup"`
}

// RedeemPromotionRequest commits one promotion use at checkout
type RedeemPromotionRequest struct {
	CustomerID string `json:"customerId"`
}

// parseCustomerGroup accepts an empty group. It writes the error response
// itself and reports false on an unknown group.
func parseCustomerGroup(c *gin.Context, raw string) (models.CustomerGroup, bool) {
	if raw == "" {
		return "", true
	}
	group, ok := models.ParseCustomerGroup(raw)
	if !ok {
		utils.LogDebug("Unknown customer group: %s", raw)
		utils.BadRequest(c, "Invalid customer group", raw)
		return "", false
	}
	return group, true
}

// CalculatePrice prices one product line
func (pc *PricingController) CalculatePrice(c *gin.Context) {
	var req CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Invalid calculate request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	group, ok := parseCustomerGroup(c, req.CustomerGroup)
	if !ok {
		return
	}

	result := pc.engine.CalculatePrice(req.ProductID, req.Quantity, group)
	utils.LogDebug("Calculated %s x%d: total %s with %d rule(s)", req.ProductID, req.Quantity, result.Total, len(result.AppliedRules))
	utils.Success(c, utils.MsgCalculated, gin.H{"calculation": result})
}

// CalculateBulkPrices prices several lines, keeping input order
func (pc *PricingController) CalculateBulkPrices(c *gin.Context) {
	var req CalculateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Invalid bulk calculate request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	group, ok := parseCustomerGroup(c, req.CustomerGroup)
	if !ok {
		return
	}

	results := pc.engine.CalculateBulkPrices(req.Items, group)
	utils.LogInfo("Bulk calculation of %d line(s)", len(results))
	utils.Success(c, utils.MsgCalculated, gin.H{"calculations": results})
}

// GetProductRules lists the active rules of a product by priority
func (pc *PricingController) GetProductRules(c *gin.Context) {
	productID := c.Param("productId")
	rules := pc.engine.GetActiveRulesForProduct(productID)
	utils.Success(c, "Active rules retrieved successfully", gin.H{
		"productId": productID,
		"rules":     rules,
	})
}

// RedeemPromotion records a promotion use for a customer
func (pc *PricingController) RedeemPromotion(c *gin.Context) {
	var req RedeemPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.LogDebug("Invalid redeem request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	rule, err := pc.engine.RecordPromotionalUsage(c.Param("id"), req.CustomerID)
	if err != nil {
		utils.RespondError(c, "Failed to redeem promotion", err)
		return
	}
	utils.Success(c, "Promotion redeemed successfully", gin.H{"rule": rule})
}

// CalculatorResults returns the last bulk calculation
func (pc *PricingController) CalculatorResults(c *gin.Context) {
	utils.Success(c, "Calculator results retrieved successfully", gin.H{
		"calculations": pc.engine.CalculatorResults(),
	})
}
