package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/middleware"
)

// initPricingRoutes registers the storefront and checkout facing routes
func initPricingRoutes(router *gin.RouterGroup, deps Dependencies) {
	pc := deps.Pricing
	pricing := router.Group("/pricing")
	{
		pricing.POST("/calculate", pc.CalculatePrice)
		pricing.POST("/calculate/bulk", pc.CalculateBulkPrices)
		pricing.GET("/products/:productId/rules", pc.GetProductRules)

		// Redeeming changes stored usage counters, checkout calls it with a token
		pricing.POST("/promotions/:id/redeem", middleware.AdminAuthMiddleware(deps.JWTSecret), pc.RedeemPromotion)
	}
}
