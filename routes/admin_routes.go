package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup, deps Dependencies) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", deps.AdminAuth.Login)

		// Protected admin routes
		protected := admin.Group("/pricing", middleware.AdminAuthMiddleware(deps.JWTSecret))
		{
			pc := deps.Pricing

			// Rule management, :kind is one of the rule kinds
			protected.GET("/rules/:kind", pc.ListRules)
			protected.POST("/rules/:kind", pc.CreateRule)
			protected.GET("/rules/:kind/:id", pc.GetRule)
			protected.PATCH("/rules/:kind/:id", pc.UpdateRule)
			protected.DELETE("/rules/:kind/:id", pc.DeleteRule)
			protected.POST("/rules/:kind/:id/toggle", pc.ToggleRule)
			protected.POST("/rules/:kind/:id/duplicate", pc.DuplicateRule)

			protected.GET("/calculator-results", pc.CalculatorResults)

			// Pricing sheets
			protected.GET("/sheets", pc.ListSheets)
			protected.POST("/sheets", pc.CreateSheet)
			protected.POST("/sheets/generate", pc.GenerateSheet)
			protected.GET("/sheets/:id", pc.GetSheet)
			protected.PATCH("/sheets/:id", pc.UpdateSheet)
			protected.DELETE("/sheets/:id", pc.DeleteSheet)
			protected.GET("/sheets/:id/export", pc.ExportSheet)
			protected.POST("/sheets/:id/email", pc.EmailSheet)
		}
	}
}
