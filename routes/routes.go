package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/controllers"
	"github.com/Govind-619/PriceSphere/utils"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Pricing   *controllers.PricingController
	AdminAuth *controllers.AdminAuthController
	JWTSecret string
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/healthz", controllers.Health)

	// API version group
	api := router.Group("/" + utils.APIVersion)
	{
		initPricingRoutes(api, deps)
		initAdminRoutes(api, deps)
	}

	return router
}
