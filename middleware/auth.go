package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/utils"
)

// AdminEmailKey is the context key holding the authenticated admin's email
const AdminEmailKey = "admin_email"

// AdminAuthMiddleware requires a bearer token issued by the admin login
func AdminAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogDebug("Missing Authorization header")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.LogDebug("Invalid Bearer token format")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if jwtSecret == "" {
			utils.LogError("JWT secret not configured")
			utils.InternalServerError(c, utils.ErrInternalServer, "JWT secret not configured")
			c.Abort()
			return
		}

		email, err := utils.ValidateAdminToken(tokenString, jwtSecret)
		if err != nil {
			utils.LogDebug("Invalid admin token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(AdminEmailKey, email)
		utils.LogDebug("Admin %s authenticated", email)
		c.Next()
	}
}
