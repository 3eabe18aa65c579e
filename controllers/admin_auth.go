package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/utils"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminCredentials is the single admin account configured for the service
type AdminCredentials struct {
	Email        string
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type AdminAuthController struct {
	creds AdminCredentials
}

func NewAdminAuthController(creds AdminCredentials) *AdminAuthController {
	if creds.TokenTTL == 0 {
		creds.TokenTTL = utils.AdminTokenTTLHours * time.Hour
	}
	return &AdminAuthController{creds: creds}
}

// Login checks the configured admin credentials and issues a bearer token
func (ac *AdminAuthController) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Processing login request for email: %s", req.Email)

	if ac.creds.Email == "" || ac.creds.PasswordHash == "" {
		utils.LogError("Admin login attempted but no admin account is configured")
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if !strings.EqualFold(req.Email, ac.creds.Email) || !utils.CheckPassword(req.Password, ac.creds.PasswordHash) {
		utils.LogInfo("Failed admin login for %s from %s", req.Email, c.ClientIP())
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateAdminToken(ac.creds.Email, ac.creds.JWTSecret, ac.creds.TokenTTL)
	if err != nil {
		utils.LogError("Failed to sign admin token: %v", err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("Admin login successful: %s", ac.creds.Email)
	utils.Success(c, utils.MsgLoginSuccess, gin.H{
		"token":     token,
		"expiresIn": int(ac.creds.TokenTTL.Seconds()),
		"admin": gin.H{
			"email": ac.creds.Email,
		},
	})
}

// Health reports liveness
func Health(c *gin.Context) {
	utils.Success(c, "ok", gin.H{"app": utils.AppName, "version": utils.APIVersion})
}
