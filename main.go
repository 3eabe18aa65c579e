package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/config"
	"github.com/Govind-619/PriceSphere/controllers"
	"github.com/Govind-619/PriceSphere/pricing"
	"github.com/Govind-619/PriceSphere/repository"
	"github.com/Govind-619/PriceSphere/routes"
	"github.com/Govind-619/PriceSphere/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(utils.LoggerConfig{Level: cfg.LogLevel, Dir: cfg.LogDir, Env: cfg.Env}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := newStore(cfg)
	if err != nil {
		utils.LogError("Failed to initialize storage: %v", err)
		log.Fatal("Failed to initialize storage:", err)
	}

	engine := pricing.NewEngine(store)
	if err := engine.Load(ctx); err != nil {
		utils.LogError("Failed to load pricing state: %v", err)
		log.Fatal("Failed to load pricing state:", err)
	}
	if cfg.SeedDemoRules && engine.SeedDemoRules() {
		utils.LogInfo("Demo pricing rules installed")
	}

	router := routes.SetupRouter(routes.Dependencies{
		Pricing: controllers.NewPricingController(engine, utils.NewSMTPMailer(cfg.SMTP)),
		AdminAuth: controllers.NewAdminAuthController(controllers.AdminCredentials{
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
			JWTSecret:    cfg.JWTSecret,
		}),
		JWTSecret: cfg.JWTSecret,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.LogError("Server shutdown failed: %v", err)
		}
	}()

	utils.LogInfo("Server starting on port %s (storage: %s)", cfg.Port, cfg.StorageBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
	utils.LogInfo("Server stopped")
}

func newStore(cfg *config.Config) (pricing.Store, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewGormStore(db), nil
	case config.StorageFile:
		return repository.NewFileStore(cfg.StorageFile), nil
	}
	return repository.NewMemoryStore(), nil
}
