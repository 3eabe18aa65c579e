package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/utils"
)

// InitDB opens the postgres connection and migrates the pricing storage table
func InitDB(config *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if config.Env != "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(config.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.PricingStorage{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	utils.LogInfo("Database connected: %s@%s:%s/%s", config.DBUser, config.DBHost, config.DBPort, config.DBName)
	return db, nil
}
