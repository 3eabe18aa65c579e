package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Govind-619/PriceSphere/utils"
)

// Storage backends for the pricing state
const (
	StoragePostgres = "postgres"
	StorageFile     = "file"
	StorageMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	AdminEmail        string
	AdminPasswordHash string

	StorageBackend string
	StorageFile    string
	SeedDemoRules  bool

	LogLevel string
	LogDir   string

	SMTP utils.EmailConfig
}

// LoadConfig loads configuration from the environment, reading .env first
// when one exists
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", strconv.Itoa(utils.DefaultSMTPPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}
	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_RULES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_RULES: %v", err)
	}

	config := &Config{
		DBHost:     getEnv("DB_HOST", utils.DefaultDBHost),
		DBPort:     getEnv("DB_PORT", utils.DefaultDBPort),
		DBUser:     getEnv("DB_USER", utils.DefaultDBUser),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", utils.DefaultDBName),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       getEnv("PORT", utils.DefaultPort),
		Env:        getEnv("ENV", "development"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageMemory),
		StorageFile:    getEnv("STORAGE_FILE", utils.DefaultStorageFile),
		SeedDemoRules:  seed,

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   os.Getenv("LOG_DIR"),

		SMTP: utils.EmailConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	switch config.StorageBackend {
	case StoragePostgres, StorageFile, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", config.StorageBackend)
	}

	return config, nil
}

// DSN is the postgres connection string for the configured database
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
