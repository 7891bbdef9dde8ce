package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"password"`
	DBName     string `envconfig:"DB_NAME" default:"bank"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// DailyDepositLimit caps total deposits accepted per calendar day,
	// shared across all accounts.
	DailyDepositLimit string `envconfig:"DAILY_DEPOSIT_LIMIT" default:"5000"`
	// DefaultNotificationChannel is assigned to new accounts and used as
	// the fallback when a preference cannot be resolved.
	DefaultNotificationChannel string `envconfig:"DEFAULT_NOTIFICATION_CHANNEL" default:"email"`
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Missing values fall back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Warn("Failed to process environment config, using defaults", "error", err)
	}
	return &cfg
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
