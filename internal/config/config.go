package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Residue policies for the installment schedule
const (
	ResidueNone = "none"
	ResidueLast = "last"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string
	AutoMigrate bool

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Cache
	RedisAddr        string
	ContractCacheTTL time.Duration

	// Code generation
	ContractNumberPrefix string
	CodeNumberWidth      int

	// Installment schedule
	ScheduleRoundingResidue string

	// Background jobs
	WorkerCount          int
	OverdueSweepInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Environment:             getEnv("ENVIRONMENT", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		AutoMigrate:             getEnvAsBool("AUTO_MIGRATE", true),
		AllowedOrigins:          getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:               getEnv("SENTRY_DSN", ""),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		ContractCacheTTL:        getEnvAsDuration("CONTRACT_CACHE_TTL", 10*time.Minute),
		ContractNumberPrefix:    getEnv("CONTRACT_NUMBER_PREFIX", "CON"),
		CodeNumberWidth:         getEnvAsInt("CODE_NUMBER_WIDTH", 6),
		ScheduleRoundingResidue: strings.ToLower(getEnv("SCHEDULE_ROUNDING_RESIDUE", ResidueNone)),
		WorkerCount:             getEnvAsInt("WORKER_COUNT", 2),
		OverdueSweepInterval:    getEnvAsDuration("OVERDUE_SWEEP_INTERVAL", time.Hour),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.ScheduleRoundingResidue != ResidueNone && cfg.ScheduleRoundingResidue != ResidueLast {
		return nil, fmt.Errorf("SCHEDULE_ROUNDING_RESIDUE must be %q or %q, got %q",
			ResidueNone, ResidueLast, cfg.ScheduleRoundingResidue)
	}

	if cfg.CodeNumberWidth < 1 || cfg.CodeNumberWidth > 18 {
		return nil, fmt.Errorf("CODE_NUMBER_WIDTH must be between 1 and 18")
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	if cfg.OverdueSweepInterval <= 0 {
		return nil, fmt.Errorf("OVERDUE_SWEEP_INTERVAL must be positive")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go duration syntax ("90s", "1h30m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
