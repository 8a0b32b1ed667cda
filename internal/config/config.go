package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"carrental-backend/internal/finance"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Finance   FinanceConfig   `yaml:"finance"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// DatabaseConfig contains MongoDB connection settings
type DatabaseConfig struct {
	URI            string `yaml:"uri"`
	Name           string `yaml:"name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type StorageConfig struct {
	Type string `yaml:"type"` // "mongo" or "memory"
}

// JWTConfig contains token verification settings. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// FinanceConfig controls money rounding. A nil CurrencyPlaces means 2.
type FinanceConfig struct {
	CurrencyPlaces *int32 `yaml:"currency_places"`
	Rounding       string `yaml:"rounding"` // "half_up", "half_even" or "none"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	RevenueSummary string `yaml:"revenue_summary"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("MONGO_URI"); val != "" {
		c.Database.URI = val
	}
	if val := os.Getenv("MONGO_DB"); val != "" {
		c.Database.Name = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}

	// Finance
	if val := os.Getenv("FINANCE_ROUNDING"); val != "" {
		c.Finance.Rounding = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = StorageMongo
	}
	switch c.Storage.Type {
	case StorageMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("database uri is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}
	if c.Database.TimeoutSeconds == 0 {
		c.Database.TimeoutSeconds = 10
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Finance validation
	if c.Finance.Rounding == "" {
		c.Finance.Rounding = string(finance.RoundHalfUp)
	}
	switch finance.Rounding(c.Finance.Rounding) {
	case finance.RoundHalfUp, finance.RoundHalfEven, finance.RoundNone:
	default:
		return fmt.Errorf("unsupported rounding mode: %q", c.Finance.Rounding)
	}
	if c.Finance.CurrencyPlaces == nil {
		places := int32(2)
		c.Finance.CurrencyPlaces = &places
	}
	if p := *c.Finance.CurrencyPlaces; p < 0 || p > 8 {
		return fmt.Errorf("currency places must be between 0 and 8: %d", p)
	}

	// Scheduler defaults
	if c.Scheduler.RevenueSummary == "" {
		c.Scheduler.RevenueSummary = "0 0 1 * * *" // 1 AM UTC
	}

	return nil
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) DatabaseTimeout() time.Duration {
	return time.Duration(c.Database.TimeoutSeconds) * time.Second
}

// FinanceEngineConfig converts the finance section for finance.NewEngine.
func (c *Config) FinanceEngineConfig() finance.Config {
	cfg := finance.DefaultConfig()
	if c.Finance.CurrencyPlaces != nil {
		cfg.CurrencyPlaces = *c.Finance.CurrencyPlaces
	}
	if c.Finance.Rounding != "" {
		cfg.Rounding = finance.Rounding(c.Finance.Rounding)
	}
	return cfg
}
