package config

import (
	"fmt"
	"os"
	"strconv"
)

// Supported payment provider names. An unknown name is a configuration
// error and must fail before the server accepts any request.
const (
	PaymentProviderMidtrans = "midtrans"
	PaymentProviderXendit   = "xendit"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Cart     CartConfig
	Orders   OrdersConfig
	Seed     SeedConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string // public base URL, used for payment redirect callbacks
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AdminConfig holds back-office authentication configuration.
type AdminConfig struct {
	APIKey string
}

// RedisConfig holds cart session store configuration. When disabled, carts
// are kept in process memory.
type RedisConfig struct {
	Enabled    bool
	URL        string
	CartTTLMin int // minutes a cart survives without activity
}

// PaymentConfig holds payment gateway configuration.
type PaymentConfig struct {
	Provider   string
	ServerKey  string
	ClientKey  string
	Production bool
	BaseURL    string // overrides the provider endpoint, used in tests
	FinishURL  string // hosted checkout redirects here when done
}

// CartConfig holds cart behaviour configuration.
type CartConfig struct {
	TrackStock bool // legacy mode: decrement catalogue stock as items enter carts
}

// OrdersConfig holds order lifecycle configuration.
type OrdersConfig struct {
	PendingTTLHours  int // orders still pending/pending after this are cancelled; 0 disables
	SweepIntervalMin int
}

// SeedConfig holds catalogue seeding configuration for the seed tool.
type SeedConfig struct {
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Prefix  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "donutstore"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
		Redis: RedisConfig{
			Enabled:    getEnvAsBool("REDIS_ENABLED", false),
			URL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
			CartTTLMin: getEnvAsInt("CART_TTL_MINUTES", 1440),
		},
		Payment: PaymentConfig{
			Provider:   getEnv("PAYMENT_PROVIDER", PaymentProviderMidtrans),
			ServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
			ClientKey:  getEnv("MIDTRANS_CLIENT_KEY", ""),
			Production: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
			BaseURL:    getEnv("PAYMENT_BASE_URL", ""),
			FinishURL:  getEnv("PAYMENT_FINISH_URL", ""),
		},
		Cart: CartConfig{
			TrackStock: getEnvAsBool("CART_TRACK_STOCK", false),
		},
		Orders: OrdersConfig{
			PendingTTLHours:  getEnvAsInt("ORDER_PENDING_TTL_HOURS", 24),
			SweepIntervalMin: getEnvAsInt("ORDER_SWEEP_INTERVAL_MINUTES", 60),
		},
		Seed: SeedConfig{
			S3Enabled: getEnvAsBool("SEED_S3_ENABLED", false),
			S3Bucket:  getEnv("SEED_S3_BUCKET", ""),
			S3Region:  getEnv("SEED_S3_REGION", "ap-southeast-1"),
			S3Prefix:  getEnv("SEED_S3_PREFIX", "catalog/"),
		},
	}

	if cfg.Payment.FinishURL == "" {
		cfg.Payment.FinishURL = cfg.Server.BaseURL + "/payment/success"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Admin.APIKey == "" {
		return fmt.Errorf("admin API key is required")
	}

	switch c.Payment.Provider {
	case PaymentProviderMidtrans, PaymentProviderXendit:
	default:
		return fmt.Errorf("unsupported payment provider: %s", c.Payment.Provider)
	}

	if c.Redis.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("redis URL is required when redis is enabled")
	}

	if c.Orders.PendingTTLHours < 0 {
		return fmt.Errorf("order pending TTL cannot be negative")
	}

	if c.Orders.PendingTTLHours > 0 && c.Orders.SweepIntervalMin < 1 {
		return fmt.Errorf("order sweep interval must be at least 1 minute")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Seed.S3Enabled {
		if c.Seed.S3Bucket == "" {
			return fmt.Errorf("seed S3 bucket is required when seed S3 is enabled")
		}
		if c.Seed.S3Region == "" {
			return fmt.Errorf("seed S3 region is required when seed S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
