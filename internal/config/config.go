package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Wallet   WalletConfig
	Events   EventsConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	AllowedOrigins string // comma-separated CORS origins, "*" for any
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// WalletConfig controls wallet provisioning and the dev faucet.
type WalletConfig struct {
	SignupCredit        string // decimal string credited to every new wallet
	FaucetEnabled       bool   // POST /wallet/topup only works when true
	FaucetMaxAmount     string // upper bound per faucet request
	FaucetDailyRequests int    // top-up requests per account per day, 0 disables
}

// EventsConfig controls the note event fan-out.
type EventsConfig struct {
	RedisChannel   string // pub/sub channel, empty disables the redis sink
	ArchiveEnabled bool   // enqueue archive tasks for the worker
	RetentionDays  int    // archived events older than this get purged
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Noteboard API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			AllowedOrigins: getEnv("APP_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "noteboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),  // 15 minutes
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72), // 3 days
		},
		Wallet: WalletConfig{
			SignupCredit:        getEnv("WALLET_SIGNUP_CREDIT", "100"),
			FaucetEnabled:       getEnvBool("WALLET_FAUCET_ENABLED", true),
			FaucetMaxAmount:     getEnv("WALLET_FAUCET_MAX", "1000"),
			FaucetDailyRequests: getEnvInt("WALLET_FAUCET_DAILY_REQUESTS", 10),
		},
		Events: EventsConfig{
			RedisChannel:   getEnv("EVENTS_REDIS_CHANNEL", "noteboard:events"),
			ArchiveEnabled: getEnvBool("EVENTS_ARCHIVE_ENABLED", true),
			RetentionDays:  getEnvInt("EVENTS_RETENTION_DAYS", 90),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the loaded config is usable
func (c *Config) Validate() error {
	// Production must not run on defaults
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Wallet.FaucetEnabled {
			fmt.Println("WARNING: wallet faucet is enabled in production")
		}
	}

	if c.Events.RetentionDays < 1 {
		return fmt.Errorf("EVENTS_RETENTION_DAYS must be at least 1")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
