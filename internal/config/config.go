package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Session     SessionConfig
	Gemini      GeminiConfig
	Checkout    CheckoutConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a database was configured. When it wasn't,
// the server runs on the in-memory repositories instead.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type SessionConfig struct {
	// FilePath is where the single device-session record (token + user)
	// is persisted.
	FilePath string
	// LoginDelay simulates upstream latency on auth operations.
	LoginDelay time.Duration
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

type CheckoutConfig struct {
	// FreeDeliveryThreshold is the subtotal above which delivery is free.
	FreeDeliveryThreshold float64
	// FlatDeliveryFee applies at or below the threshold.
	FlatDeliveryFee float64
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SESSION_FILE", "session.json")
	viper.SetDefault("SESSION_LOGIN_DELAY_MS", "0")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_TIMEOUT_MS", "30000")
	viper.SetDefault("GEMINI_TEMPERATURE", "0.7")
	viper.SetDefault("GEMINI_MAX_TOKENS", "500")
	viper.SetDefault("CHECKOUT_FREE_DELIVERY_THRESHOLD", "2000")
	viper.SetDefault("CHECKOUT_FLAT_DELIVERY_FEE", "250")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	loginDelayMS, err := strconv.Atoi(getEnvOrViper("SESSION_LOGIN_DELAY_MS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_LOGIN_DELAY_MS: %w", err)
	}
	timeoutMS, err := strconv.Atoi(getEnvOrViper("GEMINI_TIMEOUT_MS", "30000"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TIMEOUT_MS: %w", err)
	}
	temperature, err := strconv.ParseFloat(getEnvOrViper("GEMINI_TEMPERATURE", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TEMPERATURE: %w", err)
	}
	maxTokens, err := strconv.Atoi(getEnvOrViper("GEMINI_MAX_TOKENS", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_MAX_TOKENS: %w", err)
	}
	freeThreshold, err := strconv.ParseFloat(getEnvOrViper("CHECKOUT_FREE_DELIVERY_THRESHOLD", "2000"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_FREE_DELIVERY_THRESHOLD: %w", err)
	}
	flatFee, err := strconv.ParseFloat(getEnvOrViper("CHECKOUT_FLAT_DELIVERY_FEE", "250"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_FLAT_DELIVERY_FEE: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", ""),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "marketapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			FilePath:   getEnvOrViper("SESSION_FILE", "session.json"),
			LoginDelay: time.Duration(loginDelayMS) * time.Millisecond,
		},
		Gemini: GeminiConfig{
			APIKey:          getEnvOrViper("GEMINI_API_KEY", ""),
			Model:           getEnvOrViper("GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout:         time.Duration(timeoutMS) * time.Millisecond,
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
		Checkout: CheckoutConfig{
			FreeDeliveryThreshold: freeThreshold,
			FlatDeliveryFee:       flatFee,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
