package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Storage       StorageConfig
	Observability ObservabilityConfig
	Gemini        GeminiConfig
	Gmail         GmailConfig
	Monitor       MonitorConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	BaseURL            string
	RateLimitPerSecond int
	RateLimitBurst     int
	Environment        string
}

// StorageConfig selects and configures the persistence driver.
// "postgres" is the default; "mongo" matches deployments that keep the
// document store.
type StorageConfig struct {
	Driver   string
	Postgres PostgresConfig
	MongoURI string
	MongoDB  string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// GeminiConfig configures the remote merchant classifier. An empty APIKey is
// valid: categorization then runs on the keyword fallback only.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GmailConfig points at the OAuth2 material for the mail collaborator.
type GmailConfig struct {
	CredentialsPath string
	TokenPath       string
}

// MonitorConfig tunes the background inbox check.
type MonitorConfig struct {
	Enabled       bool
	Interval      time.Duration
	MaxEmails     int
	LookbackDays  int
	DefaultUserID string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8000),
			BaseURL:            getEnv("BASE_URL", "http://localhost:8000"),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
			Environment:        getEnv("ENVIRONMENT", "development"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "postgres"),
			Postgres: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnvAsInt("POSTGRES_PORT", 5432),
				User:     getEnv("POSTGRES_USER", "postgres"),
				Password: getEnv("POSTGRES_PASSWORD", "postgres"),
				Database: getEnv("POSTGRES_DB", "splitmint"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
			MongoURI: getEnv("MONGODB_URI", ""),
			MongoDB:  getEnv("MONGODB_DATABASE", "splitmint"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 15*time.Second),
		},
		Gmail: GmailConfig{
			CredentialsPath: getEnv("GMAIL_CREDENTIALS_FILE", "credentials.json"),
			TokenPath:       getEnv("GMAIL_TOKEN_FILE", "token.json"),
		},
		Monitor: MonitorConfig{
			Enabled:       getEnvAsBool("AUTO_MONITOR_EMAILS", true),
			Interval:      getEnvAsDuration("MONITOR_INTERVAL", 45*time.Second),
			MaxEmails:     getEnvAsInt("MONITOR_MAX_EMAILS", 3),
			LookbackDays:  getEnvAsInt("MONITOR_LOOKBACK_DAYS", 30),
			DefaultUserID: getEnv("DEFAULT_USER_ID", "demo_user"),
		},
	}

	switch cfg.Storage.Driver {
	case "postgres":
	case "mongo":
		if cfg.Storage.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required when STORAGE_DRIVER=mongo")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want postgres or mongo)", cfg.Storage.Driver)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
