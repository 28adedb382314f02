package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig
	PostgreSQL PostgreSQLConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Server     ServerConfig
	Search     SearchConfig
	LLM        LLMConfig
	Company    CompanyConfig
}

// AppConfig holds environment-wide settings
type AppConfig struct {
	Name        string `validate:"required"`
	Environment string `validate:"oneof=development staging production"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int `validate:"min=1,max=65535"`
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int `validate:"min=1"`
	MaxIdleConnections int `validate:"min=0"`
}

// StorageConfig selects the property datastore
type StorageConfig struct {
	Driver   string `validate:"oneof=postgres memory"`
	SeedFile string // JSON array of properties for the memory driver
}

// RedisConfig holds Redis configuration. An empty Addr disables caching.
type RedisConfig struct {
	Addr             string
	Password         string
	DB               int `validate:"min=0"`
	FilterOptionsTTL int `validate:"min=1"` // seconds
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int `validate:"min=1,max=65535"`
	Host           string
	GinMode        string `validate:"oneof=debug release test"`
	AllowedOrigins []string
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	ResultLimit int `validate:"min=1,max=100"`
}

// LLMConfig holds the OpenAI-compatible completion service configuration
type LLMConfig struct {
	APIKey          string
	APIBase         string  `validate:"required,url"`
	ChatModel       string  `validate:"required"`
	ChatTemperature float64 `validate:"min=0,max=2"`
	ChatMaxTokens   int     `validate:"min=0"`
	Timeout         int     `validate:"min=1"` // seconds, per completion call
}

// CompanyConfig holds the agency record recited by the assistant
type CompanyConfig struct {
	AssistantName string `validate:"required"`
	Name          string `validate:"required"`
	Office        string `validate:"required"`
	Phone         string `validate:"required"`
	Email         string `validate:"required,email"`
}

var validate = validator.New()

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "roarrealty-chat"),
			Environment: getEnv("APP_ENV", "production"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "roarrealty"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "postgres"),
			SeedFile: getEnv("PROPERTY_SEED_FILE", ""),
		},
		Redis: RedisConfig{
			Addr:             getEnv("REDIS_ADDR", ""),
			Password:         getEnv("REDIS_PASSWORD", ""),
			DB:               getEnvAsInt("REDIS_DB", 0),
			FilterOptionsTTL: getEnvAsInt("FILTER_OPTIONS_CACHE_TTL", 300),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 3000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Search: SearchConfig{
			ResultLimit: getEnvAsInt("SEARCH_RESULT_LIMIT", 20),
		},
		LLM: LLMConfig{
			APIKey:          getEnv("LLM_API_KEY", getEnv("OPENAI_API_KEY", "")),
			APIBase:         strings.TrimRight(getEnv("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"), "/"),
			ChatModel:       getEnv("LLM_CHAT_MODEL", "gemini-2.5-flash"),
			ChatTemperature: getEnvAsFloat("LLM_CHAT_TEMPERATURE", 0),
			ChatMaxTokens:   getEnvAsInt("LLM_CHAT_MAX_TOKENS", 0),
			Timeout:         getEnvAsInt("LLM_TIMEOUT_SECONDS", 10),
		},
		Company: CompanyConfig{
			AssistantName: getEnv("ASSISTANT_NAME", "Shora"),
			Name:          getEnv("COMPANY_NAME", "roarrealty.ae"),
			Office:        getEnv("COMPANY_OFFICE", "1507, Al Manara Tower, Business Bay, Dubai, United Arab Emirates"),
			Phone:         getEnv("COMPANY_PHONE", "+971 585005438"),
			Email:         getEnv("COMPANY_EMAIL", "anurag@roarrealty.ae"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the populated configuration against its struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment reports whether error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// CallTimeout returns the per-call deadline for the completion service
func (c LLMConfig) CallTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
