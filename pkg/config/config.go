package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	HuggingFace HuggingFaceConfig
	OpenAI      OpenAIConfig
	Vision      VisionConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// HuggingFaceConfig holds configuration for the zero-shot comment classifier.
type HuggingFaceConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds configuration for the generative comment classifier.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	RateLimitRPM   int
	RateLimitBurst int
}

// VisionConfig holds the Google Cloud Vision service-account fields.
// Each field maps to one environment variable; all required fields must be
// present before the vision client is constructed.
type VisionConfig struct {
	ProjectID     string
	PrivateKeyID  string
	PrivateKey    string
	ClientEmail   string
	ClientID      string
	ClientCertURL string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "restroom_finder"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		HuggingFace: HuggingFaceConfig{
			APIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			Model:  getEnv("HUGGINGFACE_MODEL", "facebook/bart-large-mnli"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4"),
			RateLimitRPM:   getEnvAsInt("OPENAI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("OPENAI_RATE_LIMIT_BURST", 5),
		},
		Vision: VisionConfig{
			ProjectID:     getEnv("GOOGLE_CLOUD_PROJECT_ID", ""),
			PrivateKeyID:  getEnv("GOOGLE_CLOUD_PRIVATE_KEY_ID", ""),
			PrivateKey:    getEnv("GOOGLE_CLOUD_PRIVATE_KEY", ""),
			ClientEmail:   getEnv("GOOGLE_CLOUD_CLIENT_EMAIL", ""),
			ClientID:      getEnv("GOOGLE_CLOUD_CLIENT_ID", ""),
			ClientCertURL: getEnv("GOOGLE_CLOUD_CLIENT_X509_CERT_URL", ""),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "restroom-finder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MissingFields returns the environment variable names of every required
// vision credential field that is not set. An empty result means the vision
// client can be constructed.
func (c *VisionConfig) MissingFields() []string {
	var missing []string
	fields := []struct {
		envVar string
		value  string
	}{
		{"GOOGLE_CLOUD_PROJECT_ID", c.ProjectID},
		{"GOOGLE_CLOUD_PRIVATE_KEY_ID", c.PrivateKeyID},
		{"GOOGLE_CLOUD_PRIVATE_KEY", c.PrivateKey},
		{"GOOGLE_CLOUD_CLIENT_EMAIL", c.ClientEmail},
		{"GOOGLE_CLOUD_CLIENT_ID", c.ClientID},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.envVar)
		}
	}
	return missing
}

// NormalizedPrivateKey returns the private key with literal "\n" sequences
// replaced by real newlines, the way the key arrives through env files.
func (c *VisionConfig) NormalizedPrivateKey() string {
	return strings.ReplaceAll(c.PrivateKey, `\n`, "\n")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
