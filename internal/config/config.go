package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the API server
type Config struct {
	Port int

	// Database (PgBouncer)
	DBHost           string
	DBPort           int
	DBName           string
	DBUser           string
	DBPassword       string
	DBPoolMin        int
	DBPoolMax        int
	DBConnectTimeout time.Duration
	MigrateOnStart   bool

	// Application metadata
	AppVersion  string
	BuildNumber string
	BuildDate   string

	// OAuth2/Cognito
	CognitoIssuer   string
	CognitoClientID string
	OAuth2Enabled   bool

	// CORS
	CORSOrigins []string

	// Rate limiting (disabled when RedisURL is empty)
	RedisURL        string
	RateLimitLimit  int
	RateLimitWindow time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Port: getEnvAsInt("PORT", 8080),

		DBHost:           getEnv("PGBOUNCER_HOST", "192.168.1.175"),
		DBPort:           getEnvAsInt("PGBOUNCER_PORT", 6432),
		DBName:           getEnv("POSTGRES_DB", "owntracks"),
		DBUser:           getEnv("POSTGRES_USER", ""),
		DBPassword:       getEnv("POSTGRES_PASSWORD", ""),
		DBPoolMin:        getEnvAsInt("DB_POOL_MIN", 2),
		DBPoolMax:        getEnvAsInt("DB_POOL_MAX", 10),
		DBConnectTimeout: time.Duration(getEnvAsInt("DB_CONNECT_TIMEOUT", 5)) * time.Second,
		MigrateOnStart:   getEnvAsBool("MIGRATE_ON_START", false),

		AppVersion:  getEnv("APP_VERSION", "1.0.0"),
		BuildNumber: getEnv("BUILD_NUMBER", "0"),
		BuildDate:   getEnv("BUILD_DATE", "unknown"),

		CognitoIssuer:   getEnv("COGNITO_ISSUER", ""),
		CognitoClientID: getEnv("COGNITO_CLIENT_ID", ""),
		OAuth2Enabled:   getEnvAsBool("OAUTH2_ENABLED", false),

		CORSOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "")),

		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimitLimit:  getEnvAsInt("RATE_LIMIT_LIMIT", 100),
		RateLimitWindow: time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
	}
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, int(c.DBConnectTimeout.Seconds()),
	)
}

// ValidateDatabase checks that database credentials are configured
func (c *Config) ValidateDatabase() error {
	if c.DBUser == "" || c.DBPassword == "" {
		return errors.New("database credentials not configured: set POSTGRES_USER and POSTGRES_PASSWORD")
	}
	return nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
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
