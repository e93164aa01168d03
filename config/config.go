package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// JWT
	JWT JWTConfig

	// Admin
	Admin AdminConfig

	// Gateway holds the FIX listener and session defaults.
	Gateway GatewayConfig

	// CORS
	CORS CORSConfig

	// Encryption
	Encryption EncryptionConfig
}

// GatewayConfig configures the FIX counterparty listener and the default
// session parameters applied to every accepted connection, before any
// per-session override from the session store.
type GatewayConfig struct {
	ListenAddr        string
	DictionaryPath    string
	HeartbeatInterval int // seconds
	MaxGapSize        int
	RateLimitTier     string
	DedupTTLHours     int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	Secret string
	Expiry string
}

type AdminConfig struct {
	Email       string
	IPWhitelist []string
	Password    string // Bcrypt hashed password
}

type CORSConfig struct {
	AllowedOrigins []string
}

type EncryptionConfig struct {
	MasterKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "7999"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "fixengine"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},

		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Expiry: getEnv("JWT_EXPIRY", "24h"),
		},

		Admin: AdminConfig{
			Email:       getEnv("ADMIN_EMAIL", "admin@example.com"),
			IPWhitelist: getEnvAsSlice("ADMIN_IP_WHITELIST", []string{"127.0.0.1", "::1"}, ","),
			Password:    getEnv("ADMIN_PASSWORD_HASH", ""),
		},

		Gateway: GatewayConfig{
			ListenAddr:        getEnv("FIX_LISTEN_ADDR", ":9878"),
			DictionaryPath:    getEnv("FIX_DICTIONARY_PATH", ""),
			HeartbeatInterval: getEnvAsInt("FIX_HEARTBEAT_INTERVAL", 30),
			MaxGapSize:        getEnvAsInt("FIX_MAX_GAP_SIZE", 1000),
			RateLimitTier:     getEnv("FIX_RATE_LIMIT_TIER", "standard"),
			DedupTTLHours:     getEnvAsInt("FIX_DEDUP_TTL_HOURS", 24),
		},

		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}, ","),
		},

		Encryption: EncryptionConfig{
			MasterKey: getEnv("MASTER_ENCRYPTION_KEY", ""),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.Encryption.MasterKey == "" {
			return fmt.Errorf("MASTER_ENCRYPTION_KEY is required in production")
		}
		if c.Admin.Password == "" {
			log.Println("WARNING: ADMIN_PASSWORD_HASH not set - admin login will use default password")
		}
	}

	return nil
}

// Helper functions
func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsSlice(key string, defaultVal []string, sep string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultVal
	}
	return strings.Split(valueStr, sep)
}
