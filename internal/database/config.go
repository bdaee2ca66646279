package database

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxConns      int
	RedisURL      string
	RedisPassword string
	RedisDB       int

	HTTPAddr        string
	JWTSecret       string
	StorageDriver   string
	SessionStore    string
	ProductCache    bool
	ProductCacheTTL time.Duration
	AuthRequired    bool
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          getEnv("DB_PORT", "5432"),
		User:          getEnv("DB_USER", "app_user"),
		Password:      getEnv("DB_PASSWORD", "postgres_password"),
		DBName:        getEnv("DB_NAME", "app_db"),
		SSLMode:       getEnv("DB_SSLMODE", "disable"),
		MaxConns:      getEnvAsInt("DB_MAX_CONNS", 10),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		HTTPAddr:        getEnv("HTTP_ADDR", ":3000"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		StorageDriver:   getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		SessionStore:    getEnv("SESSION_STORE", SessionStoreRedis),
		ProductCache:    getEnvAsBool("PRODUCT_CACHE", true),
		ProductCacheTTL: time.Duration(getEnvAsInt("PRODUCT_CACHE_TTL_SECONDS", 300)) * time.Second,
		AuthRequired:    getEnvAsBool("AUTH_REQUIRED", true),
	}, nil

}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
