package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port         string
	Origin       string
	Environment  string
	StaticDir    string
	Database     DatabaseConfig
	ListLimit    int
	ListMaxLimit int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Username: getEnv("DB_USERNAME", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// DATABASE_URL takes precedence when set; otherwise the DSN is assembled
	// from the individual DB_* variables.
	if url := getEnv("DATABASE_URL", ""); url != "" {
		dbConfig.DSN = url
	} else {
		dbConfig.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbConfig.Host, dbConfig.Port, dbConfig.Username, dbConfig.Password, dbConfig.Name, dbConfig.SSLMode)
	}

	listLimit, err := strconv.Atoi(getEnv("LIST_DEFAULT_LIMIT", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIST_DEFAULT_LIMIT: %w", err)
	}

	listMaxLimit, err := strconv.Atoi(getEnv("LIST_MAX_LIMIT", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIST_MAX_LIMIT: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Origin:       getEnv("ORIGIN", ""),
		Environment:  getEnv("APP_ENV", "development"),
		StaticDir:    getEnv("STATIC_DIR", "./public"),
		Database:     dbConfig,
		ListLimit:    listLimit,
		ListMaxLimit: listMaxLimit,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
