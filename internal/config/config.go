package config

import (
	"os"
	"strconv"

	"jianstory-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort           string
	LogLevel             string
	DataDir              string
	SupabaseURL          string
	SupabaseKey          string
	SupabaseServiceKey   string
	SupabaseJWTSecret    string
	CloudinaryCloudName  string
	ProgressWindowMillis int64
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:           getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		DataDir:              getEnvOrDefault("DATA_DIR", "./data"),
		SupabaseURL:          getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:          getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey:   getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:    getEnvOrDefault("SUPABASE_JWT_SECRET", ""),
		CloudinaryCloudName:  getEnvOrDefault("CLOUDINARY_CLOUD_NAME", ""),
		ProgressWindowMillis: getEnvInt64OrDefault("PROGRESS_WINDOW_MS", 1000),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetDataDir returns the local data directory used when Supabase is not configured
func (c *AppConfig) GetDataDir() string {
	return c.DataDir
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseServiceKey returns the Supabase service-role key used by the CLIs
func (c *AppConfig) GetSupabaseServiceKey() string {
	return c.SupabaseServiceKey
}

// GetSupabaseJWTSecret returns the project JWT secret for local token checks
func (c *AppConfig) GetSupabaseJWTSecret() string {
	return c.SupabaseJWTSecret
}

// GetCloudinaryCloudName returns the Cloudinary cloud used for cover images
func (c *AppConfig) GetCloudinaryCloudName() string {
	return c.CloudinaryCloudName
}

// GetProgressWindowMillis returns the reading-progress throttle window
func (c *AppConfig) GetProgressWindowMillis() int64 {
	return c.ProgressWindowMillis
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
