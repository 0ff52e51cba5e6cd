package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"doc-ingest/internal/domain"

	"github.com/go-playground/validator/v10"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string        `validate:"required,numeric"`
	UploadDir       string        `validate:"required"`
	MaxFileSize     int64         `validate:"gt=0"`
	LogLevel        string        `validate:"oneof=debug info warn warning error"`
	LogFormat       string        `validate:"oneof=console json"`
	DiskThresholdMB uint64        `validate:"gte=0"`
	ContentSniffing bool
	AllowedOrigins  []string      `validate:"dive,required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort: getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		// UPLOAD_PATH is the older name of UPLOAD_DIR.
		UploadDir:       getEnvOrDefault("UPLOAD_DIR", getEnvOrDefault("UPLOAD_PATH", "uploads")),
		MaxFileSize:     getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:        strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console")),
		DiskThresholdMB: uint64(getEnvInt64OrDefault("DISK_THRESHOLD_MB", 100)),
		ContentSniffing: getEnvBoolOrDefault("CONTENT_SNIFFING", true),
		AllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		}),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the configuration values
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadDir returns the upload directory path
func (c *AppConfig) GetUploadDir() string {
	return c.UploadDir
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetDiskThresholdMB returns the free-space threshold for the disk check
func (c *AppConfig) GetDiskThresholdMB() uint64 {
	return c.DiskThresholdMB
}

// GetContentSniffing reports whether uploads are checked by content
func (c *AppConfig) GetContentSniffing() bool {
	return c.ContentSniffing
}

// GetAllowedOrigins returns the CORS origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *AppConfig) GetShutdownTimeout() time.Duration {
	return c.ShutdownTimeout
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
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
