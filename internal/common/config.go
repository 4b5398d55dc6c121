package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Log      LogConfig
	Pipeline PipelineConfig
	Batch    BatchConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// PipelineConfig holds extraction tuning knobs
type PipelineConfig struct {
	TableRowTolerance float64
	IncludeRawOCR     bool
}

// BatchConfig holds worker-pool configuration
type BatchConfig struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	ConnectAttempts int
}

// MetricsConfig holds metrics output configuration
type MetricsConfig struct {
	TextfilePath string
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Pipeline: PipelineConfig{
			TableRowTolerance: getEnvAsFloat64("TABLE_ROW_TOLERANCE", 0.02),
			IncludeRawOCR:     getEnvAsBool("INCLUDE_RAW_OCR", false),
		},
		Batch: BatchConfig{
			Workers:   getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize: getEnvAsInt("BATCH_QUEUE_SIZE", 256),
			Timeout:   getEnvAsDuration("BATCH_TIMEOUT", 2*time.Minute),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			DSN:             getEnv("DB_URL", "file:blueparser.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			ConnectAttempts: getEnvAsInt("DB_CONNECT_ATTEMPTS", 3),
		},
		Metrics: MetricsConfig{
			TextfilePath: getEnv("METRICS_FILE", ""),
		},
	}
}

// Helper functions for environment variable parsing
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

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("LOG_LEVEL", strings.ToLower(c.Log.Level), OneOf("debug", "info", "warn", "error")).
		Field("TABLE_ROW_TOLERANCE", c.Pipeline.TableRowTolerance, OpenRange(0, 1)).
		Field("BATCH_WORKERS", c.Batch.Workers, MinInt(1)).
		Field("BATCH_QUEUE_SIZE", c.Batch.QueueSize, MinInt(1)).
		Field("DB_DRIVER", c.Database.Driver, OneOf(DriverSQLite, DriverPostgres)).
		Field("DB_URL", c.Database.DSN, Required).
		Field("DB_CONNECT_ATTEMPTS", c.Database.ConnectAttempts, MinInt(1))
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", "invalid configuration", v.Error())
	}
	return nil
}

// SlogLevel maps the configured level name onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
