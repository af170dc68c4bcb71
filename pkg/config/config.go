package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Analytics AnalyticsConfig
	Metrics   MetricsConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error dpanic panic fatal"`
}

type ServerConfig struct {
	Port         string `validate:"required,numeric"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	UploadMaxMB  int `validate:"min=1"`
}

type DatabaseConfig struct {
	Host     string `validate:"required_if=Driver postgres"`
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32 `validate:"min=0"`
	Driver   string
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type StoreConfig struct {
	Driver string `validate:"oneof=postgres memory"`
}

type AnalyticsConfig struct {
	GraphFile             string
	AliasFile             string
	DefaultDistanceFt     float64            `validate:"gt=0"`
	UtilizationMode       string             `validate:"oneof=type device"`
	MaintenanceThresholds map[string]float64 `validate:"dive,gt=0"`
}

type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for containers
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	uploadMax, _ := strconv.Atoi(getEnv("UPLOAD_MAX_MB", "32"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "0"))

	defaultDistance, err := strconv.ParseFloat(getEnv("DEFAULT_DISTANCE_FT", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_DISTANCE_FT: %w", err)
	}

	thresholds, err := ParseThresholds(getEnv("MAINTENANCE_THRESHOLDS", ""))
	if err != nil {
		return nil, err
	}

	driver := getEnv("STORE_DRIVER", "postgres")

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			UploadMaxMB:  uploadMax,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "equiptrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
			Driver:   driver,
		},
		Store: StoreConfig{
			Driver: driver,
		},
		Analytics: AnalyticsConfig{
			GraphFile:             getEnv("GRAPH_FILE", ""),
			AliasFile:             getEnv("ALIAS_FILE", ""),
			DefaultDistanceFt:     defaultDistance,
			UtilizationMode:       getEnv("UTILIZATION_MODE", "type"),
			MaintenanceThresholds: thresholds,
		},
		Metrics: MetricsConfig{
			Enabled: getEnv("METRICS_ENABLED", "true") == "true",
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints on a loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseThresholds reads "Type=hours,Type=hours" into a map.
func ParseThresholds(raw string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid MAINTENANCE_THRESHOLDS entry %q", part)
		}
		hours, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAINTENANCE_THRESHOLDS hours for %q: %w", name, err)
		}
		out[strings.TrimSpace(name)] = hours
	}
	return out, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
