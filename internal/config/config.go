package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port             int              `json:"port"`
	JWTSecret        string           `json:"jwt_secret"`
	JWTTTLHours      int              `json:"jwt_ttl_hours"`
	Database         DatabaseConfig   `json:"database"`
	RequestTimeoutMs int              `json:"request_timeout_ms"`
	CORSAllowOrigins []string         `json:"cors_allow_origins"`
	LogConfig        logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// Load reads the optional JSON file at path, then applies .env and process
// environment overrides. path may be empty.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("JWT_KEY"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("JWT_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse JWT_TTL_HOURS: %w", err)
		}
		cfg.JWTTTLHours = hours
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		cfg.Port = port
	}
	return nil
}

func (c *Config) normalize() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.JWTTTLHours == 0 {
		c.JWTTTLHours = 72
	}
	if c.RequestTimeoutMs <= 0 {
		c.RequestTimeoutMs = 5000
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = inferDriver(c.Database.DSN)
	}
	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		c.Database.DSN = strings.TrimPrefix(c.Database.DSN, "sqlite://")
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite")
	}
	return nil
}

func inferDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") || strings.Contains(lower, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}
