// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Stats backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all runtime settings. Zero values are filled by Load.
type Config struct {
	DBPath   string // sqlite database file
	BankPath string // YAML question bank; empty uses the embedded bank

	// Session defaults, overridable per run.
	Mode  string
	Focus string
	Count int

	StatsBackend string
	RedisAddr    string
	RedisKey     string

	LogFile  string
	LogLevel string
}

// Load reads a .env file if present, then EXAMIZ_* variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	count, err := getenvInt("EXAMIZ_COUNT", 10)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		DBPath:       os.Getenv("EXAMIZ_DB"),
		BankPath:     os.Getenv("EXAMIZ_BANK"),
		Mode:         getenvDefault("EXAMIZ_MODE", "exam"),
		Focus:        getenvDefault("EXAMIZ_FOCUS", "smart"),
		Count:        count,
		StatsBackend: strings.ToLower(getenvDefault("EXAMIZ_STATS_BACKEND", BackendSQLite)),
		RedisAddr:    getenvDefault("EXAMIZ_REDIS_ADDR", "localhost:6379"),
		RedisKey:     getenvDefault("EXAMIZ_REDIS_KEY", "examiz:stats"),
		LogFile:      os.Getenv("EXAMIZ_LOG_FILE"),
		LogLevel:     getenvDefault("EXAMIZ_LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// Validate checks settings that do not depend on the question bank.
func (c *Config) Validate() error {
	var errs []string
	switch c.Mode {
	case "exam", "practice":
	default:
		errs = append(errs, fmt.Sprintf("EXAMIZ_MODE: unknown mode %q", c.Mode))
	}
	if c.Count <= 0 {
		errs = append(errs, fmt.Sprintf("EXAMIZ_COUNT: must be positive, got %d", c.Count))
	}
	switch c.StatsBackend {
	case BackendSQLite:
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, "EXAMIZ_REDIS_ADDR: required for redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("EXAMIZ_STATS_BACKEND: unknown backend %q", c.StatsBackend))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// ResolveLogFile returns LogFile, or examiz.log next to the database.
func (c *Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "examiz.log")
}

func getenvDefault(k, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", k, v, err)
	}
	return n, nil
}
