package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the API server.
type Config struct {
	SecretKey      string
	DatabaseURL    string
	HTTPAddr       string
	DBEcho         bool
	ReportInterval time.Duration
	ReportAt       string
}

// Load reads configuration from the environment (and a .env file if present) with sane defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		SecretKey:      strings.TrimSpace(os.Getenv("SECRET_KEY")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:       strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DBEcho:         parseBool(strings.TrimSpace(os.Getenv("DB_ECHO"))),
		ReportInterval: parseInterval(strings.TrimSpace(os.Getenv("REPORT_INTERVAL_HOURS"))),
		ReportAt:       strings.TrimSpace(os.Getenv("REPORT_AT")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_manager.db"
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.ReportInterval == 0 {
		cfg.ReportInterval = 24 * time.Hour
	}

	if cfg.SecretKey == "" {
		return cfg, fmt.Errorf("SECRET_KEY is required")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
