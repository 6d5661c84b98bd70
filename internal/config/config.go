/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	DBBackend   DatabaseBackend
	DBDSN       string

	// WeekStart is the first day of a calendar week for week-view alignment.
	WeekStart time.Weekday

	// SeedFile optionally overrides the bundled seed dataset (YAML).
	SeedFile string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ORDERBOARD_ENV", "development"),
		HTTPBind:    getEnv("ORDERBOARD_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("ORDERBOARD_HTTP_PORT", 8080),
		DBBackend:   DatabaseBackend(getEnv("ORDERBOARD_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:       getEnv("ORDERBOARD_DB_DSN", ""),
		SeedFile:    getEnv("ORDERBOARD_SEED_FILE", ""),

		TracingEnabled:    getEnvBool("ORDERBOARD_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("ORDERBOARD_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("ORDERBOARD_TRACING_SAMPLE_RATE", 1.0),
	}

	weekStart, err := parseWeekday(getEnv("ORDERBOARD_WEEK_START", "sunday"))
	if err != nil {
		return nil, err
	}
	cfg.WeekStart = weekStart

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.DBDSN == "" {
		if cfg.DBBackend != DatabaseSQLite {
			return nil, fmt.Errorf("ORDERBOARD_DB_DSN must be provided for backend %q", cfg.DBBackend)
		}
		cfg.DBDSN = "orderboard.db"
	}

	return cfg, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("unsupported week start day %q", s)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
