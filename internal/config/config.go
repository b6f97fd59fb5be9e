// Package config loads the chooser service configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = 8080
	defaultDatabaseURL     = "file:chooser.db?_pragma=foreign_keys(1)"
	defaultAdminPrefix     = "/admin/snippets"
	defaultLocaleCacheSize = 128
	defaultEventBuffer     = 256
)

// Config is the runtime configuration of cmd/server and cmd/chooserctl.
type Config struct {
	Port             int
	DatabaseURL      string
	ContentTypesFile string // empty: embedded defaults
	AdminPrefix      string
	LocaleCacheSize  int
	EventBuffer      int
	AllowedOrigins   []string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config from getenv. Invalid numbers fall back to defaults.
func FromEnv(getenv func(string) string) *Config {
	return &Config{
		Port:             intOr(getenv("PORT"), defaultPort),
		DatabaseURL:      firstNonEmpty(strings.TrimSpace(getenv("DATABASE_URL")), defaultDatabaseURL),
		ContentTypesFile: strings.TrimSpace(getenv("CONTENT_TYPES_FILE")),
		AdminPrefix:      firstNonEmpty(strings.TrimSpace(getenv("ADMIN_PREFIX")), defaultAdminPrefix),
		LocaleCacheSize:  intOr(getenv("LOCALE_CACHE_SIZE"), defaultLocaleCacheSize),
		EventBuffer:      intOr(getenv("EVENT_BUFFER"), defaultEventBuffer),
		AllowedOrigins:   splitList(getenv("ALLOWED_ORIGINS")),
	}
}

func intOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
