// Package config loads server configuration from an optional TOML file
// with environment variable overrides. Environment always wins, so
// deployments can keep a checked-in config file and still inject secrets
// through the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything the server needs to start.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	CookieSecure bool
}

const (
	defaultPort         = "8080"
	defaultDatabasePath = "employee-polls.db"
	minJWTSecretLen     = 32
)

// Load reads the TOML file at path (missing file is fine), applies
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:         defaultPort,
		DatabasePath: defaultDatabasePath,
		CookieSecure: true,
	}

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretLen {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minJWTSecretLen)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var file struct {
		Port         string `toml:"port"`
		DatabasePath string `toml:"database_path"`
		JWTSecret    string `toml:"jwt_secret"`
		CookieSecure *bool  `toml:"cookie_secure"`
	}
	if err := toml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(file.Port); v != "" {
		cfg.Port = v
	}
	if v := strings.TrimSpace(file.DatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(file.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if file.CookieSecure != nil {
		cfg.CookieSecure = *file.CookieSecure
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	// Default to secure cookies; disable only for local development.
	if os.Getenv("COOKIE_SECURE") == "false" {
		cfg.CookieSecure = false
	}
}
