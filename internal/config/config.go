package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/Simplici0/laborcalc/internal/logging"
)

const (
	defaultDBPath = "./labor.db"
	defaultPort   = "5000"
	defaultEnv    = "development"
)

// Config holds calculation service configuration sourced from environment
// variables.
type Config struct {
	Env           string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	LogLevel      slog.Level
}

// Load reads environment variables (after a best-effort .env load) and
// returns a populated Config.
func Load(envFile string) Config {
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotEnv(envFile); err != nil {
		slog.Warn("could not read dotenv file", "path", envFile, "error", err)
	}

	cfg := Config{
		Env:           strings.ToLower(os.Getenv("APP_ENV")),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		LogLevel:      slog.LevelInfo,
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		level, err := logging.ParseLevel(raw)
		if err != nil {
			slog.Warn("ignoring LOG_LEVEL", "error", err)
		} else {
			cfg.LogLevel = level
		}
	}

	return cfg
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Validate rejects configurations that are only acceptable during
// development. Outside development an unset SESSION_SECRET would let anyone
// forge admin sessions.
func (c Config) Validate() error {
	if c.IsDev() {
		return nil
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required when APP_ENV is " + c.Env)
	}
	return nil
}

// Warnings lists configuration gaps worth surfacing at startup.
func (c Config) Warnings() []string {
	var warnings []string
	if c.AdminEmail == "" {
		warnings = append(warnings, "ADMIN_EMAIL is not set")
	}
	if c.AdminPassword == "" {
		warnings = append(warnings, "ADMIN_PASSWORD is not set")
	}
	if c.SessionSecret == "" {
		warnings = append(warnings, "SESSION_SECRET is not set")
	}
	return warnings
}
