package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabaseDriver string // sqlite | postgres
	DatabaseDSN    string
	CORSOrigins    string

	AppTitle     string
	ReportDir    string // generated documents are written here
	ReportFormat string // pdf | xlsx | md | html

	ShareMode    string // auto | command | file | none
	ShareCommand string
	ShareDir     string

	LogLevel  string
	LogFormat string // json | console

	SeedSampleData bool

	// Warnings collects non-fatal findings; the caller logs them once a logger exists.
	Warnings []string
}

const (
	defaultDSN         = "fabrica.db"
	defaultCORSOrigins = "http://localhost:5173"
)

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		AppTitle:       getEnv("APP_TITLE", "GESTIÓN DE FÁBRICA"),
		ReportDir:      getEnv("REPORT_DIR", defaultReportDir()),
		ReportFormat:   strings.ToLower(getEnv("REPORT_FORMAT", "pdf")),
		ShareMode:      strings.ToLower(getEnv("SHARE_MODE", "auto")),
		ShareCommand:   getEnv("SHARE_COMMAND", ""),
		ShareDir:       getEnv("SHARE_DIR", ""),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	seed, err := strconv.ParseBool(getEnv("SEED_SAMPLE_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SAMPLE_DATA: %w", err)
	}
	cfg.SeedSampleData = seed

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN is the sqlite default while DATABASE_DRIVER=postgres, set a Postgres DSN")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS uses the development default")
	}
	if cfg.ShareMode == "file" && cfg.ShareDir == "" {
		cfg.Warnings = append(cfg.Warnings, "SHARE_MODE=file without SHARE_DIR, documents are exported next to the report directory")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q (sqlite|postgres)", c.DatabaseDriver)
	}
	switch c.ReportFormat {
	case "pdf", "xlsx", "md", "html":
	default:
		return fmt.Errorf("invalid REPORT_FORMAT %q (pdf|xlsx|md|html)", c.ReportFormat)
	}
	switch c.ShareMode {
	case "auto", "command", "file", "none":
	default:
		return fmt.Errorf("invalid SHARE_MODE %q (auto|command|file|none)", c.ShareMode)
	}
	if c.ShareMode == "command" && c.ShareCommand == "" {
		return fmt.Errorf("SHARE_MODE=command requires SHARE_COMMAND")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (json|console)", c.LogFormat)
	}
	return nil
}

// CORSOriginList splits the comma separated CORS_ALLOWED_ORIGINS value.
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "FactoryReports"
	}
	return filepath.Join(home, "FactoryReports")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
