package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
)

// Data source kinds accepted in PDRD_DATA_SOURCE.
const (
	SourceAPI    = "api"
	SourceSheets = "sheets"
)

type Config struct {
	// Data Source Configuration
	DataSource string
	APIURL     string
	APITimeout time.Duration

	// Google Sheets Configuration
	GoogleSheetURL   string
	SummaryWorksheet string

	// Output Configuration
	OutputDir  string
	LogoPath   string
	ExportXLSX bool

	// Signatory Configuration
	Place          string
	SignatoryTitle string
	SignatoryName  string
	SignatoryNIP   string

	// Proofing Configuration
	ProofPages int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DataSource:       strings.ToLower(getEnv("PDRD_DATA_SOURCE", SourceAPI)),
		APIURL:           getEnv("PDRD_API_URL", ""),
		APITimeout:       cast.ToDuration(getEnv("PDRD_API_TIMEOUT", "30s")),
		GoogleSheetURL:   getEnv("GOOGLE_SHEET_URL", ""),
		SummaryWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Ringkasan_Per_Objek"),
		OutputDir:        getEnv("PDRD_OUTPUT_DIR", "."),
		LogoPath:         getEnv("PDRD_LOGO_PATH", "images/logo.png"),
		ExportXLSX:       cast.ToBool(getEnv("PDRD_EXPORT_XLSX", "false")),
		Place:            getEnv("PDRD_PLACE", ""),
		SignatoryTitle:   getEnv("PDRD_SIGNATORY_TITLE", ""),
		SignatoryName:    getEnv("PDRD_SIGNATORY_NAME", ""),
		SignatoryNIP:     getEnv("PDRD_SIGNATORY_NIP", ""),
		ProofPages:       cast.ToInt(getEnv("PDRD_PROOF_PAGES", "2")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.DataSource {
	case SourceAPI:
		if c.APIURL == "" {
			return fmt.Errorf("PDRD_API_URL is required when PDRD_DATA_SOURCE=%s", SourceAPI)
		}
	case SourceSheets:
		if c.GoogleSheetURL == "" {
			return fmt.Errorf("GOOGLE_SHEET_URL is required when PDRD_DATA_SOURCE=%s", SourceSheets)
		}
	default:
		return fmt.Errorf("PDRD_DATA_SOURCE must be %q or %q, got %q", SourceAPI, SourceSheets, c.DataSource)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("PDRD_API_TIMEOUT must be a positive duration")
	}
	if c.ProofPages < 1 {
		return fmt.Errorf("PDRD_PROOF_PAGES must be at least 1")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
