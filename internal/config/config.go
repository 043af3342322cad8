// Package config reads the startup configuration from the environment.
// A missing required value halts the process before any interaction.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Sheet backends.
const (
	BackendGoogle   = "google"
	BackendWorkbook = "workbook"
)

// ConfigurationError reports a missing or invalid startup setting.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Setting, e.Reason)
}

// Config carries the values read once at startup and passed into the
// components that need them. APIKey is a secret: it goes into request
// headers only and must never be written to logs.
type Config struct {
	APIKey          string
	CredentialsFile string
	SheetBackend    string
	WorkbookDir     string
	Port            string
}

// Load reads configuration from the environment.
//
// GOOGLE_MAPS_API_KEY is always required. GOOGLE_CREDENTIALS_FILE must
// name an existing service-account file when SHEET_BACKEND is "google"
// (the default); the "workbook" backend reads local .xlsx files from
// WORKBOOK_DIR instead and needs no credentials.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:          strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		CredentialsFile: strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_FILE")),
		SheetBackend:    Get("SHEET_BACKEND", BackendGoogle),
		WorkbookDir:     Get("WORKBOOK_DIR", "data"),
		Port:            Get("PORT", "8080"),
	}

	if cfg.APIKey == "" {
		return nil, &ConfigurationError{Setting: "GOOGLE_MAPS_API_KEY", Reason: "is required"}
	}

	switch cfg.SheetBackend {
	case BackendGoogle:
		if cfg.CredentialsFile == "" {
			return nil, &ConfigurationError{
				Setting: "GOOGLE_CREDENTIALS_FILE",
				Reason:  "is required when SHEET_BACKEND=google",
			}
		}
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, &ConfigurationError{
				Setting: "GOOGLE_CREDENTIALS_FILE",
				Reason:  fmt.Sprintf("%q is not readable: %v", cfg.CredentialsFile, err),
			}
		}
	case BackendWorkbook:
	default:
		return nil, &ConfigurationError{
			Setting: "SHEET_BACKEND",
			Reason:  fmt.Sprintf("%q is not a known backend (want %s or %s)", cfg.SheetBackend, BackendGoogle, BackendWorkbook),
		}
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
