package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCredentials(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	creds := writeCredentials(t)
	t.Setenv("GOOGLE_MAPS_API_KEY", "secret-key")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", creds)
	t.Setenv("SHEET_BACKEND", "")
	t.Setenv("WORKBOOK_DIR", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "secret-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.SheetBackend != BackendGoogle {
		t.Errorf("SheetBackend = %q, want default google", cfg.SheetBackend)
	}
	if cfg.WorkbookDir != "data" {
		t.Errorf("WorkbookDir = %q, want default data", cfg.WorkbookDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want default 8080", cfg.Port)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "   ")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")
	t.Setenv("SHEET_BACKEND", "")

	_, err := Load()
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a ConfigurationError", err)
	}
	if ce.Setting != "GOOGLE_MAPS_API_KEY" {
		t.Errorf("Setting = %q", ce.Setting)
	}
}

func TestLoadRequiresCredentialsForGoogleBackend(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "secret-key")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")
	t.Setenv("SHEET_BACKEND", "google")

	_, err := Load()
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a ConfigurationError", err)
	}
	if ce.Setting != "GOOGLE_CREDENTIALS_FILE" {
		t.Errorf("Setting = %q", ce.Setting)
	}
}

func TestLoadRejectsMissingCredentialsFile(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "secret-key")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "nope.json"))
	t.Setenv("SHEET_BACKEND", "google")

	_, err := Load()
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a ConfigurationError", err)
	}
	if !strings.Contains(err.Error(), "not readable") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadWorkbookBackendNeedsNoCredentials(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "secret-key")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")
	t.Setenv("SHEET_BACKEND", "workbook")
	t.Setenv("WORKBOOK_DIR", "fixtures")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SheetBackend != BackendWorkbook {
		t.Errorf("SheetBackend = %q", cfg.SheetBackend)
	}
	if cfg.WorkbookDir != "fixtures" {
		t.Errorf("WorkbookDir = %q", cfg.WorkbookDir)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "secret-key")
	t.Setenv("SHEET_BACKEND", "carrier-pigeon")

	_, err := Load()
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a ConfigurationError", err)
	}
	if ce.Setting != "SHEET_BACKEND" {
		t.Errorf("Setting = %q", ce.Setting)
	}
}

func TestGet(t *testing.T) {
	t.Setenv("SOME_SETTING", "")
	if got := Get("SOME_SETTING", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}

	t.Setenv("SOME_SETTING", "value")
	if got := Get("SOME_SETTING", "fallback"); got != "value" {
		t.Errorf("Get = %q, want value", got)
	}
}
