package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "TORGEN_API_KEY", "TORGEN_DB_PATH",
		"MAX_UPLOAD_BYTES", "SESSION_TTL", "PDF_FALLBACK_PDFTOTEXT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBPath != "torgen.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MaxUploadBytes != 20971520 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.SessionTTL != 4*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TORGEN_API_KEY", "secret")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	t.Setenv("SESSION_TTL", "sometime")

	cfg := Load()
	if cfg.MaxUploadBytes != 20971520 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
	if cfg.SessionTTL != 4*time.Hour {
		t.Errorf("SessionTTL = %v, want default", cfg.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{APIKey: "k", DBPath: "torgen.db"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Config{DBPath: "torgen.db"}).Validate(); err == nil {
		t.Error("expected error for missing api key")
	}
	if err := (Config{APIKey: "k"}).Validate(); err == nil {
		t.Error("expected error for empty db path")
	}
}
