package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DFSCAN_PROVIDER", "RD_API_KEY", "RD_BASE_URL",
		"DFSCAN_REQUEST_TIMEOUT", "DFSCAN_UPLOAD_ATTEMPTS",
		"DFSCAN_POLL_INTERVAL", "DFSCAN_POLL_TIMEOUT",
		"DFSCAN_LOG_LEVEL", "DFSCAN_LOG_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Provider != "realitydefender" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.APIKey != "" || cfg.BaseURL != "" {
		t.Error("credentials should be empty when unset")
	}
	if cfg.RequestTimeout != 0 || cfg.PollInterval != 0 || cfg.PollTimeout != 0 || cfg.UploadAttempts != 0 {
		t.Error("tuning fields should stay zero so the provider decides")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DFSCAN_PROVIDER", "rd")
	t.Setenv("RD_API_KEY", "rd_secret")
	t.Setenv("RD_BASE_URL", "https://staging.example.net")
	t.Setenv("DFSCAN_REQUEST_TIMEOUT", "20s")
	t.Setenv("DFSCAN_UPLOAD_ATTEMPTS", "6")
	t.Setenv("DFSCAN_POLL_INTERVAL", "1s")
	t.Setenv("DFSCAN_POLL_TIMEOUT", "2m")
	t.Setenv("DFSCAN_LOG_LEVEL", "debug")
	t.Setenv("DFSCAN_LOG_FILE", "auto")

	cfg := Load()
	if cfg.Provider != "rd" || cfg.APIKey != "rd_secret" {
		t.Errorf("Provider/APIKey = %q/%q", cfg.Provider, cfg.APIKey)
	}
	if cfg.BaseURL != "https://staging.example.net" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 20*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.UploadAttempts != 6 {
		t.Errorf("UploadAttempts = %d", cfg.UploadAttempts)
	}
	if cfg.PollInterval != time.Second || cfg.PollTimeout != 2*time.Minute {
		t.Errorf("PollInterval/PollTimeout = %v/%v", cfg.PollInterval, cfg.PollTimeout)
	}
	if cfg.LogLevel != "debug" || cfg.LogFile != "auto" {
		t.Errorf("LogLevel/LogFile = %q/%q", cfg.LogLevel, cfg.LogFile)
	}
}

func TestMalformedTuningFallsBack(t *testing.T) {
	t.Setenv("DFSCAN_REQUEST_TIMEOUT", "soon")
	t.Setenv("DFSCAN_UPLOAD_ATTEMPTS", "-3")
	t.Setenv("DFSCAN_POLL_INTERVAL", "0s")

	cfg := Load()
	if cfg.RequestTimeout != 0 || cfg.UploadAttempts != 0 || cfg.PollInterval != 0 {
		t.Error("malformed values should fall back to zero")
	}
}
