package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/veritylab/dfscan/src/detector/core"
)

func TestSetupLevels(t *testing.T) {
	cleanup, err := Setup("debug", "")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer cleanup()
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}

	cleanup2, err := Setup("nonsense", "")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer cleanup2()
	if log.GetLevel() != log.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", log.GetLevel())
	}
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cleanup, err := Setup("info", path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Info("[Test] hello from the file sink")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestDefaultLogFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if got := DefaultLogFilename(now); got != "dfscan_20260314_092653.log" {
		t.Errorf("DefaultLogFilename = %q", got)
	}
}

func TestIsRateLimit(t *testing.T) {
	throttled := &core.ServiceError{Provider: "realitydefender", StatusCode: 429, Body: []byte("slow down")}
	if !IsRateLimit(throttled) {
		t.Error("429 service error should count as rate limiting")
	}
	if IsRateLimit(&core.ServiceError{Provider: "realitydefender", StatusCode: 500}) {
		t.Error("500 is not rate limiting")
	}
	if !IsRateLimit(errors.New("upstream said rate_limit exceeded")) {
		t.Error("message sniffing fallback lost")
	}
	if IsRateLimit(nil) {
		t.Error("nil is not rate limiting")
	}
}
