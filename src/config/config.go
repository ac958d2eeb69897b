package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs to reach the detection service.
// Zero-valued tuning fields defer to the provider's own defaults.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string

	RequestTimeout time.Duration
	UploadAttempts int
	PollInterval   time.Duration
	PollTimeout    time.Duration

	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment. A .env file in the working
// directory is folded in first so local setups do not need exported vars.
func Load() Config {
	// Missing .env is fine - the environment alone will work.
	_ = godotenv.Load()

	return Config{
		Provider: GetSetting("DFSCAN_PROVIDER", "realitydefender"),
		APIKey:   os.Getenv("RD_API_KEY"),
		BaseURL:  os.Getenv("RD_BASE_URL"),

		RequestTimeout: getDuration("DFSCAN_REQUEST_TIMEOUT", 0),
		UploadAttempts: getInt("DFSCAN_UPLOAD_ATTEMPTS", 0),
		PollInterval:   getDuration("DFSCAN_POLL_INTERVAL", 0),
		PollTimeout:    getDuration("DFSCAN_POLL_TIMEOUT", 0),

		LogLevel: GetSetting("DFSCAN_LOG_LEVEL", "info"),
		LogFile:  os.Getenv("DFSCAN_LOG_FILE"),
	}
}

// GetSetting retrieves an environment setting with a default.
func GetSetting(envKey, defaultValue string) string {
	val := os.Getenv(envKey)
	if val == "" {
		val = defaultValue
	}
	return val
}

func getDuration(envKey string, def time.Duration) time.Duration {
	val := os.Getenv(envKey)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getInt(envKey string, def int) int {
	val := os.Getenv(envKey)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
