package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, assembled once at startup
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Market data source
	Yahoo YahooConfig

	// Analysis defaults (applied when a request omits a field)
	Defaults DefaultsConfig

	// Watchlist scheduler
	Watch WatchConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// YahooConfig holds Yahoo Finance chart API configuration
type YahooConfig struct {
	BaseURL   string // primary chart host
	BackupURL string // secondary chart host, tried after the primary
	UserAgent string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Request rate limiting
	RateRPS   float64
	RateBurst int
}

// DefaultsConfig holds fallback analysis parameters
// 요청에 값이 없으면 이 기본값을 사용
type DefaultsConfig struct {
	Market   string // benchmark symbol
	RiskFree string // risk-free proxy symbol
	Period   string // history range token
	Interval string // sampling interval
}

// WatchConfig holds watchlist scheduler configuration
type WatchConfig struct {
	File     string // watchlist YAML path
	Schedule string // cron expression (seconds field included)
	Parallel int    // max concurrent analyses per run
}

// Load assembles the configuration from the environment
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: envStr("PORT", "8089"),
		Env:  envStr("ENV", "development"),

		// Market data source
		Yahoo: YahooConfig{
			BaseURL:    envStr("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			BackupURL:  envStr("YAHOO_BACKUP_URL", "https://query2.finance.yahoo.com"),
			UserAgent:  envStr("YAHOO_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"),
			Timeout:    envDuration("YAHOO_TIMEOUT", 15*time.Second),
			MaxRetries: envInt("YAHOO_MAX_RETRIES", 3),
			RetryDelay: envDuration("YAHOO_RETRY_DELAY", 500*time.Millisecond),
			RateRPS:    envFloat("YAHOO_RATE_RPS", 4),
			RateBurst:  envInt("YAHOO_RATE_BURST", 2),
		},

		// Analysis defaults
		Defaults: DefaultsConfig{
			Market:   envStr("DEFAULT_MARKET", "^GSPC"),
			RiskFree: envStr("DEFAULT_RISK_FREE", "^IRX"),
			Period:   envStr("DEFAULT_PERIOD", "5y"),
			Interval: envStr("DEFAULT_INTERVAL", "1mo"),
		},

		// Watchlist scheduler
		Watch: WatchConfig{
			File:     envStr("WATCH_FILE", "watchlist.yaml"),
			Schedule: envStr("WATCH_SCHEDULE", "0 0 7 * * 1-5"), // 평일 07:00
			Parallel: envInt("WATCH_PARALLEL", 4),
		},

		// Logging
		LogLevel:  envStr("LOG_LEVEL", "debug"),
		LogFormat: envStr("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// validate rejects configurations the rest of the program cannot run with
func (c *Config) validate() error {
	switch c.Env {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENV must be development, staging, or production (got %q)", c.Env)
	}

	if c.Yahoo.BaseURL == "" {
		return fmt.Errorf("YAHOO_BASE_URL is required")
	}

	if c.Yahoo.Timeout <= 0 {
		return fmt.Errorf("YAHOO_TIMEOUT must be positive")
	}

	if c.Yahoo.MaxRetries < 0 {
		return fmt.Errorf("YAHOO_MAX_RETRIES must not be negative")
	}

	if c.Yahoo.RateRPS <= 0 {
		return fmt.Errorf("YAHOO_RATE_RPS must be positive")
	}

	if c.Watch.Parallel < 1 {
		return fmt.Errorf("WATCH_PARALLEL must be at least 1")
	}

	return nil
}

// loadEnvFile loads the first .env found, looking in the working
// directory, then next to the executable and two levels above it
func loadEnvFile() {
	candidates := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for i := 0; i < 3; i++ {
			candidates = append(candidates, filepath.Join(dir, ".env"))
			dir = filepath.Dir(dir)
		}
	}

	for _, path := range candidates {
		if godotenv.Load(path) == nil {
			return
		}
	}
}

// env* helpers fall back on unset or unparseable values.

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
