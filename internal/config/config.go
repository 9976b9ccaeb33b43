package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pauljones0/deal-link-bot/internal/validator"
)

type Config struct {
	TelegramToken       string        `validate:"required"`
	Port                string        `validate:"required,numeric"`
	ChannelTag          string        `validate:"required"`
	DefaultPin          string        `validate:"pincode"`
	MemoCapacity        int           `validate:"gt=0"`
	LinkDelay           time.Duration `validate:"gte=0"`
	SendDelay           time.Duration `validate:"gte=0"`
	ResolveAttempts     int           `validate:"gte=1,lte=10"`
	ScrapeTimeout       time.Duration `validate:"gt=0"`
	LogLevel            string        `validate:"oneof=debug info warn error"`
	SelectorsConfigPath string
}

// Load reads the configuration from the environment. Values from a .env file in the
// working directory are used for variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required but not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	memoCapacity, err := intEnv("MEMO_CAPACITY", 200)
	if err != nil {
		return nil, err
	}
	resolveAttempts, err := intEnv("RESOLVE_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	linkDelay, err := durationEnv("LINK_DELAY", time.Second)
	if err != nil {
		return nil, err
	}
	sendDelay, err := durationEnv("SEND_DELAY", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	scrapeTimeout, err := durationEnv("SCRAPE_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramToken:       token,
		Port:                port,
		ChannelTag:          stringEnv("CHANNEL_TAG", "@reviewcheckk"),
		DefaultPin:          stringEnv("DEFAULT_PIN", "110001"),
		MemoCapacity:        memoCapacity,
		LinkDelay:           linkDelay,
		SendDelay:           sendDelay,
		ResolveAttempts:     resolveAttempts,
		ScrapeTimeout:       scrapeTimeout,
		LogLevel:            strings.ToLower(stringEnv("LOG_LEVEL", "info")),
		SelectorsConfigPath: os.Getenv("SELECTORS_CONFIG_PATH"),
	}

	if err := validator.New().ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return parsed, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return parsed, nil
}
