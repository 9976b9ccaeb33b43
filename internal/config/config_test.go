package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("PORT", "9090")
	t.Setenv("CHANNEL_TAG", "@mychannel")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.TelegramToken != "123:abc" {
		t.Errorf("Expected 123:abc, got %s", cfg.TelegramToken)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected 9090, got %s", cfg.Port)
	}
	if cfg.ChannelTag != "@mychannel" {
		t.Errorf("Expected @mychannel, got %s", cfg.ChannelTag)
	}
	if cfg.DefaultPin != "110001" {
		t.Errorf("Expected default pin 110001, got %s", cfg.DefaultPin)
	}
	if cfg.MemoCapacity != 200 {
		t.Errorf("Expected default MemoCapacity 200, got %d", cfg.MemoCapacity)
	}
	if cfg.LinkDelay != time.Second {
		t.Errorf("Expected default LinkDelay 1s, got %s", cfg.LinkDelay)
	}
	if cfg.SendDelay != 500*time.Millisecond {
		t.Errorf("Expected default SendDelay 500ms, got %s", cfg.SendDelay)
	}
	if cfg.ResolveAttempts != 3 {
		t.Errorf("Expected default ResolveAttempts 3, got %d", cfg.ResolveAttempts)
	}
	if cfg.ScrapeTimeout != 20*time.Second {
		t.Errorf("Expected default ScrapeTimeout 20s, got %s", cfg.ScrapeTimeout)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("Expected info level, got %s", cfg.SlogLevel())
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Error("Load() should return an error when TELEGRAM_BOT_TOKEN is not set")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("LINK_DELAY", "250ms")
	t.Setenv("MEMO_CAPACITY", "50")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SELECTORS_CONFIG_PATH", "/etc/deal-bot/selectors.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.LinkDelay != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %s", cfg.LinkDelay)
	}
	if cfg.MemoCapacity != 50 {
		t.Errorf("Expected 50, got %d", cfg.MemoCapacity)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("Expected debug level, got %s", cfg.SlogLevel())
	}
	if cfg.SelectorsConfigPath != "/etc/deal-bot/selectors.json" {
		t.Errorf("Expected selectors path to be kept, got %s", cfg.SelectorsConfigPath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad duration", "LINK_DELAY", "not-a-duration"},
		{"Bad integer", "MEMO_CAPACITY", "lots"},
		{"Zero memo capacity", "MEMO_CAPACITY", "0"},
		{"Short pin", "DEFAULT_PIN", "1100"},
		{"Unknown log level", "LOG_LEVEL", "verbose"},
		{"Zero resolve attempts", "RESOLVE_ATTEMPTS", "0"},
		{"Non-numeric port", "PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should return an error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
