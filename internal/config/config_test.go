package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Gemini.Model != "gemini-2.5-flash" || cfg.Storage.ScenarioDir != "configs/scenarios" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TelegramEnabled() || cfg.SupabaseEnabled() {
		t.Error("optional integrations should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
telegram:
  bot_token: "file-token"
  chat_id: "1"
gemini:
  model: gemini-2.5-pro
engine:
  strict_bounds: true
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Gemini.Model != "gemini-2.5-pro" || !cfg.Engine.StrictBounds {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Telegram.BotToken != "env-token" || cfg.Telegram.ChatID != "1" {
		t.Errorf("env override not applied: %+v", cfg.Telegram)
	}
	if cfg.Storage.SQLitePath != "/tmp/x.db" {
		t.Errorf("expected env sqlite path, got %q", cfg.Storage.SQLitePath)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "x" }, "telegram"},
		{"supabase half set", func(c *Config) { c.Supabase.URL = "https://x.supabase.co" }, "supabase"},
		{"bad key", func(c *Config) { c.Gemini.APIKey = "sk-123" }, "AIza"},
		{"unknown model", func(c *Config) { c.Gemini.Model = "gemini-pro" }, "not supported"},
		{"bad cron", func(c *Config) { c.Schedule.DigestCron = "every monday" }, "digest_cron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}
