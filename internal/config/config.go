package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"EconSim/internal/advisor"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr" env:"ECONSIM_ADDR"`
	} `yaml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Gemini struct {
		APIKey   string `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model    string `yaml:"model" env:"GEMINI_MODEL"`
		Language string `yaml:"language" env:"ECONSIM_LANGUAGE"`
	} `yaml:"gemini"`
	Schedule struct {
		DigestCron   string `yaml:"digest_cron" env:"CRON_DIGEST"`
		SnapshotCron string `yaml:"snapshot_cron" env:"CRON_SNAPSHOT"`
	} `yaml:"schedule"`
	Storage struct {
		SQLitePath   string `yaml:"sqlite_path" env:"SQLITE_PATH"`
		SnapshotPath string `yaml:"snapshot_path" env:"SNAPSHOT_PATH"`
		ScenarioDir  string `yaml:"scenario_dir" env:"SCENARIO_DIR"`
	} `yaml:"storage"`
	Supabase struct {
		URL         string `yaml:"url" env:"SUPABASE_URL"`
		Key         string `yaml:"key" env:"SUPABASE_KEY"`
		TablePrefix string `yaml:"table_prefix" env:"SUPABASE_TABLE_PREFIX"`
	} `yaml:"supabase"`
	Engine struct {
		StrictBounds bool `yaml:"strict_bounds" env:"ENGINE_STRICT_BOUNDS"`
	} `yaml:"engine"`
	Proxy string `yaml:"proxy" env:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = advisor.DefaultModel
	}
	if c.Gemini.Language == "" {
		c.Gemini.Language = "English"
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = "0 0 9 * * 1"
	}
	if c.Schedule.SnapshotCron == "" {
		c.Schedule.SnapshotCron = "0 */5 * * * *"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/econsim.db"
	}
	if c.Storage.SnapshotPath == "" {
		c.Storage.SnapshotPath = "data/snapshot.json.zst"
	}
	if c.Storage.ScenarioDir == "" {
		c.Storage.ScenarioDir = "configs/scenarios"
	}
	if c.Supabase.TablePrefix == "" {
		c.Supabase.TablePrefix = "econsim_"
	}
}

// TelegramEnabled reports whether both bot token and chat id are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// SupabaseEnabled reports whether the remote turn log is configured.
func (c *Config) SupabaseEnabled() bool {
	return c.Supabase.URL != "" && c.Supabase.Key != ""
}

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that the settings are consistent.
func (c *Config) Validate() error {
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return errors.New("telegram.bot_token and telegram.chat_id must be set together")
	}
	if (c.Supabase.URL == "") != (c.Supabase.Key == "") {
		return errors.New("supabase.url and supabase.key must be set together")
	}
	if c.Gemini.APIKey != "" {
		if err := advisor.ValidateAPIKey(c.Gemini.APIKey); err != nil {
			return fmt.Errorf("gemini.api_key: %w", err)
		}
	}
	if _, ok := advisor.Models[c.Gemini.Model]; !ok {
		return fmt.Errorf("gemini.model %q is not supported", c.Gemini.Model)
	}
	if _, err := cronParser.Parse(c.Schedule.DigestCron); err != nil {
		return fmt.Errorf("schedule.digest_cron: %w", err)
	}
	if _, err := cronParser.Parse(c.Schedule.SnapshotCron); err != nil {
		return fmt.Errorf("schedule.snapshot_cron: %w", err)
	}
	return nil
}
