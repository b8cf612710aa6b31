package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr      string `yaml:"addr"`
		StaticDir string `yaml:"static_dir"`
		Debug     bool   `yaml:"debug"`
	} `yaml:"server"`
	Providers struct {
		OpenAI struct {
			APIKey  string `yaml:"api_key"`
			Model   string `yaml:"model"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"openai"`
		Claude struct {
			APIKey  string `yaml:"api_key"`
			Model   string `yaml:"model"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"claude"`
	} `yaml:"providers"`
	Commerce struct {
		ShopName    string `yaml:"shop_name"`
		AccessToken string `yaml:"access_token"`
		APIVersion  string `yaml:"api_version"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"commerce"`
	Dashboard struct {
		TargetRevenue float64 `yaml:"target_revenue"`
	} `yaml:"dashboard"`
	Schedule struct {
		Content      string `yaml:"content"`
		Marketing    string `yaml:"marketing"`
		Customer     string `yaml:"customer"`
		Analytics    string `yaml:"analytics"`
		StartupDelay string `yaml:"startup_delay"`
		RunOnStart   *bool  `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`

	envErr error
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: environment and defaults are enough to run.
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

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if os.Getenv("GIN_DEBUG") == "true" {
		c.Server.Debug = true
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Providers.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.Providers.OpenAI.BaseURL = v
	}
	if v := os.Getenv("CLAUDE_API_KEY"); v != "" {
		c.Providers.Claude.APIKey = v
	}
	if v := os.Getenv("SHOPIFY_SHOP_NAME"); v != "" {
		c.Commerce.ShopName = v
	}
	if v := os.Getenv("SHOPIFY_ACCESS_TOKEN"); v != "" {
		c.Commerce.AccessToken = v
	}
	if v := os.Getenv("TARGET_REVENUE"); v != "" {
		target, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("[WARN] ignoring TARGET_REVENUE=%q: not a number", v)
			c.envErr = fmt.Errorf("TARGET_REVENUE: invalid number %q", v)
		} else {
			c.Dashboard.TargetRevenue = target
		}
	}
	if v := os.Getenv("CRON_CONTENT"); v != "" {
		c.Schedule.Content = v
	}
	if v := os.Getenv("CRON_MARKETING"); v != "" {
		c.Schedule.Marketing = v
	}
	if v := os.Getenv("CRON_CUSTOMER"); v != "" {
		c.Schedule.Customer = v
	}
	if v := os.Getenv("CRON_ANALYTICS"); v != "" {
		c.Schedule.Analytics = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		run := v == "true"
		c.Schedule.RunOnStart = &run
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "public"
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = "gpt-4"
	}
	if c.Providers.Claude.Model == "" {
		c.Providers.Claude.Model = "claude-3-sonnet-20240229"
	}
	if c.Providers.Claude.BaseURL == "" {
		c.Providers.Claude.BaseURL = "https://api.anthropic.com/v1"
	}
	if c.Commerce.APIVersion == "" {
		c.Commerce.APIVersion = "2023-10"
	}
	if c.Commerce.BaseURL == "" && c.Commerce.ShopName != "" {
		c.Commerce.BaseURL = fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", c.Commerce.ShopName, c.Commerce.APIVersion)
	}
	if c.Dashboard.TargetRevenue == 0 {
		c.Dashboard.TargetRevenue = 5000
	}
	if c.Schedule.Content == "" {
		c.Schedule.Content = "@every 2m"
	}
	if c.Schedule.Marketing == "" {
		c.Schedule.Marketing = "@every 5m"
	}
	if c.Schedule.Customer == "" {
		c.Schedule.Customer = "@every 3m"
	}
	if c.Schedule.Analytics == "" {
		c.Schedule.Analytics = "@every 1m"
	}
	if c.Schedule.StartupDelay == "" {
		c.Schedule.StartupDelay = "5s"
	}
	if c.Schedule.RunOnStart == nil {
		run := true
		c.Schedule.RunOnStart = &run
	}
}

// StartupDelay returns the parsed delay before the initial run of all agents.
func (c *Config) StartupDelay() time.Duration {
	d, err := time.ParseDuration(c.Schedule.StartupDelay)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// RunOnStart reports whether all agents run once shortly after startup.
func (c *Config) RunOnStart() bool {
	return c.Schedule.RunOnStart == nil || *c.Schedule.RunOnStart
}

// TelegramEnabled reports whether revenue alerts are sent to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.envErr != nil {
		return c.envErr
	}
	if c.Dashboard.TargetRevenue <= 0 {
		return fmt.Errorf("dashboard.target_revenue must be positive")
	}
	specs := map[string]string{
		"schedule.content":   c.Schedule.Content,
		"schedule.marketing": c.Schedule.Marketing,
		"schedule.customer":  c.Schedule.Customer,
		"schedule.analytics": c.Schedule.Analytics,
	}
	for key, spec := range specs {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("%s: invalid cron spec %q: %w", key, spec, err)
		}
	}
	if d, err := time.ParseDuration(c.Schedule.StartupDelay); err != nil {
		return fmt.Errorf("schedule.startup_delay: %w", err)
	} else if d < 0 {
		return fmt.Errorf("schedule.startup_delay must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
