package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"PulseBoard/internal/agent"
	"PulseBoard/internal/commerce"
	"PulseBoard/internal/config"
	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/metrics"
	"PulseBoard/internal/model"
	"PulseBoard/internal/notifier"
	"PulseBoard/internal/provider"
	"PulseBoard/internal/recorder"
	"PulseBoard/internal/scheduler"
)

// app holds the wired components shared by serve and run.
type app struct {
	cfg       *config.Config
	startedAt time.Time
	store     *dashboard.Store
	shop      *commerce.ShopifyClient
	recorder  recorder.Recorder
	metrics   *metrics.Metrics
	scheduler *scheduler.Scheduler
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) *app {
	now := time.Now()
	rnd := agent.NewRand(now.UnixNano())

	a := &app{
		cfg:       cfg,
		startedAt: now,
		store:     dashboard.NewStore(cfg.Dashboard.TargetRevenue, now, rnd.Float64),
		shop:      commerce.NewShopifyClient(cfg.Commerce.BaseURL, cfg.Commerce.AccessToken, cfg.Proxy),
		recorder:  newRecorder(cfg),
		metrics:   metrics.New(),
	}
	m := a.store.Metrics()
	a.metrics.SetRevenue(m.Revenue, m.Target, m.Alerts)
	if cfg.Commerce.BaseURL == "" {
		log.Println("[WARN] commerce shop not configured, customer and revenue figures are simulated")
	}

	deps := agent.Deps{
		Store:    a.store,
		Commerce: a.shop,
		Rand:     rnd,
		Recorder: a.recorder,
		Metrics:  a.metrics,
	}

	var n notifier.Notifier
	if cfg.TelegramEnabled() {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy).WithRetry(2)
		log.Println("[INFO] revenue alerts go to Telegram")
	}

	a.scheduler = scheduler.NewScheduler(ctx,
		agent.NewContentAgent(deps, buildProviders(cfg), nil),
		agent.NewMarketingAgent(deps),
		agent.NewCustomerAgent(deps),
		agent.NewAnalyticsAgent(deps, n),
	)
	return a
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func buildProviders(cfg *config.Config) []provider.ContentProvider {
	var providers []provider.ContentProvider
	if key := cfg.Providers.OpenAI.APIKey; key != "" {
		p, err := provider.NewOpenAIProvider(key, cfg.Providers.OpenAI.Model, cfg.Providers.OpenAI.BaseURL, cfg.Proxy)
		if err != nil {
			log.Printf("[WARN] init openai provider: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if key := cfg.Providers.Claude.APIKey; key != "" {
		p, err := provider.NewClaudeProvider(key, cfg.Providers.Claude.Model, cfg.Providers.Claude.BaseURL, cfg.Proxy)
		if err != nil {
			log.Printf("[WARN] init claude provider: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if len(providers) == 0 {
		log.Println("[WARN] no text provider credentials, using mock content provider")
		providers = append(providers, &provider.MockProvider{})
	}
	for _, p := range providers {
		log.Printf("[INFO] content provider: %s", p.Name())
	}
	return providers
}

func (a *app) schedules() map[model.AgentName]string {
	return map[model.AgentName]string{
		model.AgentContent:   a.cfg.Schedule.Content,
		model.AgentMarketing: a.cfg.Schedule.Marketing,
		model.AgentCustomer:  a.cfg.Schedule.Customer,
		model.AgentAnalytics: a.cfg.Schedule.Analytics,
	}
}

func (a *app) close() {
	if err := a.recorder.Close(); err != nil {
		log.Printf("[ERROR] close recorder: %v", err)
	}
}
