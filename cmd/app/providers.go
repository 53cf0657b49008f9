package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/care-moments/internal/domain/auth"
	"github.com/yanqian/care-moments/internal/domain/burnout"
	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/moments"
	"github.com/yanqian/care-moments/internal/domain/reflection"
	"github.com/yanqian/care-moments/internal/domain/suggestion"
	"github.com/yanqian/care-moments/internal/domain/textgen"
	"github.com/yanqian/care-moments/internal/infra/config"
	"github.com/yanqian/care-moments/internal/infra/insightcache"
	"github.com/yanqian/care-moments/internal/infra/interactionrepo"
	"github.com/yanqian/care-moments/internal/infra/llm/chatgpt"
	"github.com/yanqian/care-moments/internal/infra/llm/tokenizer"
	"github.com/yanqian/care-moments/pkg/metrics"
)

// preferenceTemperature keeps preference extraction close to the evidence.
const preferenceTemperature = 0.3

func provideInteractionConfig(cfg *config.Config) interaction.Config {
	return interaction.Config{HistoryDays: cfg.Analytics.HistoryDays}
}

func provideBurnoutConfig(cfg *config.Config) burnout.Config {
	return burnout.Config{
		Temperature:        cfg.LLM.Temperature,
		InsightTimeout:     cfg.LLM.Timeout,
		InsightTokenBudget: cfg.LLM.InsightTokenBudget,
	}
}

func provideMomentsConfig(cfg *config.Config) moments.Config {
	return moments.Config{Timezone: cfg.Analytics.Timezone}
}

func provideReflectionConfig(cfg *config.Config) reflection.Config {
	return reflection.Config{
		InsightTemperature:    cfg.LLM.Temperature,
		PreferenceTemperature: preferenceTemperature,
		Timeout:               cfg.LLM.Timeout,
	}
}

func provideSuggestionConfig(cfg *config.Config) suggestion.Config {
	return suggestion.Config{
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		JWKSURL:   cfg.Auth.JWKSURL,
		Issuer:    cfg.Auth.Issuer,
		Audience:  cfg.Auth.Audience,
	}
}

func provideMetricsRegistry() (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// provideGenerator returns nil when no API key is configured; callers then skip generated text.
func provideGenerator(cfg *config.Config, cache textgen.Cache, logger *slog.Logger) (textgen.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Info("llm api key not set, generated text disabled")
		return nil, nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}
	generator := chatgpt.NewGenerator(client, cfg.LLM.Model)
	return textgen.WithCache(generator, cache, cfg.Cache.TTL, logger), nil
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) textgen.TokenCounter {
	counter, err := tokenizer.New(cfg.LLM.Model)
	if err != nil {
		logger.Warn("tiktoken unavailable, estimating prompt tokens", "model", cfg.LLM.Model, "error", err)
		return nil
	}
	return counter
}

func provideInteractionRepository(cfg *config.Config, logger *slog.Logger) (interaction.Repository, func()) {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		return memoryInteractionRepository(logger, "postgres dsn not set", nil)
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return memoryInteractionRepository(logger, "invalid postgres dsn", err)
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return memoryInteractionRepository(logger, "failed to initialize postgres pool", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return memoryInteractionRepository(logger, "postgres ping failed", err)
	}
	logger.Info("postgres interaction repository enabled")
	return interactionrepo.NewPostgresRepository(pool), pool.Close
}

// memoryInteractionRepository holds no care relationships, so recipient routes answer not_found.
func memoryInteractionRepository(logger *slog.Logger, reason string, err error) (interaction.Repository, func()) {
	attrs := []any{"reason", reason}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	logger.Warn("interaction datastore unavailable, /api/v1/recipients/:id routes will return not_found", attrs...)
	return interactionrepo.NewMemoryRepository(), func() {}
}

func provideTextCache(cfg *config.Config, logger *slog.Logger) (textgen.Cache, func()) {
	noop := func() {}
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return insightcache.NewMemoryStore(), noop
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return insightcache.NewMemoryStore(), noop
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("valkey text cache enabled", "addr", cfg.Cache.Addr)
			return insightcache.NewValkeyStore(client, cfg.Cache.Prefix), client.Close
		}
	}
	return insightcache.NewMemoryStore(), noop
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Cache.Addr, "://") {
		return valkey.ParseURL(cfg.Cache.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}, nil
}
