//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/care-moments/internal/bootstrap"
	"github.com/yanqian/care-moments/internal/domain/auth"
	"github.com/yanqian/care-moments/internal/domain/burnout"
	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/moments"
	"github.com/yanqian/care-moments/internal/domain/reflection"
	"github.com/yanqian/care-moments/internal/domain/suggestion"
	"github.com/yanqian/care-moments/internal/infra/config"
	httpiface "github.com/yanqian/care-moments/internal/interface/http"
	"github.com/yanqian/care-moments/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideInteractionConfig,
		provideBurnoutConfig,
		provideMomentsConfig,
		provideReflectionConfig,
		provideSuggestionConfig,
		provideAuthConfig,
		provideMetricsRegistry,
		provideTextCache,
		provideGenerator,
		provideTokenCounter,
		provideInteractionRepository,
		interaction.NewService,
		burnout.NewService,
		moments.NewService,
		reflection.NewService,
		suggestion.NewService,
		auth.NewService,
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
