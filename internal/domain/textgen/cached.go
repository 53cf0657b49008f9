package textgen

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/care-moments/pkg/metrics"
)

// Cache stores generated text by request fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type cachedGenerator struct {
	next   Generator
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// WithCache wraps a generator so identical prompts within ttl reuse the stored reply.
// Cache failures are logged and never block generation. Empty replies are not stored.
func WithCache(next Generator, cache Cache, ttl time.Duration, logger *slog.Logger) Generator {
	if next == nil || cache == nil {
		return next
	}
	return &cachedGenerator{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "textgen.cache"),
	}
}

func (g *cachedGenerator) Generate(ctx context.Context, req Request) (string, error) {
	key := req.Fingerprint()
	if text, ok, err := g.cache.Get(ctx, key); err != nil {
		g.logger.Warn("text cache lookup failed", "error", err)
	} else if ok {
		metrics.ObserveInsight(metrics.KindTextCache, metrics.InsightCached)
		return text, nil
	}

	text, err := g.next.Generate(ctx, req)
	if err != nil || text == "" {
		return text, err
	}
	if err := g.cache.Set(ctx, key, text, g.ttl); err != nil {
		g.logger.Warn("text cache store failed", "error", err)
	}
	return text, nil
}
