package burnout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/textgen"
	"github.com/yanqian/care-moments/pkg/metrics"
	"github.com/yanqian/care-moments/pkg/util"
)

// Service exposes burnout risk analysis.
type Service interface {
	Analyze(ctx context.Context, records []interaction.Record) (Result, error)
}

type service struct {
	cfg       Config
	generator textgen.Generator
	budget    textgen.Budget
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the burnout domain. A nil generator disables generated insights.
func NewService(cfg Config, generator textgen.Generator, counter textgen.TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: generator,
		budget:    textgen.NewBudget(counter, cfg.InsightTokenBudget),
		logger:    logger.With("component", "burnout.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Analyze(ctx context.Context, records []interaction.Record) (Result, error) {
	start := time.Now()
	result := Detect(records, s.now())

	outcome := metrics.OutcomeSuccess
	if len(records) < MinRecords {
		outcome = metrics.OutcomeInsufficient
	}
	metrics.ObserveRiskScore(result.RiskScore)

	if insight, ok := s.dispatchInsight(ctx, records, result); ok {
		result.AIInsight = insight
	}

	metrics.ObserveAnalysis(metrics.KindBurnout, time.Since(start), outcome)
	s.logger.Info("burnout analysis completed",
		"records", len(records),
		"risk_score", result.RiskScore,
		"signals", len(result.Signals),
		"ai_insight", result.AIInsight != "",
	)
	return result, nil
}

// dispatchInsight asks the generator for a short narrative on elevated scores.
// Generator failures are absorbed: the analysis is returned without an insight.
func (s *service) dispatchInsight(ctx context.Context, records []interaction.Record, result Result) (string, bool) {
	if s.generator == nil || result.RiskScore < InsightThreshold {
		metrics.ObserveInsight(metrics.KindBurnout, metrics.InsightSkipped)
		return "", false
	}

	if s.cfg.InsightTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.InsightTimeout)
		defer cancel()
	}

	summary := s.budget.Fit(buildSummary(records, result))
	text, err := s.generator.Generate(ctx, textgen.Request{
		Prompt:      buildInsightPrompt(summary),
		MaxTokens:   insightMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		metrics.ObserveInsight(metrics.KindBurnout, metrics.InsightFailed)
		s.logger.Warn("burnout insight generation failed", "risk_score", result.RiskScore, "error", err)
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.ObserveInsight(metrics.KindBurnout, metrics.InsightEmpty)
		return "", false
	}
	metrics.ObserveInsight(metrics.KindBurnout, metrics.InsightGenerated)
	return text, true
}
