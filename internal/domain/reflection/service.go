package reflection

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/textgen"
	apperrors "github.com/yanqian/care-moments/pkg/errors"
	"github.com/yanqian/care-moments/pkg/metrics"
)

// Service turns a single interaction into an insight or learned preferences.
type Service interface {
	Insight(ctx context.Context, rec interaction.Record) (InsightResponse, error)
	ExtractPreferences(ctx context.Context, rec interaction.Record, existing []interaction.Preference) (PreferencesResponse, error)
}

type service struct {
	cfg       Config
	generator textgen.Generator
	logger    *slog.Logger
}

// NewService wires the reflection domain. A nil generator yields empty results.
func NewService(cfg Config, generator textgen.Generator, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: generator,
		logger:    logger.With("component", "reflection.service"),
	}
}

func (s *service) Insight(ctx context.Context, rec interaction.Record) (InsightResponse, error) {
	start := time.Now()
	if s.generator == nil {
		metrics.ObserveInsight(metrics.KindInsight, metrics.InsightSkipped)
		return InsightResponse{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text, err := s.generator.Generate(ctx, textgen.Request{
		Prompt:      buildInsightPrompt(rec),
		MaxTokens:   insightMaxTokens,
		Temperature: s.cfg.InsightTemperature,
	})
	if err != nil {
		metrics.ObserveInsight(metrics.KindInsight, metrics.InsightFailed)
		metrics.ObserveAnalysis(metrics.KindInsight, time.Since(start), metrics.OutcomeError)
		s.logger.Warn("interaction insight failed", "interaction_id", rec.ID, "error", err)
		return InsightResponse{}, apperrors.Wrap(apperrors.CodeLLM, "failed to generate insight", err)
	}
	metrics.ObserveAnalysis(metrics.KindInsight, time.Since(start), metrics.OutcomeSuccess)

	text = strings.TrimSpace(text)
	if text == "" {
		metrics.ObserveInsight(metrics.KindInsight, metrics.InsightEmpty)
		return InsightResponse{}, nil
	}
	metrics.ObserveInsight(metrics.KindInsight, metrics.InsightGenerated)
	return InsightResponse{Insight: &text}, nil
}

func (s *service) ExtractPreferences(ctx context.Context, rec interaction.Record, existing []interaction.Preference) (PreferencesResponse, error) {
	start := time.Now()
	empty := PreferencesResponse{Preferences: []interaction.Preference{}}
	if s.generator == nil {
		metrics.ObserveInsight(metrics.KindPreferences, metrics.InsightSkipped)
		return empty, nil
	}

	keys := existingKeys(existing)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text, err := s.generator.Generate(ctx, textgen.Request{
		Prompt:      buildPreferencePrompt(rec, keys),
		MaxTokens:   preferenceMaxTokens,
		Temperature: s.cfg.PreferenceTemperature,
		JSON:        true,
	})
	if err != nil {
		metrics.ObserveInsight(metrics.KindPreferences, metrics.InsightFailed)
		metrics.ObserveAnalysis(metrics.KindPreferences, time.Since(start), metrics.OutcomeError)
		s.logger.Warn("preference extraction failed", "interaction_id", rec.ID, "error", err)
		return empty, apperrors.Wrap(apperrors.CodeLLM, "failed to extract preferences", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.ObserveInsight(metrics.KindPreferences, metrics.InsightEmpty)
		metrics.ObserveAnalysis(metrics.KindPreferences, time.Since(start), metrics.OutcomeSuccess)
		return empty, nil
	}

	var parsed extraction
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		metrics.ObserveInsight(metrics.KindPreferences, metrics.InsightFailed)
		metrics.ObserveAnalysis(metrics.KindPreferences, time.Since(start), metrics.OutcomeError)
		s.logger.Warn("preference reply was not valid json", "interaction_id", rec.ID, "error", err)
		return empty, apperrors.Wrap(apperrors.CodeLLM, "invalid preference reply", err)
	}

	prefs := filterPreferences(parsed.Preferences, keys)
	metrics.ObserveInsight(metrics.KindPreferences, metrics.InsightGenerated)
	metrics.ObserveAnalysis(metrics.KindPreferences, time.Since(start), metrics.OutcomeSuccess)
	s.logger.Info("preferences extracted",
		"interaction_id", rec.ID,
		"proposed", len(parsed.Preferences),
		"kept", len(prefs),
	)
	return PreferencesResponse{Preferences: prefs}, nil
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func existingKeys(existing []interaction.Preference) []string {
	keys := make([]string, 0, len(existing))
	for _, p := range existing {
		if k := strings.TrimSpace(p.Key); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// filterPreferences keeps confident, well-formed, previously unknown preferences.
func filterPreferences(proposed []interaction.Preference, known []string) []interaction.Preference {
	seen := make(map[string]struct{}, len(known)+len(proposed))
	for _, k := range known {
		seen[strings.ToLower(k)] = struct{}{}
	}

	out := make([]interaction.Preference, 0, len(proposed))
	for _, p := range proposed {
		p.Key = strings.TrimSpace(p.Key)
		p.Value = strings.TrimSpace(p.Value)
		if p.Key == "" || p.Value == "" || math.IsNaN(p.Confidence) {
			continue
		}
		p.Confidence = math.Min(math.Max(p.Confidence, 0), 1)
		if p.Confidence < MinPreferenceConfidence {
			continue
		}
		folded := strings.ToLower(p.Key)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		p.Category = interaction.NormalizeCategory(p.Category)
		out = append(out, p)
	}
	return out
}
