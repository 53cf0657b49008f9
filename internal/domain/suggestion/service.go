package suggestion

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/yanqian/care-moments/internal/domain/textgen"
	apperrors "github.com/yanqian/care-moments/pkg/errors"
	"github.com/yanqian/care-moments/pkg/metrics"
)

// Service proposes activities for a care recipient.
type Service interface {
	Suggest(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg       Config
	generator textgen.Generator
	logger    *slog.Logger
}

// NewService wires the suggestion domain. A nil generator always serves the fallback catalogue.
func NewService(cfg Config, generator textgen.Generator, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: generator,
		logger:    logger.With("component", "suggestion.service"),
	}
}

func (s *service) Suggest(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	req.RecipientName = strings.TrimSpace(req.RecipientName)
	if req.RecipientName == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "recipientName is required", nil)
	}
	req.TimeOfDay = strings.ToLower(strings.TrimSpace(req.TimeOfDay))
	if req.TimeOfDay == "" {
		req.TimeOfDay = defaultTimeOfDay
	}
	if _, ok := timesOfDay[req.TimeOfDay]; !ok {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "timeOfDay must be one of morning, afternoon, evening or night", nil)
	}

	if s.generator == nil {
		metrics.ObserveInsight(metrics.KindSuggestions, metrics.InsightSkipped)
		metrics.ObserveAnalysis(metrics.KindSuggestions, time.Since(start), metrics.OutcomeSuccess)
		return s.fallback(req), nil
	}

	suggestions, err := s.generate(ctx, req)
	if err != nil {
		metrics.ObserveInsight(metrics.KindSuggestions, metrics.InsightFailed)
		metrics.ObserveAnalysis(metrics.KindSuggestions, time.Since(start), metrics.OutcomeSuccess)
		s.logger.Warn("suggestion generation failed, serving fallback", "time_of_day", req.TimeOfDay, "error", err)
		return s.fallback(req), nil
	}
	if len(suggestions) == 0 {
		metrics.ObserveInsight(metrics.KindSuggestions, metrics.InsightEmpty)
		metrics.ObserveAnalysis(metrics.KindSuggestions, time.Since(start), metrics.OutcomeSuccess)
		return s.fallback(req), nil
	}

	metrics.ObserveInsight(metrics.KindSuggestions, metrics.InsightGenerated)
	metrics.ObserveAnalysis(metrics.KindSuggestions, time.Since(start), metrics.OutcomeSuccess)
	s.logger.Info("suggestions generated", "time_of_day", req.TimeOfDay, "count", len(suggestions))
	return Response{Suggestions: suggestions, Source: SourceAI}, nil
}

func (s *service) generate(ctx context.Context, req Request) ([]Suggestion, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	text, err := s.generator.Generate(ctx, textgen.Request{
		Prompt:      buildPrompt(req),
		MaxTokens:   suggestionMaxTokens,
		Temperature: s.cfg.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var parsed generated
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "invalid suggestion reply", err)
	}
	return normalize(parsed.Suggestions), nil
}

func (s *service) fallback(req Request) Response {
	return Response{Suggestions: fallbackFor(req.RecipientName, req.TimeOfDay), Source: SourceFallback}
}

// normalize drops blank and repeated activities, clamps confidence and caps the list.
func normalize(in []Suggestion) []Suggestion {
	seen := make(map[string]struct{}, len(in))
	out := make([]Suggestion, 0, MaxSuggestions)
	for _, sug := range in {
		sug.Activity = strings.TrimSpace(sug.Activity)
		if sug.Activity == "" {
			continue
		}
		key := strings.ToLower(sug.Activity)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if math.IsNaN(sug.Confidence) {
			sug.Confidence = 0
		}
		sug.Confidence = math.Min(math.Max(sug.Confidence, 0), 1)
		sug.Reasoning = strings.TrimSpace(sug.Reasoning)
		sug.EstimatedDuration = strings.TrimSpace(sug.EstimatedDuration)
		out = append(out, sug)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
