package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "care_moments"

// Analysis kinds.
const (
	KindBurnout     = "burnout"
	KindMoments     = "moments"
	KindInsight     = "interaction_insight"
	KindPreferences = "preferences"
	KindSuggestions = "suggestions"
	KindTextCache   = "text_cache"
)

// Outcome labels.
const (
	OutcomeSuccess      = "success"
	OutcomeInsufficient = "insufficient_data"
	OutcomeError        = "error"
)

// Insight dispatch outcomes.
const (
	InsightSkipped   = "skipped"
	InsightGenerated = "generated"
	InsightEmpty     = "empty"
	InsightFailed    = "failed"
	InsightCached    = "cached"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Analyses computed, partitioned by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_seconds",
			Help:      "Analysis latency in seconds including optional text generation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"kind"},
	)

	burnoutRiskScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "burnout_risk_score",
			Help:      "Distribution of computed burnout risk scores.",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	insightDispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_dispatch_total",
			Help:      "Text generation dispatches, partitioned by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	llmTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "Tokens reported by the language model API.",
		},
		[]string{"type"},
	)
)

// Register attaches the service collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysesTotal,
		analysisDurationSeconds,
		burnoutRiskScore,
		insightDispatchTotal,
		llmTokensTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records an analysis duration and outcome label.
func ObserveAnalysis(kind string, duration time.Duration, outcome string) {
	switch outcome {
	case OutcomeInsufficient, OutcomeError:
	default:
		outcome = OutcomeSuccess
	}
	analysesTotal.WithLabelValues(kind, outcome).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// ObserveRiskScore records a computed burnout score.
func ObserveRiskScore(score int) {
	burnoutRiskScore.Observe(float64(score))
}

// ObserveInsight counts one text generation dispatch decision.
func ObserveInsight(kind, outcome string) {
	insightDispatchTotal.WithLabelValues(kind, outcome).Inc()
}

// TokenUsage is the token accounting reported by the model provider for one completion.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// IsZero reports whether the provider returned no usage.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// ObserveTokens adds reported token usage.
func ObserveTokens(usage TokenUsage) {
	if usage.IsZero() {
		return
	}
	llmTokensTotal.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	llmTokensTotal.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}
