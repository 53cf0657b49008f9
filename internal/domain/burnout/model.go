package burnout

import "time"

// Score tiers.
const (
	// InsightThreshold is the minimum score that makes the analysis ask for a generated insight.
	InsightThreshold = 40
	highRiskScore    = 60
	lowRiskScore     = 20
	maxRiskScore     = 100

	// MinRecords is the minimum history size for any scoring.
	MinRecords = 7
)

// Risk levels.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// Result is the burnout analysis returned to callers.
type Result struct {
	RiskScore       int      `json:"riskScore"`
	RiskLevel       string   `json:"riskLevel"`
	Signals         []string `json:"signals"`
	Recommendations []string `json:"recommendations"`
	AIInsight       string   `json:"aiInsight,omitempty"`
}

// Config wires runtime knobs for the burnout service.
type Config struct {
	Temperature        float32
	InsightTimeout     time.Duration
	InsightTokenBudget int
}

func levelFor(score int) string {
	switch {
	case score >= highRiskScore:
		return LevelHigh
	case score >= InsightThreshold:
		return LevelModerate
	default:
		return LevelLow
	}
}
