package reflection

import (
	"time"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

const (
	// MinPreferenceConfidence is the weakest evidence kept from extraction.
	MinPreferenceConfidence = 0.5

	insightMaxTokens    = 100
	preferenceMaxTokens = 600
)

// Config wires runtime knobs for reflection generation.
type Config struct {
	InsightTemperature    float32
	PreferenceTemperature float32
	Timeout               time.Duration
}

// InsightResponse carries the generated insight; nil when none could be produced.
type InsightResponse struct {
	Insight *string `json:"insight"`
}

// PreferencesResponse lists newly learned preferences.
type PreferencesResponse struct {
	Preferences []interaction.Preference `json:"preferences"`
}

// extraction is the JSON object the model is asked to return.
type extraction struct {
	Preferences []interaction.Preference `json:"preferences"`
}
