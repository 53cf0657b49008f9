package suggestion

import (
	"time"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

// Sources of a suggestion list.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

const (
	// MaxSuggestions bounds the list returned to callers.
	MaxSuggestions = 3

	contextInteractions = 5
	goodSuccess         = 4
	minPreferenceScore  = 0.6
	suggestionMaxTokens = 700
	defaultTimeOfDay    = "morning"
)

var timesOfDay = map[string]struct{}{
	"morning":   {},
	"afternoon": {},
	"evening":   {},
	"night":     {},
}

// Request describes who the suggestions are for and what is known about them.
type Request struct {
	RecipientName      string                   `json:"recipientName"`
	RecentInteractions []interaction.Record     `json:"recentInteractions"`
	Preferences        []interaction.Preference `json:"preferences"`
	CurrentMood        interaction.Rating       `json:"currentMood"`
	TimeOfDay          string                   `json:"timeOfDay"`
}

// Suggestion is one proposed activity.
type Suggestion struct {
	Activity          string  `json:"activity"`
	Reasoning         string  `json:"reasoning"`
	EstimatedDuration string  `json:"estimated_duration"`
	Confidence        float64 `json:"confidence"`
}

// Response lists suggestions and where they came from.
type Response struct {
	Suggestions []Suggestion `json:"suggestions"`
	Source      string       `json:"source"`
}

// Config wires runtime knobs for suggestion generation.
type Config struct {
	Temperature float32
	Timeout     time.Duration
}

type generated struct {
	Suggestions []Suggestion `json:"suggestions"`
}
