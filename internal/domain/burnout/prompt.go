package burnout

import (
	"fmt"
	"strings"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

const (
	summarySampleSize = 10
	insightMaxTokens  = 80
)

// buildSummary describes the recent pattern: sample size, average mood, score and signals.
func buildSummary(records []interaction.Record, result Result) string {
	recent := interaction.SortNewestFirst(records)
	if len(recent) > summarySampleSize {
		recent = recent[:summarySampleSize]
	}

	mood := "N/A"
	if avg, ok := averageRating(recent, func(r interaction.Record) interaction.Rating { return r.MoodRating }); ok {
		mood = oneDecimal(avg)
	}

	var b strings.Builder
	b.WriteString("Recent caregiving pattern:\n")
	fmt.Fprintf(&b, "- %d interactions logged\n", len(recent))
	fmt.Fprintf(&b, "- Average mood: %s/5\n", mood)
	fmt.Fprintf(&b, "- Burnout risk score: %d/100\n", result.RiskScore)
	fmt.Fprintf(&b, "- Detected signals: %s", strings.Join(result.Signals, ", "))
	return b.String()
}

func buildInsightPrompt(summary string) string {
	return "As a compassionate caregiving coach, provide a brief, warm, personalized insight " +
		"(2-3 sentences, max 150 characters) about this caregiver's burnout risk:\n\n" +
		summary +
		"\n\nFocus on encouragement and actionable self-care advice. Be empathetic but concise."
}
