package textgen

import (
	"strings"
	"unicode/utf8"
)

// TokenCounter measures and truncates text in model tokens.
type TokenCounter interface {
	Count(text string) int
	Truncate(text string, maxTokens int) string
}

// Budget bounds the size of prompt sections.
type Budget struct {
	counter   TokenCounter
	maxTokens int
}

// NewBudget builds a budget. A nil counter falls back to a four-characters-per-token estimate.
func NewBudget(counter TokenCounter, maxTokens int) Budget {
	if counter == nil {
		counter = RuneEstimator{}
	}
	return Budget{counter: counter, maxTokens: maxTokens}
}

// Fit returns text cut to the budget. Non-positive budgets disable trimming.
func (b Budget) Fit(text string) string {
	if b.maxTokens <= 0 || b.counter == nil {
		return text
	}
	if b.counter.Count(text) <= b.maxTokens {
		return text
	}
	return strings.TrimSpace(b.counter.Truncate(text, b.maxTokens))
}

// RuneEstimator approximates tokens as four runes each.
type RuneEstimator struct{}

const runesPerToken = 4

// Count implements TokenCounter.
func (RuneEstimator) Count(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + runesPerToken - 1) / runesPerToken
}

// Truncate implements TokenCounter.
func (RuneEstimator) Truncate(text string, maxTokens int) string {
	limit := maxTokens * runesPerToken
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
