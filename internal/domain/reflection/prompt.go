package reflection

import (
	"fmt"
	"strings"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func buildInsightPrompt(rec interaction.Record) string {
	var b strings.Builder
	b.WriteString("Generate a brief, warm insight from this caregiving moment:\n\n")
	fmt.Fprintf(&b, "Activity: %s\n", rec.ActivityType)
	fmt.Fprintf(&b, "Title: %s\n", orNA(rec.Title))
	fmt.Fprintf(&b, "Description: %s\n", orNA(rec.Description))
	fmt.Fprintf(&b, "Mood: %s/5\n", interaction.RatingLabel(rec.MoodRating))
	fmt.Fprintf(&b, "Success: %s/5\n\n", interaction.RatingLabel(rec.SuccessLevel))
	b.WriteString("Write 1-2 sentences highlighting what made this moment special or what can be learned for future care. ")
	b.WriteString("Be warm and encouraging. Keep it under 100 characters.")
	return b.String()
}

func buildPreferencePrompt(rec interaction.Record, existingKeys []string) string {
	tags := "None"
	if len(rec.Tags) > 0 {
		tags = strings.Join(rec.Tags, ", ")
	}
	known := "None"
	if len(existingKeys) > 0 {
		known = strings.Join(existingKeys, ", ")
	}

	var b strings.Builder
	b.WriteString("Analyze this care interaction and extract any preferences or patterns that could help future care.\n\n")
	b.WriteString("Interaction:\n")
	fmt.Fprintf(&b, "- Type: %s\n", rec.ActivityType)
	fmt.Fprintf(&b, "- Title: %s\n", orNA(rec.Title))
	fmt.Fprintf(&b, "- Description: %s\n", orNA(rec.Description))
	fmt.Fprintf(&b, "- Mood Rating: %s/5\n", interaction.RatingLabel(rec.MoodRating))
	fmt.Fprintf(&b, "- Success Level: %s/5\n", interaction.RatingLabel(rec.SuccessLevel))
	fmt.Fprintf(&b, "- Tags: %s\n\n", tags)
	fmt.Fprintf(&b, "Already Known Preferences (don't duplicate these):\n%s\n\n", known)
	b.WriteString(`Extract NEW preferences only. Consider:
- Activity preferences (what they enjoy)
- Communication preferences (how they like to interact)
- Routine preferences (timing, duration)
- Dignity notes (what makes them feel respected)
- Food preferences
- Music preferences
- Social preferences

Respond in JSON format:
{
  "preferences": [
    {
      "category": "activity|communication|routine|dignity|food|music|social|other",
      "preference_key": "short key name",
      "preference_value": "detailed description",
      "confidence_score": 0.0-1.0 (based on how strong the evidence is)
    }
  ]
}

Only include preferences with confidence >= 0.5. Return empty array if no clear preferences can be extracted.`)
	return b.String()
}
