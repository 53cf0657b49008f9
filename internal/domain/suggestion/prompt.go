package suggestion

import (
	"fmt"
	"strings"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

// successfulRecent picks the most recent interactions that went well.
func successfulRecent(records []interaction.Record) []interaction.Record {
	out := make([]interaction.Record, 0, contextInteractions)
	for _, rec := range interaction.SortNewestFirst(records) {
		if !rec.SuccessLevel.AtLeast(goodSuccess) {
			continue
		}
		out = append(out, rec)
		if len(out) == contextInteractions {
			break
		}
	}
	return out
}

func confidentPreferences(prefs []interaction.Preference) []interaction.Preference {
	out := make([]interaction.Preference, 0, len(prefs))
	for _, p := range prefs {
		if p.Confidence >= minPreferenceScore {
			out = append(out, p)
		}
	}
	return out
}

func buildPrompt(req Request) string {
	var prefLines []string
	for _, p := range confidentPreferences(req.Preferences) {
		prefLines = append(prefLines, fmt.Sprintf("%s: %s", p.Key, p.Value))
	}
	prefs := "No established preferences yet"
	if len(prefLines) > 0 {
		prefs = strings.Join(prefLines, "\n")
	}

	var activityLines []string
	for _, rec := range successfulRecent(req.RecentInteractions) {
		label := rec.Title
		if strings.TrimSpace(label) == "" {
			label = rec.Description
		}
		activityLines = append(activityLines, fmt.Sprintf("- %s: %s (Mood: %s/5, Success: %s/5)",
			rec.ActivityType, label,
			interaction.RatingLabel(rec.MoodRating), interaction.RatingLabel(rec.SuccessLevel)))
	}
	activities := "No recent activities logged yet"
	if len(activityLines) > 0 {
		activities = strings.Join(activityLines, "\n")
	}

	var b strings.Builder
	b.WriteString("You are a compassionate care assistant helping to suggest meaningful activities for a care recipient.\n\n")
	fmt.Fprintf(&b, "Care Recipient: %s\n", req.RecipientName)
	fmt.Fprintf(&b, "Current Time: %s\n", req.TimeOfDay)
	if mood, ok := req.CurrentMood.Value(); ok {
		fmt.Fprintf(&b, "Current Mood Level: %d/5\n", mood)
	}
	fmt.Fprintf(&b, "\nKnown Preferences (high confidence):\n%s\n\n", prefs)
	fmt.Fprintf(&b, "Recent Successful Activities:\n%s\n\n", activities)
	fmt.Fprintf(&b, `Based on this information, suggest EXACTLY 3 unique and diverse personalized activities that would be:
1. Meaningful and joyful for %s
2. Appropriate for the %s
3. Respectful of their dignity and preferences
4. Likely to create a positive moment
5. Different from each other (vary activity types)

IMPORTANT: Provide exactly 3 different suggestions, no duplicates.

Respond in JSON format:
{
  "suggestions": [
    {
      "activity": "Brief activity name (max 6 words)",
      "reasoning": "Why this activity would work well right now (1 sentence)",
      "estimated_duration": "e.g., 15-30 minutes",
      "confidence": 0.0-1.0
    }
  ]
}`, req.RecipientName, req.TimeOfDay)
	return b.String()
}
