package suggestion

import "fmt"

// fallbackFor returns the fixed catalogue for a time of day; unknown values get the afternoon set.
func fallbackFor(recipientName, timeOfDay string) []Suggestion {
	switch timeOfDay {
	case "morning":
		return []Suggestion{
			{
				Activity:          "Gentle morning stretches",
				Reasoning:         fmt.Sprintf("A calm way to start the day. Morning movement can help %s feel energized and alert.", recipientName),
				EstimatedDuration: "10-15 minutes",
				Confidence:        0.8,
			},
			{
				Activity:          "Share breakfast together",
				Reasoning:         "Mealtimes are wonderful opportunities for connection and conversation.",
				EstimatedDuration: "20-30 minutes",
				Confidence:        0.9,
			},
			{
				Activity:          "Listen to favorite morning music",
				Reasoning:         "Music can uplift mood and bring back fond memories.",
				EstimatedDuration: "15-20 minutes",
				Confidence:        0.7,
			},
		}
	case "evening":
		return []Suggestion{
			{
				Activity:          "Watch a favorite show together",
				Reasoning:         "Relaxing activities in the evening can help wind down the day.",
				EstimatedDuration: "30-60 minutes",
				Confidence:        0.8,
			},
			{
				Activity:          "Have a calming tea time",
				Reasoning:         "A warm drink and quiet conversation creates peaceful moments.",
				EstimatedDuration: "15-20 minutes",
				Confidence:        0.85,
			},
			{
				Activity:          "Read aloud from a favorite book",
				Reasoning:         "Gentle storytelling can be soothing and create shared experiences.",
				EstimatedDuration: "15-30 minutes",
				Confidence:        0.75,
			},
		}
	case "night":
		return []Suggestion{
			{
				Activity:          "Gentle relaxation routine",
				Reasoning:         "Consistent nighttime routines can promote better rest.",
				EstimatedDuration: "10-15 minutes",
				Confidence:        0.9,
			},
			{
				Activity:          "Soft music before bed",
				Reasoning:         "Calming sounds can help transition to restful sleep.",
				EstimatedDuration: "15-20 minutes",
				Confidence:        0.8,
			},
			{
				Activity:          "Share a gratitude moment",
				Reasoning:         "Reflecting on good moments from the day ends things on a positive note.",
				EstimatedDuration: "5-10 minutes",
				Confidence:        0.85,
			},
		}
	default:
		return []Suggestion{
			{
				Activity:          "Look through photo albums",
				Reasoning:         fmt.Sprintf("Reminiscing about happy memories can be meaningful and spark conversation with %s.", recipientName),
				EstimatedDuration: "20-30 minutes",
				Confidence:        0.85,
			},
			{
				Activity:          "Take a short walk",
				Reasoning:         "Fresh air and gentle movement can improve mood and energy.",
				EstimatedDuration: "15-20 minutes",
				Confidence:        0.75,
			},
			{
				Activity:          "Work on a simple puzzle",
				Reasoning:         "Engaging activities that can be done together promote connection.",
				EstimatedDuration: "20-40 minutes",
				Confidence:        0.7,
			},
		}
	}
}
