package suggestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/textgen"
	apperrors "github.com/yanqian/care-moments/pkg/errors"
)

type stubGenerator struct {
	reply string
	err   error
	last  textgen.Request
}

func (s *stubGenerator) Generate(_ context.Context, req textgen.Request) (string, error) {
	s.last = req
	return s.reply, s.err
}

func newTestService(gen textgen.Generator) Service {
	return NewService(Config{Temperature: 0.7}, gen, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSuggestValidation(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Suggest(context.Background(), Request{RecipientName: "  "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Suggest(context.Background(), Request{RecipientName: "Rose", TimeOfDay: "brunch"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestSuggestFallbackWithoutGenerator(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.Suggest(context.Background(), Request{RecipientName: "Rose"})

	require.NoError(t, err)
	require.Equal(t, SourceFallback, resp.Source)
	require.Len(t, resp.Suggestions, 3)
	require.Equal(t, "Gentle morning stretches", resp.Suggestions[0].Activity)
	require.Contains(t, resp.Suggestions[0].Reasoning, "help Rose feel")
}

func TestSuggestFallbackPerTimeOfDay(t *testing.T) {
	svc := newTestService(&stubGenerator{err: errors.New("rate limited")})

	cases := map[string]string{
		"afternoon": "Look through photo albums",
		"Evening":   "Watch a favorite show together",
		"night":     "Gentle relaxation routine",
	}
	for tod, first := range cases {
		resp, err := svc.Suggest(context.Background(), Request{RecipientName: "Rose", TimeOfDay: tod})
		require.NoError(t, err)
		require.Equal(t, SourceFallback, resp.Source)
		require.Equal(t, first, resp.Suggestions[0].Activity, tod)
	}
}

func TestSuggestGenerated(t *testing.T) {
	gen := &stubGenerator{reply: `{"suggestions":[
		{"activity":"Bake cookies","reasoning":"She loves baking.","estimated_duration":"30-45 minutes","confidence":1.3},
		{"activity":"bake cookies","reasoning":"dup","estimated_duration":"","confidence":0.5},
		{"activity":" ","reasoning":"blank","estimated_duration":"","confidence":0.5},
		{"activity":"Garden walk","reasoning":"Fresh air.","estimated_duration":"20 minutes","confidence":0.7},
		{"activity":"Sing along","reasoning":"Music helps.","estimated_duration":"15 minutes","confidence":-1},
		{"activity":"Call family","reasoning":"Connection.","estimated_duration":"10 minutes","confidence":0.6}
	]}`}
	svc := newTestService(gen)
	base := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	records := []interaction.Record{
		{ActivityType: "music", Title: "Old songs", CreatedAt: interaction.At(base), SuccessLevel: interaction.RatingOf(5), MoodRating: interaction.RatingOf(4)},
		{ActivityType: "meal", Description: "Soup lunch", CreatedAt: interaction.At(base.Add(time.Hour)), SuccessLevel: interaction.RatingOf(4)},
		{ActivityType: "walk", Title: "Tired walk", CreatedAt: interaction.At(base.Add(2 * time.Hour)), SuccessLevel: interaction.RatingOf(2)},
	}
	prefs := []interaction.Preference{
		{Key: "Sinatra", Value: "Loves Frank Sinatra", Confidence: 0.9},
		{Key: "Spicy food", Value: "Maybe dislikes", Confidence: 0.5},
	}

	resp, err := svc.Suggest(context.Background(), Request{
		RecipientName:      "Rose",
		RecentInteractions: records,
		Preferences:        prefs,
		CurrentMood:        interaction.RatingOf(3),
		TimeOfDay:          "afternoon",
	})

	require.NoError(t, err)
	require.Equal(t, SourceAI, resp.Source)
	require.Equal(t, []Suggestion{
		{Activity: "Bake cookies", Reasoning: "She loves baking.", EstimatedDuration: "30-45 minutes", Confidence: 1},
		{Activity: "Garden walk", Reasoning: "Fresh air.", EstimatedDuration: "20 minutes", Confidence: 0.7},
		{Activity: "Sing along", Reasoning: "Music helps.", EstimatedDuration: "15 minutes", Confidence: 0},
	}, resp.Suggestions)

	require.True(t, gen.last.JSON)
	prompt := gen.last.Prompt
	require.Contains(t, prompt, "Care Recipient: Rose")
	require.Contains(t, prompt, "Current Time: afternoon")
	require.Contains(t, prompt, "Current Mood Level: 3/5")
	require.Contains(t, prompt, "Sinatra: Loves Frank Sinatra")
	require.NotContains(t, prompt, "Spicy food")
	require.Contains(t, prompt, "- meal: Soup lunch (Mood: N/A/5, Success: 4/5)")
	require.Contains(t, prompt, "- music: Old songs (Mood: 4/5, Success: 5/5)")
	require.NotContains(t, prompt, "Tired walk")
	require.Less(t, strings.Index(prompt, "- meal"), strings.Index(prompt, "- music"))
}

func TestSuggestMalformedReplyFallsBack(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: "{oops"})

	resp, err := svc.Suggest(context.Background(), Request{RecipientName: "Rose", TimeOfDay: "night"})

	require.NoError(t, err)
	require.Equal(t, SourceFallback, resp.Source)
}

func TestSuggestEmptyListFallsBack(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: `{"suggestions":[]}`})

	resp, err := svc.Suggest(context.Background(), Request{RecipientName: "Rose"})

	require.NoError(t, err)
	require.Equal(t, SourceFallback, resp.Source)
}

func TestSuccessfulRecentCapsAtFive(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	records := make([]interaction.Record, 0, 8)
	for i := 0; i < 8; i++ {
		records = append(records, interaction.Record{
			ID:           string(rune('a' + i)),
			CreatedAt:    interaction.At(base.Add(time.Duration(i) * time.Hour)),
			SuccessLevel: interaction.RatingOf(4),
		})
	}

	got := successfulRecent(records)

	require.Len(t, got, 5)
	require.Equal(t, "h", got[0].ID)
	require.Equal(t, "d", got[4].ID)
}
