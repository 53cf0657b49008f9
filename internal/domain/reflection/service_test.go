package reflection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/textgen"
	apperrors "github.com/yanqian/care-moments/pkg/errors"
)

type stubGenerator struct {
	reply string
	err   error
	last  textgen.Request
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, req textgen.Request) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func newTestService(gen textgen.Generator) *service {
	return &service{
		cfg:       Config{InsightTemperature: 0.7, PreferenceTemperature: 0.3},
		generator: gen,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func sampleRecord() interaction.Record {
	return interaction.Record{
		ID:           "rec-1",
		ActivityType: "music",
		Title:        "Sinatra afternoon",
		MoodRating:   interaction.RatingOf(5),
		Tags:         []string{"music", "calm"},
	}
}

func TestInsightWithoutGenerator(t *testing.T) {
	svc := NewService(Config{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.Insight(context.Background(), sampleRecord())

	require.NoError(t, err)
	require.Nil(t, resp.Insight)
}

func TestInsightGenerated(t *testing.T) {
	gen := &stubGenerator{reply: "  Music lit up the room today.  "}
	svc := newTestService(gen)

	resp, err := svc.Insight(context.Background(), sampleRecord())

	require.NoError(t, err)
	require.NotNil(t, resp.Insight)
	require.Equal(t, "Music lit up the room today.", *resp.Insight)
	require.Equal(t, insightMaxTokens, gen.last.MaxTokens)
	require.InDelta(t, 0.7, gen.last.Temperature, 1e-6)
	require.False(t, gen.last.JSON)
	require.Contains(t, gen.last.Prompt, "Activity: music")
	require.Contains(t, gen.last.Prompt, "Title: Sinatra afternoon")
	require.Contains(t, gen.last.Prompt, "Description: N/A")
	require.Contains(t, gen.last.Prompt, "Mood: 5/5")
	require.Contains(t, gen.last.Prompt, "Success: N/A/5")
}

func TestInsightEmptyReply(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: "   "})

	resp, err := svc.Insight(context.Background(), sampleRecord())

	require.NoError(t, err)
	require.Nil(t, resp.Insight)
}

func TestInsightGeneratorFailure(t *testing.T) {
	svc := newTestService(&stubGenerator{err: errors.New("upstream down")})

	_, err := svc.Insight(context.Background(), sampleRecord())

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))
}

func TestExtractPreferencesWithoutGenerator(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.ExtractPreferences(context.Background(), sampleRecord(), nil)

	require.NoError(t, err)
	require.NotNil(t, resp.Preferences)
	require.Empty(t, resp.Preferences)
}

func TestExtractPreferencesFilters(t *testing.T) {
	gen := &stubGenerator{reply: `{"preferences":[
		{"category":"music","preference_key":"Sinatra","preference_value":"Loves Frank Sinatra","confidence_score":0.9},
		{"category":"food","preference_key":"tea","preference_value":"Earl grey","confidence_score":0.4},
		{"category":"hobbies","preference_key":"garden","preference_value":"Enjoys planting","confidence_score":1.4},
		{"category":"music","preference_key":"sinatra","preference_value":"duplicate","confidence_score":0.8},
		{"category":"social","preference_key":"Morning walk","preference_value":"already known","confidence_score":0.9},
		{"category":"social","preference_key":"","preference_value":"no key","confidence_score":0.9}
	]}`}
	svc := newTestService(gen)
	existing := []interaction.Preference{{Category: "routine", Key: "morning walk", Value: "daily", Confidence: 0.8}}

	resp, err := svc.ExtractPreferences(context.Background(), sampleRecord(), existing)

	require.NoError(t, err)
	require.Equal(t, []interaction.Preference{
		{Category: "music", Key: "Sinatra", Value: "Loves Frank Sinatra", Confidence: 0.9},
		{Category: "other", Key: "garden", Value: "Enjoys planting", Confidence: 1},
	}, resp.Preferences)
	require.True(t, gen.last.JSON)
	require.InDelta(t, 0.3, gen.last.Temperature, 1e-6)
	require.Contains(t, gen.last.Prompt, "morning walk")
	require.Contains(t, gen.last.Prompt, "- Tags: music, calm")
}

func TestExtractPreferencesEmptyReply(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: ""})

	resp, err := svc.ExtractPreferences(context.Background(), sampleRecord(), nil)

	require.NoError(t, err)
	require.Empty(t, resp.Preferences)
}

func TestExtractPreferencesMalformedReply(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: "not json"})

	_, err := svc.ExtractPreferences(context.Background(), sampleRecord(), nil)

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))
}

func TestExtractPreferencesMissingList(t *testing.T) {
	svc := newTestService(&stubGenerator{reply: `{}`})

	resp, err := svc.ExtractPreferences(context.Background(), sampleRecord(), nil)

	require.NoError(t, err)
	require.NotNil(t, resp.Preferences)
	require.Empty(t, resp.Preferences)
}
