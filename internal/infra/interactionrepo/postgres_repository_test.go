package interactionrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }

func TestInteractionRowRecord(t *testing.T) {
	created := time.Date(2024, 6, 17, 11, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	row := interactionRow{
		ID:           "i-1",
		RecipientID:  "r-1",
		CreatedAt:    created,
		ActivityType: "music",
		Description:  "hummed along",
		Mood:         int32Ptr(4),
		Success:      nil,
		Energy:       int32Ptr(9),
		Tags:         []string{"calm"},
	}

	rec := row.record()

	require.Equal(t, "i-1", rec.ID)
	require.Equal(t, "music", rec.ActivityType)
	at, ok := rec.CreatedAt.Time()
	require.True(t, ok)
	require.Equal(t, time.UTC, at.Location())
	require.True(t, created.Equal(at))

	mood, ok := rec.MoodRating.Value()
	require.True(t, ok)
	require.Equal(t, 4, mood)
	require.False(t, rec.SuccessLevel.Valid(), "NULL rating")
	require.False(t, rec.EnergyLevel.Valid(), "out of scale rating")
	require.Equal(t, []string{"calm"}, rec.Tags)
}

func TestRatingFrom(t *testing.T) {
	require.False(t, ratingFrom(nil).Valid())
	require.False(t, ratingFrom(int32Ptr(0)).Valid())
	require.False(t, ratingFrom(int32Ptr(6)).Valid())
	require.True(t, ratingFrom(int32Ptr(1)).AtLeast(1))
	require.True(t, ratingFrom(int32Ptr(5)).AtLeast(5))
}
