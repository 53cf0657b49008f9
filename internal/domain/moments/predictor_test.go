package moments

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

// monday9am is a Monday.
var monday9am = time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC)

func TestPredictBelowFloor(t *testing.T) {
	for n := 0; n < MinRecords; n++ {
		records := make([]interaction.Record, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, rec("music", monday9am, 5, 5))
		}
		res := Predict(records, time.UTC)
		require.Empty(t, res.Predictions)
		require.NotNil(t, res.Predictions)
		require.Empty(t, res.BestTimes.Morning)
		require.Empty(t, res.BestTimes.Afternoon)
		require.Empty(t, res.BestTimes.Evening)
		require.Empty(t, res.BestActivities)
		require.Equal(t, InsufficientHistoryMessage, res.Message)
	}
}

func TestPredictSingleStrongPattern(t *testing.T) {
	records := make([]interaction.Record, 0, 10)
	for i := 0; i < 8; i++ {
		records = append(records, rec("music", monday9am.AddDate(0, 0, 7*i), 5, 5))
	}
	for i := 8; i < 10; i++ {
		records = append(records, rec("music", monday9am.AddDate(0, 0, 7*i), 2, 2))
	}

	res := Predict(records, time.UTC)

	require.Len(t, res.Predictions, 1)
	p := res.Predictions[0]
	require.Equal(t, "music", p.ActivityType)
	require.Equal(t, Morning, p.TimeOfDay)
	require.Equal(t, "Monday", p.DayOfWeek)
	require.Equal(t, 10, p.SampleSize)
	require.InDelta(t, 0.8, p.SuccessProbability, 1e-9)
	require.InDelta(t, 0.8, p.BeautifulMomentRate, 1e-9)
	require.Equal(t, ConfidenceHigh, p.ConfidenceLevel)
	require.Equal(t, "Excellent choice! 80% beautiful moment rate", p.Recommendation)
	require.Equal(t, []Prediction{p}, res.BestTimes.Morning)
	require.Equal(t, []Prediction{p}, res.BestActivities)
	require.Empty(t, res.Message)
}

func TestPredictOrAndAndCounting(t *testing.T) {
	records := []interaction.Record{
		rec("walk", monday9am, 4, 0),
		rec("walk", monday9am, 0, 4),
		rec("walk", monday9am, 4, 4),
		rec("walk", monday9am, 3, 5),
		rec("walk", monday9am, 0, 0),
	}
	records = append(records, filler(5)...)

	res := Predict(records, time.UTC)

	walk := find(t, res, "walk")
	require.Equal(t, 5, walk.SampleSize)
	require.InDelta(t, 0.8, walk.SuccessProbability, 1e-9)
	require.InDelta(t, 0.2, walk.BeautifulMomentRate, 1e-9)
	require.Equal(t, "Try a different time or activity combination", walk.Recommendation)
}

func TestPredictBucketsAndConfidence(t *testing.T) {
	afternoon := time.Date(2024, 6, 18, 13, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 19, 18, 0, 0, 0, time.UTC)
	night := time.Date(2024, 6, 20, 23, 0, 0, 0, time.UTC)

	records := []interaction.Record{
		rec("puzzle", afternoon, 5, 5), rec("puzzle", afternoon, 5, 5), rec("puzzle", afternoon, 1, 1),
		rec("tea", evening, 5, 5), rec("tea", evening, 5, 1),
		rec("story", night, 5, 5), rec("story", night, 5, 5),
		rec("meal", monday9am, 4, 4),
		rec("meal", monday9am.Add(time.Hour), 4, 4),
		rec("meal", monday9am.Add(2*time.Hour), 1, 1),
	}

	res := Predict(records, time.UTC)

	puzzle := find(t, res, "puzzle")
	require.Equal(t, Afternoon, puzzle.TimeOfDay)
	require.Equal(t, "Tuesday", puzzle.DayOfWeek)
	require.Equal(t, ConfidenceMedium, puzzle.ConfidenceLevel)
	require.Equal(t, "Good option with 67% success rate", puzzle.Recommendation)

	tea := find(t, res, "tea")
	require.Equal(t, Evening, tea.TimeOfDay)
	require.Equal(t, ConfidenceLow, tea.ConfidenceLevel)
	require.Equal(t, "Good option with 50% success rate", tea.Recommendation)

	story := find(t, res, "story")
	require.Equal(t, Night, story.TimeOfDay)

	require.Equal(t, []string{"puzzle"}, activities(res.BestTimes.Afternoon))
	require.Equal(t, []string{"tea"}, activities(res.BestTimes.Evening))
	require.Equal(t, []string{"meal"}, activities(res.BestTimes.Morning))
	require.Empty(t, res.BestActivities)

	for _, p := range res.Predictions {
		if p.ConfidenceLevel == ConfidenceHigh {
			require.GreaterOrEqual(t, p.SampleSize, 5)
		}
		if p.ConfidenceLevel == ConfidenceMedium {
			require.True(t, p.SampleSize >= 3 && p.SampleSize < 5)
		}
		if p.ConfidenceLevel == ConfidenceLow {
			require.Less(t, p.SampleSize, 3)
		}
	}
}

func TestPredictSortAndTieBreak(t *testing.T) {
	records := []interaction.Record{
		rec("b", monday9am, 5, 5), rec("b", monday9am, 5, 5),
		rec("a", monday9am, 5, 5), rec("a", monday9am, 5, 5),
		rec("c", monday9am, 5, 5), rec("c", monday9am, 5, 5), rec("c", monday9am, 5, 5),
		rec("d", monday9am, 1, 1),
		rec("e", monday9am, 5, 5), rec("e", monday9am, 1, 1),
	}

	res := Predict(records, time.UTC)

	require.Equal(t, []string{"c", "a", "b", "e", "d"}, activities(res.Predictions))
	require.Equal(t, []string{"c", "a", "b", "e"}, activities(res.BestTimes.Morning))
}

func TestPredictCapsBestLists(t *testing.T) {
	records := make([]interaction.Record, 0, 80)
	for i := 0; i < 12; i++ {
		for j := 0; j < 5; j++ {
			records = append(records, rec(fmt.Sprintf("act-%02d", i), monday9am, 5, 5))
		}
	}

	res := Predict(records, time.UTC)

	require.Len(t, res.Predictions, 12)
	require.Len(t, res.BestTimes.Morning, 5)
	require.Len(t, res.BestActivities, 10)
	require.Equal(t, "act-00", res.BestActivities[0].ActivityType)
}

func TestPredictUsesLocation(t *testing.T) {
	// 23:30 UTC Sunday is 07:30 Monday at UTC+8.
	at := time.Date(2024, 6, 16, 23, 30, 0, 0, time.UTC)
	records := make([]interaction.Record, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, rec("garden", at, 5, 5))
	}

	utc := Predict(records, nil)
	require.Equal(t, Night, utc.Predictions[0].TimeOfDay)
	require.Equal(t, "Sunday", utc.Predictions[0].DayOfWeek)

	local := Predict(records, time.FixedZone("UTC+8", 8*60*60))
	require.Equal(t, Morning, local.Predictions[0].TimeOfDay)
	require.Equal(t, "Monday", local.Predictions[0].DayOfWeek)
}

func TestPredictSkipsInvalidTimestampsButCountsThem(t *testing.T) {
	records := make([]interaction.Record, 0, 10)
	for i := 0; i < 9; i++ {
		records = append(records, rec("music", monday9am, 5, 5))
	}
	records = append(records, interaction.Record{ID: "broken", ActivityType: "music"})

	res := Predict(records, time.UTC)

	require.Len(t, res.Predictions, 1)
	require.Equal(t, 9, res.Predictions[0].SampleSize)
}

func TestPredictRateInvariants(t *testing.T) {
	records := make([]interaction.Record, 0, 60)
	for i := 0; i < 60; i++ {
		at := monday9am.Add(time.Duration(i*7) * time.Hour)
		records = append(records, rec(fmt.Sprintf("act-%d", i%4), at, i%6, (i*3)%6))
	}

	res := Predict(records, time.UTC)

	require.NotEmpty(t, res.Predictions)
	for i, p := range res.Predictions {
		require.GreaterOrEqual(t, p.SuccessProbability, 0.0)
		require.LessOrEqual(t, p.SuccessProbability, 1.0)
		require.GreaterOrEqual(t, p.BeautifulMomentRate, 0.0)
		require.LessOrEqual(t, p.BeautifulMomentRate, p.SuccessProbability)
		if i > 0 {
			require.LessOrEqual(t, p.BeautifulMomentRate, res.Predictions[i-1].BeautifulMomentRate)
		}
	}
}

func TestTimeOfDayBoundaries(t *testing.T) {
	want := map[int]string{
		0: Night, 4: Night, 5: Morning, 11: Morning, 12: Afternoon,
		16: Afternoon, 17: Evening, 20: Evening, 21: Night, 23: Night,
	}
	for hour, bucket := range want {
		require.Equal(t, bucket, TimeOfDay(hour), "hour %d", hour)
	}
}

// rec builds a record; zero ratings are left unrecorded.
func rec(activity string, at time.Time, success, mood int) interaction.Record {
	r := interaction.Record{
		ID:           fmt.Sprintf("%s-%d", activity, at.UnixNano()),
		CreatedAt:    interaction.At(at),
		ActivityType: activity,
	}
	if success > 0 {
		r.SuccessLevel = interaction.RatingOf(success)
	}
	if mood > 0 {
		r.MoodRating = interaction.RatingOf(mood)
	}
	return r
}

func filler(n int) []interaction.Record {
	out := make([]interaction.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rec("filler", monday9am.Add(14*time.Hour), 1, 1))
	}
	return out
}

func find(t *testing.T, res Result, activity string) Prediction {
	t.Helper()
	for _, p := range res.Predictions {
		if p.ActivityType == activity {
			return p
		}
	}
	t.Fatalf("no prediction for %s", activity)
	return Prediction{}
}

func activities(predictions []Prediction) []string {
	out := make([]string, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, p.ActivityType)
	}
	return out
}
