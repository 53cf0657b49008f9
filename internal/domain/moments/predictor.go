package moments

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

const (
	goodRating           = 4
	highConfidenceSize   = 5
	mediumConfidenceSize = 3
	bestTimesMinSample   = 2
	bestTimesLimit       = 5
	bestActivitiesLimit  = 10
	bestActivitiesRate   = 0.5
)

// patternKey groups records by the three prediction dimensions.
type patternKey struct {
	activity  string
	timeOfDay string
	weekday   time.Weekday
}

type tally struct {
	total      int
	successful int
	beautiful  int
}

// Predict ranks activity/time/weekday combinations by how often they produced beautiful moments.
// Hours and weekdays are read in loc; a nil loc means UTC.
func Predict(records []interaction.Record, loc *time.Location) Result {
	if len(records) < MinRecords {
		res := emptyResult()
		res.Message = InsufficientHistoryMessage
		return res
	}
	if loc == nil {
		loc = time.UTC
	}

	patterns := make(map[patternKey]*tally)
	for _, rec := range records {
		at, ok := rec.CreatedAt.Time()
		if !ok {
			continue
		}
		local := at.In(loc)
		key := patternKey{
			activity:  rec.ActivityType,
			timeOfDay: TimeOfDay(local.Hour()),
			weekday:   local.Weekday(),
		}
		t, ok := patterns[key]
		if !ok {
			t = &tally{}
			patterns[key] = t
		}
		t.total++
		success := rec.SuccessLevel.AtLeast(goodRating)
		mood := rec.MoodRating.AtLeast(goodRating)
		if success || mood {
			t.successful++
		}
		if success && mood {
			t.beautiful++
		}
	}

	res := emptyResult()
	for key, t := range patterns {
		res.Predictions = append(res.Predictions, newPrediction(key, t))
	}
	sortPredictions(res.Predictions)

	for _, p := range res.Predictions {
		if p.SampleSize >= bestTimesMinSample {
			switch p.TimeOfDay {
			case Morning:
				res.BestTimes.Morning = appendCapped(res.BestTimes.Morning, p, bestTimesLimit)
			case Afternoon:
				res.BestTimes.Afternoon = appendCapped(res.BestTimes.Afternoon, p, bestTimesLimit)
			case Evening:
				res.BestTimes.Evening = appendCapped(res.BestTimes.Evening, p, bestTimesLimit)
			}
		}
		if p.ConfidenceLevel == ConfidenceHigh && p.BeautifulMomentRate >= bestActivitiesRate {
			res.BestActivities = appendCapped(res.BestActivities, p, bestActivitiesLimit)
		}
	}
	return res
}

// TimeOfDay maps an hour to its bucket: [5,12) morning, [12,17) afternoon, [17,21) evening, else night.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

func newPrediction(key patternKey, t *tally) Prediction {
	var success, beautiful float64
	if t.total > 0 {
		success = float64(t.successful) / float64(t.total)
		beautiful = float64(t.beautiful) / float64(t.total)
	}
	return Prediction{
		ActivityType:        key.activity,
		TimeOfDay:           key.timeOfDay,
		DayOfWeek:           key.weekday.String(),
		SuccessProbability:  success,
		BeautifulMomentRate: beautiful,
		SampleSize:          t.total,
		ConfidenceLevel:     confidenceFor(t.total),
		Recommendation:      recommendationFor(beautiful),
	}
}

func confidenceFor(samples int) Confidence {
	switch {
	case samples >= highConfidenceSize:
		return ConfidenceHigh
	case samples >= mediumConfidenceSize:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func recommendationFor(rate float64) string {
	percent := int(math.Floor(rate*100 + 0.5))
	switch {
	case rate >= 0.7:
		return fmt.Sprintf("Excellent choice! %d%% beautiful moment rate", percent)
	case rate >= 0.5:
		return fmt.Sprintf("Good option with %d%% success rate", percent)
	case rate >= 0.3:
		return "Moderate success - consider timing or approach adjustments"
	default:
		return "Try a different time or activity combination"
	}
}

var timeOfDayOrder = map[string]int{Morning: 0, Afternoon: 1, Evening: 2, Night: 3}

var weekdayOrder = map[string]int{
	time.Sunday.String():    0,
	time.Monday.String():    1,
	time.Tuesday.String():   2,
	time.Wednesday.String(): 3,
	time.Thursday.String():  4,
	time.Friday.String():    5,
	time.Saturday.String():  6,
}

// sortPredictions orders by rate, then sample size, activity, time of day and weekday.
func sortPredictions(predictions []Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := predictions[i], predictions[j]
		if a.BeautifulMomentRate != b.BeautifulMomentRate {
			return a.BeautifulMomentRate > b.BeautifulMomentRate
		}
		if a.SampleSize != b.SampleSize {
			return a.SampleSize > b.SampleSize
		}
		if a.ActivityType != b.ActivityType {
			return a.ActivityType < b.ActivityType
		}
		if a.TimeOfDay != b.TimeOfDay {
			return timeOfDayOrder[a.TimeOfDay] < timeOfDayOrder[b.TimeOfDay]
		}
		return weekdayOrder[a.DayOfWeek] < weekdayOrder[b.DayOfWeek]
	})
}

func appendCapped(list []Prediction, p Prediction, limit int) []Prediction {
	if len(list) >= limit {
		return list
	}
	return append(list, p)
}
