package moments

// MinRecords is the history size below which no prediction is made.
const MinRecords = 10

// InsufficientHistoryMessage accompanies the empty result below MinRecords.
const InsufficientHistoryMessage = "Need more interaction history for predictions (minimum 10 interactions)"

// Time-of-day buckets.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// Confidence grades how many observations back a prediction.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Prediction summarises one (activity, time of day, weekday) combination.
type Prediction struct {
	ActivityType        string     `json:"activity_type"`
	TimeOfDay           string     `json:"time_of_day"`
	DayOfWeek           string     `json:"day_of_week"`
	SuccessProbability  float64    `json:"success_probability"`
	BeautifulMomentRate float64    `json:"beautiful_moment_rate"`
	SampleSize          int        `json:"sample_size"`
	ConfidenceLevel     Confidence `json:"confidence_level"`
	Recommendation      string     `json:"recommendation"`
}

// BestTimes lists the strongest predictions per daytime bucket.
type BestTimes struct {
	Morning   []Prediction `json:"morning"`
	Afternoon []Prediction `json:"afternoon"`
	Evening   []Prediction `json:"evening"`
}

// Result is the prediction payload returned to callers.
type Result struct {
	Predictions    []Prediction `json:"predictions"`
	BestTimes      BestTimes    `json:"best_times"`
	BestActivities []Prediction `json:"best_activities"`
	Message        string       `json:"message,omitempty"`
}

// Config wires runtime knobs for the predictor service.
type Config struct {
	// Timezone is the IANA zone used to derive time of day and weekday.
	Timezone string
}

func emptyResult() Result {
	return Result{
		Predictions: []Prediction{},
		BestTimes: BestTimes{
			Morning:   []Prediction{},
			Afternoon: []Prediction{},
			Evening:   []Prediction{},
		},
		BestActivities: []Prediction{},
	}
}
