package interaction

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Rating bounds shared by mood, success and energy scales.
const (
	MinRating = 1
	MaxRating = 5
)

// Record is one logged caregiving moment as stored by the datastore.
type Record struct {
	ID           string    `json:"id"`
	RecipientID  string    `json:"recipient_id,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
	ActivityType string    `json:"activity_type"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	MoodRating   Rating    `json:"mood_rating"`
	SuccessLevel Rating    `json:"success_level"`
	EnergyLevel  Rating    `json:"energy_level"`
	Tags         []string  `json:"tags,omitempty"`
}

// UnmarshalJSON decodes leniently: ids may be strings or numbers, text fields of the
// wrong type are treated as absent and non-string tags are dropped. Only input that is
// not an object at all fails.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var raw struct {
		ID           json.RawMessage `json:"id"`
		RecipientID  json.RawMessage `json:"recipient_id"`
		CreatedAt    Timestamp       `json:"created_at"`
		ActivityType json.RawMessage `json:"activity_type"`
		Title        json.RawMessage `json:"title"`
		Description  json.RawMessage `json:"description"`
		MoodRating   Rating          `json:"mood_rating"`
		SuccessLevel Rating          `json:"success_level"`
		EnergyLevel  Rating          `json:"energy_level"`
		Tags         json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	*r = Record{
		ID:           identifier(raw.ID),
		RecipientID:  identifier(raw.RecipientID),
		CreatedAt:    raw.CreatedAt,
		ActivityType: text(raw.ActivityType),
		Title:        text(raw.Title),
		Description:  text(raw.Description),
		MoodRating:   raw.MoodRating,
		SuccessLevel: raw.SuccessLevel,
		EnergyLevel:  raw.EnergyLevel,
		Tags:         stringList(raw.Tags),
	}
	return nil
}

// text returns a JSON string value, or "" for anything else.
func text(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// identifier accepts a string or a number and keeps the number's literal form.
func identifier(raw json.RawMessage) string {
	if s := text(raw); s != "" {
		return s
	}
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return ""
	}
	return n.String()
}

// stringList keeps the string elements of a JSON array.
func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Rating is an optional 1-5 score. The zero value means "not recorded".
type Rating struct {
	value int
	set   bool
}

// RatingOf builds a recorded rating. Values outside the scale are treated as not recorded.
func RatingOf(v int) Rating {
	if v < MinRating || v > MaxRating {
		return Rating{}
	}
	return Rating{value: v, set: true}
}

// Value returns the rating and whether it was recorded.
func (r Rating) Value() (int, bool) {
	return r.value, r.set
}

// Valid reports whether the rating was recorded.
func (r Rating) Valid() bool {
	return r.set
}

// AtLeast reports whether a recorded rating meets the threshold. Missing ratings never do.
func (r Rating) AtLeast(threshold int) bool {
	return r.set && r.value >= threshold
}

// UnmarshalJSON never fails: anything that is not an integral number on the scale
// decodes as not recorded.
func (r *Rating) UnmarshalJSON(data []byte) error {
	*r = Rating{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil
	}
	if f != math.Trunc(f) {
		return nil
	}
	*r = RatingOf(int(f))
	return nil
}

// MarshalJSON writes the rating or null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// Timestamp is the creation instant of a record. Unparseable input leaves it invalid.
type Timestamp struct {
	at    time.Time
	valid bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// At wraps a known instant.
func At(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{at: t, valid: true}
}

// ParseTimestamp parses the formats emitted by the datastore and browsers.
func ParseTimestamp(raw string) (Timestamp, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return At(parsed), true
		}
	}
	return Timestamp{}, false
}

// Time returns the instant and whether it was valid.
func (t Timestamp) Time() (time.Time, bool) {
	return t.at, t.valid
}

// Valid reports whether the timestamp parsed.
func (t Timestamp) Valid() bool {
	return t.valid
}

// UnmarshalJSON accepts a string timestamp; anything else leaves the value invalid.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	parsed, _ := ParseTimestamp(raw)
	*t = parsed
	return nil
}

// MarshalJSON writes RFC3339 or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.at.Format(time.RFC3339Nano))
}
