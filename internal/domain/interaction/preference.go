package interaction

import (
	"strconv"
	"strings"
)

// Preference categories understood by the care profile.
const (
	CategoryActivity      = "activity"
	CategoryCommunication = "communication"
	CategoryRoutine       = "routine"
	CategoryDignity       = "dignity"
	CategoryFood          = "food"
	CategoryMusic         = "music"
	CategorySocial        = "social"
	CategoryOther         = "other"
)

var categories = map[string]struct{}{
	CategoryActivity:      {},
	CategoryCommunication: {},
	CategoryRoutine:       {},
	CategoryDignity:       {},
	CategoryFood:          {},
	CategoryMusic:         {},
	CategorySocial:        {},
	CategoryOther:         {},
}

// Preference is a learned fact about what a care recipient likes.
type Preference struct {
	Category   string  `json:"category"`
	Key        string  `json:"preference_key"`
	Value      string  `json:"preference_value"`
	Confidence float64 `json:"confidence_score"`
}

// NormalizeCategory lower-cases the category and maps unknown values to "other".
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if _, ok := categories[c]; ok {
		return c
	}
	return CategoryOther
}

// RatingLabel renders a rating for prompts, or "N/A" when it was not recorded.
func RatingLabel(r Rating) string {
	if v, ok := r.Value(); ok {
		return strconv.Itoa(v)
	}
	return "N/A"
}
