package burnout

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

const (
	notEnoughDataSignal   = "Not enough data to analyze burnout patterns"
	notEnoughDataAdvice   = "Keep logging moments to build your caregiving insights"
	noSignalsDetected     = "No burnout signals detected - you're maintaining healthy caregiving patterns"
	highRiskWarning       = "⚠️ High burnout risk detected - consider taking a break"
	moderateRiskNotice    = "Moderate burnout risk - monitor your wellbeing closely"
	reachOutAdvice        = "Reach out to family or friends for support"
	selfCareAdvice        = "Schedule time for self-care activities"
	celebrateAdvice       = "Celebrate small wins and positive moments"
	keepGoingAdvice       = "Keep up the great work!"
	takeBreaksAdvice      = "Remember to take breaks when needed"
	doingAmazingAdvice    = "You're doing amazing! Keep nurturing yourself and your loved one"
	frequencyAdvice       = "Consider setting reminders to maintain regular interactions"
	successAdvice         = "Try revisiting activities that worked well in the past"
	moodAdvice            = "Focus on mood-boosting activities and self-care"
	engagementAdvice      = "Take time to reflect and write detailed notes about your experiences"
	consistencyAdvice     = "Try to maintain more consistent interaction patterns"
	energyAdvice          = "Prioritize rest and consider asking for support from others"
	frequencyDeclineLimit = 0.3
	ratingDeclineLimit    = 0.5
	lengthDeclineLimit    = 0.3
	maxGapHours           = 72
	lowEnergyLimit        = 2.5
	gapContribution       = 15
	energyContribution    = 15
)

// finding is a triggered heuristic.
type finding struct {
	contribution   float64
	message        string
	recommendation string
}

// detector evaluates one heuristic over the two windows.
type detector func(w interaction.Windows) (finding, bool)

// detectors run in this order; signals and recommendations keep it.
var detectors = []detector{
	frequencyDecline,
	successDecline,
	moodDecline,
	descriptionDecline,
	interactionGap,
	lowEnergy,
}

// Detect scores burnout risk for the records relative to now.
func Detect(records []interaction.Record, now time.Time) Result {
	if len(records) < MinRecords {
		return Result{
			RiskScore:       0,
			RiskLevel:       LevelLow,
			Signals:         []string{notEnoughDataSignal},
			Recommendations: []string{notEnoughDataAdvice},
		}
	}

	windows := interaction.Split(records, now)

	var (
		total           float64
		signals         = make([]string, 0, len(detectors))
		recommendations = make([]string, 0, len(detectors)+3)
	)
	for _, detect := range detectors {
		f, ok := detect(windows)
		if !ok {
			continue
		}
		total += f.contribution
		signals = append(signals, f.message)
		recommendations = append(recommendations, f.recommendation)
	}

	score := int(math.Min(roundHalfUp(total), maxRiskScore))
	if score < 0 {
		score = 0
	}

	switch {
	case score >= highRiskScore:
		recommendations = append([]string{highRiskWarning}, recommendations...)
		recommendations = append(recommendations, reachOutAdvice, selfCareAdvice)
	case score >= InsightThreshold:
		recommendations = append([]string{moderateRiskNotice}, recommendations...)
		recommendations = append(recommendations, celebrateAdvice)
	case score >= lowRiskScore:
		recommendations = append(recommendations, keepGoingAdvice, takeBreaksAdvice)
	default:
		recommendations = append(recommendations, doingAmazingAdvice)
	}

	if len(signals) == 0 {
		signals = []string{noSignalsDetected}
	}

	return Result{
		RiskScore:       score,
		RiskLevel:       levelFor(score),
		Signals:         signals,
		Recommendations: dedupe(recommendations),
	}
}

func frequencyDecline(w interaction.Windows) (finding, bool) {
	previous := len(w.Previous)
	if previous == 0 {
		return finding{}, false
	}
	decline := float64(previous-len(w.Current)) / float64(previous)
	if decline <= frequencyDeclineLimit {
		return finding{}, false
	}
	return finding{
		contribution:   decline * 30,
		message:        fmt.Sprintf("Interaction frequency decreased by %d%%", int(roundHalfUp(decline*100))),
		recommendation: frequencyAdvice,
	}, true
}

func successDecline(w interaction.Windows) (finding, bool) {
	decline, ok := ratingDecline(w, func(r interaction.Record) interaction.Rating { return r.SuccessLevel })
	if !ok || decline <= ratingDeclineLimit {
		return finding{}, false
	}
	return finding{
		contribution:   decline * 15,
		message:        fmt.Sprintf("Success ratings dropped by %s points", oneDecimal(decline)),
		recommendation: successAdvice,
	}, true
}

func moodDecline(w interaction.Windows) (finding, bool) {
	decline, ok := ratingDecline(w, func(r interaction.Record) interaction.Rating { return r.MoodRating })
	if !ok || decline <= ratingDeclineLimit {
		return finding{}, false
	}
	return finding{
		contribution:   decline * 12,
		message:        fmt.Sprintf("Overall mood decreased by %s points", oneDecimal(decline)),
		recommendation: moodAdvice,
	}, true
}

func descriptionDecline(w interaction.Windows) (finding, bool) {
	recent, okRecent := averageDescriptionLength(w.Current)
	previous, okPrevious := averageDescriptionLength(w.Previous)
	if !okRecent || !okPrevious {
		return finding{}, false
	}
	decline := (previous - recent) / previous
	if decline <= lengthDeclineLimit {
		return finding{}, false
	}
	return finding{
		contribution:   decline * 20,
		message:        fmt.Sprintf("Journal entries %d%% shorter, indicating less engagement", int(roundHalfUp(decline*100))),
		recommendation: engagementAdvice,
	}, true
}

func interactionGap(w interaction.Windows) (finding, bool) {
	if len(w.Current) < 2 {
		return finding{}, false
	}
	// Current is newest first, so each gap is non-negative.
	var maxGap float64
	for i := 0; i < len(w.Current)-1; i++ {
		newer, _ := w.Current[i].CreatedAt.Time()
		older, _ := w.Current[i+1].CreatedAt.Time()
		if gap := newer.Sub(older).Hours(); gap > maxGap {
			maxGap = gap
		}
	}
	if maxGap <= maxGapHours {
		return finding{}, false
	}
	return finding{
		contribution:   gapContribution,
		message:        fmt.Sprintf("%d-day gap between interactions detected", int(roundHalfUp(maxGap/24))),
		recommendation: consistencyAdvice,
	}, true
}

func lowEnergy(w interaction.Windows) (finding, bool) {
	avg, ok := averageRating(w.Current, func(r interaction.Record) interaction.Rating { return r.EnergyLevel })
	if !ok || avg >= lowEnergyLimit {
		return finding{}, false
	}
	return finding{
		contribution:   energyContribution,
		message:        fmt.Sprintf("Low energy levels averaging %s/5", oneDecimal(avg)),
		recommendation: energyAdvice,
	}, true
}

// ratingDecline returns previous-minus-recent average of a rating; both windows need a value.
func ratingDecline(w interaction.Windows, pick func(interaction.Record) interaction.Rating) (float64, bool) {
	recent, okRecent := averageRating(w.Current, pick)
	previous, okPrevious := averageRating(w.Previous, pick)
	if !okRecent || !okPrevious {
		return 0, false
	}
	return previous - recent, true
}

func averageRating(records []interaction.Record, pick func(interaction.Record) interaction.Rating) (float64, bool) {
	var sum, n int
	for _, rec := range records {
		if v, ok := pick(rec).Value(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// averageDescriptionLength measures non-empty descriptions in characters.
func averageDescriptionLength(records []interaction.Record) (float64, bool) {
	var sum, n int
	for _, rec := range records {
		if rec.Description == "" {
			continue
		}
		sum += utf8.RuneCountInString(rec.Description)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func oneDecimal(v float64) string {
	return fmt.Sprintf("%.1f", roundHalfUp(v*10)/10)
}
