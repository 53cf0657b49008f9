package interaction

import (
	"sort"
	"time"
)

// WindowLength is the span of one comparison window.
const WindowLength = 7 * 24 * time.Hour

// Windows partitions records into the current and the prior week relative to a reference instant.
type Windows struct {
	// Current holds records created strictly after now-7d, newest first.
	Current []Record
	// Previous holds records created in (now-14d, now-7d], newest first.
	Previous []Record
}

// Split partitions records around now. Records without a valid timestamp land in neither window.
func Split(records []Record, now time.Time) Windows {
	currentStart := now.Add(-WindowLength)
	previousStart := now.Add(-2 * WindowLength)

	w := Windows{
		Current:  make([]Record, 0),
		Previous: make([]Record, 0),
	}
	for _, rec := range SortNewestFirst(records) {
		at, ok := rec.CreatedAt.Time()
		if !ok {
			continue
		}
		switch {
		case at.After(currentStart):
			w.Current = append(w.Current, rec)
		case at.After(previousStart):
			w.Previous = append(w.Previous, rec)
		}
	}
	return w
}

// SortNewestFirst returns a copy ordered by creation time, newest first.
// Records without a valid timestamp sort last, keeping their relative order.
func SortNewestFirst(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := out[i].CreatedAt.Time()
		tj, okJ := out[j].CreatedAt.Time()
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
	return out
}
