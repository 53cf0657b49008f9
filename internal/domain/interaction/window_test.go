package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplitBoundaries(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	records := []Record{
		{ID: "exactly-7d", CreatedAt: At(now.Add(-7 * day))},
		{ID: "6d", CreatedAt: At(now.Add(-6 * day))},
		{ID: "just-after-7d", CreatedAt: At(now.Add(-7*day + time.Second))},
		{ID: "13d", CreatedAt: At(now.Add(-13 * day))},
		{ID: "exactly-14d", CreatedAt: At(now.Add(-14 * day))},
		{ID: "30d", CreatedAt: At(now.Add(-30 * day))},
		{ID: "broken"},
		{ID: "1h", CreatedAt: At(now.Add(-time.Hour))},
	}

	w := Split(records, now)

	require.Equal(t, []string{"1h", "6d", "just-after-7d"}, ids(w.Current))
	require.Equal(t, []string{"exactly-7d", "13d"}, ids(w.Previous))
}

func TestSplitDoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "old", CreatedAt: At(now.Add(-48 * time.Hour))},
		{ID: "new", CreatedAt: At(now.Add(-time.Hour))},
	}
	_ = Split(records, now)
	require.Equal(t, []string{"old", "new"}, ids(records))
}

func TestSortNewestFirstKeepsInvalidLast(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	sorted := SortNewestFirst([]Record{
		{ID: "x"},
		{ID: "a", CreatedAt: At(base)},
		{ID: "c", CreatedAt: At(base.Add(2 * time.Hour))},
		{ID: "y"},
		{ID: "b", CreatedAt: At(base.Add(time.Hour))},
	})
	require.Equal(t, []string{"c", "b", "a", "x", "y"}, ids(sorted))
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID)
	}
	return out
}
