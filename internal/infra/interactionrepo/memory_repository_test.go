package interactionrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

func TestMemoryRepositoryVisibilityAndWindow(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	repo.Grant("viewer-1", "rec-a")
	repo.Add(
		interaction.Record{ID: "old", RecipientID: "rec-a", CreatedAt: interaction.At(now.AddDate(0, 0, -100))},
		interaction.Record{ID: "mid", RecipientID: "rec-a", CreatedAt: interaction.At(now.AddDate(0, 0, -3))},
		interaction.Record{ID: "new", RecipientID: "rec-a", CreatedAt: interaction.At(now.Add(-time.Hour))},
		interaction.Record{ID: "other", RecipientID: "rec-b", CreatedAt: interaction.At(now)},
	)

	records, visible, err := repo.List(context.Background(), interaction.Query{
		ViewerID: "viewer-1", RecipientID: "rec-a", Since: now.AddDate(0, 0, -90),
	})
	require.NoError(t, err)
	require.True(t, visible)
	require.Len(t, records, 2)
	require.Equal(t, "new", records[0].ID)
	require.Equal(t, "mid", records[1].ID)

	_, visible, err = repo.List(context.Background(), interaction.Query{ViewerID: "viewer-1", RecipientID: "rec-b"})
	require.NoError(t, err)
	require.False(t, visible)

	_, visible, err = repo.List(context.Background(), interaction.Query{ViewerID: "viewer-2", RecipientID: "rec-a"})
	require.NoError(t, err)
	require.False(t, visible)
}
